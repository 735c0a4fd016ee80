package content

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Rand 可并发使用的随机源
type Rand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand 创建随机源，seed 为 0 时按当前时间取种
func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntN 返回 [0, n) 内的随机数
func (r *Rand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.IntN(n)
}

// Sample 从 [0, n) 中无放回地抽取 k 个下标
func (r *Rand) Sample(n, k int) []int {
	if k > n {
		k = n
	}
	r.mu.Lock()
	perm := r.r.Perm(n)
	r.mu.Unlock()
	return perm[:k]
}
