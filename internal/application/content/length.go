package content

import (
	"strings"
	"unicode"
)

// fillerSentences 补足篇幅用的通用句
var fillerSentences = []string{
	"This demonstrates practical applications and value.",
	"Many experts recognize these patterns and developments.",
	"Further research continues to expand our understanding.",
	"Real-world implementations show promising results.",
}

// FitLength 将文本调整到目标词数附近
// 超出时截断到 target 个词并回退到最后一个完整句子；
// extendable 为 true 且不足时在最后一个小节前插入补充段落，结果不超过 target。
func FitLength(text string, target int, extendable bool, rng *Rand) string {
	if target <= 0 {
		return text
	}
	spans := wordSpans(text)
	if len(spans) > target {
		cut := strings.TrimRightFunc(text[:spans[target-1][1]], unicode.IsSpace)
		return trimToSentence(cut)
	}
	if !extendable || len(spans) == target {
		return text
	}
	filler := buildFiller(target-len(spans), rng)
	if filler == "" {
		return text
	}
	return insertBeforeLastSection(text, filler)
}

// trimToSentence 回退到最后一个句末标点
func trimToSentence(s string) string {
	idx := strings.LastIndexAny(s, ".!?")
	if idx <= 0 {
		return s
	}
	return s[:idx+1]
}

// buildFiller 拼接不超过 budget 个词的补充句
func buildFiller(budget int, rng *Rand) string {
	var parts []string
	for budget > 0 {
		s := fillerSentences[rng.IntN(len(fillerSentences))]
		n := CountWords(s)
		if n > budget {
			s, n = shortestFitting(budget)
			if s == "" {
				break
			}
		}
		parts = append(parts, s)
		budget -= n
	}
	return strings.Join(parts, " ")
}

func shortestFitting(budget int) (string, int) {
	best, bestN := "", 0
	for _, s := range fillerSentences {
		n := CountWords(s)
		if n <= budget && (best == "" || n < bestN) {
			best, bestN = s, n
		}
	}
	return best, bestN
}

// insertBeforeLastSection 在最后一个 Markdown 二级标题前插入段落，
// 没有标题时追加到末尾
func insertBeforeLastSection(text, paragraph string) string {
	text = strings.TrimRightFunc(text, unicode.IsSpace)
	idx := strings.LastIndex(text, "\n## ")
	if idx < 0 {
		return text + "\n\n" + paragraph
	}
	head := strings.TrimRightFunc(text[:idx], unicode.IsSpace)
	return head + "\n\n" + paragraph + "\n\n" + text[idx+1:]
}
