package content

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// wordSpans 返回每个词在文本中的字节区间
// 词为不含空白且至少包含一个字母或数字的片段，Markdown 的 # 等符号不计入
func wordSpans(text string) [][2]int {
	var spans [][2]int
	start := -1
	hasAlnum := false
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 && hasAlnum {
				spans = append(spans, [2]int{start, i})
			}
			start = -1
			hasAlnum = false
			continue
		}
		if start < 0 {
			start = i
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			hasAlnum = true
		}
	}
	if start >= 0 && hasAlnum {
		spans = append(spans, [2]int{start, len(text)})
	}
	return spans
}

// CountWords 统计词数
func CountWords(text string) int {
	return len(wordSpans(text))
}

// SplitSentences 按行切分后以 Punkt 模型切分句子
// 换行总是句子边界，Markdown 标题因此单独成句；缩写（如 U.S.、Dr.）不会被切开
func SplitSentences(text string) []string {
	tokenizer := sentenceTokenizer()
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		for _, s := range tokenizer.Tokenize(line) {
			if t := strings.TrimSpace(s.Text); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

// sentenceTokenizer 英文 Punkt 分句器，训练数据随依赖内嵌
var sentenceTokenizer = sync.OnceValue(func() *sentences.DefaultSentenceTokenizer {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		panic(fmt.Sprintf("load english sentence tokenizer: %v", err))
	}
	return tokenizer
})
