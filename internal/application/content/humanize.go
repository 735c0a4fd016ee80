package content

import (
	"regexp"

	"ai-content-api/internal/domain/entity"
)

type wordRewrite struct {
	pattern *regexp.Regexp
	with    string
}

// phrase 整词匹配的短语替换
func phrase(from, with string) wordRewrite {
	return wordRewrite{pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(from) + `\b`), with: with}
}

// connective 连接词替换，连字符构成的复合词（如 so-called）不受影响
func connective(word, with string) wordRewrite {
	return wordRewrite{
		pattern: regexp.MustCompile(`(^|[^\w-])` + word + `([^\w-]|$)`),
		with:    "${1}" + with + "${2}",
	}
}

// phraseRewrites 替换生硬的常见短语
var phraseRewrites = []wordRewrite{
	phrase("is important", "plays a crucial role"),
	phrase("very good", "exceptionally beneficial"),
	phrase("many people", "numerous individuals"),
	phrase("in order to", "to"),
	phrase("due to the fact that", "because"),
}

// toneRewrites 语气相关的整词替换
var toneRewrites = map[entity.Tone][]wordRewrite{
	entity.ToneCasual: {
		connective("therefore", "so"),
		connective("however", "but"),
	},
	entity.ToneAcademic: {
		connective("so", "therefore"),
		connective("but", "however"),
	},
}

// Humanize 润色文本措辞并按语气调整连接词
func Humanize(text string, tone entity.Tone) string {
	for _, rw := range phraseRewrites {
		text = rw.pattern.ReplaceAllString(text, rw.with)
	}
	for _, rw := range toneRewrites[tone] {
		// 相邻的两处匹配共用分隔符，第二遍补齐
		for range 2 {
			text = rw.pattern.ReplaceAllString(text, rw.with)
		}
	}
	return text
}
