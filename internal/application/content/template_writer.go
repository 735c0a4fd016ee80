package content

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ai-content-api/internal/domain/entity"
)

const (
	maxKeyPoints         = 5
	bodySectionCount     = 2
	minResearchForDetail = 100
)

var titlePatterns = []string{
	"# %s: A Comprehensive Guide",
	"# Understanding %s",
	"# The Complete Guide to %s",
}

var sectionTitles = []string{"Benefits", "Applications", "Strategies", "Future Trends"}

// sectionOpeners 的占位符依次为小节名（小写）与主题
var sectionOpeners = []string{
	"The %s of %s are significant and varied.",
	"When considering %s, %s offers multiple advantages.",
	"Effective %s require understanding key principles of %s.",
}

// TemplateWriter 基于固定模板撰写 Markdown 草稿，不依赖外部服务
type TemplateWriter struct {
	rng *Rand
}

// NewTemplateWriter 创建模板撰写器
func NewTemplateWriter(rng *Rand) *TemplateWriter {
	return &TemplateWriter{rng: rng}
}

// Draft 实现 Writer
func (w *TemplateWriter) Draft(_ context.Context, b *Brief) (*Draft, error) {
	if strings.TrimSpace(b.Topic) == "" {
		return nil, fmt.Errorf("topic is empty")
	}

	facts := SplitSentences(b.Research)
	var sb strings.Builder

	fmt.Fprintf(&sb, titlePatterns[w.rng.IntN(len(titlePatterns))], b.Topic)
	sb.WriteString("\n\n")

	sb.WriteString("## Introduction\n")
	fmt.Fprintf(&sb, "In today's digital landscape, %s has become increasingly important.", b.Topic)
	if len(facts) > 0 {
		sb.WriteString(" " + facts[0])
	}
	sb.WriteString("\n\n")

	if len(b.Keywords) > 0 {
		title := cases.Title(language.English)
		sb.WriteString("## Key Points\n")
		for i, kw := range b.Keywords {
			if i == maxKeyPoints {
				break
			}
			fmt.Fprintf(&sb, "%d. **%s**: Important aspect of %s.\n", i+1, title.String(kw), strings.ToLower(b.Topic))
		}
		sb.WriteString("\n")
	}

	for _, idx := range w.rng.Sample(len(sectionTitles), bodySectionCount) {
		section := sectionTitles[idx]
		fmt.Fprintf(&sb, "## %s\n", section)
		fmt.Fprintf(&sb, sectionOpeners[w.rng.IntN(len(sectionOpeners))], strings.ToLower(section), b.Topic)
		if len(b.Research) > minResearchForDetail && len(facts) > 1 {
			sb.WriteString(" " + facts[1])
		}
		sb.WriteString("\n\n")
	}

	sb.WriteString("## Conclusion\n")
	fmt.Fprintf(&sb, "In summary, %s represents an important area with growing relevance. ", b.Topic)
	fmt.Fprintf(&sb, "By understanding %s, better outcomes can be achieved.", strings.ToLower(b.Topic))

	return &Draft{
		Text:       sb.String(),
		Source:     entity.SourceTemplate,
		Extendable: true,
	}, nil
}
