package content

import (
	"math"
	"regexp"
	"strings"

	"bitbucket.org/creachadair/stringset"
)

const (
	seoBaseScore      = 50
	seoMaxScore       = 100
	seoHeadingBonus   = 10
	seoKeywordBonus   = 5
	minUniqueness     = 85.0
	maxUniqueness     = 100.0
	minSentenceTokens = 4
)

var punctuation = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// SEOScore 根据篇幅、标题数与关键词覆盖计算 SEO 分数（上限 100）
func SEOScore(text string, keywords []string) int {
	score := seoBaseScore

	switch words := CountWords(text); {
	case words > 500:
		score += 20
	case words > 300:
		score += 15
	case words > 150:
		score += 10
	}

	if countHeadings(text) >= 2 {
		score += seoHeadingBonus
	}

	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" && strings.Contains(lower, kw) {
			score += seoKeywordBonus
		}
	}

	return min(score, seoMaxScore)
}

func countHeadings(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			n++
		}
	}
	return n
}

// UniquenessScore 计算去重后句子占比（百分比，保留两位小数，限制在 [85, 100]）
// 仅超过三个词的句子参与去重
func UniquenessScore(text string) float64 {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return maxUniqueness
	}

	unique := stringset.New()
	for _, s := range sentences {
		normalized := strings.TrimSpace(punctuation.ReplaceAllString(strings.ToLower(s), ""))
		if len(strings.Fields(normalized)) >= minSentenceTokens {
			unique.Add(normalized)
		}
	}

	ratio := float64(unique.Len()) / float64(len(sentences)) * 100
	ratio = math.Round(ratio*100) / 100
	return math.Max(minUniqueness, math.Min(maxUniqueness, ratio))
}
