// Package entity 定义领域实体
package entity

import (
	"strings"
	"time"
)

// Tone 文章语气
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneAcademic     Tone = "academic"
)

// 草稿来源
const (
	SourceTemplate = "template"
)

// GenerationRequest 内容生成请求
type GenerationRequest struct {
	Topic    string `json:"topic"`
	Keywords string `json:"keywords,omitempty"`
	Tone     Tone   `json:"tone,omitempty"`
	Length   int    `json:"length,omitempty"` // 目标词数，0 表示使用默认值
}

// KeywordList 按逗号拆分关键词，去除空白与空项
func (r *GenerationRequest) KeywordList() []string {
	return SplitKeywords(r.Keywords)
}

// SplitKeywords 按逗号拆分关键词
func SplitKeywords(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GeneratedContent 生成结果
type GeneratedContent struct {
	Content         string    `json:"content"`
	WordCount       int       `json:"word_count"`
	SEOScore        int       `json:"seo_score"`
	UniquenessScore float64   `json:"uniqueness_score"`
	Topic           string    `json:"topic"`
	Keywords        string    `json:"keywords"`
	Tone            Tone      `json:"tone"`
	Length          int       `json:"length"`
	Source          string    `json:"source"`
	GeneratedAt     time.Time `json:"generated_at"`
}
