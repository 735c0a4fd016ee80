// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"ai-content-api/internal/application/content"
	"ai-content-api/internal/domain/entity"
)

// FlexInt 兼容 JSON 数字与数字字符串的整数，小数向零取整
type FlexInt int

// UnmarshalJSON 实现 json.Unmarshaler
func (n *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = FlexInt(clampToInt(f))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("length must be an integer: %w", err)
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("length must be an integer, got %q", s)
	}
	*n = FlexInt(v)
	return nil
}

// clampToInt 向零取整并限制在 int 范围内
func clampToInt(f float64) int {
	switch f = math.Trunc(f); {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}

// lengthValue 转换为领域层篇幅：未给出时为 0（使用默认值），显式给出的非正数按最短篇幅处理
func lengthValue(n *FlexInt) int {
	switch {
	case n == nil:
		return 0
	case *n <= 0:
		return 1
	}
	return int(*n)
}

// GenerateRequest 内容生成请求
type GenerateRequest struct {
	Topic    string   `json:"topic" form:"topic" binding:"max=300"`
	Keywords string   `json:"keywords" form:"keywords" binding:"max=1000"`
	Tone     string   `json:"tone" form:"tone" binding:"max=32"`
	Length   *FlexInt `json:"length" form:"-"`
}

// ToEntity 转换为领域请求
func (r *GenerateRequest) ToEntity() *entity.GenerationRequest {
	return &entity.GenerationRequest{
		Topic:    r.Topic,
		Keywords: r.Keywords,
		Tone:     entity.Tone(r.Tone),
		Length:   lengthValue(r.Length),
	}
}

// BindGenerateRequest 从 JSON、表单或查询参数绑定生成请求
func BindGenerateRequest(c *gin.Context) (*GenerateRequest, error) {
	var req GenerateRequest
	if c.Request.Method != "GET" && c.ContentType() == binding.MIMEJSON {
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	if err := c.ShouldBind(&req); err != nil {
		return nil, err
	}
	// 表单与查询参数中的 length 无法解析时使用默认值
	if v, err := strconv.Atoi(strings.TrimSpace(c.Request.FormValue("length"))); err == nil {
		n := FlexInt(v)
		req.Length = &n
	}
	return &req, nil
}

// BatchRequest 批量生成请求
type BatchRequest struct {
	Topics   []string `json:"topics" binding:"dive,max=300"`
	Keywords string   `json:"keywords" binding:"max=1000"`
	Tone     string   `json:"tone" binding:"max=32"`
	Length   *FlexInt `json:"length"`
}

// ToBatch 转换为应用层批量请求
func (r *BatchRequest) ToBatch() *content.BatchRequest {
	return &content.BatchRequest{
		Topics:   r.Topics,
		Keywords: r.Keywords,
		Tone:     entity.Tone(r.Tone),
		Length:   lengthValue(r.Length),
	}
}

// ContentResponse 生成结果响应
type ContentResponse struct {
	Content         string  `json:"content"`
	WordCount       int     `json:"word_count"`
	SEOScore        int     `json:"seo_score"`
	UniquenessScore float64 `json:"uniqueness_score"`
	Topic           string  `json:"topic"`
	Keywords        string  `json:"keywords"`
	Tone            string  `json:"tone"`
	Length          int     `json:"length"`
	Source          string  `json:"source"`
	GeneratedAt     string  `json:"generated_at"`
}

// ToContentResponse 转换为响应
func ToContentResponse(c *entity.GeneratedContent) *ContentResponse {
	if c == nil {
		return nil
	}
	return &ContentResponse{
		Content:         c.Content,
		WordCount:       c.WordCount,
		SEOScore:        c.SEOScore,
		UniquenessScore: c.UniquenessScore,
		Topic:           c.Topic,
		Keywords:        c.Keywords,
		Tone:            string(c.Tone),
		Length:          c.Length,
		Source:          c.Source,
		GeneratedAt:     c.GeneratedAt.Format(time.RFC3339),
	}
}

// BatchResponse 批量生成响应
type BatchResponse struct {
	Results []*ContentResponse `json:"results"`
	Count   int                `json:"count"`
}

// ToBatchResponse 转换为批量响应
func ToBatchResponse(items []*entity.GeneratedContent) *BatchResponse {
	results := make([]*ContentResponse, 0, len(items))
	for _, item := range items {
		results = append(results, ToContentResponse(item))
	}
	return &BatchResponse{Results: results, Count: len(results)}
}

// IndexResponse 服务索引响应
type IndexResponse struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Mode      string            `json:"mode"`
	Providers []string          `json:"providers,omitempty"`
	Endpoints map[string]string `json:"endpoints"`
	Usage     string            `json:"usage"`
}
