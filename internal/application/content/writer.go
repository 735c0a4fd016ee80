// Package content 实现内容生成流水线：资料检索、草稿撰写、篇幅调整、润色与评分
package content

import (
	"context"

	"ai-content-api/internal/domain/entity"
	"ai-content-api/pkg/logger"
	"ai-content-api/pkg/metrics"
)

// Brief 撰写草稿所需的输入
type Brief struct {
	Topic    string
	Keywords []string
	Tone     entity.Tone
	Length   int
	Research string
}

// Draft 草稿
type Draft struct {
	Text   string
	Source string
	// Extendable 为 true 时篇幅不足可用补充句填充
	Extendable bool
}

// Writer 草稿撰写器
type Writer interface {
	Draft(ctx context.Context, b *Brief) (*Draft, error)
}

// Researcher 主题资料来源
type Researcher interface {
	Lookup(ctx context.Context, topic string) (string, error)
}

// FallbackWriter 主撰写器失败时改用备用撰写器
type FallbackWriter struct {
	primary  Writer
	fallback Writer
}

// NewFallbackWriter 创建带降级的撰写器
func NewFallbackWriter(primary, fallback Writer) *FallbackWriter {
	return &FallbackWriter{primary: primary, fallback: fallback}
}

// Draft 实现 Writer
func (w *FallbackWriter) Draft(ctx context.Context, b *Brief) (*Draft, error) {
	d, err := w.primary.Draft(ctx, b)
	if err == nil {
		return d, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	logger.Warn(ctx, "primary writer failed, falling back", "error", err.Error())
	metrics.WriterFallbackTotal.Inc()
	return w.fallback.Draft(ctx, b)
}
