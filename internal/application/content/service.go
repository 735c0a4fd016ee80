package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"ai-content-api/internal/domain/entity"
	"ai-content-api/pkg/errors"
	"ai-content-api/pkg/logger"
	"ai-content-api/pkg/metrics"
	"ai-content-api/pkg/tracer"
)

// Limits 请求参数的默认值与边界
type Limits struct {
	DefaultTone        entity.Tone
	DefaultLength      int
	MinLength          int
	MaxLength          int
	BatchMaxTopics     int
	BatchDefaultLength int
	BatchConcurrency   int
}

// DefaultLimits 返回默认边界
func DefaultLimits() Limits {
	return Limits{
		DefaultTone:        entity.ToneProfessional,
		DefaultLength:      500,
		MinLength:          100,
		MaxLength:          2000,
		BatchMaxTopics:     10,
		BatchDefaultLength: 300,
		BatchConcurrency:   4,
	}
}

// BatchRequest 批量生成请求
type BatchRequest struct {
	Topics   []string
	Keywords string
	Tone     entity.Tone
	Length   int
}

// Service 内容生成服务
type Service struct {
	researcher Researcher
	writer     Writer
	limits     Limits
	rng        *Rand
	now        func() time.Time
}

// NewService 创建内容生成服务；researcher 可为 nil
func NewService(researcher Researcher, writer Writer, limits Limits, rng *Rand) *Service {
	return &Service{
		researcher: researcher,
		writer:     writer,
		limits:     limits,
		rng:        rng,
		now:        time.Now,
	}
}

// Normalize 规范化请求：去除空白、补默认值并限制篇幅
func (s *Service) Normalize(req *entity.GenerationRequest) (*entity.GenerationRequest, error) {
	if req == nil {
		return nil, errors.ErrTopicRequired
	}
	out := &entity.GenerationRequest{
		Topic:    strings.TrimSpace(req.Topic),
		Keywords: strings.TrimSpace(req.Keywords),
		Tone:     entity.Tone(strings.ToLower(strings.TrimSpace(string(req.Tone)))),
		Length:   req.Length,
	}
	if out.Topic == "" {
		return nil, errors.ErrTopicRequired
	}
	if out.Tone == "" {
		out.Tone = s.limits.DefaultTone
	}
	if out.Length == 0 {
		out.Length = s.limits.DefaultLength
	}
	out.Length = max(s.limits.MinLength, min(s.limits.MaxLength, out.Length))
	return out, nil
}

// Generate 生成一篇内容
func (s *Service) Generate(ctx context.Context, req *entity.GenerationRequest) (*entity.GeneratedContent, error) {
	in, err := s.Normalize(req)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithContext(ctx, logger.TopicKey, in.Topic)
	ctx, span := tracer.Start(ctx, "content.Generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("content.topic", in.Topic),
		attribute.String("content.tone", string(in.Tone)),
		attribute.Int("content.length", in.Length),
	)

	start := s.now()
	keywords := in.KeywordList()

	draft, err := s.writer.Draft(ctx, &Brief{
		Topic:    in.Topic,
		Keywords: keywords,
		Tone:     in.Tone,
		Length:   in.Length,
		Research: s.research(ctx, in.Topic),
	})
	if err != nil {
		span.RecordError(err)
		metrics.GenerationTotal.WithLabelValues("none", "error").Inc()
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, errors.ErrGenerationFailed.WithError(err)
	}

	text := FitLength(draft.Text, in.Length, draft.Extendable, s.rng)
	text = Humanize(text, in.Tone)

	result := &entity.GeneratedContent{
		Content:         text,
		WordCount:       CountWords(text),
		SEOScore:        SEOScore(text, keywords),
		UniquenessScore: UniquenessScore(text),
		Topic:           in.Topic,
		Keywords:        in.Keywords,
		Tone:            in.Tone,
		Length:          in.Length,
		Source:          draft.Source,
		GeneratedAt:     s.now().UTC(),
	}

	elapsed := s.now().Sub(start)
	metrics.GenerationTotal.WithLabelValues(draft.Source, "ok").Inc()
	metrics.GenerationDuration.WithLabelValues(draft.Source).Observe(elapsed.Seconds())
	metrics.GeneratedWordCount.WithLabelValues(draft.Source).Observe(float64(result.WordCount))
	logger.Info(ctx, "content generated",
		"source", draft.Source,
		"word_count", result.WordCount,
		"seo_score", result.SEOScore,
		"duration_ms", elapsed.Milliseconds(),
	)
	return result, nil
}

// research 检索主题资料，失败时记录日志并返回空字符串
func (s *Service) research(ctx context.Context, topic string) string {
	if s.researcher == nil {
		return ""
	}
	text, err := s.researcher.Lookup(ctx, topic)
	if err != nil {
		logger.Warn(ctx, "research lookup failed", "error", err.Error())
		return ""
	}
	return text
}

// GenerateBatch 并发生成多个主题，结果顺序与输入一致；任一失败则整体失败
func (s *Service) GenerateBatch(ctx context.Context, req *BatchRequest) ([]*entity.GeneratedContent, error) {
	if req == nil || len(req.Topics) == 0 || len(req.Topics) > s.limits.BatchMaxTopics {
		return nil, errors.New(errors.CodeInvalidParam, fmt.Sprintf("provide 1-%d topics", s.limits.BatchMaxTopics))
	}

	length := req.Length
	if length == 0 {
		length = s.limits.BatchDefaultLength
	}

	results := make([]*entity.GeneratedContent, len(req.Topics))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.limits.BatchConcurrency))
	for i, topic := range req.Topics {
		g.Go(func() error {
			res, err := s.Generate(gctx, &entity.GenerationRequest{
				Topic:    topic,
				Keywords: req.Keywords,
				Tone:     req.Tone,
				Length:   length,
			})
			if err != nil {
				return fmt.Errorf("topic %d %q: %w", i+1, topic, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
