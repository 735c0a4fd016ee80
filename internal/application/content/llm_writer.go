package content

import (
	"context"
	"embed"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"ai-content-api/pkg/errors"
	"ai-content-api/pkg/logger"
	"ai-content-api/pkg/metrics"
	"ai-content-api/pkg/tracer"
)

//go:embed prompts/*.txt
var promptsFS embed.FS

// ChatModelFactory 定义对 LLM ChatModel 的最小依赖（port）
// 由基础设施层提供具体实现（例如 llm.ModelFactory）
type ChatModelFactory interface {
	Get(ctx context.Context, name string) (model.BaseChatModel, error)
}

// LLMWriter 通过 LLM 撰写草稿，按提供商链依次尝试
type LLMWriter struct {
	factory   ChatModelFactory
	providers []string
	tpl       einoprompt.ChatTemplate
}

// NewLLMWriter 创建 LLM 撰写器
func NewLLMWriter(factory ChatModelFactory, providers []string) (*LLMWriter, error) {
	if factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("no llm provider configured")
	}
	tpl, err := articleTemplate()
	if err != nil {
		return nil, err
	}
	return &LLMWriter{factory: factory, providers: providers, tpl: tpl}, nil
}

func articleTemplate() (einoprompt.ChatTemplate, error) {
	system, err := promptsFS.ReadFile("prompts/article.system.txt")
	if err != nil {
		return nil, err
	}
	user, err := promptsFS.ReadFile("prompts/article.user.txt")
	if err != nil {
		return nil, err
	}
	return einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(strings.TrimSpace(string(system))),
		schema.UserMessage(strings.TrimSpace(string(user))),
	), nil
}

// Draft 实现 Writer
func (w *LLMWriter) Draft(ctx context.Context, b *Brief) (*Draft, error) {
	keywords := strings.Join(b.Keywords, ", ")
	if keywords == "" {
		keywords = "none"
	}
	msgs, err := w.tpl.Format(ctx, map[string]any{
		"topic":    b.Topic,
		"tone":     string(b.Tone),
		"length":   b.Length,
		"keywords": keywords,
		"research": b.Research,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to format prompt: %w", err)
	}

	var errs []error
	for _, provider := range w.providers {
		text, err := w.call(ctx, provider, msgs, b.Length)
		if err == nil {
			return &Draft{Text: text, Source: provider}, nil
		}
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), errors.CodeLLMCallFailed, "llm call cancelled")
		}
		logger.Warn(ctx, "llm provider failed", "provider", provider, "error", err.Error())
		errs = append(errs, fmt.Errorf("%s: %w", provider, err))
	}
	return nil, errors.ErrLLMCallFailed.WithError(stderrors.Join(errs...))
}

func (w *LLMWriter) call(ctx context.Context, provider string, msgs []*schema.Message, length int) (string, error) {
	ctx, span := tracer.Start(ctx, "llm.Generate")
	defer span.End()

	chatModel, err := w.factory.Get(ctx, provider)
	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(provider, "error").Inc()
		return "", errors.Wrap(err, errors.CodeLLMProviderError, "llm provider unavailable")
	}

	start := time.Now()
	// 单词约折合 1.5 token，留出标题与格式余量
	out, err := chatModel.Generate(ctx, msgs, model.WithMaxTokens(length*2))
	metrics.LLMCallDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		metrics.LLMCallTotal.WithLabelValues(provider, "error").Inc()
		return "", err
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		metrics.LLMCallTotal.WithLabelValues(provider, "empty").Inc()
		return "", fmt.Errorf("empty llm response")
	}

	metrics.LLMCallTotal.WithLabelValues(provider, "ok").Inc()
	if out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
		metrics.LLMTokensUsed.WithLabelValues(provider, "prompt").Add(float64(out.ResponseMeta.Usage.PromptTokens))
		metrics.LLMTokensUsed.WithLabelValues(provider, "completion").Add(float64(out.ResponseMeta.Usage.CompletionTokens))
	}
	return strings.TrimSpace(out.Content), nil
}
