// Package research 提供主题资料检索（Wikipedia 摘要）与缓存
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"ai-content-api/internal/config"
	"ai-content-api/pkg/errors"
	"ai-content-api/pkg/metrics"
)

const (
	sourceWikipedia = "wikipedia"
	maxBodyBytes    = 1 << 20
)

var tracer = otel.Tracer("research")

// WikipediaClient Wikipedia 摘要检索客户端
type WikipediaClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxChars   int
}

// NewWikipediaClient 创建 Wikipedia 客户端
func NewWikipediaClient(cfg *config.WikipediaConfig) *WikipediaClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WikipediaClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		maxChars:   cfg.MaxChars,
	}
}

// queryResponse action=query&prop=extracts 的响应结构
type queryResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// Lookup 返回主题的导言摘要，未找到页面时返回空字符串
func (c *WikipediaClient) Lookup(ctx context.Context, topic string) (string, error) {
	ctx, span := tracer.Start(ctx, "wikipedia.Lookup",
		trace.WithAttributes(attribute.String("research.topic", topic)))
	defer span.End()

	start := time.Now()
	extract, err := c.fetch(ctx, topic)
	metrics.ResearchLookupDuration.WithLabelValues(sourceWikipedia).Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		span.RecordError(err)
		metrics.ResearchLookupTotal.WithLabelValues(sourceWikipedia, "error").Inc()
		return "", errors.Wrap(err, errors.CodeResearchFailed, "wikipedia lookup failed")
	case extract == "":
		metrics.ResearchLookupTotal.WithLabelValues(sourceWikipedia, "empty").Inc()
	default:
		metrics.ResearchLookupTotal.WithLabelValues(sourceWikipedia, "ok").Inc()
	}
	span.SetAttributes(attribute.Int("research.extract_len", len(extract)))
	return extract, nil
}

func (c *WikipediaClient) fetch(ctx context.Context, topic string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("titles", topic)
	params.Set("prop", "extracts")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("redirects", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build wikipedia request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("wikipedia request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wikipedia returned status %d", resp.StatusCode)
	}

	var body queryResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode wikipedia response: %w", err)
	}

	// 页面以 pageid 为键，按键排序保证结果稳定
	ids := make([]string, 0, len(body.Query.Pages))
	for id := range body.Query.Pages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if extract := strings.TrimSpace(body.Query.Pages[id].Extract); extract != "" {
			return truncateRunes(extract, c.maxChars), nil
		}
	}
	return "", nil
}

// truncateRunes 按字符数截断
func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
