package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ai-content-api/internal/application/content"
	"ai-content-api/internal/domain/entity"
	"ai-content-api/internal/interfaces/http/dto"
	"ai-content-api/pkg/errors"
)

// ContentGenerator 内容生成能力（由 content.Service 实现）
type ContentGenerator interface {
	Generate(ctx context.Context, req *entity.GenerationRequest) (*entity.GeneratedContent, error)
	GenerateBatch(ctx context.Context, req *content.BatchRequest) ([]*entity.GeneratedContent, error)
}

// ServiceInfo 服务索引信息
type ServiceInfo struct {
	Name      string
	Version   string
	Mode      string
	Providers []string
}

// ContentHandler 内容生成处理器
type ContentHandler struct {
	generator ContentGenerator
	info      ServiceInfo
}

// NewContentHandler 创建内容生成处理器
func NewContentHandler(generator ContentGenerator, info ServiceInfo) *ContentHandler {
	return &ContentHandler{generator: generator, info: info}
}

// sampleRequest /test 使用的固定请求
var sampleRequest = entity.GenerationRequest{
	Topic:    "Artificial Intelligence",
	Keywords: "AI, machine learning, technology",
	Tone:     entity.ToneProfessional,
	Length:   300,
}

// Index 服务索引
// @Summary 服务索引
// @Description 返回服务名称、版本与可用端点
// @Tags System
// @Produce json
// @Success 200 {object} dto.Response[dto.IndexResponse]
// @Router / [get]
func (h *ContentHandler) Index(c *gin.Context) {
	dto.Success(c, &dto.IndexResponse{
		Service:   h.info.Name,
		Version:   h.info.Version,
		Status:    "running",
		Mode:      h.info.Mode,
		Providers: h.info.Providers,
		Endpoints: map[string]string{
			"GET /":          "service index",
			"GET /health":    "health check",
			"GET /test":      "sample generation",
			"POST /generate": "generate content",
			"GET /generate":  "generate content from query parameters",
			"POST /batch":    "generate content for up to 10 topics",
		},
		Usage: `POST /generate {"topic":"...","keywords":"a, b","tone":"professional|casual|academic","length":500}`,
	})
}

// Generate 生成内容
// @Summary 生成内容
// @Description 根据主题、关键词、语气与篇幅生成一篇文章
// @Tags Content
// @Accept json
// @Produce json
// @Param body body dto.GenerateRequest true "生成请求"
// @Success 200 {object} dto.Response[dto.ContentResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /generate [post]
func (h *ContentHandler) Generate(c *gin.Context) {
	req, err := dto.BindGenerateRequest(c)
	if err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), req.ToEntity())
	if err != nil {
		respondError(c, err, errors.ErrGenerationFailed)
		return
	}

	dto.Success(c, dto.ToContentResponse(result))
}

// Preflight 响应不带 Origin 的 OPTIONS 请求
func (h *ContentHandler) Preflight(c *gin.Context) {
	c.Header("Allow", "GET, POST, OPTIONS")
	c.Status(http.StatusNoContent)
}

// Sample 生成示例内容
// @Summary 示例生成
// @Description 以固定主题生成一篇示例文章
// @Tags Content
// @Produce json
// @Success 200 {object} dto.Response[dto.ContentResponse]
// @Router /test [get]
func (h *ContentHandler) Sample(c *gin.Context) {
	req := sampleRequest
	result, err := h.generator.Generate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, errors.ErrGenerationFailed)
		return
	}

	dto.Success(c, dto.ToContentResponse(result))
}

// Batch 批量生成
// @Summary 批量生成内容
// @Description 为 1-10 个主题并发生成文章，结果顺序与输入一致
// @Tags Content
// @Accept json
// @Produce json
// @Param body body dto.BatchRequest true "批量生成请求"
// @Success 200 {object} dto.Response[dto.BatchResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /batch [post]
func (h *ContentHandler) Batch(c *gin.Context) {
	var req dto.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	results, err := h.generator.GenerateBatch(c.Request.Context(), req.ToBatch())
	if err != nil {
		respondError(c, err, errors.ErrGenerationFailed)
		return
	}

	dto.Success(c, dto.ToBatchResponse(results))
}
