package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"ai-content-api/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRecovery(t *testing.T) {
	e := gin.New()
	e.Use(Recovery())
	e.GET("/panic", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), `"error_code":"1007"`)
}

func TestRequestID(t *testing.T) {
	e := gin.New()
	e.Use(RequestID())
	var seen string
	e.GET("/", func(c *gin.Context) {
		seen = c.GetString("request_id")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 200))
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	assert.Len(t, seen, 36, "oversized ids are replaced with a uuid")
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestCORS_Credentials(t *testing.T) {
	tests := []struct {
		name       string
		origins    []string
		wantOrigin string
		wantCreds  string
	}{
		{"wildcard", nil, "*", ""},
		{"explicit origin", []string{"https://app.example.com"}, "https://app.example.com", "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := gin.New()
			e.Use(CORS(CORSConfig{AllowedOrigins: tt.origins}))
			e.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", "https://app.example.com")
			w := httptest.NewRecorder()
			e.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCreds, w.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}

func TestAccessLog_SkipPaths(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter("info", "json", &buf)
	t.Cleanup(func() { logger.Init("info", "json", "stdout") })

	e := gin.New()
	e.Use(AccessLog([]string{"/health"}))
	e.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	e.GET("/generate", func(c *gin.Context) { c.Status(http.StatusOK) })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, buf.String())

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/generate?topic=go", nil))
	assert.Contains(t, buf.String(), `"msg":"api request"`)
	assert.Contains(t, buf.String(), `"path":"/generate"`)
	assert.Contains(t, buf.String(), `"query":"topic=go"`)
}

func TestTraceContext(t *testing.T) {
	prev := otel.GetTracerProvider()
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})

	e := gin.New()
	e.Use(Trace("test"), TraceContext())
	var traceID string
	e.GET("/x", func(c *gin.Context) {
		traceID = c.GetString("trace_id")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Len(t, traceID, 32)
	assert.Equal(t, traceID, w.Header().Get("X-Trace-ID"))
}

func TestTraceContext_NoSpan(t *testing.T) {
	e := gin.New()
	e.Use(TraceContext())
	e.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Empty(t, w.Header().Get("X-Trace-ID"))
}
