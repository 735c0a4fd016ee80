// Package main 命令行内容生成工具
//
// 用法：content-cli '{"topic":"Remote Work","keywords":"productivity","tone":"casual","length":400}'
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"ai-content-api/internal/config"
	"ai-content-api/internal/interfaces/http/dto"
	"ai-content-api/internal/wire"
	"ai-content-api/pkg/errors"
	"ai-content-api/pkg/logger"
)

const usage = `usage: content-cli '<json>'

  {"topic": "...", "keywords": "a, b", "tone": "professional|casual|academic", "length": 500}
`

type failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout))
}

func run(ctx context.Context, args []string, out io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return 2
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fail(out, err)
	}
	// 日志写入 stderr，stdout 仅输出结果
	logger.Init(cfg.Observability.Logging.Level, "text", "stderr")

	var req dto.GenerateRequest
	if err := json.Unmarshal([]byte(args[0]), &req); err != nil {
		return fail(out, errors.ErrInvalidParam.WithError(err))
	}

	svc, cleanup, err := wire.InitializeService(ctx, cfg)
	if err != nil {
		return fail(out, err)
	}
	defer cleanup()

	result, err := svc.Generate(ctx, req.ToEntity())
	if err != nil {
		return fail(out, err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dto.ToContentResponse(result)); err != nil {
		return 1
	}
	return 0
}

func fail(out io.Writer, err error) int {
	f := failure{Success: false, Error: err.Error()}
	if errors.IsAppError(err) {
		appErr := errors.AsAppError(err)
		f.Error = appErr.Message
		f.Code = string(appErr.Code)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(f)
	return 1
}
