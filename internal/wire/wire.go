//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"ai-content-api/internal/application/content"
	"ai-content-api/internal/config"
	"ai-content-api/internal/interfaces/http/router"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RedisSet,
		ContentSet,
		RouterSet,
	)
	return nil, nil, nil
}

// InitializeService 仅初始化内容生成服务（用于 CLI）
func InitializeService(ctx context.Context, cfg *config.Config) (*content.Service, func(), error) {
	wire.Build(
		RedisSet,
		ContentSet,
	)
	return nil, nil, nil
}
