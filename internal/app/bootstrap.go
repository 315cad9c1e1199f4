package app

import (
	"errors"
	"fmt"

	"github.com/dujiao-next/alipay-gateway/internal/config"
	"github.com/dujiao-next/alipay-gateway/internal/provider"
	"github.com/dujiao-next/alipay-gateway/internal/router"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if mode != ModeAPI {
		return nil, fmt.Errorf("unsupported mode: %s", mode)
	}

	container, err := provider.NewContainer(cfg)
	if err != nil {
		return nil, err
	}

	engine := router.SetupRouter(cfg, container)
	httpService := NewHTTPService(cfg.Server.Host+":"+cfg.Server.Port, engine)
	if err := httpService.Listen(); err != nil {
		return nil, fmt.Errorf("listen %s failed: %w", httpService.Addr(), err)
	}
	return NewRunner(httpService), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
