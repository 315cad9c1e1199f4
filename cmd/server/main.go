package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/dujiao-next/alipay-gateway/internal/app"
	"github.com/dujiao-next/alipay-gateway/internal/config"
	"github.com/dujiao-next/alipay-gateway/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset     = "\033[0m"
	ansiBold      = "\033[1m"
	ansiDim       = "\033[2m"
	ansiCyan      = "\033[36m"
	ansiBrightMag = "\033[95m"
)

func main() {
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAPI, "启动模式: api")
	flag.Parse()

	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Alipay.Sandbox {
		stdLog.Printf("提示: 当前使用支付宝沙箱环境")
	} else if cfg.Server.Mode != "release" {
		stdLog.Printf("警告: 非 release 模式下连接支付宝生产网关")
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiBrightMag + "╔════════════════════════════════════════════╗" + ansiReset)
	fmt.Println(ansiBrightMag + "║        Alipay Gateway API 启动中           ║" + ansiReset)
	fmt.Println(ansiBrightMag + "╚════════════════════════════════════════════╝" + ansiReset)
	fmt.Println(ansiCyan + ansiBold + "endpoints: /api/v1/trade/*  /health" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}
