package router

import (
	"github.com/dujiao-next/alipay-gateway/internal/config"
	tradehandlers "github.com/dujiao-next/alipay-gateway/internal/http/handlers/trade"
	"github.com/dujiao-next/alipay-gateway/internal/http/response"
	"github.com/dujiao-next/alipay-gateway/internal/logger"
	"github.com/dujiao-next/alipay-gateway/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	tradeHandler := tradehandlers.New(c.AlipayClient)

	// 中间件
	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(log))
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		trade := apiV1.Group("/trade")
		{
			trade.POST("/page-pay", tradeHandler.PagePay)
			trade.POST("/wap-pay", tradeHandler.WapPay)
			trade.POST("/precreate", tradeHandler.Precreate)
			trade.POST("/close", tradeHandler.Close)
			trade.POST("/cancel", tradeHandler.Cancel)
			trade.POST("/query", tradeHandler.PayQuery)
			trade.POST("/refund", tradeHandler.Refund)
			trade.POST("/refund-query", tradeHandler.RefundQuery)
		}
	}

	// 健康检查
	r.GET("/health", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{
			"status":      "ok",
			"environment": c.Environment.String(),
		})
	})

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "route not found")
	})

	return r
}
