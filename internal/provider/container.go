package provider

import (
	"github.com/dujiao-next/alipay-gateway/internal/config"
	"github.com/dujiao-next/alipay-gateway/internal/logger"
	"github.com/dujiao-next/alipay-gateway/internal/payment/alipay"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	Environment alipay.Environment

	AlipayClient *alipay.Client
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) (*Container, error) {
	client, err := NewAlipayClient(cfg)
	if err != nil {
		return nil, err
	}
	logger.Infow("provider_alipay_client_ready",
		"environment", client.Environment().String(),
		"gateway", client.GatewayURL(),
		"verify_response", cfg.Alipay.VerifyResponse,
	)
	return &Container{
		Config:       cfg,
		Environment:  client.Environment(),
		AlipayClient: client,
	}, nil
}

// NewAlipayClient 按配置构造支付宝客户端
func NewAlipayClient(cfg *config.Config) (*alipay.Client, error) {
	return alipay.NewClient(
		cfg.Alipay.ToClientConfig(),
		alipay.WithTransport(alipay.NewHTTPTransport(cfg.HTTPClient.Timeout())),
		alipay.WithLogger(logger.Named("alipay")),
		alipay.WithResponseVerify(cfg.Alipay.VerifyResponse),
	)
}
