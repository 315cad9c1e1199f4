package alipay

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Environment 网关环境，构造客户端时解析一次。
type Environment int

const (
	EnvProduction Environment = iota
	EnvSandbox
)

const (
	productionGatewayURL = "https://openapi.alipay.com/gateway.do"
	sandboxGatewayURL    = "https://openapi-sandbox.dl.alipaydev.com/gateway.do"
)

// GatewayURL 返回环境对应的网关地址。
func (e Environment) GatewayURL() string {
	if e == EnvSandbox {
		return sandboxGatewayURL
	}
	return productionGatewayURL
}

func (e Environment) String() string {
	if e == EnvSandbox {
		return "sandbox"
	}
	return "production"
}

// Config 支付宝应用配置。
type Config struct {
	Sandbox         bool   `json:"sandbox"`
	AppID           string `json:"app_id"`
	ReturnURL       string `json:"return_url"`
	NotifyURL       string `json:"notify_url"`
	PrivateKey      string `json:"private_key"`
	AlipayPublicKey string `json:"alipay_public_key"`
	// GatewayURL 非空时覆盖 Sandbox 推导出的地址
	GatewayURL string `json:"gateway_url"`
}

// Environment 返回配置对应的网关环境。
func (c Config) Environment() Environment {
	if c.Sandbox {
		return EnvSandbox
	}
	return EnvProduction
}

// ParseConfig 从松散的键值配置解析。
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: empty config", ErrConfigInvalid)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal config failed", ErrConfigInvalid)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: unmarshal config failed", ErrConfigInvalid)
	}
	cfg.normalize()
	return &cfg, nil
}

// ValidateConfig 校验配置完整性。
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.AppID) == "" {
		return fmt.Errorf("%w: app_id is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.PrivateKey) == "" {
		return fmt.Errorf("%w: private_key is required", ErrConfigInvalid)
	}
	if err := validateOptionalURL(cfg.GatewayURL, "gateway_url"); err != nil {
		return err
	}
	if err := validateOptionalURL(cfg.NotifyURL, "notify_url"); err != nil {
		return err
	}
	return validateOptionalURL(cfg.ReturnURL, "return_url")
}

func validateOptionalURL(raw, field string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return fmt.Errorf("%w: %s is invalid", ErrConfigInvalid, field)
	}
	return nil
}

func (c *Config) normalize() {
	c.AppID = strings.TrimSpace(c.AppID)
	c.ReturnURL = strings.TrimSpace(c.ReturnURL)
	c.NotifyURL = strings.TrimSpace(c.NotifyURL)
	c.PrivateKey = strings.TrimSpace(c.PrivateKey)
	c.AlipayPublicKey = strings.TrimSpace(c.AlipayPublicKey)
	c.GatewayURL = strings.TrimSpace(c.GatewayURL)
}

func (c Config) gatewayURL() string {
	if c.GatewayURL != "" {
		return c.GatewayURL
	}
	return c.Environment().GatewayURL()
}
