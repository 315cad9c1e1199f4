package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dujiao-next/alipay-gateway/internal/logger"
	"github.com/dujiao-next/alipay-gateway/internal/payment/alipay"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Alipay     AlipayConfig     `mapstructure:"alipay"`
	HTTPClient HTTPClientConfig `mapstructure:"http_client"`
	CORS       CORSConfig       `mapstructure:"cors"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// AlipayConfig 支付宝应用配置，密钥可内联或指定文件。
type AlipayConfig struct {
	Sandbox             bool   `mapstructure:"sandbox"`
	AppID               string `mapstructure:"app_id"`
	GatewayURL          string `mapstructure:"gateway_url"`
	ReturnURL           string `mapstructure:"return_url"`
	NotifyURL           string `mapstructure:"notify_url"`
	PrivateKey          string `mapstructure:"private_key"`
	PrivateKeyFile      string `mapstructure:"private_key_file"`
	AlipayPublicKey     string `mapstructure:"alipay_public_key"`
	AlipayPublicKeyFile string `mapstructure:"alipay_public_key_file"`
	VerifyResponse      bool   `mapstructure:"verify_response"`
}

// ToClientConfig 转换为支付宝客户端配置
func (c AlipayConfig) ToClientConfig() alipay.Config {
	return alipay.Config{
		Sandbox:         c.Sandbox,
		AppID:           c.AppID,
		ReturnURL:       c.ReturnURL,
		NotifyURL:       c.NotifyURL,
		PrivateKey:      c.PrivateKey,
		AlipayPublicKey: c.AlipayPublicKey,
		GatewayURL:      c.GatewayURL,
	}
}

// HTTPClientConfig 网关 HTTP 客户端配置
type HTTPClientConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// Timeout 返回请求超时时间
func (c HTTPClientConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// Load 加载配置
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")     // 从当前目录查找
	viper.AddConfigPath("../")   // 如果从 cmd/server 运行
	viper.AddConfigPath("./etc") // etc 文件夹

	cfg, err := load(viper.GetViper())
	if err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}
	return cfg
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// 环境变量支持，例如 alipay.app_id -> ALIPAY_APP_ID
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Alipay.loadKeyFiles(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "alipay-gateway.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("alipay.sandbox", false)
	v.SetDefault("alipay.app_id", "")
	v.SetDefault("alipay.gateway_url", "")
	v.SetDefault("alipay.return_url", "")
	v.SetDefault("alipay.notify_url", "")
	v.SetDefault("alipay.private_key", "")
	v.SetDefault("alipay.private_key_file", "")
	v.SetDefault("alipay.alipay_public_key", "")
	v.SetDefault("alipay.alipay_public_key_file", "")
	v.SetDefault("alipay.verify_response", false)
	v.SetDefault("http_client.timeout_seconds", 12)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Authorization",
		"X-Request-ID",
	})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 600)
}

// loadKeyFiles 内联密钥为空时从文件读取。
func (c *AlipayConfig) loadKeyFiles() error {
	if strings.TrimSpace(c.PrivateKey) == "" && strings.TrimSpace(c.PrivateKeyFile) != "" {
		content, err := os.ReadFile(strings.TrimSpace(c.PrivateKeyFile))
		if err != nil {
			return fmt.Errorf("read alipay private key file failed: %w", err)
		}
		c.PrivateKey = string(content)
	}
	if strings.TrimSpace(c.AlipayPublicKey) == "" && strings.TrimSpace(c.AlipayPublicKeyFile) != "" {
		content, err := os.ReadFile(strings.TrimSpace(c.AlipayPublicKeyFile))
		if err != nil {
			return fmt.Errorf("read alipay public key file failed: %w", err)
		}
		c.AlipayPublicKey = string(content)
	}
	return nil
}
