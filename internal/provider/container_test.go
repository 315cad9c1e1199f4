package provider

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"testing"

	"github.com/dujiao-next/alipay-gateway/internal/config"
	"github.com/dujiao-next/alipay-gateway/internal/payment/alipay"
)

func testPrivateKey(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key failed: %v", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshal key failed: %v", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
}

func TestNewContainerBuildsSandboxClient(t *testing.T) {
	cfg := &config.Config{}
	cfg.Alipay.AppID = "2021000000000000"
	cfg.Alipay.Sandbox = true
	cfg.Alipay.PrivateKey = testPrivateKey(t)
	cfg.HTTPClient.TimeoutSeconds = 5

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container failed: %v", err)
	}
	if container.Environment != alipay.EnvSandbox {
		t.Fatalf("environment want sandbox got %s", container.Environment)
	}
	if container.AlipayClient.GatewayURL() != alipay.EnvSandbox.GatewayURL() {
		t.Fatalf("gateway mismatch: %s", container.AlipayClient.GatewayURL())
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Alipay.AppID = "2021000000000000"

	if _, err := NewContainer(cfg); !errors.Is(err, alipay.ErrConfigInvalid) {
		t.Fatalf("want ErrConfigInvalid got %v", err)
	}
}

func TestNewContainerRequiresPublicKeyForVerify(t *testing.T) {
	cfg := &config.Config{}
	cfg.Alipay.AppID = "2021000000000000"
	cfg.Alipay.PrivateKey = testPrivateKey(t)
	cfg.Alipay.VerifyResponse = true

	if _, err := NewContainer(cfg); !errors.Is(err, alipay.ErrConfigInvalid) {
		t.Fatalf("want ErrConfigInvalid got %v", err)
	}
}
