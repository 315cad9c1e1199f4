package alipay

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"strings"
)

const signTypeRSA2 = "RSA2"

// Sign 使用 RSA2(SHA256WithRSA) 对待签名串签名，返回 base64 结果。
func Sign(content, privateKeyPEM string) (string, error) {
	if content == "" {
		return "", fmt.Errorf("%w: empty sign content", ErrSignFailed)
	}
	privateKey, err := parsePrivateKey(privateKeyPEM)
	if err != nil {
		return "", err
	}
	digest := sha256.Sum256([]byte(content))
	signBytes, err := rsa.SignPKCS1v15(rand.Reader, privateKey, crypto.SHA256, digest[:])
	if err != nil {
		return "", fmt.Errorf("%w: rsa sign failed", ErrSignFailed)
	}
	return base64.StdEncoding.EncodeToString(signBytes), nil
}

// Verify 校验签名。签名不匹配返回 false；仅在公钥不可用时返回错误。
func Verify(content, signature, publicKeyPEM string) (bool, error) {
	publicKey, err := parsePublicKey(publicKeyPEM)
	if err != nil {
		return false, err
	}
	signBytes, err := base64.StdEncoding.DecodeString(strings.TrimSpace(signature))
	if err != nil || len(signBytes) == 0 {
		return false, nil
	}
	digest := sha256.Sum256([]byte(content))
	if err := rsa.VerifyPKCS1v15(publicKey, crypto.SHA256, digest[:], signBytes); err != nil {
		return false, nil
	}
	return true, nil
}

// normalizePEM 兼容转义换行与不带头尾的裸 base64 密钥。
func normalizePEM(raw, blockType string) string {
	normalized := strings.TrimSpace(strings.ReplaceAll(raw, "\\n", "\n"))
	if normalized == "" || strings.Contains(normalized, "-----BEGIN") {
		return normalized
	}
	body := strings.Join(strings.Fields(normalized), "")
	var b strings.Builder
	b.WriteString("-----BEGIN " + blockType + "-----\n")
	for len(body) > 64 {
		b.WriteString(body[:64])
		b.WriteByte('\n')
		body = body[64:]
	}
	b.WriteString(body)
	b.WriteString("\n-----END " + blockType + "-----\n")
	return b.String()
}

func parsePrivateKey(raw string) (*rsa.PrivateKey, error) {
	normalized := normalizePEM(raw, "PRIVATE KEY")
	if normalized == "" {
		return nil, fmt.Errorf("%w: private key is empty", ErrSignFailed)
	}
	block, _ := pem.Decode([]byte(normalized))
	if block == nil {
		return nil, fmt.Errorf("%w: private key pem decode failed", ErrSignFailed)
	}
	parsedPKCS8, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err == nil {
		if privateKey, ok := parsedPKCS8.(*rsa.PrivateKey); ok {
			return privateKey, nil
		}
		return nil, fmt.Errorf("%w: private key type is not rsa", ErrSignFailed)
	}
	privateKey, parseErr := x509.ParsePKCS1PrivateKey(block.Bytes)
	if parseErr == nil {
		return privateKey, nil
	}
	return nil, fmt.Errorf("%w: parse private key failed", ErrSignFailed)
}

func parsePublicKey(raw string) (*rsa.PublicKey, error) {
	normalized := normalizePEM(raw, "PUBLIC KEY")
	if normalized == "" {
		return nil, fmt.Errorf("%w: public key is empty", ErrSignFailed)
	}
	block, _ := pem.Decode([]byte(normalized))
	if block == nil {
		return nil, fmt.Errorf("%w: public key pem decode failed", ErrSignFailed)
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err == nil {
		if publicKey, ok := parsed.(*rsa.PublicKey); ok {
			return publicKey, nil
		}
		return nil, fmt.Errorf("%w: public key type is not rsa", ErrSignFailed)
	}
	publicKey, parseErr := x509.ParsePKCS1PublicKey(block.Bytes)
	if parseErr == nil {
		return publicKey, nil
	}
	return nil, fmt.Errorf("%w: parse public key failed", ErrSignFailed)
}
