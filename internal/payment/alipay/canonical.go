package alipay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	requestFormat   = "JSON"
	requestCharset  = "utf-8"
	requestVersion  = "1.0"
	timestampLayout = "2006-01-02 15:04:05"
	signField       = "sign"
)

// BizContent 业务参数，整体序列化为 biz_content。
type BizContent map[string]interface{}

// set 原样写入非空值，空白串与 nil 视为未设置。
func (b BizContent) set(key string, value interface{}) {
	switch v := value.(type) {
	case nil:
		return
	case string:
		if strings.TrimSpace(v) == "" {
			return
		}
		b[key] = v
	default:
		b[key] = v
	}
}

// setAmount 金额以普通十进制数字原样输出，精度由 checkAmount 保证。
func (b BizContent) setAmount(key string, amount decimal.Decimal) {
	if amount.IsZero() {
		return
	}
	b[key] = formatAmount(amount)
}

func formatAmount(amount decimal.Decimal) json.Number {
	return json.Number(amount.String())
}

// checkAmount 金额须为正数且不超过两位小数。
func checkAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s must be positive", ErrParamInvalid, field)
	}
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: %s must have at most 2 decimal places", ErrParamInvalid, field)
	}
	return nil
}

func encodeBizContent(biz BizContent) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(biz); err != nil {
		return "", fmt.Errorf("%w: marshal biz_content failed", ErrParamInvalid)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// CallbackURLs 单次调用覆盖的回跳与通知地址，为空时使用 Config 中的默认值。
type CallbackURLs struct {
	ReturnURL string `json:"returnUrl,omitempty"`
	NotifyURL string `json:"notifyUrl,omitempty"`
}

// CanonicalRequest 按键字节序排列的请求参数，不含 sign。
type CanonicalRequest struct {
	keys   []string
	values map[string]string
}

// Keys 返回升序键列表。
func (r *CanonicalRequest) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Get 读取字段值。
func (r *CanonicalRequest) Get(key string) (string, bool) {
	value, ok := r.values[key]
	return value, ok
}

// SignContent 构造待签名串：key=value 以 & 连接，不做 URL 编码。
func (r *CanonicalRequest) SignContent() string {
	parts := make([]string, 0, len(r.keys))
	for _, key := range r.keys {
		parts = append(parts, key+"="+r.values[key])
	}
	return strings.Join(parts, "&")
}

// Encode 生成 URL 查询串，sign 始终追加在最后。
func (r *CanonicalRequest) Encode(sign string) string {
	var b strings.Builder
	for i, key := range r.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(r.values[key]))
	}
	if sign != "" {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(signField + "=" + url.QueryEscape(sign))
	}
	return b.String()
}

func canonicalize(method string, biz BizContent, urls CallbackURLs, cfg Config, timestamp string) (*CanonicalRequest, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		return nil, fmt.Errorf("%w: method is required", ErrParamInvalid)
	}
	if biz == nil {
		biz = BizContent{}
	}
	bizContent, err := encodeBizContent(biz)
	if err != nil {
		return nil, err
	}

	params := map[string]string{
		"app_id":      cfg.AppID,
		"method":      method,
		"format":      requestFormat,
		"charset":     requestCharset,
		"sign_type":   signTypeRSA2,
		"timestamp":   timestamp,
		"version":     requestVersion,
		"biz_content": bizContent,
		"return_url":  firstNonEmpty(urls.ReturnURL, cfg.ReturnURL),
		"notify_url":  firstNonEmpty(urls.NotifyURL, cfg.NotifyURL),
	}

	req := &CanonicalRequest{
		keys:   make([]string, 0, len(params)),
		values: make(map[string]string, len(params)),
	}
	for key, value := range params {
		if value == "" || key == signField {
			continue
		}
		req.keys = append(req.keys, key)
		req.values[key] = value
	}
	sort.Strings(req.keys)
	return req, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if v := strings.TrimSpace(value); v != "" {
			return v
		}
	}
	return ""
}
