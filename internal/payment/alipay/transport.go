package alipay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 12 * time.Second

// Request 发往网关的 HTTP 请求描述。
type Request struct {
	Method string
	URL    string
}

// Transport 负责发送请求并返回原始响应体，错误由客户端原样透传。
type Transport interface {
	Send(ctx context.Context, req Request) ([]byte, error)
}

// TransportFunc 函数适配器。
type TransportFunc func(ctx context.Context, req Request) ([]byte, error)

func (f TransportFunc) Send(ctx context.Context, req Request) ([]byte, error) {
	return f(ctx, req)
}

// HTTPTransport 基于 net/http 的默认实现。
type HTTPTransport struct {
	Client  *http.Client
	Timeout time.Duration
}

// NewHTTPTransport 创建默认传输层，timeout<=0 时使用默认超时。
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPTransport{Client: &http.Client{}, Timeout: timeout}
}

func (t *HTTPTransport) Send(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := t.withDefaultTimeout(ctx)
	defer cancel()

	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	httpReq.Header.Set("Accept", "application/json")

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: http request failed: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response failed", ErrRequestFailed)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}
	return body, nil
}

func (t *HTTPTransport) withDefaultTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// Clock 返回网关要求格式的当前时间。
type Clock func() string

var gatewayZone = time.FixedZone("CST", 8*60*60)

// SystemClock 以东八区格式化当前时间。
func SystemClock() string {
	return time.Now().In(gatewayZone).Format(timestampLayout)
}
