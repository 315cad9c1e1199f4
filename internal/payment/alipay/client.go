package alipay

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dujiao-next/alipay-gateway/internal/constants"

	"go.uber.org/zap"
)

// Client 支付宝交易接口客户端。构造后配置只读，可被多个 goroutine 并发使用。
type Client struct {
	cfg            Config
	gateway        string
	transport      Transport
	clock          Clock
	log            *zap.Logger
	verifyResponse bool
}

// Option 客户端可选项。
type Option func(*Client)

// WithTransport 替换默认 HTTP 传输层。
func WithTransport(transport Transport) Option {
	return func(c *Client) {
		if transport != nil {
			c.transport = transport
		}
	}
}

// WithClock 替换时间戳来源。
func WithClock(clock Clock) Option {
	return func(c *Client) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger 设置日志实例。
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithResponseVerify 开启同步响应验签，需要配置支付宝公钥。
func WithResponseVerify(enabled bool) Option {
	return func(c *Client) {
		c.verifyResponse = enabled
	}
}

// NewClient 校验配置并创建客户端。
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	cfg.normalize()
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	c := &Client{
		cfg:       cfg,
		transport: NewHTTPTransport(defaultTimeout),
		clock:     SystemClock,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.verifyResponse && cfg.AlipayPublicKey == "" {
		return nil, fmt.Errorf("%w: alipay_public_key is required for response verify", ErrConfigInvalid)
	}
	c.gateway = cfg.gatewayURL()
	return c, nil
}

// Environment 返回客户端所用网关环境。
func (c *Client) Environment() Environment {
	return c.cfg.Environment()
}

// GatewayURL 返回网关地址。
func (c *Client) GatewayURL() string {
	return c.gateway
}

// PagePay 生成电脑网站支付跳转地址，不发起网络请求。
func (c *Client) PagePay(input PagePayInput) (string, error) {
	biz, err := buildPagePayBiz(input)
	if err != nil {
		return "", err
	}
	return c.buildPayURL(constants.AlipayMethodTradePagePay, biz, input.CallbackURLs)
}

// WapPay 生成手机网站支付跳转地址，不发起网络请求。
func (c *Client) WapPay(input WapPayInput) (string, error) {
	biz, err := buildWapPayBiz(input)
	if err != nil {
		return "", err
	}
	return c.buildPayURL(constants.AlipayMethodTradeWapPay, biz, input.CallbackURLs)
}

// Precreate 当面付预下单，返回二维码内容。
func (c *Client) Precreate(ctx context.Context, input PrecreateInput) (*PrecreateResult, error) {
	biz, err := buildPrecreateBiz(input)
	if err != nil {
		return nil, err
	}
	result, err := execute(ctx, c, precreateOperation, biz, input.CallbackURLs)
	if err != nil {
		return nil, err
	}
	if result.OutTradeNo == "" {
		result.OutTradeNo = input.OutTradeNo
	}
	if result.QRCode == "" {
		return nil, fmt.Errorf("%w: qr_code is empty", ErrResponseInvalid)
	}
	return result, nil
}

// Close 关闭未付款交易。
func (c *Client) Close(ctx context.Context, input CloseInput) (*CloseResult, error) {
	biz, err := buildTradeRefBiz(input.OutTradeNo, input.TradeNo)
	if err != nil {
		return nil, err
	}
	biz.set("operator_id", input.OperatorID)
	return execute(ctx, c, closeOperation, biz, input.CallbackURLs)
}

// Cancel 撤销交易。
func (c *Client) Cancel(ctx context.Context, input CancelInput) (*CancelResult, error) {
	biz, err := buildTradeRefBiz(input.OutTradeNo, input.TradeNo)
	if err != nil {
		return nil, err
	}
	return execute(ctx, c, cancelOperation, biz, input.CallbackURLs)
}

// PayQuery 查询交易状态。
func (c *Client) PayQuery(ctx context.Context, input PayQueryInput) (*PayQueryResult, error) {
	biz, err := buildTradeRefBiz(input.OutTradeNo, input.TradeNo)
	if err != nil {
		return nil, err
	}
	return execute(ctx, c, payQueryOperation, biz, input.CallbackURLs)
}

// Refund 发起退款。
func (c *Client) Refund(ctx context.Context, input RefundInput) (*RefundResult, error) {
	biz, err := buildRefundBiz(input)
	if err != nil {
		return nil, err
	}
	return execute(ctx, c, refundOperation, biz, input.CallbackURLs)
}

// RefundQuery 查询退款。
func (c *Client) RefundQuery(ctx context.Context, input RefundQueryInput) (*RefundQueryResult, error) {
	biz, err := buildRefundQueryBiz(input)
	if err != nil {
		return nil, err
	}
	return execute(ctx, c, refundQueryOperation, biz, input.CallbackURLs)
}

// Verify 使用配置的支付宝公钥校验签名。
func (c *Client) Verify(content, signature string) (bool, error) {
	return Verify(content, signature, c.cfg.AlipayPublicKey)
}

func (c *Client) signedQuery(method string, biz BizContent, urls CallbackURLs) (string, error) {
	req, err := canonicalize(method, biz, urls, c.cfg, c.clock())
	if err != nil {
		return "", err
	}
	sign, err := Sign(req.SignContent(), c.cfg.PrivateKey)
	if err != nil {
		return "", err
	}
	return req.Encode(sign), nil
}

func (c *Client) buildPayURL(method string, biz BizContent, urls CallbackURLs) (string, error) {
	query, err := c.signedQuery(method, biz, urls)
	if err != nil {
		return "", err
	}
	return c.buildURL(query), nil
}

func (c *Client) buildURL(query string) string {
	if strings.Contains(c.gateway, "?") {
		return c.gateway + "&" + query
	}
	return c.gateway + "?" + query
}

func execute[T any](ctx context.Context, c *Client, op operation[T], biz BizContent, urls CallbackURLs) (*T, error) {
	query, err := c.signedQuery(op.method, biz, urls)
	if err != nil {
		return nil, err
	}
	key := envelopeKey(op.method)
	log := c.log.With(zap.String("method", op.method))
	log.Debug("alipay_request", zap.String("envelope", key))

	body, err := c.transport.Send(ctx, Request{Method: http.MethodGet, URL: c.buildURL(query)})
	if err != nil {
		log.Warn("alipay_transport_failed", zap.Error(err))
		return nil, err
	}
	if c.verifyResponse {
		if err := verifyEnvelope(body, key, c.cfg.AlipayPublicKey); err != nil {
			log.Warn("alipay_response_verify_failed", zap.Error(err))
			return nil, err
		}
	}
	data, err := interpret(body, key)
	if err != nil {
		if bizErr, ok := AsBusinessError(err); ok {
			bizErr.Method = op.method
			log.Warn("alipay_business_failed",
				zap.String("code", bizErr.Code),
				zap.String("sub_code", bizErr.SubCode),
				zap.String("sub_msg", bizErr.SubMsg),
			)
		}
		return nil, err
	}
	return op.extract(data), nil
}
