package trade

import (
	"context"

	"github.com/dujiao-next/alipay-gateway/internal/payment/alipay"
)

// TradeClient 交易接口能力，由 *alipay.Client 实现。
type TradeClient interface {
	PagePay(input alipay.PagePayInput) (string, error)
	WapPay(input alipay.WapPayInput) (string, error)
	Precreate(ctx context.Context, input alipay.PrecreateInput) (*alipay.PrecreateResult, error)
	Close(ctx context.Context, input alipay.CloseInput) (*alipay.CloseResult, error)
	Cancel(ctx context.Context, input alipay.CancelInput) (*alipay.CancelResult, error)
	PayQuery(ctx context.Context, input alipay.PayQueryInput) (*alipay.PayQueryResult, error)
	Refund(ctx context.Context, input alipay.RefundInput) (*alipay.RefundResult, error)
	RefundQuery(ctx context.Context, input alipay.RefundQueryInput) (*alipay.RefundQueryResult, error)
}

// Handler 交易接口处理器
type Handler struct {
	Client TradeClient
}

// New 创建交易处理器
func New(client TradeClient) *Handler {
	return &Handler{Client: client}
}
