package alipay

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dujiao-next/alipay-gateway/internal/constants"

	"github.com/shopspring/decimal"
)

// PagePayInput 电脑网站支付参数。
type PagePayInput struct {
	CallbackURLs
	OutTradeNo     string          `json:"outTradeNo"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Subject        string          `json:"subject"`
	Body           string          `json:"body"`
	PassbackParams string          `json:"passbackParams"`
	TimeoutExpress string          `json:"timeoutExpress"`
	// QRPayMode 为 nil 时使用 4，显式传 0 保留为 0
	QRPayMode *int `json:"qrPayMode"`
	// QRCodeWidth 为 0 时使用 300
	QRCodeWidth int `json:"qrcodeWidth"`
}

// WapPayInput 手机网站支付参数。
type WapPayInput struct {
	CallbackURLs
	OutTradeNo     string          `json:"outTradeNo"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Subject        string          `json:"subject"`
	Body           string          `json:"body"`
	PassbackParams string          `json:"passbackParams"`
	TimeoutExpress string          `json:"timeoutExpress"`
	QuitURL        string          `json:"quitUrl"`
}

// PrecreateInput 当面付预下单参数。
type PrecreateInput struct {
	CallbackURLs
	OutTradeNo     string          `json:"outTradeNo"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Subject        string          `json:"subject"`
	Body           string          `json:"body"`
	TimeoutExpress string          `json:"timeoutExpress"`
}

// CloseInput 关闭交易参数，OutTradeNo 与 TradeNo 至少其一。
type CloseInput struct {
	CallbackURLs
	OutTradeNo string `json:"outTradeNo"`
	TradeNo    string `json:"tradeNo"`
	OperatorID string `json:"operatorId"`
}

// CancelInput 撤销交易参数。
type CancelInput struct {
	CallbackURLs
	OutTradeNo string `json:"outTradeNo"`
	TradeNo    string `json:"tradeNo"`
}

// PayQueryInput 交易查询参数。
type PayQueryInput struct {
	CallbackURLs
	OutTradeNo string `json:"outTradeNo"`
	TradeNo    string `json:"tradeNo"`
}

// RefundInput 退款参数。部分退款时 OutRequestNo 必填。
type RefundInput struct {
	CallbackURLs
	OutTradeNo   string          `json:"outTradeNo"`
	TradeNo      string          `json:"tradeNo"`
	RefundAmount decimal.Decimal `json:"refundAmount"`
	RefundReason string          `json:"refundReason"`
	OutRequestNo string          `json:"outRequestNo"`
}

// RefundQueryInput 退款查询参数。
type RefundQueryInput struct {
	CallbackURLs
	OutTradeNo   string `json:"outTradeNo"`
	TradeNo      string `json:"tradeNo"`
	OutRequestNo string `json:"outRequestNo"`
}

// CloseResult 关闭交易结果。
type CloseResult struct {
	TradeNo    string `json:"tradeNo"`
	OutTradeNo string `json:"outTradeNo"`
}

// CancelResult 撤销交易结果。
type CancelResult struct {
	TradeNo    string `json:"tradeNo"`
	OutTradeNo string `json:"outTradeNo"`
	RetryFlag  string `json:"retryFlag"`
	Action     string `json:"action"`
}

// PayQueryResult 交易查询结果。
type PayQueryResult struct {
	TradeNo        string          `json:"tradeNo"`
	OutTradeNo     string          `json:"outTradeNo"`
	TradeStatus    string          `json:"tradeStatus"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	ReceiptAmount  decimal.Decimal `json:"receiptAmount"`
	BuyerPayAmount decimal.Decimal `json:"buyerPayAmount"`
	BuyerLogonID   string          `json:"buyerLogonId"`
	BuyerUserID    string          `json:"buyerUserId"`
	SendPayDate    string          `json:"sendPayDate"`
}

// Paid 交易是否已支付成功（含交易完结）。
func (r *PayQueryResult) Paid() bool {
	switch r.TradeStatus {
	case constants.AlipayTradeStatusSuccess, constants.AlipayTradeStatusFinished:
		return true
	}
	return false
}

// Closed 交易是否已关闭。
func (r *PayQueryResult) Closed() bool {
	return r.TradeStatus == constants.AlipayTradeStatusClosed
}

// Pending 交易是否等待买家付款。
func (r *PayQueryResult) Pending() bool {
	return r.TradeStatus == constants.AlipayTradeStatusWaitBuyerPay
}

// RefundResult 退款结果。
type RefundResult struct {
	TradeNo      string          `json:"tradeNo"`
	OutTradeNo   string          `json:"outTradeNo"`
	BuyerLogonID string          `json:"buyerLogonId"`
	FundChange   string          `json:"fundChange"`
	RefundFee    decimal.Decimal `json:"refundFee"`
	GmtRefundPay string          `json:"gmtRefundPay"`
}

// RefundQueryResult 退款查询结果。
type RefundQueryResult struct {
	TradeNo      string          `json:"tradeNo"`
	OutTradeNo   string          `json:"outTradeNo"`
	OutRequestNo string          `json:"outRequestNo"`
	RefundReason string          `json:"refundReason"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	RefundAmount decimal.Decimal `json:"refundAmount"`
	RefundStatus string          `json:"refundStatus"`
}

// PrecreateResult 预下单结果。
type PrecreateResult struct {
	OutTradeNo string `json:"outTradeNo"`
	QRCode     string `json:"qrCode"`
}

// operation 描述一个需要访问网关的接口：方法名与响应字段提取函数。
type operation[T any] struct {
	method  string
	extract func(data map[string]interface{}) *T
}

var closeOperation = operation[CloseResult]{
	method: constants.AlipayMethodTradeClose,
	extract: func(data map[string]interface{}) *CloseResult {
		return &CloseResult{
			TradeNo:    readString(data, "trade_no"),
			OutTradeNo: readString(data, "out_trade_no"),
		}
	},
}

var cancelOperation = operation[CancelResult]{
	method: constants.AlipayMethodTradeCancel,
	extract: func(data map[string]interface{}) *CancelResult {
		return &CancelResult{
			TradeNo:    readString(data, "trade_no"),
			OutTradeNo: readString(data, "out_trade_no"),
			RetryFlag:  readString(data, "retry_flag"),
			Action:     readString(data, "action"),
		}
	},
}

var payQueryOperation = operation[PayQueryResult]{
	method: constants.AlipayMethodTradeQuery,
	extract: func(data map[string]interface{}) *PayQueryResult {
		return &PayQueryResult{
			TradeNo:        readString(data, "trade_no"),
			OutTradeNo:     readString(data, "out_trade_no"),
			TradeStatus:    readString(data, "trade_status"),
			TotalAmount:    readDecimal(data, "total_amount"),
			ReceiptAmount:  readDecimal(data, "receipt_amount"),
			BuyerPayAmount: readDecimal(data, "buyer_pay_amount"),
			BuyerLogonID:   readString(data, "buyer_logon_id"),
			BuyerUserID:    readString(data, "buyer_user_id"),
			SendPayDate:    readString(data, "send_pay_date"),
		}
	},
}

var refundOperation = operation[RefundResult]{
	method: constants.AlipayMethodTradeRefund,
	extract: func(data map[string]interface{}) *RefundResult {
		return &RefundResult{
			TradeNo:      readString(data, "trade_no"),
			OutTradeNo:   readString(data, "out_trade_no"),
			BuyerLogonID: readString(data, "buyer_logon_id"),
			FundChange:   readString(data, "fund_change"),
			RefundFee:    readDecimal(data, "refund_fee"),
			GmtRefundPay: readString(data, "gmt_refund_pay"),
		}
	},
}

var refundQueryOperation = operation[RefundQueryResult]{
	method: constants.AlipayMethodTradeRefundQuery,
	extract: func(data map[string]interface{}) *RefundQueryResult {
		return &RefundQueryResult{
			TradeNo:      readString(data, "trade_no"),
			OutTradeNo:   readString(data, "out_trade_no"),
			OutRequestNo: readString(data, "out_request_no"),
			RefundReason: readString(data, "refund_reason"),
			TotalAmount:  readDecimal(data, "total_amount"),
			RefundAmount: readDecimal(data, "refund_amount"),
			RefundStatus: readString(data, "refund_status"),
		}
	},
}

var precreateOperation = operation[PrecreateResult]{
	method: constants.AlipayMethodTradePrecreate,
	extract: func(data map[string]interface{}) *PrecreateResult {
		return &PrecreateResult{
			OutTradeNo: readString(data, "out_trade_no"),
			QRCode:     readString(data, "qr_code"),
		}
	},
}

func buildPagePayBiz(input PagePayInput) (BizContent, error) {
	if err := requirePayment(input.OutTradeNo, input.Subject, input.TotalAmount); err != nil {
		return nil, err
	}
	qrPayMode := constants.AlipayDefaultQRPayMode
	if input.QRPayMode != nil {
		qrPayMode = *input.QRPayMode
	}
	qrcodeWidth := input.QRCodeWidth
	if qrcodeWidth <= 0 {
		qrcodeWidth = constants.AlipayDefaultQRCodeWidth
	}
	biz := BizContent{}
	biz.set("out_trade_no", input.OutTradeNo)
	biz.set("product_code", constants.AlipayProductPagePay)
	biz.setAmount("total_amount", input.TotalAmount)
	biz.set("subject", input.Subject)
	biz.set("body", input.Body)
	biz.set("passback_params", input.PassbackParams)
	biz.set("timeout_express", input.TimeoutExpress)
	biz.set("qr_pay_mode", qrPayMode)
	biz.set("qrcode_width", qrcodeWidth)
	return biz, nil
}

func buildWapPayBiz(input WapPayInput) (BizContent, error) {
	if err := requirePayment(input.OutTradeNo, input.Subject, input.TotalAmount); err != nil {
		return nil, err
	}
	biz := BizContent{}
	biz.set("out_trade_no", input.OutTradeNo)
	biz.set("product_code", constants.AlipayProductWapPay)
	biz.setAmount("total_amount", input.TotalAmount)
	biz.set("subject", input.Subject)
	biz.set("body", input.Body)
	biz.set("passback_params", input.PassbackParams)
	biz.set("timeout_express", input.TimeoutExpress)
	biz.set("quit_url", input.QuitURL)
	return biz, nil
}

func buildPrecreateBiz(input PrecreateInput) (BizContent, error) {
	if err := requirePayment(input.OutTradeNo, input.Subject, input.TotalAmount); err != nil {
		return nil, err
	}
	biz := BizContent{}
	biz.set("out_trade_no", input.OutTradeNo)
	biz.set("product_code", constants.AlipayProductPrecreate)
	biz.setAmount("total_amount", input.TotalAmount)
	biz.set("subject", input.Subject)
	biz.set("body", input.Body)
	biz.set("timeout_express", input.TimeoutExpress)
	return biz, nil
}

func buildTradeRefBiz(outTradeNo, tradeNo string) (BizContent, error) {
	if strings.TrimSpace(outTradeNo) == "" && strings.TrimSpace(tradeNo) == "" {
		return nil, fmt.Errorf("%w: out_trade_no or trade_no is required", ErrParamInvalid)
	}
	biz := BizContent{}
	biz.set("out_trade_no", outTradeNo)
	biz.set("trade_no", tradeNo)
	return biz, nil
}

func buildRefundBiz(input RefundInput) (BizContent, error) {
	biz, err := buildTradeRefBiz(input.OutTradeNo, input.TradeNo)
	if err != nil {
		return nil, err
	}
	if err := checkAmount("refund_amount", input.RefundAmount); err != nil {
		return nil, err
	}
	biz.setAmount("refund_amount", input.RefundAmount)
	biz.set("refund_reason", input.RefundReason)
	biz.set("out_request_no", input.OutRequestNo)
	return biz, nil
}

func buildRefundQueryBiz(input RefundQueryInput) (BizContent, error) {
	biz, err := buildTradeRefBiz(input.OutTradeNo, input.TradeNo)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.OutRequestNo) == "" {
		return nil, fmt.Errorf("%w: out_request_no is required", ErrParamInvalid)
	}
	biz.set("out_request_no", input.OutRequestNo)
	return biz, nil
}

func requirePayment(outTradeNo, subject string, amount decimal.Decimal) error {
	if strings.TrimSpace(outTradeNo) == "" {
		return fmt.Errorf("%w: out_trade_no is required", ErrParamInvalid)
	}
	if strings.TrimSpace(subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrParamInvalid)
	}
	return checkAmount("total_amount", amount)
}

func readDecimal(raw map[string]interface{}, key string) decimal.Decimal {
	var text string
	switch v := raw[key].(type) {
	case json.Number:
		text = v.String()
	case string:
		text = v
	default:
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero
	}
	return amount
}
