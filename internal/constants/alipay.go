package constants

// 支付宝开放平台接口方法
const (
	AlipayMethodTradePagePay     = "alipay.trade.page.pay"
	AlipayMethodTradeWapPay      = "alipay.trade.wap.pay"
	AlipayMethodTradePrecreate   = "alipay.trade.precreate"
	AlipayMethodTradeClose       = "alipay.trade.close"
	AlipayMethodTradeCancel      = "alipay.trade.cancel"
	AlipayMethodTradeQuery       = "alipay.trade.query"
	AlipayMethodTradeRefund      = "alipay.trade.refund"
	AlipayMethodTradeRefundQuery = "alipay.trade.fastpay.refund.query"
)

// 支付宝销售产品码
const (
	AlipayProductPagePay   = "FAST_INSTANT_TRADE_PAY"
	AlipayProductWapPay    = "QUICK_WAP_WAY"
	AlipayProductPrecreate = "FACE_TO_FACE_PAYMENT"
)

// 电脑网站支付扫码方式默认值
const (
	AlipayDefaultQRPayMode   = 4
	AlipayDefaultQRCodeWidth = 300
)

// 支付宝交易状态
const (
	AlipayTradeStatusWaitBuyerPay = "WAIT_BUYER_PAY"
	AlipayTradeStatusClosed       = "TRADE_CLOSED"
	AlipayTradeStatusSuccess      = "TRADE_SUCCESS"
	AlipayTradeStatusFinished     = "TRADE_FINISHED"
)
