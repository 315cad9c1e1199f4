package trade

import (
	"github.com/dujiao-next/alipay-gateway/internal/http/handlers/shared"
	"github.com/dujiao-next/alipay-gateway/internal/http/response"
	"github.com/dujiao-next/alipay-gateway/internal/payment/alipay"

	"github.com/gin-gonic/gin"
)

func bindInput(c *gin.Context, input interface{}) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		shared.RespondErrorWithMsg(c, response.CodeBadRequest, "invalid request body", err)
		return false
	}
	return true
}

// PagePay 生成电脑网站支付地址
func (h *Handler) PagePay(c *gin.Context) {
	var input alipay.PagePayInput
	if !bindInput(c, &input) {
		return
	}
	payURL, err := h.Client.PagePay(input)
	if err != nil {
		respondTradeError(c, err)
		return
	}
	response.Success(c, gin.H{"pay_url": payURL})
}

// WapPay 生成手机网站支付地址
func (h *Handler) WapPay(c *gin.Context) {
	var input alipay.WapPayInput
	if !bindInput(c, &input) {
		return
	}
	payURL, err := h.Client.WapPay(input)
	if err != nil {
		respondTradeError(c, err)
		return
	}
	response.Success(c, gin.H{"pay_url": payURL})
}

// Precreate 当面付预下单
func (h *Handler) Precreate(c *gin.Context) {
	var input alipay.PrecreateInput
	if !bindInput(c, &input) {
		return
	}
	result, err := h.Client.Precreate(c.Request.Context(), input)
	if err != nil {
		respondTradeError(c, err)
		return
	}
	response.Success(c, result)
}

// Close 关闭交易
func (h *Handler) Close(c *gin.Context) {
	var input alipay.CloseInput
	if !bindInput(c, &input) {
		return
	}
	result, err := h.Client.Close(c.Request.Context(), input)
	if err != nil {
		respondTradeError(c, err)
		return
	}
	response.Success(c, result)
}

// Cancel 撤销交易
func (h *Handler) Cancel(c *gin.Context) {
	var input alipay.CancelInput
	if !bindInput(c, &input) {
		return
	}
	result, err := h.Client.Cancel(c.Request.Context(), input)
	if err != nil {
		respondTradeError(c, err)
		return
	}
	response.Success(c, result)
}

// PayQuery 查询交易
func (h *Handler) PayQuery(c *gin.Context) {
	var input alipay.PayQueryInput
	if !bindInput(c, &input) {
		return
	}
	result, err := h.Client.PayQuery(c.Request.Context(), input)
	if err != nil {
		respondTradeError(c, err)
		return
	}
	response.Success(c, result)
}

// Refund 退款
func (h *Handler) Refund(c *gin.Context) {
	var input alipay.RefundInput
	if !bindInput(c, &input) {
		return
	}
	result, err := h.Client.Refund(c.Request.Context(), input)
	if err != nil {
		respondTradeError(c, err)
		return
	}
	response.Success(c, result)
}

// RefundQuery 查询退款
func (h *Handler) RefundQuery(c *gin.Context) {
	var input alipay.RefundQueryInput
	if !bindInput(c, &input) {
		return
	}
	result, err := h.Client.RefundQuery(c.Request.Context(), input)
	if err != nil {
		respondTradeError(c, err)
		return
	}
	response.Success(c, result)
}
