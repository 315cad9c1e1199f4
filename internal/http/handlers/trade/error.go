package trade

import (
	"errors"

	"github.com/dujiao-next/alipay-gateway/internal/http/handlers/shared"
	"github.com/dujiao-next/alipay-gateway/internal/http/response"
	"github.com/dujiao-next/alipay-gateway/internal/payment/alipay"

	"github.com/gin-gonic/gin"
)

// mapTradeError 将支付宝客户端错误映射为统一响应码。
func mapTradeError(err error) *response.AppError {
	if bizErr, ok := alipay.AsBusinessError(err); ok {
		return response.WrapError(response.CodeBusinessFailed, "gateway business failed", err).WithData(gin.H{
			"code":     bizErr.Code,
			"sub_code": bizErr.SubCode,
			"sub_msg":  bizErr.SubMsg,
		})
	}
	switch {
	case errors.Is(err, alipay.ErrParamInvalid), errors.Is(err, alipay.ErrConfigInvalid):
		return response.WrapError(response.CodeBadRequest, err.Error(), err)
	case errors.Is(err, alipay.ErrResponseInvalid), errors.Is(err, alipay.ErrSignatureInvalid):
		return response.WrapError(response.CodeUpstreamInvalid, "gateway response invalid", err)
	case errors.Is(err, alipay.ErrRequestFailed):
		return response.WrapError(response.CodeUpstreamFailed, "gateway request failed", err)
	}
	return response.AsAppError(err)
}

func respondTradeError(c *gin.Context, err error) {
	shared.RespondAppError(c, mapTradeError(err))
}
