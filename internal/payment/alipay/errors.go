package alipay

import (
	"errors"
	"strings"
)

var (
	ErrConfigInvalid    = errors.New("alipay config invalid")
	ErrParamInvalid     = errors.New("alipay param invalid")
	ErrSignFailed       = errors.New("alipay sign failed")
	ErrRequestFailed    = errors.New("alipay request failed")
	ErrResponseInvalid  = errors.New("alipay response invalid")
	ErrBusinessFailed   = errors.New("alipay business failed")
	ErrSignatureInvalid = errors.New("alipay signature invalid")
)

// BusinessError 网关已正常应答但业务处理失败，SubMsg 为网关原文。
type BusinessError struct {
	Method  string
	Code    string
	Msg     string
	SubCode string
	SubMsg  string
}

func (e *BusinessError) Error() string {
	detail := e.SubMsg
	if strings.TrimSpace(detail) == "" {
		detail = e.Msg
	}
	if strings.TrimSpace(detail) == "" && e.Code != "" {
		detail = "code=" + e.Code
	}
	if detail == "" {
		return ErrBusinessFailed.Error()
	}
	return ErrBusinessFailed.Error() + ": " + detail
}

func (e *BusinessError) Unwrap() error {
	return ErrBusinessFailed
}

// AsBusinessError 提取业务错误。
func AsBusinessError(err error) (*BusinessError, bool) {
	var bizErr *BusinessError
	if errors.As(err, &bizErr) {
		return bizErr, true
	}
	return nil, false
}
