package response

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// AppError 带业务状态码的错误，Data 会随响应返回给调用方
type AppError struct {
	Code    int
	Message string
	Data    gin.H
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithData 附加响应数据
func (e *AppError) WithData(data gin.H) *AppError {
	e.Data = data
	return e
}

// AsAppError 从错误链中取出 AppError，未命中时按内部错误处理
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return WrapError(CodeInternal, "internal error", err)
}

// Fail 输出 AppError 对应的错误响应
func Fail(c *gin.Context, appErr *AppError) {
	if appErr.Data == nil {
		Error(c, appErr.Code, appErr.Message)
		return
	}
	ErrorWithData(c, appErr.Code, appErr.Message, appErr.Data)
}
