package errno

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

const (
	SuccessCode          = http.StatusOK
	ValidationErrCode    = http.StatusBadRequest
	UnauthorizedErrCode  = http.StatusUnauthorized
	ForbiddenErrCode     = http.StatusForbidden
	NotFoundErrCode      = http.StatusNotFound
	ConflictErrCode      = http.StatusConflict
	TooManyRequestsCode  = http.StatusTooManyRequests
	ServiceErrCode       = http.StatusInternalServerError
	TransientErrCode     = http.StatusServiceUnavailable
	InvalidOperationCode = http.StatusUnprocessableEntity
)

// ErrNo 业务错误，ErrCode 与 HTTP 状态码一致
type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{code, msg}
}

func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

// Is 只比较错误码，WithMessage 派生出的错误仍能被 errors.Is 识别
func (e ErrNo) Is(target error) bool {
	t, ok := target.(ErrNo)
	if !ok {
		return false
	}
	return e.ErrCode == t.ErrCode
}

// Retryable 调用方可以整体重试的错误
func (e ErrNo) Retryable() bool {
	return e.ErrCode == TransientErrCode
}

var (
	Success             = NewErrNo(SuccessCode, "Success")
	ValidationErr       = NewErrNo(ValidationErrCode, "Invalid request parameters")
	InvalidOperationErr = NewErrNo(InvalidOperationCode, "Operation not allowed")
	UnauthorizedErr     = NewErrNo(UnauthorizedErrCode, "Unauthorized request")
	ForbiddenErr        = NewErrNo(ForbiddenErrCode, "You are not allowed to modify this resource")
	NotFoundErr         = NewErrNo(NotFoundErrCode, "Resource not found")
	ConflictErr         = NewErrNo(ConflictErrCode, "Resource already exists")
	TooManyRequestsErr  = NewErrNo(TooManyRequestsCode, "Too many requests, please retry later")
	ServiceErr          = NewErrNo(ServiceErrCode, "Service is unable to start successfully")
	TransientErr        = NewErrNo(TransientErrCode, "Store temporarily unavailable, please retry")
)

// ConvertErr 将任意错误转换为 ErrNo，未知错误不向调用方暴露内部信息
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	var e ErrNo
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return TransientErr
	}
	return ServiceErr.WithMessage("Internal server error")
}
