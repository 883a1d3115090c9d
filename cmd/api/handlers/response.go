package handlers

import (
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

// Response 成功时的统一响应体
type Response struct {
	StatusCode int64       `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorResponse 失败时的统一响应体
type ErrorResponse struct {
	StatusCode int64    `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// SendResponse pack response，HTTP 状态码与 errno 的错误码一致
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	if err != nil {
		SendError(c, err)
		return
	}
	SendData(c, errno.SuccessCode, "Success", data)
}

func SendData(c *app.RequestContext, code int, message string, data interface{}) {
	c.JSON(code, Response{
		StatusCode: int64(code),
		Data:       data,
		Message:    message,
		Success:    code < 400,
	})
}

func SendError(c *app.RequestContext, err error) {
	Err := errno.ConvertErr(err)
	c.AbortWithStatusJSON(int(Err.ErrCode), ErrorResponse{
		StatusCode: Err.ErrCode,
		Message:    Err.ErrMsg,
		Success:    false,
		Errors:     []string{},
	})
}
