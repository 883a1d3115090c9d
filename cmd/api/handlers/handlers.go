package handlers

import (
	"context"

	"VidTube.com/cmd/interaction/service"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// CallerID 身份中间件写入的调用方ID，匿名请求返回 0
func CallerID(c *app.RequestContext) int64 {
	v, ok := c.Get(constants.IdentityKey)
	if !ok {
		return 0
	}
	if id := utils.Transfer(v); id > 0 {
		return id
	}
	return 0
}

type PageParam struct {
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
	Cursor   string `query:"cursor"`
	Paginate string `query:"paginate"`
	SortBy   string `query:"sortBy"`
	SortType string `query:"sortType"`
}

func (p PageParam) query() service.PageQuery {
	return service.PageQuery{
		Page:      p.Page,
		Limit:     p.Limit,
		Cursor:    p.Cursor,
		UseCursor: p.Paginate == "cursor" || p.Cursor != "",
		SortBy:    p.SortBy,
		SortType:  p.SortType,
	}
}

// bind 绑定失败统一返回 ValidationErr
func bind(ctx context.Context, c *app.RequestContext, req interface{}) bool {
	if err := c.BindAndValidate(req); err != nil {
		hlog.CtxInfof(ctx, "bind request failed: %v", err)
		SendError(c, errno.ValidationErr.WithMessage(err.Error()))
		return false
	}
	return true
}

func pageQuery(ctx context.Context, c *app.RequestContext) (service.PageQuery, bool) {
	var p PageParam
	if !bind(ctx, c, &p) {
		return service.PageQuery{}, false
	}
	return p.query(), true
}

func pathID(c *app.RequestContext, name string) (int64, bool) {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		SendError(c, errno.ValidationErr.WithMessage("invalid "+name))
	}
	return id, ok
}

func toggled(active bool, key string) map[string]interface{} {
	return map[string]interface{}{key: active}
}
