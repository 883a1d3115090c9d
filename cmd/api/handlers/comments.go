package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type CommentParam struct {
	Content string `json:"content"`
}

func (h *Handler) GetVideoComments(ctx context.Context, c *app.RequestContext) {
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}
	q, ok := pageQuery(ctx, c)
	if !ok {
		return
	}
	page, err := h.svc.GetVideoComments(ctx, videoID, q)
	SendResponse(c, err, page)
}

func (h *Handler) AddComment(ctx context.Context, c *app.RequestContext) {
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}
	var req CommentParam
	if !bind(ctx, c, &req) {
		return
	}
	comment, err := h.svc.AddComment(ctx, CallerID(c), videoID, req.Content)
	if err != nil {
		SendError(c, err)
		return
	}
	SendData(c, consts.StatusCreated, "Comment added successfully", comment)
}

func (h *Handler) UpdateComment(ctx context.Context, c *app.RequestContext) {
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	var req CommentParam
	if !bind(ctx, c, &req) {
		return
	}
	comment, err := h.svc.UpdateComment(ctx, CallerID(c), commentID, req.Content)
	SendResponse(c, err, comment)
}

func (h *Handler) DeleteComment(ctx context.Context, c *app.RequestContext) {
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	SendResponse(c, h.svc.DeleteComment(ctx, CallerID(c), commentID), nil)
}
