package handlers

import (
	"context"

	"VidTube.com/cmd/interaction/service"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type toggleFunc func(ctx context.Context, actorID, targetID int64) (service.ToggleResult, error)

func (h *Handler) toggleLike(param string, toggle toggleFunc) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		id, ok := pathID(c, param)
		if !ok {
			return
		}
		res, err := toggle(ctx, CallerID(c), id)
		if err != nil {
			SendError(c, err)
			return
		}
		msg := "Unliked successfully"
		if res.Active() {
			msg = "Liked successfully"
		}
		SendData(c, consts.StatusOK, msg, toggled(res.Active(), "isLiked"))
	}
}

func (h *Handler) ToggleVideoLike() app.HandlerFunc {
	return h.toggleLike("videoId", h.svc.ToggleVideoLike)
}

func (h *Handler) ToggleCommentLike() app.HandlerFunc {
	return h.toggleLike("commentId", h.svc.ToggleCommentLike)
}

func (h *Handler) ToggleTweetLike() app.HandlerFunc {
	return h.toggleLike("tweetId", h.svc.ToggleTweetLike)
}

func (h *Handler) GetLikedVideos(ctx context.Context, c *app.RequestContext) {
	q, ok := pageQuery(ctx, c)
	if !ok {
		return
	}
	page, err := h.svc.GetLikedVideos(ctx, CallerID(c), q)
	SendResponse(c, err, page)
}
