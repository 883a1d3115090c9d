package handlers

import (
	"context"

	"VidTube.com/cmd/interaction/service"
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

func (h *Handler) GetChannelStats(ctx context.Context, c *app.RequestContext) {
	stats, err := h.svc.GetChannelStats(ctx, CallerID(c))
	SendResponse(c, err, stats)
}

// GetChannelVideos 调用方自己的视频，包含未发布的
func (h *Handler) GetChannelVideos(ctx context.Context, c *app.RequestContext) {
	caller := CallerID(c)
	if caller <= 0 {
		SendError(c, errno.UnauthorizedErr)
		return
	}
	q, ok := pageQuery(ctx, c)
	if !ok {
		return
	}
	page, err := h.svc.GetVideoFeed(ctx, caller, service.FeedQuery{OwnerID: caller, PageQuery: q})
	SendResponse(c, err, page)
}

func (h *Handler) GetChannelProfile(ctx context.Context, c *app.RequestContext) {
	channelID, ok := pathID(c, "channelId")
	if !ok {
		return
	}
	profile, err := h.svc.GetChannelProfile(ctx, CallerID(c), channelID)
	SendResponse(c, err, profile)
}

func (h *Handler) GetWatchHistory(ctx context.Context, c *app.RequestContext) {
	q, ok := pageQuery(ctx, c)
	if !ok {
		return
	}
	page, err := h.svc.GetWatchHistory(ctx, CallerID(c), q)
	SendResponse(c, err, page)
}
