package handlers

import (
	"context"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/interaction/service"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type FeedParam struct {
	PageParam
	Query  string `query:"query"`
	UserID int64  `query:"userId"`
}

type PublishVideoParam struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	VideoFile   string  `json:"videoFile"`
	Thumbnail   string  `json:"thumbnail"`
	Duration    float64 `json:"duration"`
}

// UpdateVideoParam 未出现的字段保持不变
type UpdateVideoParam struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Thumbnail   *string `json:"thumbnail"`
}

func (h *Handler) GetVideoFeed(ctx context.Context, c *app.RequestContext) {
	var p FeedParam
	if !bind(ctx, c, &p) {
		return
	}
	page, err := h.svc.GetVideoFeed(ctx, CallerID(c), service.FeedQuery{
		Query:     p.Query,
		OwnerID:   p.UserID,
		PageQuery: p.PageParam.query(),
	})
	SendResponse(c, err, page)
}

func (h *Handler) PublishVideo(ctx context.Context, c *app.RequestContext) {
	var req PublishVideoParam
	if !bind(ctx, c, &req) {
		return
	}
	video, err := h.svc.PublishVideo(ctx, CallerID(c), service.PublishVideoInput(req))
	if err != nil {
		SendError(c, err)
		return
	}
	SendData(c, consts.StatusCreated, "Video published successfully", video)
}

func (h *Handler) GetVideoByID(ctx context.Context, c *app.RequestContext) {
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}
	video, err := h.svc.GetVideoByID(ctx, CallerID(c), videoID)
	SendResponse(c, err, video)
}

func (h *Handler) UpdateVideo(ctx context.Context, c *app.RequestContext) {
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}
	var req UpdateVideoParam
	if !bind(ctx, c, &req) {
		return
	}
	video, err := h.svc.UpdateVideo(ctx, CallerID(c), videoID, repo.VideoPatch(req))
	SendResponse(c, err, video)
}

func (h *Handler) DeleteVideo(ctx context.Context, c *app.RequestContext) {
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}
	SendResponse(c, h.svc.DeleteVideo(ctx, CallerID(c), videoID), nil)
}

func (h *Handler) TogglePublishStatus(ctx context.Context, c *app.RequestContext) {
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}
	video, err := h.svc.TogglePublishStatus(ctx, CallerID(c), videoID)
	SendResponse(c, err, video)
}
