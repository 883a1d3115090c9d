package handlers

import (
	"context"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/interaction/service"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type CreatePlaylistParam struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	IsPublic    bool    `json:"isPublic"`
	VideoIDs    []int64 `json:"videos"`
}

// UpdatePlaylistParam 未出现的字段保持不变
type UpdatePlaylistParam struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"isPublic"`
}

func (h *Handler) CreatePlaylist(ctx context.Context, c *app.RequestContext) {
	var req CreatePlaylistParam
	if !bind(ctx, c, &req) {
		return
	}
	playlist, err := h.svc.CreatePlaylist(ctx, CallerID(c), service.PlaylistInput(req))
	if err != nil {
		SendError(c, err)
		return
	}
	SendData(c, consts.StatusCreated, "Playlist created successfully", playlist)
}

func (h *Handler) GetUserPlaylists(ctx context.Context, c *app.RequestContext) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	q, ok := pageQuery(ctx, c)
	if !ok {
		return
	}
	page, err := h.svc.GetUserPlaylists(ctx, CallerID(c), userID, q)
	SendResponse(c, err, page)
}

func (h *Handler) GetPlaylistByID(ctx context.Context, c *app.RequestContext) {
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}
	q, ok := pageQuery(ctx, c)
	if !ok {
		return
	}
	playlist, err := h.svc.GetPlaylistByID(ctx, CallerID(c), playlistID, q)
	SendResponse(c, err, playlist)
}

func (h *Handler) UpdatePlaylist(ctx context.Context, c *app.RequestContext) {
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}
	var req UpdatePlaylistParam
	if !bind(ctx, c, &req) {
		return
	}
	playlist, err := h.svc.UpdatePlaylist(ctx, CallerID(c), playlistID, repo.PlaylistPatch(req))
	SendResponse(c, err, playlist)
}

func (h *Handler) DeletePlaylist(ctx context.Context, c *app.RequestContext) {
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}
	SendResponse(c, h.svc.DeletePlaylist(ctx, CallerID(c), playlistID), nil)
}

func playlistVideoIDs(c *app.RequestContext) (playlistID, videoID int64, ok bool) {
	if videoID, ok = pathID(c, "videoId"); !ok {
		return 0, 0, false
	}
	if playlistID, ok = pathID(c, "playlistId"); !ok {
		return 0, 0, false
	}
	return playlistID, videoID, true
}

func (h *Handler) AddVideoToPlaylist(ctx context.Context, c *app.RequestContext) {
	playlistID, videoID, ok := playlistVideoIDs(c)
	if !ok {
		return
	}
	SendResponse(c, h.svc.AddVideoToPlaylist(ctx, CallerID(c), playlistID, videoID), nil)
}

func (h *Handler) RemoveVideoFromPlaylist(ctx context.Context, c *app.RequestContext) {
	playlistID, videoID, ok := playlistVideoIDs(c)
	if !ok {
		return
	}
	SendResponse(c, h.svc.RemoveVideoFromPlaylist(ctx, CallerID(c), playlistID, videoID), nil)
}
