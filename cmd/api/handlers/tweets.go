package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type TweetParam struct {
	Content string `json:"content"`
}

func (h *Handler) CreateTweet(ctx context.Context, c *app.RequestContext) {
	var req TweetParam
	if !bind(ctx, c, &req) {
		return
	}
	tweet, err := h.svc.CreateTweet(ctx, CallerID(c), req.Content)
	if err != nil {
		SendError(c, err)
		return
	}
	SendData(c, consts.StatusCreated, "Tweet created successfully", tweet)
}

func (h *Handler) GetUserTweets(ctx context.Context, c *app.RequestContext) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	q, ok := pageQuery(ctx, c)
	if !ok {
		return
	}
	page, err := h.svc.GetUserTweets(ctx, userID, q)
	SendResponse(c, err, page)
}

func (h *Handler) UpdateTweet(ctx context.Context, c *app.RequestContext) {
	tweetID, ok := pathID(c, "tweetId")
	if !ok {
		return
	}
	var req TweetParam
	if !bind(ctx, c, &req) {
		return
	}
	tweet, err := h.svc.UpdateTweet(ctx, CallerID(c), tweetID, req.Content)
	SendResponse(c, err, tweet)
}

func (h *Handler) DeleteTweet(ctx context.Context, c *app.RequestContext) {
	tweetID, ok := pathID(c, "tweetId")
	if !ok {
		return
	}
	SendResponse(c, h.svc.DeleteTweet(ctx, CallerID(c), tweetID), nil)
}
