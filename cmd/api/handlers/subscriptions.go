package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func (h *Handler) ToggleSubscription(ctx context.Context, c *app.RequestContext) {
	channelID, ok := pathID(c, "channelId")
	if !ok {
		return
	}
	res, err := h.svc.ToggleSubscription(ctx, CallerID(c), channelID)
	if err != nil {
		SendError(c, err)
		return
	}
	msg := "Unsubscribed successfully"
	if res.Active() {
		msg = "Subscribed successfully"
	}
	SendData(c, consts.StatusOK, msg, toggled(res.Active(), "isSubscribed"))
}

func (h *Handler) GetChannelSubscribers(ctx context.Context, c *app.RequestContext) {
	channelID, ok := pathID(c, "channelId")
	if !ok {
		return
	}
	q, ok := pageQuery(ctx, c)
	if !ok {
		return
	}
	list, err := h.svc.GetChannelSubscribers(ctx, channelID, q)
	SendResponse(c, err, list)
}

func (h *Handler) GetSubscribedChannels(ctx context.Context, c *app.RequestContext) {
	subscriberID, ok := pathID(c, "subscriberId")
	if !ok {
		return
	}
	q, ok := pageQuery(ctx, c)
	if !ok {
		return
	}
	list, err := h.svc.GetSubscribedChannels(ctx, subscriberID, q)
	SendResponse(c, err, list)
}
