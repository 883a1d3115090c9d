package handlers

import (
	"context"

	"VidTube.com/cmd/interaction/service"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type RegisterParam struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	Password   string `json:"password"`
	Avatar     string `json:"avatar"`
	CoverImage string `json:"coverImage"`
}

// LoginParam username 与 email 任填其一
type LoginParam struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p LoginParam) Login() string {
	if p.Username != "" {
		return p.Username
	}
	return p.Email
}

func (h *Handler) Register(ctx context.Context, c *app.RequestContext) {
	var req RegisterParam
	if !bind(ctx, c, &req) {
		return
	}
	user, err := h.svc.RegisterUser(ctx, service.RegisterInput(req))
	if err != nil {
		SendError(c, err)
		return
	}
	SendData(c, consts.StatusCreated, "User registered successfully", user)
}
