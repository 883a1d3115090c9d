package router

import (
	"context"
	"strconv"
	"time"

	"VidTube.com/cmd/api/handlers"
	"VidTube.com/cmd/interaction/service"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/jwt"
	"github.com/pkg/errors"
)

const authErrKey = "auth_err"

// Identity 路由依赖的身份校验能力
type Identity interface {
	// Required 未携带或携带无效 token 时返回 401
	Required() app.HandlerFunc
	// Optional 未携带 token 时按匿名调用方处理
	Optional() app.HandlerFunc
	Login() app.HandlerFunc
	Refresh() app.HandlerFunc
}

type JWTIdentity struct {
	mw *jwt.HertzJWTMiddleware
}

var _ Identity = (*JWTIdentity)(nil)

// NewJWTIdentity token 中的用户ID以字符串保存，避免雪花ID经过 float64 丢失精度
func NewJWTIdentity(svc *service.Service, secret string, timeout, maxRefresh time.Duration) (*JWTIdentity, error) {
	mw, err := jwt.New(&jwt.HertzJWTMiddleware{
		Realm:         "vidtube",
		Key:           []byte(secret),
		Timeout:       timeout,
		MaxRefresh:    maxRefresh,
		IdentityKey:   constants.IdentityKey,
		TokenLookup:   "header: Authorization, query: token",
		TokenHeadName: "Bearer",
		TimeFunc:      time.Now,
		Authenticator: func(ctx context.Context, c *app.RequestContext) (interface{}, error) {
			var req handlers.LoginParam
			if err := c.BindAndValidate(&req); err != nil {
				return nil, errno.ValidationErr.WithMessage(err.Error())
			}
			return svc.Authenticate(ctx, req.Login(), req.Password)
		},
		PayloadFunc: func(data interface{}) jwt.MapClaims {
			if u, ok := data.(*model.User); ok {
				return jwt.MapClaims{constants.IdentityKey: strconv.FormatInt(u.ID, 10)}
			}
			return jwt.MapClaims{}
		},
		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			claims := jwt.ExtractClaims(ctx, c)
			return utils.Transfer(claims[constants.IdentityKey])
		},
		Authorizator: func(data interface{}, ctx context.Context, c *app.RequestContext) bool {
			id, ok := data.(int64)
			return ok && id > 0
		},
		HTTPStatusMessageFunc: func(e error, ctx context.Context, c *app.RequestContext) string {
			c.Set(authErrKey, e)
			return e.Error()
		},
		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			handlers.SendError(c, authError(c, message))
		},
		LoginResponse: func(ctx context.Context, c *app.RequestContext, code int, token string, expire time.Time) {
			handlers.SendData(c, code, "User logged in successfully", map[string]interface{}{
				"accessToken": token,
				"expire":      expire.Format(time.RFC3339),
			})
		},
		RefreshResponse: func(ctx context.Context, c *app.RequestContext, code int, token string, expire time.Time) {
			handlers.SendData(c, code, "Access token refreshed", map[string]interface{}{
				"accessToken": token,
				"expire":      expire.Format(time.RFC3339),
			})
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "init jwt middleware")
	}
	return &JWTIdentity{mw: mw}, nil
}

// authError 业务错误（如用户不存在）保持原状，其余 token 错误统一为 401
func authError(c *app.RequestContext, message string) error {
	if v, ok := c.Get(authErrKey); ok {
		if err, ok := v.(error); ok {
			var e errno.ErrNo
			if errors.As(err, &e) {
				return e
			}
		}
	}
	hlog.Debugf("jwt rejected request: %s", message)
	return errno.UnauthorizedErr.WithMessage(message)
}

func (j *JWTIdentity) Required() app.HandlerFunc {
	return j.mw.MiddlewareFunc()
}

func (j *JWTIdentity) Optional() app.HandlerFunc {
	required := j.mw.MiddlewareFunc()
	return func(ctx context.Context, c *app.RequestContext) {
		if len(c.GetHeader("Authorization")) == 0 && c.Query("token") == "" {
			c.Next(ctx)
			return
		}
		required(ctx, c)
	}
}

func (j *JWTIdentity) Login() app.HandlerFunc {
	return j.mw.LoginHandler
}

func (j *JWTIdentity) Refresh() app.HandlerFunc {
	return j.mw.RefreshHandler
}

// Blocked sentinel 拒绝请求时的响应
func Blocked(ctx context.Context, c *app.RequestContext) {
	handlers.SendError(c, errno.TooManyRequestsErr)
}
