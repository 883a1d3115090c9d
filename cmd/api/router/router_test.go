package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"

	"VidTube.com/cmd/api/handlers"
	"VidTube.com/cmd/interaction/dal/memdb"
	"VidTube.com/cmd/interaction/service"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/require"
)

// headerIdentity 用 X-User-Id 头模拟已登录的调用方
type headerIdentity struct{}

func (headerIdentity) identify(required bool) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		id, ok := utils.ParseID(string(c.GetHeader("X-User-Id")))
		if !ok {
			if required {
				handlers.SendError(c, errno.UnauthorizedErr)
				return
			}
			c.Next(ctx)
			return
		}
		c.Set(constants.IdentityKey, id)
		c.Next(ctx)
	}
}

func (i headerIdentity) Required() app.HandlerFunc { return i.identify(true) }
func (i headerIdentity) Optional() app.HandlerFunc { return i.identify(false) }

func (headerIdentity) Login() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) { handlers.SendError(c, errno.ServiceErr) }
}

func (i headerIdentity) Refresh() app.HandlerFunc { return i.Login() }

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []string        `json:"errors"`
}

type fixture struct {
	h     *server.Hertz
	store *memdb.Store
}

func newFixture(t *testing.T, guard app.HandlerFunc) *fixture {
	t.Helper()
	store := memdb.New()
	var n int64 = 1000
	svc := service.New(store, service.DefaultOptions(),
		service.WithIDGenerator(func() int64 { return atomic.AddInt64(&n, 1) }))
	h := server.Default()
	Register(h, handlers.New(svc), headerIdentity{}, guard)
	return &fixture{h: h, store: store}
}

func (f *fixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	for id, name := range map[int64]string{1: "owner", 2: "fan"} {
		require.NoError(t, f.store.CreateUser(ctx, &model.User{ID: id, Username: name, Email: name + "@example.com"}))
	}
	require.NoError(t, f.store.CreateVideo(ctx, &model.Video{ID: 10, OwnerID: 1, Title: "intro", IsPublished: true}))
}

func (f *fixture) do(t *testing.T, method, url string, caller int64, body string) (int, envelope) {
	t.Helper()
	headers := []ut.Header{{Key: "Content-Type", Value: "application/json"}}
	if caller > 0 {
		headers = append(headers, ut.Header{Key: "X-User-Id", Value: fmt.Sprint(caller)})
	}
	var b *ut.Body
	if body != "" {
		b = &ut.Body{Body: bytes.NewBufferString(body), Len: len(body)}
	}
	resp := ut.PerformRequest(f.h.Engine, method, url, b, headers...).Result()
	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body(), &env), string(resp.Body()))
	require.Equal(t, resp.StatusCode(), env.StatusCode)
	return resp.StatusCode(), env
}

func TestToggleLikeOverHTTP(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t)

	for _, want := range []bool{true, false, true} {
		code, env := f.do(t, "POST", "/api/v1/likes/toggle/v/10", 2, "")
		require.Equal(t, 200, code)
		require.True(t, env.Success)
		var data map[string]bool
		require.NoError(t, json.Unmarshal(env.Data, &data))
		require.Equal(t, want, data["isLiked"])
	}

	code, env := f.do(t, "POST", "/api/v1/likes/toggle/v/10", 0, "")
	require.Equal(t, 401, code)
	require.False(t, env.Success)
	require.NotNil(t, env.Errors)

	code, _ = f.do(t, "POST", "/api/v1/likes/toggle/v/abc", 2, "")
	require.Equal(t, 400, code)

	code, _ = f.do(t, "POST", "/api/v1/likes/toggle/c/999", 2, "")
	require.Equal(t, 404, code)
}

func TestSelfSubscriptionOverHTTP(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t)

	code, env := f.do(t, "POST", "/api/v1/subscriptions/c/1", 1, "")
	require.Equal(t, 422, code)
	require.Equal(t, "You cannot subscribe to your own channel", env.Message)

	code, env = f.do(t, "POST", "/api/v1/subscriptions/c/1", 2, "")
	require.Equal(t, 200, code)
	require.Equal(t, "Subscribed successfully", env.Message)

	code, env = f.do(t, "GET", "/api/v1/subscriptions/c/1/subscribers", 0, "")
	require.Equal(t, 200, code)
	var list struct {
		Subscribers      []json.RawMessage `json:"subscribers"`
		TotalSubscribers int64             `json:"totalSubscribers"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Subscribers, 1)
	require.EqualValues(t, 1, list.TotalSubscribers)
}

func TestRegisterAndCommentOverHTTP(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t)

	code, env := f.do(t, "POST", "/api/v1/users/register", 0,
		`{"username":"Carol","email":"carol@example.com","fullName":"Carol C","password":"secret"}`)
	require.Equal(t, 201, code)
	var user map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &user))
	require.Equal(t, "carol", user["username"])
	require.NotContains(t, user, "password")

	for i := 0; i < 3; i++ {
		code, _ = f.do(t, "POST", "/api/v1/comments/10", 2, fmt.Sprintf(`{"content":"comment %d"}`, i))
		require.Equal(t, 201, code)
	}
	code, _ = f.do(t, "POST", "/api/v1/comments/10", 2, `{"content":"  "}`)
	require.Equal(t, 400, code)

	code, env = f.do(t, "GET", "/api/v1/comments/10?paginate=cursor&limit=2", 0, "")
	require.Equal(t, 200, code)
	var page struct {
		Items      []map[string]interface{} `json:"items"`
		NextCursor string                   `json:"nextCursor"`
		HasMore    bool                     `json:"hasMore"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Items, 2)
	require.True(t, page.HasMore)
	require.NotEmpty(t, page.NextCursor)

	code, env = f.do(t, "GET", "/api/v1/comments/10?limit=2&cursor="+page.NextCursor, 0, "")
	require.Equal(t, 200, code)
	page.Items, page.NextCursor, page.HasMore = nil, "", false
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Items, 1)
	require.False(t, page.HasMore)

	code, _ = f.do(t, "GET", "/api/v1/comments/10?page=2&cursor="+page.NextCursor+"x", 0, "")
	require.Equal(t, 400, code)
}

func TestVideoLifecycleOverHTTP(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t)

	code, _ := f.do(t, "PATCH", "/api/v1/videos/10/toggle/publish", 2, "")
	require.Equal(t, 403, code)
	code, _ = f.do(t, "PATCH", "/api/v1/videos/10/toggle/publish", 1, "")
	require.Equal(t, 200, code)

	code, _ = f.do(t, "GET", "/api/v1/videos/10", 0, "")
	require.Equal(t, 404, code)
	code, _ = f.do(t, "GET", "/api/v1/videos/10", 1, "")
	require.Equal(t, 200, code)

	code, env := f.do(t, "GET", "/api/v1/dashboard/videos", 1, "")
	require.Equal(t, 200, code)
	var page struct {
		Items []map[string]interface{} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Items, 1)

	code, env = f.do(t, "PATCH", "/api/v1/videos/10", 1, `{"title":"renamed"}`)
	require.Equal(t, 200, code)
	var video map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &video))
	require.Equal(t, "renamed", video["title"])

	code, _ = f.do(t, "DELETE", "/api/v1/videos/10", 1, "")
	require.Equal(t, 200, code)
	code, _ = f.do(t, "GET", "/api/v1/videos/10", 1, "")
	require.Equal(t, 404, code)
}

func TestPlaylistsOverHTTP(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t)

	code, _ := f.do(t, "POST", "/api/v1/playlists", 0, `{"name":"mix","videos":[10]}`)
	require.Equal(t, 401, code)
	code, _ = f.do(t, "POST", "/api/v1/playlists", 1, `{"name":"mix","videos":[]}`)
	require.Equal(t, 400, code)

	code, env := f.do(t, "POST", "/api/v1/playlists", 1, `{"name":"mix","description":"d","videos":[10]}`)
	require.Equal(t, 201, code)
	var created struct {
		ID       int64 `json:"id"`
		IsPublic bool  `json:"isPublic"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.False(t, created.IsPublic)
	url := fmt.Sprintf("/api/v1/playlists/%d", created.ID)

	code, _ = f.do(t, "GET", url, 2, "")
	require.Equal(t, 404, code)
	code, env = f.do(t, "GET", "/api/v1/playlists/user/1", 2, "")
	require.Equal(t, 200, code)
	var listed struct {
		Items []map[string]interface{} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	require.Empty(t, listed.Items)

	code, _ = f.do(t, "PATCH", url, 2, `{"isPublic":true}`)
	require.Equal(t, 403, code)
	code, _ = f.do(t, "PATCH", url, 1, `{"isPublic":true}`)
	require.Equal(t, 200, code)

	code, env = f.do(t, "GET", url, 2, "")
	require.Equal(t, 200, code)
	var detail struct {
		Name        string `json:"name"`
		TotalVideos int64  `json:"totalVideos"`
		Owner       struct {
			Username string `json:"username"`
		} `json:"owner"`
		Videos struct {
			Items []map[string]interface{} `json:"items"`
		} `json:"videos"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	require.Equal(t, "mix", detail.Name)
	require.Equal(t, "owner", detail.Owner.Username)
	require.EqualValues(t, 1, detail.TotalVideos)
	require.Len(t, detail.Videos.Items, 1)

	add := fmt.Sprintf("/api/v1/playlists/add/10/%d", created.ID)
	code, _ = f.do(t, "PATCH", add, 1, "")
	require.Equal(t, 409, code)
	code, _ = f.do(t, "PATCH", fmt.Sprintf("/api/v1/playlists/remove/10/%d", created.ID), 1, "")
	require.Equal(t, 200, code)
	code, _ = f.do(t, "PATCH", add, 1, "")
	require.Equal(t, 200, code)

	code, _ = f.do(t, "DELETE", url, 2, "")
	require.Equal(t, 403, code)
	code, _ = f.do(t, "DELETE", url, 1, "")
	require.Equal(t, 200, code)
	code, _ = f.do(t, "GET", url, 1, "")
	require.Equal(t, 404, code)
}

func TestToggleGuardRejects(t *testing.T) {
	blockAll := func(ctx context.Context, c *app.RequestContext) {
		Blocked(ctx, c)
	}
	f := newFixture(t, blockAll)
	f.seed(t)

	code, env := f.do(t, "POST", "/api/v1/likes/toggle/v/10", 2, "")
	require.Equal(t, 429, code)
	require.False(t, env.Success)

	code, _ = f.do(t, "GET", "/api/v1/comments/10", 0, "")
	require.Equal(t, 200, code)
}
