package router

import (
	"context"

	"VidTube.com/cmd/api/handlers"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// Register 注册 /api/v1 下的全部路由；guard 为 nil 时切换接口不限流
func Register(h *server.Hertz, hd *handlers.Handler, id Identity, guard app.HandlerFunc) {
	h.GET("/ping", func(ctx context.Context, c *app.RequestContext) {
		handlers.SendData(c, consts.StatusOK, "pong", nil)
	})

	auth := id.Required()
	optional := id.Optional()
	toggle := []app.HandlerFunc{auth}
	if guard != nil {
		toggle = append(toggle, guard)
	}
	with := func(mw []app.HandlerFunc, hf app.HandlerFunc) []app.HandlerFunc {
		return append(append([]app.HandlerFunc{}, mw...), hf)
	}

	v1 := h.Group("/api/v1")

	users := v1.Group("/users")
	users.POST("/register", hd.Register)
	users.POST("/login", id.Login())
	users.POST("/refresh-token", id.Refresh())
	users.GET("/history", auth, hd.GetWatchHistory)

	likes := v1.Group("/likes")
	likes.POST("/toggle/v/:videoId", with(toggle, hd.ToggleVideoLike())...)
	likes.POST("/toggle/c/:commentId", with(toggle, hd.ToggleCommentLike())...)
	likes.POST("/toggle/t/:tweetId", with(toggle, hd.ToggleTweetLike())...)
	likes.GET("/videos", auth, hd.GetLikedVideos)

	subs := v1.Group("/subscriptions")
	subs.POST("/c/:channelId", with(toggle, hd.ToggleSubscription)...)
	subs.GET("/c/:channelId/subscribers", hd.GetChannelSubscribers)
	subs.GET("/u/:subscriberId", hd.GetSubscribedChannels)

	comments := v1.Group("/comments")
	comments.GET("/:videoId", hd.GetVideoComments)
	comments.POST("/:videoId", auth, hd.AddComment)
	comments.PATCH("/c/:commentId", auth, hd.UpdateComment)
	comments.DELETE("/c/:commentId", auth, hd.DeleteComment)

	videos := v1.Group("/videos")
	videos.GET("", optional, hd.GetVideoFeed)
	videos.POST("", auth, hd.PublishVideo)
	videos.GET("/:videoId", optional, hd.GetVideoByID)
	videos.PATCH("/:videoId", auth, hd.UpdateVideo)
	videos.DELETE("/:videoId", auth, hd.DeleteVideo)
	videos.PATCH("/:videoId/toggle/publish", auth, hd.TogglePublishStatus)

	tweets := v1.Group("/tweets")
	tweets.POST("", auth, hd.CreateTweet)
	tweets.GET("/user/:userId", hd.GetUserTweets)
	tweets.PATCH("/:tweetId", auth, hd.UpdateTweet)
	tweets.DELETE("/:tweetId", auth, hd.DeleteTweet)

	playlists := v1.Group("/playlists")
	playlists.POST("", auth, hd.CreatePlaylist)
	playlists.GET("/user/:userId", optional, hd.GetUserPlaylists)
	playlists.GET("/:playlistId", optional, hd.GetPlaylistByID)
	playlists.PATCH("/:playlistId", auth, hd.UpdatePlaylist)
	playlists.DELETE("/:playlistId", auth, hd.DeletePlaylist)
	playlists.PATCH("/add/:videoId/:playlistId", auth, hd.AddVideoToPlaylist)
	playlists.PATCH("/remove/:videoId/:playlistId", auth, hd.RemoveVideoFromPlaylist)

	dashboard := v1.Group("/dashboard", auth)
	dashboard.GET("/stats", hd.GetChannelStats)
	dashboard.GET("/videos", hd.GetChannelVideos)

	v1.GET("/channels/:channelId", optional, hd.GetChannelProfile)
}
