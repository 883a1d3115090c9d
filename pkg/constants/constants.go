package constants

import "time"

const (
	UserTableName          = "users"
	VideoTableName         = "videos"
	CommentTableName       = "comments"
	TweetTableName         = "tweets"
	LikeTableName          = "likes"
	SubscriptionTableName  = "subscriptions"
	WatchHistoryTableName  = "watch_histories"
	PlaylistTableName      = "playlists"
	PlaylistVideoTableName = "playlist_videos"

	// IdentityKey JWT 中保存调用方用户ID的字段
	IdentityKey = "user_id"

	DefaultLimit    = 10
	MaxLimit        = 100
	DefaultSortBy   = "createdAt"
	DefaultSortType = "desc"

	StoreTimeout      = 3 * time.Second
	ToggleMaxAttempts = 5
	ToggleLockTTL     = 2 * time.Second

	ApiServiceName         = "VidTubeApi"
	ConsumerServiceName    = "VidTubeConsumer"
	ToggleFlowResource     = "interaction_toggle"
	DefaultToggleQPS       = 200
	DefaultVideoIndex      = "videos"
	DefaultSearchBackend   = "mysql"
	DefaultOrphanPolicy    = "cascade"
	DefaultServerHostPorts = "0.0.0.0:8888"
)
