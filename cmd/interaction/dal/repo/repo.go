package repo

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/pagination"
	"github.com/pkg/errors"
)

// 存储层统一返回的哨兵错误，由 service 层翻译成 errno
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id int64) (*model.User, error)
	FindUserByLogin(ctx context.Context, login string) (*model.User, error)
	GetUsers(ctx context.Context, ids []int64) (map[int64]*model.User, error)
}

// VideoQuery OwnerID 为 0 表示不限作者；ViewerID 用于放行作者本人未发布的视频
type VideoQuery struct {
	OwnerID  int64
	ViewerID int64
	Page     pagination.Request
}

// VideoPatch 为 nil 的字段保持不变
type VideoPatch struct {
	Title       *string
	Description *string
	Thumbnail   *string
}

type VideoRepo interface {
	CreateVideo(ctx context.Context, video *model.Video) error
	GetVideo(ctx context.Context, id int64) (*model.Video, error)
	GetVideos(ctx context.Context, ids []int64) (map[int64]*model.Video, error)
	UpdateVideo(ctx context.Context, id int64, patch VideoPatch) (*model.Video, error)
	TogglePublished(ctx context.Context, id int64) (*model.Video, error)
	DeleteVideo(ctx context.Context, id int64, cascade bool) error
	ListVideos(ctx context.Context, q VideoQuery) ([]*model.Video, error)
	CountVideos(ctx context.Context, q VideoQuery) (int64, error)
	// ChannelVideoTotals 作者全部视频的播放量之和与视频数
	ChannelVideoTotals(ctx context.Context, ownerID int64) (views int64, videos int64, err error)
}

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetComment(ctx context.Context, id int64) (*model.Comment, error)
	UpdateComment(ctx context.Context, id int64, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, id int64, cascade bool) error
	ListComments(ctx context.Context, videoID int64, page pagination.Request) ([]*model.Comment, error)
	CountComments(ctx context.Context, videoID int64) (int64, error)
}

type TweetRepo interface {
	CreateTweet(ctx context.Context, tweet *model.Tweet) error
	GetTweet(ctx context.Context, id int64) (*model.Tweet, error)
	UpdateTweet(ctx context.Context, id int64, content string) (*model.Tweet, error)
	DeleteTweet(ctx context.Context, id int64, cascade bool) error
	ListTweets(ctx context.Context, ownerID int64, page pagination.Request) ([]*model.Tweet, error)
	CountTweets(ctx context.Context, ownerID int64) (int64, error)
}

type LikeRepo interface {
	// InsertLike 违反唯一约束时返回 ErrDuplicate
	InsertLike(ctx context.Context, like *model.Like) error
	// DeleteLike 原子地删除记录，返回是否确实删除了一条
	DeleteLike(ctx context.Context, likedBy int64, target model.LikeTarget) (bool, error)
	CountLikes(ctx context.Context, kind model.TargetKind, targetIDs []int64) (map[int64]int64, error)
	// CountLikesReceived 目标作者为 ownerID 的某类点赞总数
	CountLikesReceived(ctx context.Context, ownerID int64, kind model.TargetKind) (int64, error)
	// ListLikedVideos 只返回目标视频仍存在且对 likedBy 可见的点赞
	ListLikedVideos(ctx context.Context, likedBy int64, page pagination.Request) ([]*model.Like, error)
	CountLikedVideos(ctx context.Context, likedBy int64) (int64, error)
}

type SubscriptionRepo interface {
	InsertSubscription(ctx context.Context, sub *model.Subscription) error
	DeleteSubscription(ctx context.Context, subscriberID, channelID int64) (bool, error)
	ListSubscribers(ctx context.Context, channelID int64, page pagination.Request) ([]*model.Subscription, error)
	ListSubscriptions(ctx context.Context, subscriberID int64, page pagination.Request) ([]*model.Subscription, error)
	CountSubscribers(ctx context.Context, channelIDs []int64) (map[int64]int64, error)
	CountSubscriptions(ctx context.Context, subscriberID int64) (int64, error)
	// SubscribedTo 返回 subscriberID 订阅了 channelIDs 中的哪些频道
	SubscribedTo(ctx context.Context, subscriberID int64, channelIDs []int64) (map[int64]bool, error)
}

type HistoryRepo interface {
	// RecordView 在同一次写入中增加视频播放量并记录观看历史；视频不存在时返回 ErrNotFound
	RecordView(ctx context.Context, entry *model.WatchHistory) error
	// ListWatchHistory 只返回视频仍存在且对该用户可见的记录
	ListWatchHistory(ctx context.Context, userID int64, page pagination.Request) ([]*model.WatchHistory, error)
	CountWatchHistory(ctx context.Context, userID int64) (int64, error)
}

// PlaylistQuery ViewerID 不是作者本人时只包含公开的播放列表
type PlaylistQuery struct {
	OwnerID  int64
	ViewerID int64
	Page     pagination.Request
}

// PlaylistPatch 为 nil 的字段保持不变
type PlaylistPatch struct {
	Name        *string
	Description *string
	IsPublic    *bool
}

type PlaylistRepo interface {
	// CreatePlaylist 播放列表与初始视频一并写入
	CreatePlaylist(ctx context.Context, playlist *model.Playlist, entries []*model.PlaylistVideo) error
	GetPlaylist(ctx context.Context, id int64) (*model.Playlist, error)
	UpdatePlaylist(ctx context.Context, id int64, patch PlaylistPatch) (*model.Playlist, error)
	// DeletePlaylist 同时删除列表中的全部视频条目
	DeletePlaylist(ctx context.Context, id int64) error
	// AddPlaylistVideo 视频已在列表中时返回 ErrDuplicate
	AddPlaylistVideo(ctx context.Context, entry *model.PlaylistVideo) error
	// RemovePlaylistVideo 返回是否确实删除了一条
	RemovePlaylistVideo(ctx context.Context, playlistID, videoID int64) (bool, error)
	ListPlaylists(ctx context.Context, q PlaylistQuery) ([]*model.Playlist, error)
	CountPlaylists(ctx context.Context, q PlaylistQuery) (int64, error)
	// ListPlaylistVideos 只返回视频仍存在且对 viewerID 可见的条目
	ListPlaylistVideos(ctx context.Context, playlistID, viewerID int64, page pagination.Request) ([]*model.PlaylistVideo, error)
	// CountPlaylistVideos 按播放列表统计对 viewerID 可见的视频数
	CountPlaylistVideos(ctx context.Context, playlistIDs []int64, viewerID int64) (map[int64]int64, error)
}

// VideoSearch 全文检索条件，结果按相关度降序、ID 降序排列
type VideoSearch struct {
	Text     string
	OwnerID  int64
	ViewerID int64
	Skip     int
	Limit    int
}

type SearchHit struct {
	VideoID int64
	Score   float64
}

type VideoSearcher interface {
	SearchVideos(ctx context.Context, q VideoSearch) ([]SearchHit, int64, error)
}

type Store interface {
	UserRepo
	VideoRepo
	CommentRepo
	TweetRepo
	LikeRepo
	SubscriptionRepo
	HistoryRepo
	PlaylistRepo
	VideoSearcher
}
