package service

import (
	"time"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/pagination"
)

type UserLite = model.UserLite

// ChannelLite 视频作者信息，附带订阅数和调用方是否已订阅
type ChannelLite struct {
	ID               int64  `json:"id"`
	Username         string `json:"username"`
	Avatar           string `json:"avatar"`
	SubscribersCount int64  `json:"subscribersCount"`
	IsSubscribed     bool   `json:"isSubscribed"`
}

type CommentView struct {
	ID         int64     `json:"id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Owner      UserLite  `json:"owner"`
	LikesCount int64     `json:"likesCount"`
}

type TweetView struct {
	ID         int64     `json:"id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Owner      UserLite  `json:"owner"`
	LikesCount int64     `json:"likesCount"`
}

type ChannelStats struct {
	TotalViews       int64 `json:"totalViews"`
	TotalVideos      int64 `json:"totalVideos"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
}

type SubscriberView struct {
	ID           int64     `json:"id"`
	SubscribedAt time.Time `json:"subscribedAt"`
	Subscriber   UserLite  `json:"subscriber"`
}

type SubscriberList struct {
	Subscribers      []SubscriberView `json:"subscribers"`
	TotalSubscribers int64            `json:"totalSubscribers"`
	pagination.Info
}

type SubscribedChannel struct {
	ID               int64  `json:"id"`
	Username         string `json:"username"`
	Avatar           string `json:"avatar"`
	TotalSubscribers int64  `json:"totalSubscribers"`
}

type SubscribedChannelList struct {
	Channels                []SubscribedChannel `json:"channels"`
	TotalSubscribedChannels int64               `json:"totalSubscribedChannels"`
	pagination.Info
}

type VideoDetails struct {
	ID        int64    `json:"id"`
	VideoFile string   `json:"videoFile"`
	Thumbnail string   `json:"thumbnail"`
	Title     string   `json:"title"`
	Duration  float64  `json:"duration"`
	Views     int64    `json:"views"`
	Owner     UserLite `json:"owner"`
}

type LikedVideoView struct {
	ID           int64        `json:"id"`
	LikedBy      int64        `json:"likedBy"`
	CreatedAt    time.Time    `json:"createdAt"`
	VideoDetails VideoDetails `json:"videoDetails"`
}

// VideoView Score 只在全文检索时出现，且只在同一次查询内可比较
type VideoView struct {
	ID          int64       `json:"id"`
	VideoFile   string      `json:"videoFile"`
	Thumbnail   string      `json:"thumbnail"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Duration    float64     `json:"duration"`
	Views       int64       `json:"views"`
	IsPublished bool        `json:"isPublished"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	Owner       ChannelLite `json:"owner"`
	LikesCount  int64       `json:"likesCount"`
	Score       *float64    `json:"score,omitempty"`
}

type ChannelProfile struct {
	ID                       int64  `json:"id"`
	Username                 string `json:"username"`
	FullName                 string `json:"fullName"`
	Email                    string `json:"email"`
	Avatar                   string `json:"avatar"`
	CoverImage               string `json:"coverImage"`
	SubscribersCount         int64  `json:"subscribersCount"`
	ChannelSubscribedToCount int64  `json:"channelSubscribedToCount"`
	IsSubscribed             bool   `json:"isSubscribed"`
}

type HistoryView struct {
	WatchedAt time.Time `json:"watchedAt"`
	Video     VideoView `json:"video"`
}

// PlaylistView TotalVideos 只统计对调用方可见的视频
type PlaylistView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Owner       UserLite  `json:"owner"`
	TotalVideos int64     `json:"totalVideos"`
}

type PlaylistVideoView struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	CreatedAt   time.Time `json:"createdAt"`
	AddedAt     time.Time `json:"addedAt"`
	Owner       UserLite  `json:"owner"`
}

type PlaylistDetail struct {
	PlaylistView
	Videos pagination.Page[PlaylistVideoView] `json:"videos"`
}

func lite(u *model.User) UserLite {
	if u == nil {
		return UserLite{}
	}
	return u.Lite()
}
