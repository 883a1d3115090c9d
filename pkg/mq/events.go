package mq

import (
	"time"

	"github.com/google/uuid"
)

// 互动类型
const (
	InteractionLike         = "like"
	InteractionSubscription = "subscription"
)

// 视频事件类型
const (
	VideoUpserted = "upsert"
	VideoDeleted  = "delete"
)

// InteractionEvent 一次切换完成后的结果，State 为 added 或 removed
type InteractionEvent struct {
	EventID    string `json:"event_id"`
	Kind       string `json:"kind"`
	TargetKind string `json:"target_kind"`
	TargetID   int64  `json:"target_id"`
	ActorID    int64  `json:"actor_id"`
	State      string `json:"state"`
	Timestamp  int64  `json:"timestamp"`
}

func NewInteractionEvent(kind, targetKind string, targetID, actorID int64, state string) *InteractionEvent {
	return &InteractionEvent{
		EventID:    uuid.NewString(),
		Kind:       kind,
		TargetKind: targetKind,
		TargetID:   targetID,
		ActorID:    actorID,
		State:      state,
		Timestamp:  time.Now().UnixMilli(),
	}
}

// VideoEvent 携带检索索引需要的全部字段，消费方不需要回查数据库
type VideoEvent struct {
	EventID     string    `json:"event_id"`
	Type        string    `json:"type"`
	VideoID     int64     `json:"video_id"`
	OwnerID     int64     `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	Timestamp   int64     `json:"timestamp"`
}

func NewVideoEvent(eventType string, videoID int64) *VideoEvent {
	return &VideoEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		VideoID:   videoID,
		Timestamp: time.Now().UnixMilli(),
	}
}
