package model

import (
	"time"

	"VidTube.com/pkg/constants"
)

// Video VideoFile 与 Thumbnail 是上传流水线生成的地址，这里只负责保存
type Video struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	OwnerID     int64     `json:"owner" gorm:"not null;index"`
	VideoFile   string    `json:"videoFile" gorm:"size:512;not null"`
	Thumbnail   string    `json:"thumbnail" gorm:"size:512;not null"`
	Title       string    `json:"title" gorm:"size:255;not null;index:idx_video_text,class:FULLTEXT"`
	Description string    `json:"description" gorm:"type:text;index:idx_video_text,class:FULLTEXT"`
	Duration    float64   `json:"duration" gorm:"not null"`
	Views       int64     `json:"views" gorm:"not null;default:0"`
	IsPublished bool      `json:"isPublished" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Video) TableName() string {
	return constants.VideoTableName
}

func (v *Video) CursorID() int64 { return v.ID }

func (v *Video) SortValue(field string) any {
	switch field {
	case "createdAt":
		return v.CreatedAt
	case "updatedAt":
		return v.UpdatedAt
	case "views":
		return v.Views
	case "duration":
		return v.Duration
	case "title":
		return v.Title
	}
	return nil
}

// VisibleTo 未发布的视频只对作者本人可见
func (v *Video) VisibleTo(viewerID int64) bool {
	return v.IsPublished || (viewerID != 0 && v.OwnerID == viewerID)
}

// WatchHistory 每个 (用户, 视频) 只保留一条，重复观看刷新 WatchedAt
type WatchHistory struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	UserID    int64     `json:"userId" gorm:"not null;uniqueIndex:uk_watch_history,priority:1"`
	VideoID   int64     `json:"videoId" gorm:"not null;uniqueIndex:uk_watch_history,priority:2;index"`
	WatchedAt time.Time `json:"watchedAt" gorm:"not null"`
}

func (WatchHistory) TableName() string {
	return constants.WatchHistoryTableName
}

func (h *WatchHistory) CursorID() int64 { return h.ID }

func (h *WatchHistory) SortValue(field string) any {
	if field == "watchedAt" {
		return h.WatchedAt
	}
	return nil
}
