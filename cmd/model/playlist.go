package model

import (
	"time"

	"VidTube.com/pkg/constants"
)

// Playlist 非公开的播放列表只对创建者可见
type Playlist struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	OwnerID     int64     `json:"owner" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	IsPublic    bool      `json:"isPublic" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Playlist) TableName() string {
	return constants.PlaylistTableName
}

func (p *Playlist) CursorID() int64 { return p.ID }

func (p *Playlist) SortValue(field string) any {
	switch field {
	case "createdAt":
		return p.CreatedAt
	case "updatedAt":
		return p.UpdatedAt
	case "name":
		return p.Name
	}
	return nil
}

func (p *Playlist) VisibleTo(viewerID int64) bool {
	return p.IsPublic || (viewerID != 0 && p.OwnerID == viewerID)
}

// PlaylistVideo 播放列表中的一个视频，CreatedAt 即加入时间；同一视频在一个列表中至多一条
type PlaylistVideo struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	PlaylistID int64     `json:"playlistId" gorm:"not null;uniqueIndex:uk_playlist_video,priority:1"`
	VideoID    int64     `json:"videoId" gorm:"not null;uniqueIndex:uk_playlist_video,priority:2;index"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (PlaylistVideo) TableName() string {
	return constants.PlaylistVideoTableName
}

func (e *PlaylistVideo) CursorID() int64 { return e.ID }

func (e *PlaylistVideo) SortValue(field string) any {
	if field == "createdAt" {
		return e.CreatedAt
	}
	return nil
}
