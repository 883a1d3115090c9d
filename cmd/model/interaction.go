package model

import (
	"time"

	"VidTube.com/pkg/constants"
)

type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	VideoID   int64     `json:"video" gorm:"not null;index"`
	OwnerID   int64     `json:"owner" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Comment) TableName() string {
	return constants.CommentTableName
}

func (c *Comment) CursorID() int64 { return c.ID }

func (c *Comment) SortValue(field string) any {
	switch field {
	case "createdAt":
		return c.CreatedAt
	case "updatedAt":
		return c.UpdatedAt
	}
	return nil
}

type Tweet struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	OwnerID   int64     `json:"owner" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Tweet) TableName() string {
	return constants.TweetTableName
}

func (t *Tweet) CursorID() int64 { return t.ID }

func (t *Tweet) SortValue(field string) any {
	switch field {
	case "createdAt":
		return t.CreatedAt
	case "updatedAt":
		return t.UpdatedAt
	}
	return nil
}
