package model

import (
	"time"

	"VidTube.com/pkg/constants"
)

// Subscription 订阅者对频道的订阅关系，记录存在即表示已订阅
type Subscription struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	SubscriberID int64     `json:"subscriber" gorm:"not null;uniqueIndex:uk_subscription,priority:1"`
	ChannelID    int64     `json:"channel" gorm:"not null;uniqueIndex:uk_subscription,priority:2;index"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Subscription) TableName() string {
	return constants.SubscriptionTableName
}

func (s *Subscription) CursorID() int64 { return s.ID }

func (s *Subscription) SortValue(field string) any {
	switch field {
	case "createdAt":
		return s.CreatedAt
	case "updatedAt":
		return s.UpdatedAt
	}
	return nil
}
