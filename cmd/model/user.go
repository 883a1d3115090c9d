package model

import (
	"time"

	"VidTube.com/pkg/constants"
)

// User 频道即用户，Password 只保存 bcrypt 哈希且从不序列化
type User struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Username   string    `json:"username" gorm:"size:64;not null;uniqueIndex"`
	Email      string    `json:"email" gorm:"size:128;not null;uniqueIndex"`
	FullName   string    `json:"fullName" gorm:"size:128"`
	Avatar     string    `json:"avatar" gorm:"size:512"`
	CoverImage string    `json:"coverImage" gorm:"size:512"`
	Password   string    `json:"-" gorm:"size:128;not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return constants.UserTableName
}

// UserLite 视图中嵌入的用户摘要
type UserLite struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func (u *User) Lite() UserLite {
	return UserLite{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}
