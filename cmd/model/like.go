package model

import (
	"encoding/json"
	"time"

	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
)

// TargetKind 点赞目标的类型
type TargetKind int8

const (
	TargetVideo TargetKind = iota + 1
	TargetComment
	TargetTweet
)

func (k TargetKind) String() string {
	switch k {
	case TargetVideo:
		return "video"
	case TargetComment:
		return "comment"
	case TargetTweet:
		return "tweet"
	}
	return "unknown"
}

func (k TargetKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// LikeTarget 点赞目标：Video(id) | Comment(id) | Tweet(id) 三者必居其一。
// 字段不导出，只能通过构造函数得到合法值
type LikeTarget struct {
	kind TargetKind
	id   int64
}

func VideoTarget(id int64) LikeTarget   { return LikeTarget{kind: TargetVideo, id: id} }
func CommentTarget(id int64) LikeTarget { return LikeTarget{kind: TargetComment, id: id} }
func TweetTarget(id int64) LikeTarget   { return LikeTarget{kind: TargetTweet, id: id} }

// NewLikeTarget 从三个可选ID构造目标，必须恰好设置其中一个
func NewLikeTarget(videoID, commentID, tweetID int64) (LikeTarget, error) {
	var (
		set    int
		target LikeTarget
	)
	if videoID != 0 {
		set++
		target = VideoTarget(videoID)
	}
	if commentID != 0 {
		set++
		target = CommentTarget(commentID)
	}
	if tweetID != 0 {
		set++
		target = TweetTarget(tweetID)
	}
	if set != 1 {
		return LikeTarget{}, errno.ValidationErr.WithMessage("exactly one of video, comment or tweet must be liked")
	}
	if target.id < 0 {
		return LikeTarget{}, errno.ValidationErr.WithMessage("invalid like target id")
	}
	return target, nil
}

func (t LikeTarget) Kind() TargetKind { return t.kind }
func (t LikeTarget) ID() int64        { return t.id }

func (t LikeTarget) Valid() bool {
	return t.kind >= TargetVideo && t.kind <= TargetTweet && t.id > 0
}

func (t LikeTarget) String() string {
	return t.kind.String()
}

// Like 点赞记录；(liker_id, target_kind, target_id) 唯一，同一用户对同一目标至多一条
type Like struct {
	ID         int64      `json:"id" gorm:"primaryKey;autoIncrement:false"`
	LikedBy    int64      `json:"likedBy" gorm:"column:liker_id;not null;uniqueIndex:uk_like_target,priority:1"`
	TargetKind TargetKind `json:"targetKind" gorm:"not null;uniqueIndex:uk_like_target,priority:2;index:idx_like_target,priority:1"`
	TargetID   int64      `json:"targetId" gorm:"not null;uniqueIndex:uk_like_target,priority:3;index:idx_like_target,priority:2"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (Like) TableName() string {
	return constants.LikeTableName
}

func NewLike(id, likedBy int64, target LikeTarget) *Like {
	return &Like{ID: id, LikedBy: likedBy, TargetKind: target.kind, TargetID: target.id}
}

func (l *Like) Target() LikeTarget {
	return LikeTarget{kind: l.TargetKind, id: l.TargetID}
}

func (l *Like) CursorID() int64 { return l.ID }

func (l *Like) SortValue(field string) any {
	switch field {
	case "createdAt":
		return l.CreatedAt
	case "updatedAt":
		return l.UpdatedAt
	}
	return nil
}
