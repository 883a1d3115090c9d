package db

import (
	"VidTube.com/cmd/interaction/dal/repo"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Store 基于 gorm 的 MySQL 记录存储
type Store struct {
	db *gorm.DB
}

var _ repo.Store = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// translate 将 gorm 错误映射为存储层哨兵错误，其余错误附带调用栈
func translate(err error, format string, args ...interface{}) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repo.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repo.ErrDuplicate
	}
	return errors.Wrapf(err, format, args...)
}

// visible 未发布的视频只对作者本人可见
func visible(db *gorm.DB, viewerID int64) *gorm.DB {
	if viewerID == 0 {
		return db.Where("videos.is_published = ?", true)
	}
	return db.Where("(videos.is_published = ? OR videos.owner_id = ?)", true, viewerID)
}
