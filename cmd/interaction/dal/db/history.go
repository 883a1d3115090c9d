package db

import (
	"context"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordView 播放量与观看历史在同一事务内写入；历史以 uk_watch_history 为冲突键 upsert，重复观看只刷新 watched_at
func (s *Store) RecordView(ctx context.Context, entry *model.WatchHistory) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Video{}).Where("id = ?", entry.VideoID).
			UpdateColumn("views", gorm.Expr("views + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return tx.Clauses(clause.OnConflict{
			DoUpdates: clause.AssignmentColumns([]string{"watched_at"}),
		}).Create(entry).Error
	})
	return translate(err, "record view %d -> %d", entry.UserID, entry.VideoID)
}

func (s *Store) watchHistory(ctx context.Context, userID int64) *gorm.DB {
	db := s.db.WithContext(ctx).Model(&model.WatchHistory{}).
		Joins("JOIN videos ON videos.id = watch_histories.video_id").
		Where("watch_histories.user_id = ?", userID)
	return visible(db, userID)
}

func (s *Store) ListWatchHistory(ctx context.Context, userID int64, page pagination.Request) ([]*model.WatchHistory, error) {
	entries := make([]*model.WatchHistory, 0)
	err := s.watchHistory(ctx, userID).Select("watch_histories.*").
		Scopes(page.Scope("watch_histories")).Find(&entries).Error
	if err != nil {
		return nil, translate(err, "list watch history of %d", userID)
	}
	return entries, nil
}

func (s *Store) CountWatchHistory(ctx context.Context, userID int64) (int64, error) {
	var n int64
	if err := s.watchHistory(ctx, userID).Count(&n).Error; err != nil {
		return 0, translate(err, "count watch history of %d", userID)
	}
	return n, nil
}
