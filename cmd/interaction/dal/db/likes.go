package db

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/pagination"
	"gorm.io/gorm"
)

// InsertLike 依赖 uk_like_target 唯一索引，并发插入时只有一个成功
func (s *Store) InsertLike(ctx context.Context, like *model.Like) error {
	return translate(s.db.WithContext(ctx).Create(like).Error, "insert like %d", like.ID)
}

// DeleteLike 单条 DELETE 语句，以影响行数判断是否删除成功
func (s *Store) DeleteLike(ctx context.Context, likedBy int64, target model.LikeTarget) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("liker_id = ? AND target_kind = ? AND target_id = ?", likedBy, target.Kind(), target.ID()).
		Delete(&model.Like{})
	if res.Error != nil {
		return false, translate(res.Error, "delete like of %d on %s %d", likedBy, target, target.ID())
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) CountLikes(ctx context.Context, kind model.TargetKind, targetIDs []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(targetIDs))
	if len(targetIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		TargetID int64
		Total    int64
	}
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Select("target_id, COUNT(*) AS total").
		Where("target_kind = ? AND target_id IN ?", kind, targetIDs).
		Group("target_id").Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "count %s likes", kind)
	}
	for _, r := range rows {
		out[r.TargetID] = r.Total
	}
	return out, nil
}

var targetTables = map[model.TargetKind]string{
	model.TargetVideo:   "videos",
	model.TargetComment: "comments",
	model.TargetTweet:   "tweets",
}

func (s *Store) CountLikesReceived(ctx context.Context, ownerID int64, kind model.TargetKind) (int64, error) {
	table := targetTables[kind]
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Joins("JOIN "+table+" ON "+table+".id = likes.target_id").
		Where("likes.target_kind = ? AND "+table+".owner_id = ?", kind, ownerID).
		Count(&n).Error
	if err != nil {
		return 0, translate(err, "count %s likes received by %d", kind, ownerID)
	}
	return n, nil
}

func (s *Store) likedVideos(ctx context.Context, likedBy int64) *gorm.DB {
	db := s.db.WithContext(ctx).Model(&model.Like{}).
		Joins("JOIN videos ON videos.id = likes.target_id").
		Where("likes.liker_id = ? AND likes.target_kind = ?", likedBy, model.TargetVideo)
	return visible(db, likedBy)
}

func (s *Store) ListLikedVideos(ctx context.Context, likedBy int64, page pagination.Request) ([]*model.Like, error) {
	likes := make([]*model.Like, 0)
	if err := s.likedVideos(ctx, likedBy).Select("likes.*").Scopes(page.Scope("likes")).Find(&likes).Error; err != nil {
		return nil, translate(err, "list liked videos of %d", likedBy)
	}
	return likes, nil
}

func (s *Store) CountLikedVideos(ctx context.Context, likedBy int64) (int64, error) {
	var n int64
	if err := s.likedVideos(ctx, likedBy).Count(&n).Error; err != nil {
		return 0, translate(err, "count liked videos of %d", likedBy)
	}
	return n, nil
}
