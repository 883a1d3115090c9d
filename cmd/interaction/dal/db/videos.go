package db

import (
	"context"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/model"
	"gorm.io/gorm"
)

func (s *Store) CreateVideo(ctx context.Context, video *model.Video) error {
	return translate(s.db.WithContext(ctx).Create(video).Error, "create video %d", video.ID)
}

func (s *Store) GetVideo(ctx context.Context, id int64) (*model.Video, error) {
	video := &model.Video{}
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(video).Error; err != nil {
		return nil, translate(err, "get video %d", id)
	}
	return video, nil
}

func (s *Store) GetVideos(ctx context.Context, ids []int64) (map[int64]*model.Video, error) {
	out := make(map[int64]*model.Video, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var videos []*model.Video
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&videos).Error; err != nil {
		return nil, translate(err, "get videos")
	}
	for _, v := range videos {
		out[v.ID] = v
	}
	return out, nil
}

func (s *Store) UpdateVideo(ctx context.Context, id int64, patch repo.VideoPatch) (*model.Video, error) {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Thumbnail != nil {
		updates["thumbnail"] = *patch.Thumbnail
	}
	if len(updates) > 0 {
		res := s.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, translate(res.Error, "update video %d", id)
		}
	}
	return s.GetVideo(ctx, id)
}

func (s *Store) TogglePublished(ctx context.Context, id int64) (*model.Video, error) {
	res := s.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).
		Update("is_published", gorm.Expr("NOT is_published"))
	if res.Error != nil {
		return nil, translate(res.Error, "toggle video %d", id)
	}
	if res.RowsAffected == 0 {
		return nil, repo.ErrNotFound
	}
	return s.GetVideo(ctx, id)
}

// DeleteVideo cascade 为 true 时在同一事务中删除视频的全部关联记录
func (s *Store) DeleteVideo(ctx context.Context, id int64, cascade bool) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&model.Video{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		if !cascade {
			return nil
		}
		commentIDs := tx.Model(&model.Comment{}).Select("id").Where("video_id = ?", id)
		if err := tx.Where("target_kind = ? AND target_id IN (?)", model.TargetComment, commentIDs).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_kind = ? AND target_id = ?", model.TargetVideo, id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.WatchHistory{}).Error; err != nil {
			return err
		}
		return tx.Where("video_id = ?", id).Delete(&model.PlaylistVideo{}).Error
	})
	if err == repo.ErrNotFound {
		return err
	}
	return translate(err, "delete video %d", id)
}

func (s *Store) videoQuery(ctx context.Context, q repo.VideoQuery) *gorm.DB {
	db := s.db.WithContext(ctx).Model(&model.Video{})
	if q.OwnerID != 0 {
		db = db.Where("videos.owner_id = ?", q.OwnerID)
	}
	return visible(db, q.ViewerID)
}

func (s *Store) ListVideos(ctx context.Context, q repo.VideoQuery) ([]*model.Video, error) {
	videos := make([]*model.Video, 0)
	if err := s.videoQuery(ctx, q).Scopes(q.Page.Scope("videos")).Find(&videos).Error; err != nil {
		return nil, translate(err, "list videos")
	}
	return videos, nil
}

func (s *Store) CountVideos(ctx context.Context, q repo.VideoQuery) (int64, error) {
	var n int64
	if err := s.videoQuery(ctx, q).Count(&n).Error; err != nil {
		return 0, translate(err, "count videos")
	}
	return n, nil
}

func (s *Store) ChannelVideoTotals(ctx context.Context, ownerID int64) (int64, int64, error) {
	var totals struct {
		Views  int64
		Videos int64
	}
	err := s.db.WithContext(ctx).Model(&model.Video{}).
		Select("COALESCE(SUM(views), 0) AS views, COUNT(*) AS videos").
		Where("owner_id = ?", ownerID).Scan(&totals).Error
	if err != nil {
		return 0, 0, translate(err, "channel totals %d", ownerID)
	}
	return totals.Views, totals.Videos, nil
}
