package db

import (
	"context"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/model"
	"gorm.io/gorm"
)

const matchExpr = "MATCH(videos.title, videos.description) AGAINST (? IN NATURAL LANGUAGE MODE)"

// SearchVideos 使用 idx_video_text 全文索引，按相关度降序、ID 降序排列
func (s *Store) SearchVideos(ctx context.Context, q repo.VideoSearch) ([]repo.SearchHit, int64, error) {
	base := s.db.WithContext(ctx).Model(&model.Video{}).Where(matchExpr, q.Text)
	if q.OwnerID != 0 {
		base = base.Where("videos.owner_id = ?", q.OwnerID)
	}
	base = visible(base, q.ViewerID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count search %q", q.Text)
	}

	var rows []struct {
		ID    int64
		Score float64
	}
	err := base.Session(&gorm.Session{}).
		Select("videos.id AS id, "+matchExpr+" AS score", q.Text).
		Order("score DESC").Order("videos.id DESC").
		Offset(q.Skip).Limit(q.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, translate(err, "search %q", q.Text)
	}
	hits := make([]repo.SearchHit, 0, len(rows))
	for _, r := range rows {
		hits = append(hits, repo.SearchHit{VideoID: r.ID, Score: r.Score})
	}
	return hits, total, nil
}
