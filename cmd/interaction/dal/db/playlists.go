package db

import (
	"context"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/pagination"
	"gorm.io/gorm"
)

// CreatePlaylist 播放列表与条目在同一事务中写入，条目冲突时整体回滚
func (s *Store) CreatePlaylist(ctx context.Context, playlist *model.Playlist, entries []*model.PlaylistVideo) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(playlist).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		for _, e := range entries {
			e.PlaylistID = playlist.ID
		}
		return tx.Create(&entries).Error
	})
	return translate(err, "create playlist %d", playlist.ID)
}

func (s *Store) GetPlaylist(ctx context.Context, id int64) (*model.Playlist, error) {
	playlist := &model.Playlist{}
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(playlist).Error; err != nil {
		return nil, translate(err, "get playlist %d", id)
	}
	return playlist, nil
}

func (s *Store) UpdatePlaylist(ctx context.Context, id int64, patch repo.PlaylistPatch) (*model.Playlist, error) {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.IsPublic != nil {
		updates["is_public"] = *patch.IsPublic
	}
	if len(updates) > 0 {
		res := s.db.WithContext(ctx).Model(&model.Playlist{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, translate(res.Error, "update playlist %d", id)
		}
	}
	return s.GetPlaylist(ctx, id)
}

func (s *Store) DeletePlaylist(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&model.Playlist{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return tx.Where("playlist_id = ?", id).Delete(&model.PlaylistVideo{}).Error
	})
	if err == repo.ErrNotFound {
		return err
	}
	return translate(err, "delete playlist %d", id)
}

// AddPlaylistVideo 依赖 uk_playlist_video 唯一索引拒绝重复加入
func (s *Store) AddPlaylistVideo(ctx context.Context, entry *model.PlaylistVideo) error {
	return translate(s.db.WithContext(ctx).Create(entry).Error, "add video %d to playlist %d", entry.VideoID, entry.PlaylistID)
}

func (s *Store) RemovePlaylistVideo(ctx context.Context, playlistID, videoID int64) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistVideo{})
	if res.Error != nil {
		return false, translate(res.Error, "remove video %d from playlist %d", videoID, playlistID)
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) playlists(ctx context.Context, q repo.PlaylistQuery) *gorm.DB {
	db := s.db.WithContext(ctx).Model(&model.Playlist{}).Where("playlists.owner_id = ?", q.OwnerID)
	if q.ViewerID == 0 || q.ViewerID != q.OwnerID {
		db = db.Where("playlists.is_public = ?", true)
	}
	return db
}

func (s *Store) ListPlaylists(ctx context.Context, q repo.PlaylistQuery) ([]*model.Playlist, error) {
	playlists := make([]*model.Playlist, 0)
	if err := s.playlists(ctx, q).Scopes(q.Page.Scope("playlists")).Find(&playlists).Error; err != nil {
		return nil, translate(err, "list playlists of %d", q.OwnerID)
	}
	return playlists, nil
}

func (s *Store) CountPlaylists(ctx context.Context, q repo.PlaylistQuery) (int64, error) {
	var n int64
	if err := s.playlists(ctx, q).Count(&n).Error; err != nil {
		return 0, translate(err, "count playlists of %d", q.OwnerID)
	}
	return n, nil
}

func (s *Store) playlistVideos(ctx context.Context, viewerID int64) *gorm.DB {
	db := s.db.WithContext(ctx).Model(&model.PlaylistVideo{}).
		Joins("JOIN videos ON videos.id = playlist_videos.video_id")
	return visible(db, viewerID)
}

func (s *Store) ListPlaylistVideos(ctx context.Context, playlistID, viewerID int64, page pagination.Request) ([]*model.PlaylistVideo, error) {
	entries := make([]*model.PlaylistVideo, 0)
	err := s.playlistVideos(ctx, viewerID).Select("playlist_videos.*").
		Where("playlist_videos.playlist_id = ?", playlistID).
		Scopes(page.Scope("playlist_videos")).Find(&entries).Error
	if err != nil {
		return nil, translate(err, "list videos of playlist %d", playlistID)
	}
	return entries, nil
}

func (s *Store) CountPlaylistVideos(ctx context.Context, playlistIDs []int64, viewerID int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(playlistIDs))
	if len(playlistIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		PlaylistID int64
		Total      int64
	}
	err := s.playlistVideos(ctx, viewerID).
		Select("playlist_videos.playlist_id AS playlist_id, COUNT(*) AS total").
		Where("playlist_videos.playlist_id IN ?", playlistIDs).
		Group("playlist_videos.playlist_id").Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "count playlist videos")
	}
	for _, r := range rows {
		out[r.PlaylistID] = r.Total
	}
	return out, nil
}
