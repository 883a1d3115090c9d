package memdb

import (
	"context"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/pagination"
)

func (s *Store) CreateVideo(ctx context.Context, video *model.Video) error {
	if err := alive(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.videos[video.ID]; ok {
		return repo.ErrDuplicate
	}
	s.stamp(&video.CreatedAt, &video.UpdatedAt)
	s.videos[video.ID] = clone(video)
	return nil
}

func (s *Store) GetVideo(ctx context.Context, id int64) (*model.Video, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.videos[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return clone(v), nil
}

func (s *Store) GetVideos(ctx context.Context, ids []int64) (map[int64]*model.Video, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]*model.Video, len(ids))
	for _, id := range ids {
		if v, ok := s.videos[id]; ok {
			out[id] = clone(v)
		}
	}
	return out, nil
}

func (s *Store) UpdateVideo(ctx context.Context, id int64, patch repo.VideoPatch) (*model.Video, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if patch.Title != nil {
		v.Title = *patch.Title
	}
	if patch.Description != nil {
		v.Description = *patch.Description
	}
	if patch.Thumbnail != nil {
		v.Thumbnail = *patch.Thumbnail
	}
	s.stamp(nil, &v.UpdatedAt)
	return clone(v), nil
}

func (s *Store) TogglePublished(ctx context.Context, id int64) (*model.Video, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	v.IsPublished = !v.IsPublished
	s.stamp(nil, &v.UpdatedAt)
	return clone(v), nil
}

func (s *Store) DeleteVideo(ctx context.Context, id int64, cascade bool) error {
	if err := alive(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.videos[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.videos, id)
	if !cascade {
		return nil
	}
	s.deleteLikesOnLocked(model.VideoTarget(id))
	for cid, c := range s.comments {
		if c.VideoID == id {
			s.deleteLikesOnLocked(model.CommentTarget(cid))
			delete(s.comments, cid)
		}
	}
	for hid, h := range s.history {
		if h.VideoID == id {
			delete(s.historyKeys, historyKey{user: h.UserID, video: h.VideoID})
			delete(s.history, hid)
		}
	}
	for eid, e := range s.entries {
		if e.VideoID == id {
			s.deleteEntryLocked(eid, e)
		}
	}
	return nil
}

func (s *Store) filterVideosLocked(q repo.VideoQuery) []*model.Video {
	out := make([]*model.Video, 0)
	for _, v := range s.videos {
		if q.OwnerID != 0 && v.OwnerID != q.OwnerID {
			continue
		}
		if !v.VisibleTo(q.ViewerID) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (s *Store) ListVideos(ctx context.Context, q repo.VideoQuery) ([]*model.Video, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(pagination.Window(s.filterVideosLocked(q), q.Page)), nil
}

func (s *Store) CountVideos(ctx context.Context, q repo.VideoQuery) (int64, error) {
	if err := alive(ctx); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.filterVideosLocked(q))), nil
}

func (s *Store) ChannelVideoTotals(ctx context.Context, ownerID int64) (int64, int64, error) {
	if err := alive(ctx); err != nil {
		return 0, 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var views, count int64
	for _, v := range s.videos {
		if v.OwnerID == ownerID {
			views += v.Views
			count++
		}
	}
	return views, count, nil
}
