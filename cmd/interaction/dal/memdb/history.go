package memdb

import (
	"context"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/pagination"
)

// RecordView 同一 (用户, 视频) 已有记录时只刷新观看时间
func (s *Store) RecordView(ctx context.Context, entry *model.WatchHistory) error {
	if err := alive(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[entry.VideoID]
	if !ok {
		return repo.ErrNotFound
	}
	v.Views++
	if entry.WatchedAt.IsZero() {
		entry.WatchedAt = s.now()
	}
	k := historyKey{user: entry.UserID, video: entry.VideoID}
	if id, ok := s.historyKeys[k]; ok {
		s.history[id].WatchedAt = entry.WatchedAt
		return nil
	}
	s.history[entry.ID] = clone(entry)
	s.historyKeys[k] = entry.ID
	return nil
}

func (s *Store) historyOfLocked(userID int64) []*model.WatchHistory {
	out := make([]*model.WatchHistory, 0)
	for _, h := range s.history {
		if h.UserID != userID {
			continue
		}
		v, ok := s.videos[h.VideoID]
		if !ok || !v.VisibleTo(userID) {
			continue
		}
		out = append(out, h)
	}
	return out
}

func (s *Store) ListWatchHistory(ctx context.Context, userID int64, page pagination.Request) ([]*model.WatchHistory, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(pagination.Window(s.historyOfLocked(userID), page)), nil
}

func (s *Store) CountWatchHistory(ctx context.Context, userID int64) (int64, error) {
	if err := alive(ctx); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.historyOfLocked(userID))), nil
}
