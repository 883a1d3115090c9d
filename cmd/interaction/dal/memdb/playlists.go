package memdb

import (
	"context"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/pagination"
)

func (s *Store) insertEntryLocked(e *model.PlaylistVideo) error {
	k := playlistKey{playlist: e.PlaylistID, video: e.VideoID}
	if _, ok := s.playlistKeys[k]; ok {
		return repo.ErrDuplicate
	}
	if _, ok := s.entries[e.ID]; ok {
		return repo.ErrDuplicate
	}
	s.stamp(&e.CreatedAt, nil)
	s.entries[e.ID] = clone(e)
	s.playlistKeys[k] = e.ID
	return nil
}

func (s *Store) deleteEntryLocked(id int64, e *model.PlaylistVideo) {
	delete(s.playlistKeys, playlistKey{playlist: e.PlaylistID, video: e.VideoID})
	delete(s.entries, id)
}

// CreatePlaylist 任一条目冲突时整体不写入
func (s *Store) CreatePlaylist(ctx context.Context, playlist *model.Playlist, entries []*model.PlaylistVideo) error {
	if err := alive(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.playlists[playlist.ID]; ok {
		return repo.ErrDuplicate
	}
	seen := make(map[playlistKey]struct{}, len(entries))
	for _, e := range entries {
		k := playlistKey{playlist: playlist.ID, video: e.VideoID}
		if _, ok := seen[k]; ok {
			return repo.ErrDuplicate
		}
		if _, ok := s.entries[e.ID]; ok {
			return repo.ErrDuplicate
		}
		seen[k] = struct{}{}
	}
	s.stamp(&playlist.CreatedAt, &playlist.UpdatedAt)
	s.playlists[playlist.ID] = clone(playlist)
	for _, e := range entries {
		e.PlaylistID = playlist.ID
		if err := s.insertEntryLocked(e); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) GetPlaylist(ctx context.Context, id int64) (*model.Playlist, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.playlists[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return clone(p), nil
}

func (s *Store) UpdatePlaylist(ctx context.Context, id int64, patch repo.PlaylistPatch) (*model.Playlist, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.playlists[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.IsPublic != nil {
		p.IsPublic = *patch.IsPublic
	}
	s.stamp(nil, &p.UpdatedAt)
	return clone(p), nil
}

func (s *Store) DeletePlaylist(ctx context.Context, id int64) error {
	if err := alive(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.playlists[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.playlists, id)
	for eid, e := range s.entries {
		if e.PlaylistID == id {
			s.deleteEntryLocked(eid, e)
		}
	}
	return nil
}

func (s *Store) AddPlaylistVideo(ctx context.Context, entry *model.PlaylistVideo) error {
	if err := alive(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.playlists[entry.PlaylistID]; !ok {
		return repo.ErrNotFound
	}
	return s.insertEntryLocked(entry)
}

func (s *Store) RemovePlaylistVideo(ctx context.Context, playlistID, videoID int64) (bool, error) {
	if err := alive(ctx); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.playlistKeys[playlistKey{playlist: playlistID, video: videoID}]
	if !ok {
		return false, nil
	}
	s.deleteEntryLocked(id, s.entries[id])
	return true, nil
}

func (s *Store) filterPlaylistsLocked(q repo.PlaylistQuery) []*model.Playlist {
	out := make([]*model.Playlist, 0)
	for _, p := range s.playlists {
		if p.OwnerID != q.OwnerID || !p.VisibleTo(q.ViewerID) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *Store) ListPlaylists(ctx context.Context, q repo.PlaylistQuery) ([]*model.Playlist, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(pagination.Window(s.filterPlaylistsLocked(q), q.Page)), nil
}

func (s *Store) CountPlaylists(ctx context.Context, q repo.PlaylistQuery) (int64, error) {
	if err := alive(ctx); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.filterPlaylistsLocked(q))), nil
}

func (s *Store) entriesOfLocked(playlistID, viewerID int64) []*model.PlaylistVideo {
	out := make([]*model.PlaylistVideo, 0)
	for _, e := range s.entries {
		if e.PlaylistID != playlistID {
			continue
		}
		v, ok := s.videos[e.VideoID]
		if !ok || !v.VisibleTo(viewerID) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (s *Store) ListPlaylistVideos(ctx context.Context, playlistID, viewerID int64, page pagination.Request) ([]*model.PlaylistVideo, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(pagination.Window(s.entriesOfLocked(playlistID, viewerID), page)), nil
}

func (s *Store) CountPlaylistVideos(ctx context.Context, playlistIDs []int64, viewerID int64) (map[int64]int64, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]int64, len(playlistIDs))
	for _, id := range playlistIDs {
		if n := len(s.entriesOfLocked(id, viewerID)); n > 0 {
			out[id] = int64(n)
		}
	}
	return out, nil
}
