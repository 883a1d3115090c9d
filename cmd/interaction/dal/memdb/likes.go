package memdb

import (
	"context"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/pagination"
)

func keyOf(l *model.Like) likeKey {
	return likeKey{likedBy: l.LikedBy, kind: l.TargetKind, target: l.TargetID}
}

func (s *Store) InsertLike(ctx context.Context, like *model.Like) error {
	if err := alive(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := keyOf(like)
	if _, ok := s.likeKeys[k]; ok {
		return repo.ErrDuplicate
	}
	if _, ok := s.likes[like.ID]; ok {
		return repo.ErrDuplicate
	}
	s.stamp(&like.CreatedAt, &like.UpdatedAt)
	s.likes[like.ID] = clone(like)
	s.likeKeys[k] = like.ID
	return nil
}

func (s *Store) DeleteLike(ctx context.Context, likedBy int64, target model.LikeTarget) (bool, error) {
	if err := alive(ctx); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := likeKey{likedBy: likedBy, kind: target.Kind(), target: target.ID()}
	id, ok := s.likeKeys[k]
	if !ok {
		return false, nil
	}
	delete(s.likeKeys, k)
	delete(s.likes, id)
	return true, nil
}

// deleteLikesOnLocked 删除某个目标上的全部点赞，调用方持有写锁
func (s *Store) deleteLikesOnLocked(target model.LikeTarget) {
	for id, l := range s.likes {
		if l.TargetKind == target.Kind() && l.TargetID == target.ID() {
			delete(s.likeKeys, keyOf(l))
			delete(s.likes, id)
		}
	}
}

func (s *Store) CountLikes(ctx context.Context, kind model.TargetKind, targetIDs []int64) (map[int64]int64, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := make(map[int64]struct{}, len(targetIDs))
	for _, id := range targetIDs {
		want[id] = struct{}{}
	}
	out := make(map[int64]int64, len(targetIDs))
	for _, l := range s.likes {
		if l.TargetKind != kind {
			continue
		}
		if _, ok := want[l.TargetID]; ok {
			out[l.TargetID]++
		}
	}
	return out, nil
}

func (s *Store) ownerOfLocked(kind model.TargetKind, id int64) (int64, bool) {
	switch kind {
	case model.TargetVideo:
		if v, ok := s.videos[id]; ok {
			return v.OwnerID, true
		}
	case model.TargetComment:
		if c, ok := s.comments[id]; ok {
			return c.OwnerID, true
		}
	case model.TargetTweet:
		if t, ok := s.tweets[id]; ok {
			return t.OwnerID, true
		}
	}
	return 0, false
}

func (s *Store) CountLikesReceived(ctx context.Context, ownerID int64, kind model.TargetKind) (int64, error) {
	if err := alive(ctx); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, l := range s.likes {
		if l.TargetKind != kind {
			continue
		}
		if owner, ok := s.ownerOfLocked(kind, l.TargetID); ok && owner == ownerID {
			n++
		}
	}
	return n, nil
}

func (s *Store) likedVideosLocked(likedBy int64) []*model.Like {
	out := make([]*model.Like, 0)
	for _, l := range s.likes {
		if l.LikedBy != likedBy || l.TargetKind != model.TargetVideo {
			continue
		}
		v, ok := s.videos[l.TargetID]
		if !ok || !v.VisibleTo(likedBy) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func (s *Store) ListLikedVideos(ctx context.Context, likedBy int64, page pagination.Request) ([]*model.Like, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(pagination.Window(s.likedVideosLocked(likedBy), page)), nil
}

func (s *Store) CountLikedVideos(ctx context.Context, likedBy int64) (int64, error) {
	if err := alive(ctx); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.likedVideosLocked(likedBy))), nil
}
