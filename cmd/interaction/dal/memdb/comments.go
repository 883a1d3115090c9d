package memdb

import (
	"context"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/pagination"
)

func (s *Store) CreateComment(ctx context.Context, comment *model.Comment) error {
	if err := alive(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[comment.ID]; ok {
		return repo.ErrDuplicate
	}
	s.stamp(&comment.CreatedAt, &comment.UpdatedAt)
	s.comments[comment.ID] = clone(comment)
	return nil
}

func (s *Store) GetComment(ctx context.Context, id int64) (*model.Comment, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return clone(c), nil
}

func (s *Store) UpdateComment(ctx context.Context, id int64, content string) (*model.Comment, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	c.Content = content
	s.stamp(nil, &c.UpdatedAt)
	return clone(c), nil
}

func (s *Store) DeleteComment(ctx context.Context, id int64, cascade bool) error {
	if err := alive(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.comments, id)
	if cascade {
		s.deleteLikesOnLocked(model.CommentTarget(id))
	}
	return nil
}

// commentsOfLocked 与 MySQL 实现一致，作者已不存在的评论不返回
func (s *Store) commentsOfLocked(videoID int64) []*model.Comment {
	out := make([]*model.Comment, 0)
	for _, c := range s.comments {
		if c.VideoID != videoID {
			continue
		}
		if _, ok := s.users[c.OwnerID]; ok {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) ListComments(ctx context.Context, videoID int64, page pagination.Request) ([]*model.Comment, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(pagination.Window(s.commentsOfLocked(videoID), page)), nil
}

func (s *Store) CountComments(ctx context.Context, videoID int64) (int64, error) {
	if err := alive(ctx); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.commentsOfLocked(videoID))), nil
}

func (s *Store) CreateTweet(ctx context.Context, tweet *model.Tweet) error {
	if err := alive(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tweets[tweet.ID]; ok {
		return repo.ErrDuplicate
	}
	s.stamp(&tweet.CreatedAt, &tweet.UpdatedAt)
	s.tweets[tweet.ID] = clone(tweet)
	return nil
}

func (s *Store) GetTweet(ctx context.Context, id int64) (*model.Tweet, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tweets[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return clone(t), nil
}

func (s *Store) UpdateTweet(ctx context.Context, id int64, content string) (*model.Tweet, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tweets[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	t.Content = content
	s.stamp(nil, &t.UpdatedAt)
	return clone(t), nil
}

func (s *Store) DeleteTweet(ctx context.Context, id int64, cascade bool) error {
	if err := alive(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tweets[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.tweets, id)
	if cascade {
		s.deleteLikesOnLocked(model.TweetTarget(id))
	}
	return nil
}

func (s *Store) tweetsOfLocked(ownerID int64) []*model.Tweet {
	out := make([]*model.Tweet, 0)
	for _, t := range s.tweets {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) ListTweets(ctx context.Context, ownerID int64, page pagination.Request) ([]*model.Tweet, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(pagination.Window(s.tweetsOfLocked(ownerID), page)), nil
}

func (s *Store) CountTweets(ctx context.Context, ownerID int64) (int64, error) {
	if err := alive(ctx); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.tweetsOfLocked(ownerID))), nil
}
