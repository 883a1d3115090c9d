package memdb

import (
	"context"
	"strings"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/model"
)

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	if err := alive(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == user.ID || strings.EqualFold(u.Username, user.Username) || strings.EqualFold(u.Email, user.Email) {
			return repo.ErrDuplicate
		}
	}
	s.stamp(&user.CreatedAt, &user.UpdatedAt)
	s.users[user.ID] = clone(user)
	return nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*model.User, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return clone(u), nil
}

func (s *Store) FindUserByLogin(ctx context.Context, login string) (*model.User, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, login) || strings.EqualFold(u.Email, login) {
			return clone(u), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (s *Store) GetUsers(ctx context.Context, ids []int64) (map[int64]*model.User, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]*model.User, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out[id] = clone(u)
		}
	}
	return out, nil
}
