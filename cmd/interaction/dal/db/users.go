package db

import (
	"context"

	"VidTube.com/cmd/model"
)

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error, "create user %s", user.Username)
}

func (s *Store) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user := &model.User{}
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(user).Error; err != nil {
		return nil, translate(err, "get user %d", id)
	}
	return user, nil
}

// FindUserByLogin 用户名或邮箱任一匹配即可
func (s *Store) FindUserByLogin(ctx context.Context, login string) (*model.User, error) {
	user := &model.User{}
	if err := s.db.WithContext(ctx).Where("username = ? OR email = ?", login, login).First(user).Error; err != nil {
		return nil, translate(err, "find user %s", login)
	}
	return user, nil
}

func (s *Store) GetUsers(ctx context.Context, ids []int64) (map[int64]*model.User, error) {
	out := make(map[int64]*model.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []*model.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, translate(err, "get users")
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}
