package service

import (
	"context"
	"strings"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/pkg/errors"
)

type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     string
	CoverImage string
}

// RegisterUser 用户名统一小写保存，用户名或邮箱已被占用时返回 ConflictErr
func (s *Service) RegisterUser(ctx context.Context, in RegisterInput) (*model.User, error) {
	for _, f := range [][2]string{{"username", in.Username}, {"email", in.Email}, {"fullName", in.FullName}, {"password", in.Password}} {
		if err := required(f[0], f[1]); err != nil {
			return nil, err
		}
	}
	if !strings.Contains(in.Email, "@") {
		return nil, errno.ValidationErr.WithMessage("email is invalid")
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	u := &model.User{
		ID:         s.newID(),
		Username:   strings.ToLower(strings.TrimSpace(in.Username)),
		Email:      strings.TrimSpace(in.Email),
		FullName:   strings.TrimSpace(in.FullName),
		Avatar:     in.Avatar,
		CoverImage: in.CoverImage,
		Password:   hash,
	}
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	if err := s.store.CreateUser(tctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, errno.ConflictErr.WithMessage("User with email or username already exists")
		}
		return nil, storeErr(ctx, err, "user")
	}
	return u, nil
}

// Authenticate login 可以是用户名或邮箱
func (s *Service) Authenticate(ctx context.Context, login, password string) (*model.User, error) {
	if err := required("username or email", login); err != nil {
		return nil, err
	}
	if err := required("password", password); err != nil {
		return nil, err
	}
	login = strings.TrimSpace(login)
	if !strings.Contains(login, "@") {
		login = strings.ToLower(login)
	}
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	u, err := s.store.FindUserByLogin(tctx, login)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errno.NotFoundErr.WithMessage("User does not exist")
		}
		return nil, storeErr(ctx, err, "user")
	}
	if !utils.CheckPassword(u.Password, password) {
		return nil, errno.UnauthorizedErr.WithMessage("Invalid user credentials")
	}
	return u, nil
}
