package service

import (
	"context"
	"fmt"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type ToggleState string

const (
	Added   ToggleState = "added"
	Removed ToggleState = "removed"
)

// ToggleResult 记录存在即表示处于 added 状态
type ToggleResult struct {
	State ToggleState `json:"state"`
}

func (r ToggleResult) Active() bool {
	return r.State == Added
}

// toggleOps 一次切换在存储上的两个原子操作
type toggleOps struct {
	remove func(ctx context.Context) (bool, error)
	insert func(ctx context.Context) error
}

// toggle 先删除(影响行数为 1 即 removed)，否则插入(成功即 added)；
// 插入撞上唯一索引说明并发的另一次切换刚刚插入，重新走一遍删除。
// 每次成功的调用恰好翻转一次状态
func (s *Service) toggle(ctx context.Context, lockKey string, ops toggleOps) (ToggleResult, error) {
	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, lockKey)
		if err != nil {
			hlog.CtxWarnf(ctx, "toggle lock %s unavailable, relying on unique index: %v", lockKey, err)
		} else {
			defer func() {
				if err := unlock(context.WithoutCancel(ctx)); err != nil {
					hlog.CtxWarnf(ctx, "toggle unlock %s: %v", lockKey, err)
				}
			}()
		}
	}

	for attempt := 1; attempt <= s.opts.MaxToggleAttempts; attempt++ {
		removed, err := s.timed(ctx, ops.remove)
		if err != nil {
			return ToggleResult{}, storeErr(ctx, err, "interaction")
		}
		if removed {
			return ToggleResult{State: Removed}, nil
		}

		tctx, cancel := s.bounded(ctx)
		err = ops.insert(tctx)
		cancel()
		switch {
		case err == nil:
			return ToggleResult{State: Added}, nil
		case errors.Is(err, repo.ErrDuplicate):
			hlog.CtxDebugf(ctx, "toggle %s lost insert race on attempt %d, retrying", lockKey, attempt)
			continue
		default:
			return ToggleResult{}, storeErr(ctx, err, "interaction")
		}
	}
	hlog.CtxWarnf(ctx, "toggle %s gave up after %d attempts", lockKey, s.opts.MaxToggleAttempts)
	return ToggleResult{}, errno.TransientErr.WithMessage("interaction is contended, please retry")
}

func (s *Service) timed(ctx context.Context, fn func(context.Context) (bool, error)) (bool, error) {
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	return fn(tctx)
}

// ensureTarget 目标必须存在，视频还必须对点赞者可见
func (s *Service) ensureTarget(ctx context.Context, actorID int64, target model.LikeTarget) error {
	if target.Kind() == model.TargetVideo {
		_, err := s.visibleVideo(ctx, actorID, target.ID())
		return err
	}
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	var err error
	switch target.Kind() {
	case model.TargetComment:
		_, err = s.store.GetComment(tctx, target.ID())
	case model.TargetTweet:
		_, err = s.store.GetTweet(tctx, target.ID())
	default:
		return errno.ValidationErr.WithMessage("invalid like target")
	}
	return storeErr(ctx, err, target.String())
}

// ToggleLike 对视频、评论或动态点赞/取消点赞
func (s *Service) ToggleLike(ctx context.Context, actorID int64, target model.LikeTarget) (ToggleResult, error) {
	if actorID <= 0 {
		return ToggleResult{}, errno.UnauthorizedErr
	}
	if !target.Valid() {
		return ToggleResult{}, errno.ValidationErr.WithMessage("invalid like target")
	}
	if err := s.ensureTarget(ctx, actorID, target); err != nil {
		return ToggleResult{}, err
	}

	res, err := s.toggle(ctx, fmt.Sprintf("like:%d:%s:%d", actorID, target, target.ID()), toggleOps{
		remove: func(ctx context.Context) (bool, error) {
			return s.store.DeleteLike(ctx, actorID, target)
		},
		insert: func(ctx context.Context) error {
			return s.store.InsertLike(ctx, model.NewLike(s.newID(), actorID, target))
		},
	})
	if err != nil {
		return res, err
	}
	s.publishInteraction(ctx, mq.NewInteractionEvent(mq.InteractionLike, target.String(), target.ID(), actorID, string(res.State)))
	return res, nil
}

func (s *Service) ToggleVideoLike(ctx context.Context, actorID, videoID int64) (ToggleResult, error) {
	return s.ToggleLike(ctx, actorID, model.VideoTarget(videoID))
}

func (s *Service) ToggleCommentLike(ctx context.Context, actorID, commentID int64) (ToggleResult, error) {
	return s.ToggleLike(ctx, actorID, model.CommentTarget(commentID))
}

func (s *Service) ToggleTweetLike(ctx context.Context, actorID, tweetID int64) (ToggleResult, error) {
	return s.ToggleLike(ctx, actorID, model.TweetTarget(tweetID))
}

// ToggleSubscription 订阅/取消订阅频道，不能订阅自己
func (s *Service) ToggleSubscription(ctx context.Context, actorID, channelID int64) (ToggleResult, error) {
	if actorID <= 0 {
		return ToggleResult{}, errno.UnauthorizedErr
	}
	if channelID <= 0 {
		return ToggleResult{}, errno.ValidationErr.WithMessage("invalid channel id")
	}
	if actorID == channelID {
		return ToggleResult{}, errno.InvalidOperationErr.WithMessage("You cannot subscribe to your own channel")
	}
	tctx, cancel := s.bounded(ctx)
	_, err := s.store.GetUser(tctx, channelID)
	cancel()
	if err != nil {
		return ToggleResult{}, storeErr(ctx, err, "channel")
	}

	res, err := s.toggle(ctx, fmt.Sprintf("sub:%d:%d", actorID, channelID), toggleOps{
		remove: func(ctx context.Context) (bool, error) {
			return s.store.DeleteSubscription(ctx, actorID, channelID)
		},
		insert: func(ctx context.Context) error {
			return s.store.InsertSubscription(ctx, &model.Subscription{
				ID:           s.newID(),
				SubscriberID: actorID,
				ChannelID:    channelID,
			})
		},
	})
	if err != nil {
		return res, err
	}
	s.publishInteraction(ctx, mq.NewInteractionEvent(mq.InteractionSubscription, "channel", channelID, actorID, string(res.State)))
	return res, nil
}
