package service

import (
	"context"

	"VidTube.com/cmd/model"
)

// 视图的关联查询：每个关联一次批量读取，再在进程内合并

func uniq(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *Service) usersByID(ctx context.Context, ids []int64) (map[int64]*model.User, error) {
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	users, err := s.store.GetUsers(tctx, uniq(ids))
	return users, storeErr(ctx, err, "user")
}

func (s *Service) likeCounts(ctx context.Context, kind model.TargetKind, ids []int64) (map[int64]int64, error) {
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	counts, err := s.store.CountLikes(tctx, kind, uniq(ids))
	return counts, storeErr(ctx, err, "like")
}

func (s *Service) subscriberCounts(ctx context.Context, channelIDs []int64) (map[int64]int64, error) {
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	counts, err := s.store.CountSubscribers(tctx, uniq(channelIDs))
	return counts, storeErr(ctx, err, "subscription")
}

// subscribedTo 匿名调用方不订阅任何频道
func (s *Service) subscribedTo(ctx context.Context, callerID int64, channelIDs []int64) (map[int64]bool, error) {
	if callerID <= 0 {
		return map[int64]bool{}, nil
	}
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	set, err := s.store.SubscribedTo(tctx, callerID, uniq(channelIDs))
	return set, storeErr(ctx, err, "subscription")
}

func (s *Service) channels(ctx context.Context, callerID int64, ownerIDs []int64) (map[int64]ChannelLite, error) {
	users, err := s.usersByID(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	counts, err := s.subscriberCounts(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.subscribedTo(ctx, callerID, ownerIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]ChannelLite, len(users))
	for id, u := range users {
		out[id] = ChannelLite{
			ID:               u.ID,
			Username:         u.Username,
			Avatar:           u.Avatar,
			SubscribersCount: counts[id],
			IsSubscribed:     subscribed[id],
		}
	}
	return out, nil
}

// videoViews 作者信息缺失的视频仍然返回，作者字段只保留ID
func (s *Service) videoViews(ctx context.Context, callerID int64, videos []*model.Video, scores map[int64]float64) ([]VideoView, error) {
	ids := make([]int64, 0, len(videos))
	owners := make([]int64, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
		owners = append(owners, v.OwnerID)
	}
	chans, err := s.channels(ctx, callerID, owners)
	if err != nil {
		return nil, err
	}
	likes, err := s.likeCounts(ctx, model.TargetVideo, ids)
	if err != nil {
		return nil, err
	}
	out := make([]VideoView, 0, len(videos))
	for _, v := range videos {
		owner, ok := chans[v.OwnerID]
		if !ok {
			owner = ChannelLite{ID: v.OwnerID}
		}
		view := VideoView{
			ID:          v.ID,
			VideoFile:   v.VideoFile,
			Thumbnail:   v.Thumbnail,
			Title:       v.Title,
			Description: v.Description,
			Duration:    v.Duration,
			Views:       v.Views,
			IsPublished: v.IsPublished,
			CreatedAt:   v.CreatedAt,
			UpdatedAt:   v.UpdatedAt,
			Owner:       owner,
			LikesCount:  likes[v.ID],
		}
		if score, ok := scores[v.ID]; ok {
			view.Score = &score
		}
		out = append(out, view)
	}
	return out, nil
}
