package service

import (
	"context"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/pagination"
)

func (s *Service) getUser(ctx context.Context, id int64, what string) (*model.User, error) {
	if id <= 0 {
		return nil, errno.ValidationErr.WithMessage("invalid " + what + " id")
	}
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	u, err := s.store.GetUser(tctx, id)
	if err != nil {
		return nil, storeErr(ctx, err, what)
	}
	return u, nil
}

// GetVideoComments 视频下的评论，没有点赞的评论 likesCount 为 0
func (s *Service) GetVideoComments(ctx context.Context, videoID int64, q PageQuery) (pagination.Page[CommentView], error) {
	r, err := s.request(q, CommentSortFields)
	if err != nil {
		return pagination.Page[CommentView]{}, err
	}
	if _, err := s.getVideo(ctx, videoID); err != nil {
		return pagination.Page[CommentView]{}, err
	}
	l, err := list(ctx, s, r, "comment",
		func(ctx context.Context) ([]*model.Comment, error) { return s.store.ListComments(ctx, videoID, r) },
		func(ctx context.Context) (int64, error) { return s.store.CountComments(ctx, videoID) })
	if err != nil {
		return pagination.Page[CommentView]{}, err
	}

	ids := make([]int64, 0, len(l.rows))
	owners := make([]int64, 0, len(l.rows))
	for _, c := range l.rows {
		ids = append(ids, c.ID)
		owners = append(owners, c.OwnerID)
	}
	users, err := s.usersByID(ctx, owners)
	if err != nil {
		return pagination.Page[CommentView]{}, err
	}
	likes, err := s.likeCounts(ctx, model.TargetComment, ids)
	if err != nil {
		return pagination.Page[CommentView]{}, err
	}
	items := pagination.Map(l.rows, func(c *model.Comment) CommentView {
		return CommentView{
			ID:         c.ID,
			Content:    c.Content,
			CreatedAt:  c.CreatedAt,
			UpdatedAt:  c.UpdatedAt,
			Owner:      lite(users[c.OwnerID]),
			LikesCount: likes[c.ID],
		}
	})
	return page(items, l.info), nil
}

// GetChannelStats 频道汇总：播放量、视频数、订阅数以及视频/评论/动态收到的点赞总数
func (s *Service) GetChannelStats(ctx context.Context, channelID int64) (ChannelStats, error) {
	if _, err := s.getUser(ctx, channelID, "channel"); err != nil {
		return ChannelStats{}, err
	}
	var stats ChannelStats
	tctx, cancel := s.bounded(ctx)
	views, videos, err := s.store.ChannelVideoTotals(tctx, channelID)
	cancel()
	if err != nil {
		return ChannelStats{}, storeErr(ctx, err, "video")
	}
	stats.TotalViews, stats.TotalVideos = views, videos

	subs, err := s.subscriberCounts(ctx, []int64{channelID})
	if err != nil {
		return ChannelStats{}, err
	}
	stats.TotalSubscribers = subs[channelID]

	for _, kind := range []model.TargetKind{model.TargetVideo, model.TargetComment, model.TargetTweet} {
		tctx, cancel := s.bounded(ctx)
		n, err := s.store.CountLikesReceived(tctx, channelID, kind)
		cancel()
		if err != nil {
			return ChannelStats{}, storeErr(ctx, err, "like")
		}
		stats.TotalLikes += n
	}
	return stats, nil
}

// GetChannelSubscribers totalSubscribers 为频道的全部订阅数，与当前页大小无关
func (s *Service) GetChannelSubscribers(ctx context.Context, channelID int64, q PageQuery) (SubscriberList, error) {
	r, err := s.request(q, SubscriptionSortFields)
	if err != nil {
		return SubscriberList{}, err
	}
	if _, err := s.getUser(ctx, channelID, "channel"); err != nil {
		return SubscriberList{}, err
	}
	l, err := list(ctx, s, r, "subscription",
		func(ctx context.Context) ([]*model.Subscription, error) {
			return s.store.ListSubscribers(ctx, channelID, r)
		},
		func(ctx context.Context) (int64, error) {
			counts, err := s.store.CountSubscribers(ctx, []int64{channelID})
			return counts[channelID], err
		})
	if err != nil {
		return SubscriberList{}, err
	}

	ids := make([]int64, 0, len(l.rows))
	for _, sub := range l.rows {
		ids = append(ids, sub.SubscriberID)
	}
	users, err := s.usersByID(ctx, ids)
	if err != nil {
		return SubscriberList{}, err
	}
	total, err := totalOf(ctx, l.info, func(ctx context.Context) (int64, error) {
		counts, err := s.subscriberCounts(ctx, []int64{channelID})
		return counts[channelID], err
	})
	if err != nil {
		return SubscriberList{}, err
	}
	out := SubscriberList{
		Subscribers:      make([]SubscriberView, 0, len(l.rows)),
		TotalSubscribers: total,
		Info:             l.info,
	}
	for _, sub := range l.rows {
		u, ok := users[sub.SubscriberID]
		if !ok {
			continue
		}
		out.Subscribers = append(out.Subscribers, SubscriberView{
			ID:           sub.ID,
			SubscribedAt: sub.CreatedAt,
			Subscriber:   u.Lite(),
		})
	}
	return out, nil
}

// GetSubscribedChannels subscriberID 订阅的频道及每个频道的订阅数
func (s *Service) GetSubscribedChannels(ctx context.Context, subscriberID int64, q PageQuery) (SubscribedChannelList, error) {
	r, err := s.request(q, SubscriptionSortFields)
	if err != nil {
		return SubscribedChannelList{}, err
	}
	if _, err := s.getUser(ctx, subscriberID, "subscriber"); err != nil {
		return SubscribedChannelList{}, err
	}
	l, err := list(ctx, s, r, "subscription",
		func(ctx context.Context) ([]*model.Subscription, error) {
			return s.store.ListSubscriptions(ctx, subscriberID, r)
		},
		func(ctx context.Context) (int64, error) { return s.store.CountSubscriptions(ctx, subscriberID) })
	if err != nil {
		return SubscribedChannelList{}, err
	}

	ids := make([]int64, 0, len(l.rows))
	for _, sub := range l.rows {
		ids = append(ids, sub.ChannelID)
	}
	users, err := s.usersByID(ctx, ids)
	if err != nil {
		return SubscribedChannelList{}, err
	}
	counts, err := s.subscriberCounts(ctx, ids)
	if err != nil {
		return SubscribedChannelList{}, err
	}
	total, err := totalOf(ctx, l.info, func(ctx context.Context) (int64, error) {
		tctx, cancel := s.bounded(ctx)
		defer cancel()
		n, err := s.store.CountSubscriptions(tctx, subscriberID)
		return n, storeErr(ctx, err, "subscription")
	})
	if err != nil {
		return SubscribedChannelList{}, err
	}

	out := SubscribedChannelList{
		Channels:                make([]SubscribedChannel, 0, len(l.rows)),
		TotalSubscribedChannels: total,
		Info:                    l.info,
	}
	for _, sub := range l.rows {
		u, ok := users[sub.ChannelID]
		if !ok {
			continue
		}
		out.Channels = append(out.Channels, SubscribedChannel{
			ID:               u.ID,
			Username:         u.Username,
			Avatar:           u.Avatar,
			TotalSubscribers: counts[u.ID],
		})
	}
	return out, nil
}

// GetLikedVideos 调用方点赞过且仍然存在、对其可见的视频
func (s *Service) GetLikedVideos(ctx context.Context, callerID int64, q PageQuery) (pagination.Page[LikedVideoView], error) {
	if callerID <= 0 {
		return pagination.Page[LikedVideoView]{}, errno.UnauthorizedErr
	}
	r, err := s.request(q, LikeSortFields)
	if err != nil {
		return pagination.Page[LikedVideoView]{}, err
	}
	l, err := list(ctx, s, r, "like",
		func(ctx context.Context) ([]*model.Like, error) { return s.store.ListLikedVideos(ctx, callerID, r) },
		func(ctx context.Context) (int64, error) { return s.store.CountLikedVideos(ctx, callerID) })
	if err != nil {
		return pagination.Page[LikedVideoView]{}, err
	}

	ids := make([]int64, 0, len(l.rows))
	for _, like := range l.rows {
		ids = append(ids, like.TargetID)
	}
	tctx, cancel := s.bounded(ctx)
	videos, err := s.store.GetVideos(tctx, uniq(ids))
	cancel()
	if err != nil {
		return pagination.Page[LikedVideoView]{}, storeErr(ctx, err, "video")
	}
	owners := make([]int64, 0, len(videos))
	for _, v := range videos {
		owners = append(owners, v.OwnerID)
	}
	users, err := s.usersByID(ctx, owners)
	if err != nil {
		return pagination.Page[LikedVideoView]{}, err
	}

	items := make([]LikedVideoView, 0, len(l.rows))
	for _, like := range l.rows {
		v, ok := videos[like.TargetID]
		if !ok {
			continue
		}
		items = append(items, LikedVideoView{
			ID:        like.ID,
			LikedBy:   like.LikedBy,
			CreatedAt: like.CreatedAt,
			VideoDetails: VideoDetails{
				ID:        v.ID,
				VideoFile: v.VideoFile,
				Thumbnail: v.Thumbnail,
				Title:     v.Title,
				Duration:  v.Duration,
				Views:     v.Views,
				Owner:     lite(users[v.OwnerID]),
			},
		})
	}
	return page(items, l.info), nil
}

// GetChannelProfile 频道主页：订阅数、该用户订阅的频道数以及调用方是否已订阅
func (s *Service) GetChannelProfile(ctx context.Context, callerID, channelID int64) (ChannelProfile, error) {
	u, err := s.getUser(ctx, channelID, "channel")
	if err != nil {
		return ChannelProfile{}, err
	}
	counts, err := s.subscriberCounts(ctx, []int64{channelID})
	if err != nil {
		return ChannelProfile{}, err
	}
	subscribed, err := s.subscribedTo(ctx, callerID, []int64{channelID})
	if err != nil {
		return ChannelProfile{}, err
	}
	tctx, cancel := s.bounded(ctx)
	following, err := s.store.CountSubscriptions(tctx, channelID)
	cancel()
	if err != nil {
		return ChannelProfile{}, storeErr(ctx, err, "subscription")
	}
	return ChannelProfile{
		ID:                       u.ID,
		Username:                 u.Username,
		FullName:                 u.FullName,
		Email:                    u.Email,
		Avatar:                   u.Avatar,
		CoverImage:               u.CoverImage,
		SubscribersCount:         counts[channelID],
		ChannelSubscribedToCount: following,
		IsSubscribed:             subscribed[channelID],
	}, nil
}

// GetWatchHistory 调用方的观看记录，按最近观看时间排序
func (s *Service) GetWatchHistory(ctx context.Context, callerID int64, q PageQuery) (pagination.Page[HistoryView], error) {
	if callerID <= 0 {
		return pagination.Page[HistoryView]{}, errno.UnauthorizedErr
	}
	r, err := s.request(q, HistorySortFields)
	if err != nil {
		return pagination.Page[HistoryView]{}, err
	}
	l, err := list(ctx, s, r, "watch history",
		func(ctx context.Context) ([]*model.WatchHistory, error) { return s.store.ListWatchHistory(ctx, callerID, r) },
		func(ctx context.Context) (int64, error) { return s.store.CountWatchHistory(ctx, callerID) })
	if err != nil {
		return pagination.Page[HistoryView]{}, err
	}

	ids := make([]int64, 0, len(l.rows))
	for _, h := range l.rows {
		ids = append(ids, h.VideoID)
	}
	tctx, cancel := s.bounded(ctx)
	byID, err := s.store.GetVideos(tctx, uniq(ids))
	cancel()
	if err != nil {
		return pagination.Page[HistoryView]{}, storeErr(ctx, err, "video")
	}
	videos := make([]*model.Video, 0, len(byID))
	for _, id := range uniq(ids) {
		if v, ok := byID[id]; ok {
			videos = append(videos, v)
		}
	}
	views, err := s.videoViews(ctx, callerID, videos, nil)
	if err != nil {
		return pagination.Page[HistoryView]{}, err
	}
	viewByID := make(map[int64]VideoView, len(views))
	for _, v := range views {
		viewByID[v.ID] = v
	}

	items := make([]HistoryView, 0, len(l.rows))
	for _, h := range l.rows {
		v, ok := viewByID[h.VideoID]
		if !ok {
			continue
		}
		items = append(items, HistoryView{WatchedAt: h.WatchedAt, Video: v})
	}
	return page(items, l.info), nil
}

// GetUserTweets 用户发布的动态及点赞数
func (s *Service) GetUserTweets(ctx context.Context, userID int64, q PageQuery) (pagination.Page[TweetView], error) {
	r, err := s.request(q, TweetSortFields)
	if err != nil {
		return pagination.Page[TweetView]{}, err
	}
	u, err := s.getUser(ctx, userID, "user")
	if err != nil {
		return pagination.Page[TweetView]{}, err
	}
	l, err := list(ctx, s, r, "tweet",
		func(ctx context.Context) ([]*model.Tweet, error) { return s.store.ListTweets(ctx, userID, r) },
		func(ctx context.Context) (int64, error) { return s.store.CountTweets(ctx, userID) })
	if err != nil {
		return pagination.Page[TweetView]{}, err
	}
	ids := make([]int64, 0, len(l.rows))
	for _, t := range l.rows {
		ids = append(ids, t.ID)
	}
	likes, err := s.likeCounts(ctx, model.TargetTweet, ids)
	if err != nil {
		return pagination.Page[TweetView]{}, err
	}
	items := pagination.Map(l.rows, func(t *model.Tweet) TweetView {
		return TweetView{
			ID:         t.ID,
			Content:    t.Content,
			CreatedAt:  t.CreatedAt,
			UpdatedAt:  t.UpdatedAt,
			Owner:      u.Lite(),
			LikesCount: likes[t.ID],
		}
	})
	return page(items, l.info), nil
}

// visiblePlaylist 非公开的播放列表对作者以外的调用方表现为不存在
func (s *Service) visiblePlaylist(ctx context.Context, callerID, playlistID int64) (*model.Playlist, error) {
	if playlistID <= 0 {
		return nil, errno.ValidationErr.WithMessage("invalid playlist id")
	}
	tctx, cancel := s.bounded(ctx)
	p, err := s.store.GetPlaylist(tctx, playlistID)
	cancel()
	if err != nil {
		return nil, storeErr(ctx, err, "playlist")
	}
	if !p.VisibleTo(callerID) {
		return nil, errno.NotFoundErr.WithMessage("playlist not found")
	}
	return p, nil
}

func (s *Service) playlistVideoCounts(ctx context.Context, callerID int64, ids []int64) (map[int64]int64, error) {
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	counts, err := s.store.CountPlaylistVideos(tctx, ids, callerID)
	if err != nil {
		return nil, storeErr(ctx, err, "playlist")
	}
	return counts, nil
}

func playlistView(p *model.Playlist, owner UserLite, total int64) PlaylistView {
	return PlaylistView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		IsPublic:    p.IsPublic,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Owner:       owner,
		TotalVideos: total,
	}
}

// GetUserPlaylists 作者本人能看到全部播放列表，其他人只能看到公开的
func (s *Service) GetUserPlaylists(ctx context.Context, callerID, userID int64, q PageQuery) (pagination.Page[PlaylistView], error) {
	r, err := s.request(q, PlaylistSortFields)
	if err != nil {
		return pagination.Page[PlaylistView]{}, err
	}
	u, err := s.getUser(ctx, userID, "user")
	if err != nil {
		return pagination.Page[PlaylistView]{}, err
	}
	pq := repo.PlaylistQuery{OwnerID: userID, ViewerID: callerID, Page: r}
	l, err := list(ctx, s, r, "playlist",
		func(ctx context.Context) ([]*model.Playlist, error) { return s.store.ListPlaylists(ctx, pq) },
		func(ctx context.Context) (int64, error) { return s.store.CountPlaylists(ctx, pq) })
	if err != nil {
		return pagination.Page[PlaylistView]{}, err
	}
	ids := make([]int64, 0, len(l.rows))
	for _, p := range l.rows {
		ids = append(ids, p.ID)
	}
	counts, err := s.playlistVideoCounts(ctx, callerID, ids)
	if err != nil {
		return pagination.Page[PlaylistView]{}, err
	}
	items := pagination.Map(l.rows, func(p *model.Playlist) PlaylistView {
		return playlistView(p, u.Lite(), counts[p.ID])
	})
	return page(items, l.info), nil
}

// GetPlaylistByID 播放列表、作者以及按加入时间分页的视频，每个视频带上其作者
func (s *Service) GetPlaylistByID(ctx context.Context, callerID, playlistID int64, q PageQuery) (PlaylistDetail, error) {
	r, err := s.request(q, PlaylistVideoSortFields)
	if err != nil {
		return PlaylistDetail{}, err
	}
	p, err := s.visiblePlaylist(ctx, callerID, playlistID)
	if err != nil {
		return PlaylistDetail{}, err
	}
	l, err := list(ctx, s, r, "playlist",
		func(ctx context.Context) ([]*model.PlaylistVideo, error) {
			return s.store.ListPlaylistVideos(ctx, playlistID, callerID, r)
		},
		func(ctx context.Context) (int64, error) {
			counts, err := s.store.CountPlaylistVideos(ctx, []int64{playlistID}, callerID)
			return counts[playlistID], err
		})
	if err != nil {
		return PlaylistDetail{}, err
	}

	ids := make([]int64, 0, len(l.rows))
	for _, e := range l.rows {
		ids = append(ids, e.VideoID)
	}
	tctx, cancel := s.bounded(ctx)
	videos, err := s.store.GetVideos(tctx, ids)
	cancel()
	if err != nil {
		return PlaylistDetail{}, storeErr(ctx, err, "video")
	}
	owners := []int64{p.OwnerID}
	for _, v := range videos {
		owners = append(owners, v.OwnerID)
	}
	users, err := s.usersByID(ctx, owners)
	if err != nil {
		return PlaylistDetail{}, err
	}
	total, err := totalOf(ctx, l.info, func(ctx context.Context) (int64, error) {
		counts, err := s.playlistVideoCounts(ctx, callerID, []int64{playlistID})
		return counts[playlistID], err
	})
	if err != nil {
		return PlaylistDetail{}, err
	}

	items := make([]PlaylistVideoView, 0, len(l.rows))
	for _, e := range l.rows {
		v, ok := videos[e.VideoID]
		if !ok {
			continue
		}
		items = append(items, PlaylistVideoView{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			Thumbnail:   v.Thumbnail,
			Duration:    v.Duration,
			Views:       v.Views,
			CreatedAt:   v.CreatedAt,
			AddedAt:     e.CreatedAt,
			Owner:       lite(users[v.OwnerID]),
		})
	}
	return PlaylistDetail{
		PlaylistView: playlistView(p, lite(users[p.OwnerID]), total),
		Videos:       page(items, l.info),
	}, nil
}
