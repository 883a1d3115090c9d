package service

import (
	"context"
	"strings"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/pagination"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// FeedQuery Query 非空时按相关度排序，此时只支持页码分页
type FeedQuery struct {
	Query   string
	OwnerID int64
	PageQuery
}

func (s *Service) getVideo(ctx context.Context, id int64) (*model.Video, error) {
	if id <= 0 {
		return nil, errno.ValidationErr.WithMessage("invalid video id")
	}
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	v, err := s.store.GetVideo(tctx, id)
	if err != nil {
		return nil, storeErr(ctx, err, "video")
	}
	return v, nil
}

// visibleVideo 对调用方不可见的视频按不存在处理
func (s *Service) visibleVideo(ctx context.Context, callerID, id int64) (*model.Video, error) {
	v, err := s.getVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.VisibleTo(callerID) {
		return nil, errno.NotFoundErr.WithMessage("video not found")
	}
	return v, nil
}

func (s *Service) GetVideoFeed(ctx context.Context, callerID int64, q FeedQuery) (pagination.Page[VideoView], error) {
	q.Query = strings.TrimSpace(q.Query)
	if q.Query != "" {
		return s.searchVideos(ctx, callerID, q)
	}
	r, err := s.request(q.PageQuery, VideoSortFields)
	if err != nil {
		return pagination.Page[VideoView]{}, err
	}
	vq := repo.VideoQuery{OwnerID: q.OwnerID, ViewerID: callerID, Page: r}
	l, err := list(ctx, s, r, "video",
		func(ctx context.Context) ([]*model.Video, error) { return s.store.ListVideos(ctx, vq) },
		func(ctx context.Context) (int64, error) { return s.store.CountVideos(ctx, vq) })
	if err != nil {
		return pagination.Page[VideoView]{}, err
	}
	items, err := s.videoViews(ctx, callerID, l.rows, nil)
	if err != nil {
		return pagination.Page[VideoView]{}, err
	}
	return page(items, l.info), nil
}

// searchVideos 检索后端只返回 (ID, 分数)，视频本身从记录存储回读；
// 索引滞后导致已删除或已不可见的视频会被跳过
func (s *Service) searchVideos(ctx context.Context, callerID int64, q FeedQuery) (pagination.Page[VideoView], error) {
	if q.Cursor != "" || q.UseCursor {
		return pagination.Page[VideoView]{}, errno.ValidationErr.WithMessage("cursor pagination is not supported with a search query")
	}
	sort, err := pagination.ParseSort(q.SortBy, q.SortType, VideoSortFields)
	if err != nil {
		return pagination.Page[VideoView]{}, err
	}
	r, err := pagination.Offset(q.Page, q.Limit, sort, s.opts.Limits)
	if err != nil {
		return pagination.Page[VideoView]{}, err
	}

	tctx, cancel := s.bounded(ctx)
	hits, total, err := s.searcher.SearchVideos(tctx, repo.VideoSearch{
		Text:     q.Query,
		OwnerID:  q.OwnerID,
		ViewerID: callerID,
		Skip:     r.Skip(),
		Limit:    r.Size,
	})
	cancel()
	if err != nil {
		return pagination.Page[VideoView]{}, storeErr(ctx, err, "search")
	}

	ids := make([]int64, 0, len(hits))
	scores := make(map[int64]float64, len(hits))
	for _, h := range hits {
		ids = append(ids, h.VideoID)
		scores[h.VideoID] = h.Score
	}
	tctx, cancel = s.bounded(ctx)
	byID, err := s.store.GetVideos(tctx, ids)
	cancel()
	if err != nil {
		return pagination.Page[VideoView]{}, storeErr(ctx, err, "video")
	}
	videos := make([]*model.Video, 0, len(hits))
	for _, h := range hits {
		v, ok := byID[h.VideoID]
		if !ok || !v.VisibleTo(callerID) {
			hlog.CtxDebugf(ctx, "search hit %d is stale, skipped", h.VideoID)
			continue
		}
		videos = append(videos, v)
	}
	items, err := s.videoViews(ctx, callerID, videos, scores)
	if err != nil {
		return pagination.Page[VideoView]{}, err
	}
	return pagination.NewOffsetPage(items, r, total), nil
}

// GetVideoByID 已登录的调用方观看时记录观看历史并增加播放量
func (s *Service) GetVideoByID(ctx context.Context, callerID, videoID int64) (VideoView, error) {
	v, err := s.visibleVideo(ctx, callerID, videoID)
	if err != nil {
		return VideoView{}, err
	}
	if callerID > 0 {
		if err := s.recordView(ctx, callerID, v); err != nil {
			return VideoView{}, err
		}
	}
	views, err := s.videoViews(ctx, callerID, []*model.Video{v}, nil)
	if err != nil {
		return VideoView{}, err
	}
	return views[0], nil
}

func (s *Service) recordView(ctx context.Context, callerID int64, v *model.Video) error {
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	err := s.store.RecordView(tctx, &model.WatchHistory{
		ID:        s.newID(),
		UserID:    callerID,
		VideoID:   v.ID,
		WatchedAt: s.now(),
	})
	if err != nil {
		return storeErr(ctx, err, "video")
	}
	v.Views++
	return nil
}
