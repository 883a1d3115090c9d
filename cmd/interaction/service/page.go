package service

import (
	"context"

	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/pagination"
)

// PageQuery 调用方传入的分页参数，原样来自请求
type PageQuery struct {
	Page      int
	Limit     int
	Cursor    string
	UseCursor bool
	SortBy    string
	SortType  string
}

// 各视图允许的排序字段
var (
	CommentSortFields      = pagination.NewFields(pagination.CreatedAt, pagination.UpdatedAt)
	TweetSortFields        = pagination.NewFields(pagination.CreatedAt, pagination.UpdatedAt)
	SubscriptionSortFields = pagination.NewFields(pagination.CreatedAt)
	LikeSortFields         = pagination.NewFields(pagination.CreatedAt)
	HistorySortFields      = pagination.NewFields(pagination.WatchedAt)
	PlaylistSortFields     = pagination.NewFields(pagination.CreatedAt, pagination.UpdatedAt, pagination.Name)
	VideoSortFields        = pagination.NewFields(pagination.CreatedAt,
		pagination.UpdatedAt, pagination.Views, pagination.Duration, pagination.Title)

	// 播放列表内的视频按加入时间排序
	PlaylistVideoSortFields = pagination.NewFields(pagination.CreatedAt)
)

func (s *Service) request(q PageQuery, fields pagination.Fields) (pagination.Request, error) {
	sort, err := pagination.ParseSort(q.SortBy, q.SortType, fields)
	if err != nil {
		return pagination.Request{}, err
	}
	if q.Cursor != "" || q.UseCursor {
		if q.Page > 1 {
			return pagination.Request{}, errno.ValidationErr.WithMessage("page and cursor cannot be combined")
		}
		return pagination.After(q.Cursor, q.Limit, sort, s.opts.Limits)
	}
	return pagination.Offset(q.Page, q.Limit, sort, s.opts.Limits)
}

// listing 一页基础记录以及生成分页信息所需的数据
type listing[S pagination.Keyed] struct {
	rows []S
	info pagination.Info
}

// list 取回一页基础记录；页码模式额外统计总数，游标模式不统计
func list[S pagination.Keyed](ctx context.Context, s *Service, r pagination.Request, what string,
	fetch func(context.Context) ([]S, error), count func(context.Context) (int64, error)) (listing[S], error) {
	tctx, cancel := s.bounded(ctx)
	rows, err := fetch(tctx)
	cancel()
	if err != nil {
		return listing[S]{}, storeErr(ctx, err, what)
	}
	if r.Mode == pagination.ModeCursor {
		window, next, more := pagination.Trim(rows, r)
		return listing[S]{rows: window, info: pagination.CursorInfo(r, next, more)}, nil
	}
	tctx, cancel = s.bounded(ctx)
	total, err := count(tctx)
	cancel()
	if err != nil {
		return listing[S]{}, storeErr(ctx, err, what)
	}
	return listing[S]{rows: rows, info: pagination.OffsetInfo(r, total)}, nil
}

func page[T any](items []T, info pagination.Info) pagination.Page[T] {
	if items == nil {
		items = []T{}
	}
	return pagination.Page[T]{Items: items, Info: info}
}

// totalOf 页码模式下复用已统计的总数，游标模式下单独统计
func totalOf(ctx context.Context, info pagination.Info, count func(context.Context) (int64, error)) (int64, error) {
	if info.TotalItems != nil {
		return *info.TotalItems, nil
	}
	return count(ctx)
}
