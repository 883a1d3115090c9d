package memdb

import (
	"context"
	"sync"
	"time"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/model"
)

type likeKey struct {
	likedBy int64
	kind    model.TargetKind
	target  int64
}

type subKey struct {
	subscriber int64
	channel    int64
}

type historyKey struct {
	user  int64
	video int64
}

type playlistKey struct {
	playlist int64
	video    int64
}

// Store 进程内记录存储，与 MySQL 实现遵守同样的唯一约束和查询语义，
// 用于单元测试和本地无依赖运行
type Store struct {
	mu sync.RWMutex

	users    map[int64]*model.User
	videos   map[int64]*model.Video
	comments map[int64]*model.Comment
	tweets   map[int64]*model.Tweet

	likes    map[int64]*model.Like
	likeKeys map[likeKey]int64

	subs    map[int64]*model.Subscription
	subKeys map[subKey]int64

	history     map[int64]*model.WatchHistory
	historyKeys map[historyKey]int64

	playlists    map[int64]*model.Playlist
	entries      map[int64]*model.PlaylistVideo
	playlistKeys map[playlistKey]int64

	now func() time.Time
}

var _ repo.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:       make(map[int64]*model.User),
		videos:      make(map[int64]*model.Video),
		comments:    make(map[int64]*model.Comment),
		tweets:      make(map[int64]*model.Tweet),
		likes:       make(map[int64]*model.Like),
		likeKeys:    make(map[likeKey]int64),
		subs:        make(map[int64]*model.Subscription),
		subKeys:     make(map[subKey]int64),
		history:     make(map[int64]*model.WatchHistory),
		historyKeys: make(map[historyKey]int64),

		playlists:    make(map[int64]*model.Playlist),
		entries:      make(map[int64]*model.PlaylistVideo),
		playlistKeys: make(map[playlistKey]int64),
		now:          time.Now,
	}
}

// stamp 与 gorm 一致：创建时间为零值时补齐，更新时间总是刷新
func (s *Store) stamp(created *time.Time, updated *time.Time) {
	now := s.now()
	if created != nil && created.IsZero() {
		*created = now
	}
	if updated != nil {
		*updated = now
	}
}

func alive(ctx context.Context) error {
	return ctx.Err()
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneAll[T any](in []*T) []*T {
	out := make([]*T, 0, len(in))
	for _, v := range in {
		out = append(out, clone(v))
	}
	return out
}
