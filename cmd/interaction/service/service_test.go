package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"VidTube.com/cmd/interaction/dal/memdb"
	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/mq"
	"github.com/stretchr/testify/require"
)

type recordingProducer struct {
	mu           sync.Mutex
	interactions []*mq.InteractionEvent
	videos       []*mq.VideoEvent
}

func (p *recordingProducer) PublishInteractionEvent(_ context.Context, e *mq.InteractionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.interactions = append(p.interactions, e)
	return nil
}

func (p *recordingProducer) PublishVideoEvent(_ context.Context, e *mq.VideoEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.videos = append(p.videos, e)
	return nil
}

func (p *recordingProducer) Close() error { return nil }

func sequence() func() int64 {
	var n int64 = 1000
	return func() int64 { return atomic.AddInt64(&n, 1) }
}

func newService(t *testing.T, store repo.Store, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{WithIDGenerator(sequence())}, opts...)
	return New(store, DefaultOptions(), opts...)
}

func createUser(t *testing.T, store repo.Store, id int64, name string) {
	t.Helper()
	require.NoError(t, store.CreateUser(context.Background(), &model.User{ID: id, Username: name, Email: name + "@example.com"}))
}

func createVideo(t *testing.T, store repo.Store, id, owner int64, views int64) {
	t.Helper()
	require.NoError(t, store.CreateVideo(context.Background(), &model.Video{
		ID: id, OwnerID: owner, Title: "video", Views: views, IsPublished: true,
	}))
}

func likeRows(t *testing.T, store repo.Store, target model.LikeTarget) int64 {
	t.Helper()
	counts, err := store.CountLikes(context.Background(), target.Kind(), []int64{target.ID()})
	require.NoError(t, err)
	return counts[target.ID()]
}

func TestToggleLikeAlternates(t *testing.T) {
	store := memdb.New()
	createUser(t, store, 1, "owner")
	createUser(t, store, 2, "fan")
	createVideo(t, store, 10, 1, 0)
	producer := &recordingProducer{}
	svc := newService(t, store, WithProducer(producer))
	ctx := context.Background()

	res, err := svc.ToggleVideoLike(ctx, 2, 10)
	require.NoError(t, err)
	require.Equal(t, Added, res.State)
	require.Equal(t, int64(1), likeRows(t, store, model.VideoTarget(10)))

	res, err = svc.ToggleVideoLike(ctx, 2, 10)
	require.NoError(t, err)
	require.Equal(t, Removed, res.State)
	require.Zero(t, likeRows(t, store, model.VideoTarget(10)))

	require.Len(t, producer.interactions, 2)
	require.Equal(t, "added", producer.interactions[0].State)
	require.Equal(t, "removed", producer.interactions[1].State)
}

func TestToggleLikeMissingTarget(t *testing.T) {
	store := memdb.New()
	createUser(t, store, 1, "owner")
	svc := newService(t, store)

	_, err := svc.ToggleCommentLike(context.Background(), 1, 404)
	require.ErrorIs(t, err, errno.NotFoundErr)
	_, err = svc.ToggleTweetLike(context.Background(), 1, 404)
	require.ErrorIs(t, err, errno.NotFoundErr)
}

func TestToggleLikeHiddenVideo(t *testing.T) {
	store := memdb.New()
	createUser(t, store, 1, "owner")
	createUser(t, store, 2, "fan")
	require.NoError(t, store.CreateVideo(context.Background(), &model.Video{ID: 11, OwnerID: 1, Title: "draft"}))
	svc := newService(t, store)
	ctx := context.Background()

	_, err := svc.ToggleVideoLike(ctx, 2, 11)
	require.ErrorIs(t, err, errno.NotFoundErr)
	_, err = svc.ToggleVideoLike(ctx, 2, 404)
	require.ErrorIs(t, err, errno.NotFoundErr)
	require.Zero(t, likeRows(t, store, model.VideoTarget(11)))

	res, err := svc.ToggleVideoLike(ctx, 1, 11)
	require.NoError(t, err)
	require.True(t, res.Active())
}

func TestToggleConcurrentParity(t *testing.T) {
	for _, n := range []int{1, 2, 7, 16, 33} {
		store := memdb.New()
		createUser(t, store, 1, "owner")
		createUser(t, store, 2, "fan")
		createVideo(t, store, 10, 1, 0)
		// 每次插入冲突都对应另一个调用的一次成功插入，n 次尝试足够让所有调用完成
		opts := DefaultOptions()
		opts.MaxToggleAttempts = n + 1
		svc := New(store, opts, WithIDGenerator(sequence()))

		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := svc.ToggleVideoLike(context.Background(), 2, 10); err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}
		require.Equal(t, int64(n%2), likeRows(t, store, model.VideoTarget(10)), "n=%d", n)
	}
}

// racyStore 在第一次插入前模拟另一个并发切换抢先插入了同一条点赞
type racyStore struct {
	*memdb.Store
	raced atomic.Bool
}

func (s *racyStore) InsertLike(ctx context.Context, like *model.Like) error {
	if s.raced.CompareAndSwap(false, true) {
		other := model.NewLike(like.ID+1_000_000, like.LikedBy, like.Target())
		if err := s.Store.InsertLike(ctx, other); err != nil {
			return err
		}
	}
	return s.Store.InsertLike(ctx, like)
}

func TestToggleRecoversFromDuplicateInsert(t *testing.T) {
	store := &racyStore{Store: memdb.New()}
	createUser(t, store, 1, "owner")
	createUser(t, store, 2, "fan")
	createVideo(t, store, 10, 1, 0)
	svc := newService(t, store)

	res, err := svc.ToggleVideoLike(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Equal(t, Removed, res.State)
	require.Zero(t, likeRows(t, store, model.VideoTarget(10)))
}

// stuckStore 每次插入都冲突，而删除永远找不到记录
type stuckStore struct {
	*memdb.Store
}

func (stuckStore) InsertLike(context.Context, *model.Like) error { return repo.ErrDuplicate }

func (stuckStore) DeleteLike(context.Context, int64, model.LikeTarget) (bool, error) {
	return false, nil
}

func TestToggleGivesUpAsTransient(t *testing.T) {
	store := stuckStore{Store: memdb.New()}
	createUser(t, store, 1, "owner")
	createVideo(t, store, 10, 1, 0)
	svc := newService(t, store)

	_, err := svc.ToggleVideoLike(context.Background(), 1, 10)
	require.ErrorIs(t, err, errno.TransientErr)
	require.True(t, errno.ConvertErr(err).Retryable())
}

func TestToggleTimesOutAsTransient(t *testing.T) {
	store := memdb.New()
	createUser(t, store, 1, "owner")
	svc := newService(t, store)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ToggleSubscription(ctx, 2, 1)
	require.ErrorIs(t, err, errno.TransientErr)
}

type countingLocker struct {
	locks, unlocks atomic.Int32
}

func (l *countingLocker) Lock(context.Context, string) (func(context.Context) error, error) {
	l.locks.Add(1)
	return func(context.Context) error {
		l.unlocks.Add(1)
		return nil
	}, nil
}

func TestToggleUsesLocker(t *testing.T) {
	store := memdb.New()
	createUser(t, store, 1, "owner")
	createUser(t, store, 2, "fan")
	locker := &countingLocker{}
	svc := newService(t, store, WithLocker(locker))

	_, err := svc.ToggleSubscription(context.Background(), 2, 1)
	require.NoError(t, err)
	require.Equal(t, int32(1), locker.locks.Load())
	require.Equal(t, int32(1), locker.unlocks.Load())
}

func TestSelfSubscriptionRejected(t *testing.T) {
	store := memdb.New()
	createUser(t, store, 1, "owner")
	svc := newService(t, store)

	_, err := svc.ToggleSubscription(context.Background(), 1, 1)
	require.ErrorIs(t, err, errno.InvalidOperationErr)

	counts, err := store.CountSubscribers(context.Background(), []int64{1})
	require.NoError(t, err)
	require.Zero(t, counts[1])
}

func TestSubscribeThenUnsubscribe(t *testing.T) {
	store := memdb.New()
	createUser(t, store, 1, "a")
	createUser(t, store, 2, "b")
	svc := newService(t, store)
	ctx := context.Background()

	res, err := svc.ToggleSubscription(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, Added, res.State)
	list, err := svc.GetChannelSubscribers(ctx, 2, PageQuery{})
	require.NoError(t, err)
	require.Equal(t, int64(1), list.TotalSubscribers)
	require.Len(t, list.Subscribers, 1)
	require.Equal(t, "a", list.Subscribers[0].Subscriber.Username)

	res, err = svc.ToggleSubscription(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, Removed, res.State)
	list, err = svc.GetChannelSubscribers(ctx, 2, PageQuery{})
	require.NoError(t, err)
	require.Zero(t, list.TotalSubscribers)
	require.Empty(t, list.Subscribers)
}

func TestToggleSubscriptionUnknownChannel(t *testing.T) {
	store := memdb.New()
	createUser(t, store, 1, "a")
	svc := newService(t, store)

	_, err := svc.ToggleSubscription(context.Background(), 1, 99)
	require.ErrorIs(t, err, errno.NotFoundErr)
}
