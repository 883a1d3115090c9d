package service

import (
	"context"
	"time"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/pagination"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// 删除父记录时对子记录的处理方式
const (
	OrphanCascade = "cascade"
	OrphanKeep    = "orphan"
)

// Locker 分布式互斥锁，返回的函数用于释放锁
type Locker interface {
	Lock(ctx context.Context, key string) (func(context.Context) error, error)
}

type Options struct {
	StoreTimeout      time.Duration
	MaxToggleAttempts int
	OrphanPolicy      string
	Limits            pagination.Limits
}

func DefaultOptions() Options {
	return Options{
		StoreTimeout:      constants.StoreTimeout,
		MaxToggleAttempts: constants.ToggleMaxAttempts,
		OrphanPolicy:      OrphanCascade,
		Limits:            pagination.DefaultLimits,
	}
}

// Service 互动切换、派生视图、检索以及内容生命周期的入口
type Service struct {
	store    repo.Store
	searcher repo.VideoSearcher
	locker   Locker
	producer mq.MessageProducer
	opts     Options
	newID    func() int64
	now      func() time.Time
}

type Option func(*Service)

// WithSearcher 替换默认的检索后端（记录存储自带的全文检索）
func WithSearcher(searcher repo.VideoSearcher) Option {
	return func(s *Service) { s.searcher = searcher }
}

func WithLocker(locker Locker) Option {
	return func(s *Service) { s.locker = locker }
}

func WithProducer(producer mq.MessageProducer) Option {
	return func(s *Service) { s.producer = producer }
}

func WithIDGenerator(newID func() int64) Option {
	return func(s *Service) { s.newID = newID }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(store repo.Store, opts Options, options ...Option) *Service {
	def := DefaultOptions()
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = def.StoreTimeout
	}
	if opts.MaxToggleAttempts <= 0 {
		opts.MaxToggleAttempts = def.MaxToggleAttempts
	}
	if opts.OrphanPolicy != OrphanKeep {
		opts.OrphanPolicy = OrphanCascade
	}
	if opts.Limits.Default <= 0 || opts.Limits.Max <= 0 {
		opts.Limits = def.Limits
	}
	s := &Service{
		store:    store,
		searcher: store,
		opts:     opts,
		newID:    utils.GenerateID,
		now:      time.Now,
	}
	for _, o := range options {
		o(s)
	}
	return s
}

func (s *Service) Limits() pagination.Limits {
	return s.opts.Limits
}

func (s *Service) cascade() bool {
	return s.opts.OrphanPolicy == OrphanCascade
}

// bounded 每次存储调用都有独立的超时
func (s *Service) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opts.StoreTimeout)
}

// storeErr 将存储层错误翻译为 errno；未知错误记录日志后以内部错误返回
func storeErr(ctx context.Context, err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return errno.NotFoundErr.WithMessage(what + " not found")
	case errors.Is(err, repo.ErrDuplicate):
		return errno.ConflictErr.WithMessage(what + " already exists")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		hlog.CtxWarnf(ctx, "store call on %s timed out: %v", what, err)
		return errno.TransientErr
	}
	var e errno.ErrNo
	if errors.As(err, &e) {
		return e
	}
	hlog.CtxErrorf(ctx, "store call on %s failed: %+v", what, err)
	return errno.TransientErr
}

func (s *Service) publishVideo(ctx context.Context, e *mq.VideoEvent) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishVideoEvent(ctx, e); err != nil {
		hlog.CtxErrorf(ctx, "publish video event %s failed: %v", e.EventID, err)
	}
}

func (s *Service) publishInteraction(ctx context.Context, e *mq.InteractionEvent) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishInteractionEvent(ctx, e); err != nil {
		hlog.CtxErrorf(ctx, "publish interaction event %s failed: %v", e.EventID, err)
	}
}
