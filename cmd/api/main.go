package main

import (
	"context"

	"VidTube.com/cmd/api/handlers"
	"VidTube.com/cmd/api/router"
	"VidTube.com/cmd/interaction/dal"
	"VidTube.com/cmd/interaction/infras/es"
	"VidTube.com/cmd/interaction/infras/redis"
	"VidTube.com/cmd/interaction/service"
	"VidTube.com/config"
	"VidTube.com/config/jaeger"
	"VidTube.com/config/pprof"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/flow"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/pagination"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/cors"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// newService 按配置组装记录存储、检索后端、分布式锁和消息生产者
func newService(ctx context.Context) (*service.Service, func(), error) {
	store, err := dal.Init()
	if err != nil {
		return nil, nil, err
	}
	cfg := config.ConfigInfo
	var opts []service.Option
	cleanup := func() {}

	switch cfg.Search.Backend {
	case "elasticsearch":
		index, err := es.NewVideoIndex(ctx, cfg.Elasticsearch.Addr, cfg.Elasticsearch.Index)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, service.WithSearcher(index))
	case "mysql", "memory", "":
		// 记录存储自带检索
	default:
		return nil, nil, errors.Errorf("unknown search backend %q", cfg.Search.Backend)
	}

	if cfg.Interaction.UseLock {
		if rdb := redis.Load(ctx); rdb != nil {
			opts = append(opts, service.WithLocker(redis.NewLocker(rdb, cfg.Interaction.LockTTL)))
		} else {
			hlog.Warn("interaction.use_lock is set but redis is not configured, toggles run without lock")
		}
	}

	if cfg.RabbitMq.Addr != "" {
		producer, err := mq.NewProducer(mq.URL(cfg.RabbitMq.Addr, cfg.RabbitMq.Username, cfg.RabbitMq.Password))
		if err != nil {
			hlog.Errorf("rabbitmq unavailable, events are not published: %v", err)
		} else {
			opts = append(opts, service.WithProducer(producer))
			cleanup = func() { _ = producer.Close() }
		}
	}

	svc := service.New(store, service.Options{
		StoreTimeout:      cfg.Store.Timeout,
		MaxToggleAttempts: cfg.Interaction.ToggleMaxAttempts,
		OrphanPolicy:      cfg.Interaction.OrphanPolicy,
		Limits:            pagination.Limits{Default: cfg.Pagination.DefaultSize, Max: cfg.Pagination.MaxSize},
	}, opts...)
	return svc, cleanup, nil
}

func main() {
	config.Init()
	closer := jaeger.Init(constants.ApiServiceName, config.ConfigInfo.Jaeger.Addr)
	defer closer.Close()
	pprof.Load(config.ConfigInfo.Server.PprofAddr)

	if err := utils.InitSnowflake(config.ConfigInfo.Server.NodeID); err != nil {
		logrus.Fatalf("init snowflake: %v", err)
	}
	ctx := context.Background()
	svc, cleanup, err := newService(ctx)
	if err != nil {
		logrus.Fatalf("init service: %+v", err)
	}
	defer cleanup()

	identity, err := router.NewJWTIdentity(svc, config.ConfigInfo.Jwt.Secret,
		config.ConfigInfo.Jwt.Timeout, config.ConfigInfo.Jwt.MaxRefresh)
	if err != nil {
		logrus.Fatalf("%+v", err)
	}

	var guard app.HandlerFunc
	if config.ConfigInfo.Sentinel.ToggleQPS > 0 {
		if err := flow.Init(constants.ToggleFlowResource, config.ConfigInfo.Sentinel.ToggleQPS); err != nil {
			logrus.Fatalf("%+v", err)
		}
		guard = flow.Guard(constants.ToggleFlowResource, router.Blocked)
	}

	h := server.New(
		server.WithHostPorts(config.ConfigInfo.Server.HostPorts),
		server.WithHandleMethodNotAllowed(true),
	)

	h.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * 3600,
	}))

	h.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			handlers.SendError(c, errno.ServiceErr.WithMessage("Internal server error"))
		})))

	router.Register(h, handlers.New(svc), identity, guard)
	h.Spin()
}
