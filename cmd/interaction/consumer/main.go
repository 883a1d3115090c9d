package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"VidTube.com/cmd/interaction/infras/es"
	"VidTube.com/cmd/interaction/infras/redis"
	"VidTube.com/config"
	"VidTube.com/config/jaeger"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/sirupsen/logrus"
)

func main() {
	hlog.SetLevel(hlog.LevelInfo)
	config.Init()
	closer := jaeger.Init(constants.ConsumerServiceName, config.ConfigInfo.Jaeger.Addr)
	defer closer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redis.Load(ctx)
	rabbit := config.ConfigInfo.RabbitMq
	consumer, err := mq.NewConsumer(mq.URL(rabbit.Addr, rabbit.Username, rabbit.Password))
	if err != nil {
		logrus.Fatalf("Failed to create consumer: %v", err)
	}
	defer consumer.Close()

	// rdb 为 nil 时不能直接传入接口参数
	var notifier *Notifier
	if rdb != nil {
		notifier = NewNotifier(rdb, 24*time.Hour)
	} else {
		notifier = NewNotifier(nil, 0)
	}
	if err := consumer.ConsumeInteractionEvents(ctx, notifier); err != nil {
		logrus.Fatalf("Failed to start interaction event consumer: %v", err)
	}
	hlog.Info("Interaction event consumer started")

	// 只有 elasticsearch 作为检索后端时才需要同步索引
	if esCfg := config.ConfigInfo.Elasticsearch; esCfg.Addr != "" && config.ConfigInfo.Search.Backend == "elasticsearch" {
		index, err := es.NewVideoIndex(ctx, esCfg.Addr, esCfg.Index)
		if err != nil {
			logrus.Fatalf("Failed to open video index: %v", err)
		}
		if err := consumer.ConsumeVideoEvents(ctx, index); err != nil {
			logrus.Fatalf("Failed to start video event consumer: %v", err)
		}
		hlog.Info("Video event consumer started")
	}

	hlog.Info("Event consumer started successfully, waiting for messages...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	hlog.Info("Shutting down event consumer...")

	cancel()
	time.Sleep(2 * time.Second) // 给消费者一些时间来处理正在进行的消息

	hlog.Info("Event consumer stopped")
}
