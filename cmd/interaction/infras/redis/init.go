package redis

import (
	"context"

	"VidTube.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/redis/go-redis/v9"
)

// Load 连接 redis；未配置地址时返回 nil，调用方据此关闭分布式锁
func Load(ctx context.Context) *redis.Client {
	if config.ConfigInfo.Redis.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.ConfigInfo.Redis.Addr,
		Password: config.ConfigInfo.Redis.Password,
		DB:       config.ConfigInfo.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		hlog.Errorf("redis ping failed: %v", err)
	}
	return client
}
