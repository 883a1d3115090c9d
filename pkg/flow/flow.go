package flow

import (
	"context"

	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	sflow "github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/pkg/errors"
)

// Rules 每秒最多放行 qps 次切换请求，超出直接拒绝；qps<=0 表示不限流
func Rules(resource string, qps float64) []*sflow.Rule {
	if qps <= 0 {
		return nil
	}
	return []*sflow.Rule{{
		Resource:               resource,
		TokenCalculateStrategy: sflow.Direct,
		ControlBehavior:        sflow.Reject,
		Threshold:              qps,
		StatIntervalInMs:       1000,
	}}
}

// Init 初始化 sentinel 并加载切换接口的限流规则
func Init(resource string, qps float64) error {
	if err := sentinel.InitDefault(); err != nil {
		return errors.Wrap(err, "init sentinel")
	}
	if _, err := sflow.LoadRules(Rules(resource, qps)); err != nil {
		return errors.Wrapf(err, "load flow rules for %s", resource)
	}
	return nil
}

// Guard hertz 中间件，被 sentinel 拦截时交给 onBlock 写响应
func Guard(resource string, onBlock app.HandlerFunc) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		entry, blocked := sentinel.Entry(resource, sentinel.WithTrafficType(base.Inbound))
		if blocked != nil {
			onBlock(ctx, c)
			c.Abort()
			return
		}
		defer entry.Exit()
		c.Next(ctx)
	}
}
