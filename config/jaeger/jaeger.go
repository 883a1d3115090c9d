package jaeger

import (
	"io"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/opentracing/opentracing-go"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Init 创建 jaeger tracer 并注册为 opentracing 全局 tracer，gorm 的 opentracing 插件会使用它。
// agentAddr 为空时不启用追踪
func Init(serviceName, agentAddr string) io.Closer {
	if agentAddr == "" {
		return nopCloser{}
	}
	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:           false,
			LocalAgentHostPort: agentAddr,
		},
	}
	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		hlog.Errorf("init jaeger tracer failed: %v", err)
		return nopCloser{}
	}
	opentracing.SetGlobalTracer(tracer)
	return closer
}
