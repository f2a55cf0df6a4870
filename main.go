package main

import (
	"context"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"

	"github.com/xh-polaris/psych-patient/biz/adaptor/router"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/mq"
	"github.com/xh-polaris/psych-patient/provider"
)

func main() {
	provider.Init()
	c := provider.Get().Config

	tracer, cfg := hertztracing.NewServerTracer()
	h := server.Default(tracer, server.WithHostPorts(c.ListenOn))
	h.Use(hertztracing.ServerMiddleware(cfg))

	h.GET("/health", func(ctx context.Context, c *app.RequestContext) {
		c.String(consts.StatusOK, "ok")
	})
	router.Register(h)

	// 启动访谈评估消费者
	gopool.Go(mq.Consume)

	h.Spin()
}
