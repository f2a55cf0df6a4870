package chat

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/xh-polaris/gopkg/util/log"

	"github.com/xh-polaris/psych-patient/biz/adaptor"
	"github.com/xh-polaris/psych-patient/provider"
)

// LongChat 开启一轮长对话
// @router /chat/ [GET]
func LongChat(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	// 尝试升级协议, 并处理
	err := adaptor.UpgradeWs(ctx, c, p.ChatService.Handle)
	if err != nil {
		log.Error(err.Error())
	}
}
