package service

import (
	"context"

	"github.com/google/wire"
	"github.com/hertz-contrib/websocket"

	"github.com/xh-polaris/psych-patient/biz/domain/chat"
	"github.com/xh-polaris/psych-patient/biz/domain/session"
)

// ChatService 处理长对话 TODO: 应该需要加上超时处理，避免连接空置太长时间
type ChatService struct {
	Store session.Store
}

var ChatServiceSet = wire.NewSet(
	wire.Struct(new(ChatService), "*"),
)

// Handle 处理一条WebSocket连接上的完整访谈
func (s *ChatService) Handle(ctx context.Context, conn *websocket.Conn) {
	var err error

	// 初始化本条连接的engine
	engine := chat.NewEngine(ctx, conn, s.Store)
	defer func() { engine.Close() }()

	// 执行初始化操作
	err = engine.Start()
	if err != nil {
		return
	}

	engine.Chat()
}
