package domain

import (
	"sync"

	"github.com/hertz-contrib/websocket"

	"github.com/xh-polaris/psych-patient/biz/application/dto"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/consts"
)

// WsHelper 是封装Websocket协议的工具类
// 单协程读, 写可能来自生成协程和控制协程两处, 所以写要加锁
type WsHelper struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func NewWsHelper(conn *websocket.Conn) *WsHelper {
	return &WsHelper{
		mu:   sync.Mutex{},
		conn: conn,
	}
}

// Read 获取消息
func (ws *WsHelper) Read() (int, []byte, error) {
	return ws.conn.ReadMessage()
}

// ReadJSON 从流中获取一个Json对象, 需要传入指针
func (ws *WsHelper) ReadJSON(obj any) error {
	return ws.conn.ReadJSON(obj)
}

// Error 写入一个错误信息
func (ws *WsHelper) Error(errno *consts.Errno) error {
	resp := &dto.Response{
		Code: errno.Code(),
		Msg:  errno.Error(),
	}
	return ws.WriteJSON(resp)
}

// WriteJSON 写入一个Json对象
func (ws *WsHelper) WriteJSON(obj any) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	return ws.conn.WriteJSON(obj)
}

// Close 关闭连接
func (ws *WsHelper) Close() error {
	return ws.conn.Close()
}
