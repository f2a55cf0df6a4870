package chat

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xh-polaris/psych-patient/biz/application/dto"
	"github.com/xh-polaris/psych-patient/biz/domain/model"
	"github.com/xh-polaris/psych-patient/biz/domain/session"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/consts"
)

// cancelOnNextScanner 在Next阻塞期间触发取消, 再以EOF结束
// 模拟新一轮医生发言恰好打断在流读取末尾的时序
type cancelOnNextScanner struct {
	cancel context.CancelFunc
}

func (s *cancelOnNextScanner) Next() (*dto.ChatData, error) {
	s.cancel()
	return nil, io.EOF
}

func (s *cancelOnNextScanner) Close() error { return nil }

type fakeChatApp struct {
	scanner model.ChatAppScanner
}

func (a *fakeChatApp) Call(prompt, sessionId string) (string, error) {
	return "", nil
}

func (a *fakeChatApp) StreamCall(prompt, sessionId string) (model.ChatAppScanner, error) {
	return a.scanner, nil
}

func (a *fakeChatApp) Close() error { return nil }

// 被打断的轮次即使读到EOF也不能补写患者记录
func TestTurnCancelledAtEOFLeavesHistoryIntact(t *testing.T) {
	sess := session.New("s1", nil, nil)
	sess.RecordTurn(consts.SpeakerDoctor, "最近睡眠怎么样？")

	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		session: sess,
		chatApp: &fakeChatApp{scanner: &cancelOnNextScanner{cancel: cancel}},
	}

	before := sess.History()
	e.turn(ctx, "最近睡眠怎么样？", nil)

	assert.Equal(t, before, sess.History())
}

// 开始前就已取消的轮次不应读流
func TestTurnCancelledBeforeStart(t *testing.T) {
	sess := session.New("s1", nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := &Engine{
		session: sess,
		chatApp: &fakeChatApp{scanner: &cancelOnNextScanner{cancel: func() {}}},
	}
	e.turn(ctx, "你好", nil)

	assert.Empty(t, sess.History())
}
