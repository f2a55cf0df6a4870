package mq

import (
	"context"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"

	"github.com/xh-polaris/psych-patient/biz/infrastructure/consts"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/mapper/history"
)

// 畸形消息应以错误返回触发nack, 而不是让消费协程崩溃
func TestProcessRejectsMalformedMessage(t *testing.T) {
	c := &HistoryConsumer{}
	ctx := context.Background()

	bodies := [][]byte{
		[]byte(`not json`),
		[]byte(`{"sessionId":123,"start":1,"end":2}`),
		[]byte(`{"sessionId":"s1","end":2}`),
		[]byte(`{"sessionId":"s1","start":"abc","end":2}`),
		[]byte(`{"sessionId":"s1","start":1,"end":"abc"}`),
		[]byte(`{"start":1,"end":2}`),
	}
	for _, body := range bodies {
		err := c.process(ctx, amqp.Delivery{Body: body})
		assert.Error(t, err, "body=%s", body)
	}
}

func TestBuildMsg(t *testing.T) {
	his := &history.History{
		Dialogs: []*history.Dialog{
			{Role: "system", Content: `{"name":"张某"}`},
			{Role: consts.SpeakerDoctor, Content: "你好，请坐"},
			{Role: consts.SpeakerPatient, Content: "嗯"},
			{Role: consts.SpeakerDoctor, Content: "最近睡眠怎么样？"},
			{Role: consts.SpeakerPatient, Content: "睡不着"},
			{Role: "unknown", Content: "忽略"},
		},
	}

	msg := buildMsg(his)
	assert.Contains(t, msg, "患者信息: {\"name\":\"张某\"}")
	assert.Contains(t, msg, "第1轮\n医生: 你好，请坐")
	assert.Contains(t, msg, "第2轮\n医生: 最近睡眠怎么样？")
	assert.Contains(t, msg, "患者: 睡不着")
	assert.NotContains(t, msg, "忽略")
}
