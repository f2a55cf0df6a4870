package mq

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/gopkg/util/gopool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xh-polaris/gopkg/util/log"
	"golang.org/x/net/context"

	"github.com/xh-polaris/psych-patient/biz/domain"
	"github.com/xh-polaris/psych-patient/biz/domain/model/bailian"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/consts"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/mapper/history"
)

// HistoryConsumer 消费访谈结束消息, 生成评估报告并归档
type HistoryConsumer struct {
	conn   *amqp.Connection
	finish chan struct{}
}

// NewHistoryConsumer 创建一个消费者
func NewHistoryConsumer() *HistoryConsumer {
	return &HistoryConsumer{
		conn:   getConn(),
		finish: make(chan struct{}),
	}
}

// Consume 启动消费者
func Consume() {
	consumer := NewHistoryConsumer()
	consumer.Start()
}

// Start 开始消费
func (c *HistoryConsumer) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 启动消息处理
	gopool.CtxGo(ctx, func() {
		c.consume(ctx)
	})
	// 处理系统信号
	gopool.CtxGo(ctx, func() {
		c.osSignalHandler(ctx)
		c.finish <- struct{}{}
	})

	<-c.finish
}

// 消费信息
func (c *HistoryConsumer) consume(ctx context.Context) {
	ch, err := c.conn.Channel()
	if err != nil {
		log.Error("get channel error:", err)
		return
	}
	defer func() { _ = ch.Close() }()
	err = ch.Qos(1, 0, false)
	if err != nil {
		log.Error("set qos error:", err)
		return
	}
	msgs, err := ch.Consume(exchangeName, "interview_consumer", false, false, false, false, nil)
	if err != nil {
		log.Error("get consume error:", err)
		return
	}

	for msg := range msgs {
		if err = c.process(ctx, msg); err != nil {
			// 失败时拒绝并重试
			log.Error("处理失败，消息重新入队:", err)
			if err = msg.Nack(false, true); err != nil {
				log.Error("nack失败 ", err)
			}
		} else if err = msg.Ack(false); err != nil {
			log.Error("ack失败 ", err)
		}
	}
}

// osSignalHandler 处理os信号
func (c *HistoryConsumer) osSignalHandler(ctx context.Context) {
	log.CtxInfo(ctx, "[osSignalHandler] start")
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	osSignal := <-ch
	log.CtxInfo(ctx, "[osSignalHandler] receive signal:[%v]", osSignal)
}

// process 实际消费逻辑
func (c *HistoryConsumer) process(ctx context.Context, msg amqp.Delivery) error {
	var m map[string]interface{}
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		return err
	}

	session, ok := m["sessionId"].(string)
	if !ok || session == "" {
		return fmt.Errorf("非法消息, 缺少sessionId: %s", msg.Body)
	}
	startSec, ok := m["start"].(float64)
	if !ok {
		return fmt.Errorf("非法消息, 缺少start: %s", msg.Body)
	}
	endSec, ok := m["end"].(float64)
	if !ok {
		return fmt.Errorf("非法消息, 缺少end: %s", msg.Body)
	}
	start, end := int64(startSec), int64(endSec)

	rs := domain.GetRedisHelper()
	histories, err := rs.Load(session)
	if err != nil {
		return err
	}

	dialogs := make([]*history.Dialog, 0, len(histories))
	for _, his := range histories {
		dialogs = append(dialogs, &history.Dialog{
			Role:    his.Role,
			Content: his.Content,
		})
	}
	his := &history.History{
		SessionId: session,
		Dialogs:   dialogs,
		StartTime: time.Unix(start, 0),
		EndTime:   time.Unix(end, 0),
	}

	// 生成评估报告
	evaluate(his)

	// 存储对话记录
	if err = c.store(ctx, his); err != nil {
		return err
	}

	// 从redis中删除
	return rs.Remove(session)
}

// evaluate 调用评估模型生成报告
// 评估失败不阻塞归档, 对话记录本身仍然落库
func evaluate(his *history.History) {
	reportApp := bailian.GetBLReportApp()
	report, err := reportApp.Call(buildMsg(his))
	if err != nil {
		log.Error("call report error:", err)
		return
	}
	his.Report = &history.Report{
		Total:       report.Total,
		Highlights:  report.Highlights,
		Problems:    report.Problems,
		Suggestions: report.Suggestions,
		Raw:         report.Raw,
	}
}

// buildMsg 将对话记录拼接成按轮编号的访谈文本
// system记录是会话创建时写入的患者设定, 作为访谈背景前置
func buildMsg(his *history.History) string {
	var sb strings.Builder
	round := 0
	for _, h := range his.Dialogs {
		switch h.Role {
		case consts.SpeakerDoctor:
			round++
			sb.WriteString("第")
			sb.WriteString(strconv.Itoa(round))
			sb.WriteString("轮\n")
			sb.WriteString("医生: ")
		case consts.SpeakerPatient:
			sb.WriteString("患者: ")
		case "system":
			sb.WriteString("患者信息: ")
		default:
			continue
		}
		sb.WriteString(h.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// store 存储对话记录
func (c *HistoryConsumer) store(ctx context.Context, his *history.History) error {
	mapper := history.GetMongoMapper()
	return mapper.Insert(ctx, his)
}
