package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/hertz-contrib/websocket"
	"github.com/xh-polaris/gopkg/util/log"

	"github.com/xh-polaris/psych-patient/biz/application/dto"
	"github.com/xh-polaris/psych-patient/biz/domain"
	"github.com/xh-polaris/psych-patient/biz/domain/model"
	"github.com/xh-polaris/psych-patient/biz/domain/model/bailian"
	"github.com/xh-polaris/psych-patient/biz/domain/policy"
	"github.com/xh-polaris/psych-patient/biz/domain/record"
	"github.com/xh-polaris/psych-patient/biz/domain/session"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/config"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/consts"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/mq"
)

// Engine 是处理一条WebSocket连接上完整访谈的核心对象
// 读是单协程的, 生成在独立协程中流式写回, 新一轮医生发言会打断未完成的生成
type Engine struct {
	// ctx 整条连接的上下文
	ctx context.Context

	// cancel 连接级取消, 关闭时广播给所有协程
	cancel context.CancelFunc

	// turnCancel 当前生成轮的取消函数, 只被读协程触碰
	turnCancel context.CancelFunc

	// ws 提供WebSocket的读写功能
	ws *domain.WsHelper

	// rs 提供redis的读写功能
	rs *domain.RedisHelper

	// chatApp 是调用的对话大模型
	chatApp model.ChatApp

	// store 会话存储
	store session.Store

	// session 本条连接绑定的会话
	session *session.Session

	// startTime 开始对话时间
	startTime time.Time

	// provider 消息生产者
	provider *mq.HistoryProducer

	// round 医生发言轮数
	round int
}

// NewEngine 初始化一个Engine
func NewEngine(ctx context.Context, conn *websocket.Conn, store session.Store) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	c := config.GetConfig()
	return &Engine{
		ctx:       ctx,
		cancel:    cancel,
		ws:        domain.NewWsHelper(conn),
		rs:        domain.GetRedisHelper(),
		chatApp:   bailian.NewBLChatApp(c.BaiLianChat.AppId, c.BaiLianChat.ApiKey),
		store:     store,
		startTime: time.Now(),
		provider:  mq.GetHistoryProducer(),
		round:     0,
	}
}

// Start 开始访谈, 绑定或创建会话
func (e *Engine) Start() error {
	var startReq dto.ChatStartReq
	if err := e.ws.ReadJSON(&startReq); err != nil {
		log.Error("read json err:", err)
		_ = e.ws.Error(consts.ErrInvalidUser)
		return consts.ErrInvalidUser
	}
	log.Info("调用方: %s, 调用时间: %s", startReq.From, time.Unix(startReq.Timestamp, 0).String())

	if startReq.SessionId != "" {
		if s, ok := e.store.Get(startReq.SessionId); ok {
			e.session = s
			return nil
		}
		_ = e.ws.Error(consts.ErrSessionNotFound)
		return consts.ErrSessionNotFound
	}

	e.session = session.New(uuid.New().String(), record.DefaultProfile(), record.DefaultPersona())
	e.store.Put(e.session)
	// 患者设定入库, 评估时作为访谈背景
	if facts, err := json.Marshal(e.session.Profile()); err == nil {
		if err = e.rs.AddSystem(e.session.ID(), string(facts)); err != nil {
			log.Error("record patient facts err:", err)
		}
	}
	return nil
}

// Chat 长对话的主体部分
func (e *Engine) Chat() {
	var req dto.ChatReq
	var err error
	defer func() {
		if err != nil {
			log.Error("chat err:", err)
		}
	}()

	for {
		// 获取前端对话内容
		req = dto.ChatReq{}
		err = e.ws.ReadJSON(&req)
		if err != nil {
			return
		}
		// 判断是否结束
		switch req.Cmd {
		case consts.EndCmd:
			return
		case consts.Ping:
			if err = e.ws.WriteJSON(&dto.Response{Code: 0, Msg: "pong"}); err != nil {
				return
			}
			continue
		}

		// 阶段切换, 非法取值拒绝并保持原阶段
		if req.Stage != "" {
			if _, serr := e.session.SetStage(req.Stage); serr != nil {
				_ = e.ws.Error(consts.ErrInvalidStage)
				continue
			}
		}
		// 调试用的病历/参数覆盖
		if req.Profile != nil || req.Persona != nil {
			e.session.ReplaceProfilePersona(req.Profile, req.Persona)
		}
		if req.Msg == "" {
			continue
		}

		// 新一轮发言打断上一轮未完成的生成
		if e.turnCancel != nil {
			e.turnCancel()
		}

		// 决策要基于不含本轮医生发言的历史
		history := e.session.History()
		e.session.RecordTurn(consts.SpeakerDoctor, req.Msg)
		if err := e.rs.AddDoctor(e.session.ID(), req.Msg); err != nil {
			log.Error("doctor history err:", err)
		}
		e.round++

		turnCtx, turnCancel := context.WithCancel(e.ctx)
		e.turnCancel = turnCancel
		go e.turn(turnCtx, req.Msg, history)
	}
}

// turn 执行一轮生成并流式写回
// 被打断时直接丢弃, 不落任何半截的患者记录
func (e *Engine) turn(ctx context.Context, msg string, history []dto.DialogTurn) {
	bundle := policy.Decide(e.session.Profile(), e.session.Persona(), policy.TurnContext{
		Stage:           e.session.Stage(),
		DoctorUtterance: msg,
	}, history)

	scanner, err := e.chatApp.StreamCall(BuildPrompt(bundle), e.session.ID())
	if err != nil {
		log.CtxError(ctx, "stream call err: %v", err)
		_ = e.ws.Error(consts.ErrGeneration)
		return
	}
	defer func() { _ = scanner.Close() }()

	var reply string
	for {
		select {
		case <-ctx.Done():
			return
		default:
			data, err := scanner.Next()
			if errors.Is(err, io.EOF) {
				// 取消可能发生在Next阻塞期间, 落记录前再确认一次,
				// 否则过期的患者回复会排在新一轮医生发言之后
				if ctx.Err() != nil {
					return
				}
				// 完整生成才落记录
				e.session.RecordTurn(consts.SpeakerPatient, reply)
				if rerr := e.rs.AddPatient(e.session.ID(), reply); rerr != nil {
					log.Error("patient history err:", rerr)
				}
				return
			}
			if err != nil {
				log.CtxError(ctx, "scanner next err: %v", err)
				return
			}
			data.SessionId = e.session.ID()
			if err = e.ws.WriteJSON(data); err != nil {
				return
			}
			reply += data.Content
		}
	}
}

// Close 结束访谈
func (e *Engine) Close() {
	// 发送结束标识
	err := e.ws.WriteJSON(&dto.ChatEndResp{
		Code: 0,
		Msg:  "对话结束",
	})
	if err != nil {
		log.Error(err.Error())
	}
	// 关闭所有协程
	e.cancel()
	if err = e.ws.Close(); err != nil {
		log.Error("close ws err:", err)
	}
	if err = e.chatApp.Close(); err != nil {
		log.Error("close chat err:", err)
	}
	// 轮数太少不值得评估
	if e.session != nil && e.round > 3 {
		if err = e.provider.Produce(context.Background(), e.session.ID(), e.startTime, time.Now()); err != nil {
			log.Error("消息发送失败, sessionId: ", e.session.ID())
		}
	}
}
