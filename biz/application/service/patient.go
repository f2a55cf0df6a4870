package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/google/wire"
	"github.com/xh-polaris/gopkg/util/log"

	"github.com/xh-polaris/psych-patient/biz/adaptor/cmd"
	"github.com/xh-polaris/psych-patient/biz/application/dto"
	"github.com/xh-polaris/psych-patient/biz/domain"
	"github.com/xh-polaris/psych-patient/biz/domain/chat"
	"github.com/xh-polaris/psych-patient/biz/domain/model"
	"github.com/xh-polaris/psych-patient/biz/domain/policy"
	"github.com/xh-polaris/psych-patient/biz/domain/record"
	"github.com/xh-polaris/psych-patient/biz/domain/session"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/consts"
)

type IPatientService interface {
	Create(ctx context.Context, req *cmd.CreatePatientReq) (*cmd.CreatePatientResp, error)
	Info(ctx context.Context, req *cmd.PatientInfoReq) (*cmd.PatientInfoResp, error)
	Chat(ctx context.Context, req *cmd.ChatReq) (*cmd.ChatResp, error)
	DialogHistory(ctx context.Context, req *cmd.DialogHistoryReq) (*cmd.DialogHistoryResp, error)
	SetStage(ctx context.Context, req *cmd.StageReq) (*cmd.StageResp, error)
	Regenerate(ctx context.Context, req *cmd.RegenerateReq) (*cmd.RegenerateResp, error)
	Delete(ctx context.Context, req *cmd.DeleteReq) (*cmd.DeleteResp, error)
}

type PatientService struct {
	Store     session.Store
	Generator *record.Generator
	ChatApp   model.ChatApp
}

var PatientServiceSet = wire.NewSet(
	wire.Struct(new(PatientService), "*"),
	wire.Bind(new(IPatientService), new(*PatientService)),
)

// 生成参数的缺省值
const (
	defaultAge       = "16"
	defaultGender    = "男"
	defaultDiagnosis = "精神分裂症"
)

// recordPatientFacts 将患者设定写入redis, 评估时作为访谈背景
func recordPatientFacts(ctx context.Context, sessionId string, profile *dto.PatientProfile) {
	facts, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err = domain.GetRedisHelper().AddSystem(sessionId, string(facts)); err != nil {
		log.CtxError(ctx, "record patient facts err: %v", err)
	}
}

func fillGenParams(age, gender, diagnosis, severity string) (string, string, string, string) {
	if age == "" {
		age = defaultAge
	}
	if gender == "" {
		gender = defaultGender
	}
	if diagnosis == "" {
		diagnosis = defaultDiagnosis
	}
	severity = dto.NormalizeSeverity(severity)
	return age, gender, diagnosis, severity
}

// generate 生成病历原文并解析为结构化设定
// 生成链路不可用时软降级到演示用设定, 不阻塞会话创建
func (s *PatientService) generate(ctx context.Context, age, gender, diagnosis, severity string) (string, *dto.PatientProfile, *dto.PatientPersona) {
	age, gender, diagnosis, severity = fillGenParams(age, gender, diagnosis, severity)
	text, err := s.Generator.Generate(ctx, age, gender, diagnosis, severity)
	if err != nil {
		log.CtxError(ctx, "record generation failed, fallback to default: %v", err)
		return "", record.DefaultProfile(), record.DefaultPersona()
	}
	profile, persona := record.Parse(text)
	return text, profile, persona
}

// Create 生成病历并创建患者会话
func (s *PatientService) Create(ctx context.Context, req *cmd.CreatePatientReq) (*cmd.CreatePatientResp, error) {
	text, profile, persona := s.generate(ctx, req.Age, req.Gender, req.Diagnosis, req.Severity)

	sess := session.New(uuid.New().String(), profile, persona)
	s.Store.Put(sess)
	recordPatientFacts(ctx, sess.ID(), profile)
	return &cmd.CreatePatientResp{
		Code:          0,
		Msg:           "success",
		SessionId:     sess.ID(),
		Profile:       profile,
		Persona:       persona,
		MedicalRecord: text,
	}, nil
}

// Info 查询患者设定与当前阶段
func (s *PatientService) Info(ctx context.Context, req *cmd.PatientInfoReq) (*cmd.PatientInfoResp, error) {
	sess, ok := s.Store.Get(req.SessionId)
	if !ok {
		return nil, consts.ErrSessionNotFound
	}
	return &cmd.PatientInfoResp{
		Code:    0,
		Msg:     "success",
		Profile: sess.Profile(),
		Persona: sess.Persona(),
		Stage:   sess.Stage(),
	}, nil
}

// Chat 单次问答, 阻塞到生成完成
// 生成失败时不落任何对话记录, 医生与患者的发言要么都有要么都无
func (s *PatientService) Chat(ctx context.Context, req *cmd.ChatReq) (*cmd.ChatResp, error) {
	sess, ok := s.Store.Get(req.SessionId)
	if !ok {
		return nil, consts.ErrSessionNotFound
	}

	history := sess.History()
	bundle := policy.Decide(sess.Profile(), sess.Persona(), policy.TurnContext{
		Stage:           sess.Stage(),
		DoctorUtterance: req.Message,
	}, history)

	reply, err := s.ChatApp.Call(chat.BuildPrompt(bundle), sess.ID())
	if err != nil {
		log.CtxError(ctx, "chat call err: %v", err)
		return nil, consts.ErrGeneration
	}

	sess.RecordTurn(consts.SpeakerDoctor, req.Message)
	sess.RecordTurn(consts.SpeakerPatient, reply)
	rs := domain.GetRedisHelper()
	if err = rs.AddDoctor(sess.ID(), req.Message); err != nil {
		log.CtxError(ctx, "doctor history err: %v", err)
	}
	if err = rs.AddPatient(sess.ID(), reply); err != nil {
		log.CtxError(ctx, "patient history err: %v", err)
	}

	return &cmd.ChatResp{
		Code:  0,
		Msg:   "success",
		Reply: reply,
		Stage: sess.Stage(),
	}, nil
}

// DialogHistory 查询会话内对话历史
func (s *PatientService) DialogHistory(ctx context.Context, req *cmd.DialogHistoryReq) (*cmd.DialogHistoryResp, error) {
	sess, ok := s.Store.Get(req.SessionId)
	if !ok {
		return nil, consts.ErrSessionNotFound
	}
	return &cmd.DialogHistoryResp{
		Code:    0,
		Msg:     "success",
		History: sess.History(),
	}, nil
}

// SetStage 切换会谈阶段
func (s *PatientService) SetStage(ctx context.Context, req *cmd.StageReq) (*cmd.StageResp, error) {
	sess, ok := s.Store.Get(req.SessionId)
	if !ok {
		return nil, consts.ErrSessionNotFound
	}
	old, err := sess.SetStage(req.Stage)
	if err != nil {
		return nil, err
	}
	return &cmd.StageResp{
		Code: 0,
		Msg:  "success",
		Old:  old,
		New:  req.Stage,
	}, nil
}

// Regenerate 重新生成病历并替换会话设定, 对话历史保持不变
func (s *PatientService) Regenerate(ctx context.Context, req *cmd.RegenerateReq) (*cmd.RegenerateResp, error) {
	sess, ok := s.Store.Get(req.SessionId)
	if !ok {
		return nil, consts.ErrSessionNotFound
	}

	text, profile, persona := s.generate(ctx, req.Age, req.Gender, req.Diagnosis, req.Severity)

	sess.ReplaceProfilePersona(profile, persona)
	recordPatientFacts(ctx, sess.ID(), profile)
	return &cmd.RegenerateResp{
		Code:          0,
		Msg:           "success",
		Profile:       profile,
		Persona:       persona,
		MedicalRecord: text,
	}, nil
}

// Delete 删除会话及其redis记录
func (s *PatientService) Delete(ctx context.Context, req *cmd.DeleteReq) (*cmd.DeleteResp, error) {
	if _, ok := s.Store.Get(req.SessionId); !ok {
		return nil, consts.ErrSessionNotFound
	}
	s.Store.Delete(req.SessionId)
	if err := domain.GetRedisHelper().Remove(req.SessionId); err != nil {
		log.CtxError(ctx, "remove redis history err: %v", err)
	}
	return &cmd.DeleteResp{Code: 0, Msg: "success"}, nil
}
