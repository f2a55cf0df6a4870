package session

import (
	"sync"

	"github.com/xh-polaris/psych-patient/biz/application/dto"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/consts"
)

// 访谈阶段四态枚举
const (
	StageOpening  = "opening"
	StageInfo     = "information_gathering"
	StagePlanning = "explanation_planning"
	StageClosing  = "closing"
)

// ParseStage 校验阶段取值
func ParseStage(s string) (string, error) {
	switch s {
	case StageOpening, StageInfo, StagePlanning, StageClosing:
		return s, nil
	default:
		return "", consts.ErrInvalidStage
	}
}

// Session 一次访谈会话的状态
// 对话历史只追加不修改, 所有修改方法都是原子的
type Session struct {
	mu      sync.RWMutex
	id      string
	profile *dto.PatientProfile
	persona *dto.PatientPersona
	stage   string
	history []dto.DialogTurn
	beliefs map[string]string
}

// New 创建会话, 初始阶段为opening
func New(id string, profile *dto.PatientProfile, persona *dto.PatientPersona) *Session {
	if profile == nil {
		profile = dto.NewPatientProfile()
	}
	if persona == nil {
		persona = dto.NewPatientPersona()
	}
	return &Session{
		id:      id,
		profile: profile,
		persona: persona,
		stage:   StageOpening,
		beliefs: make(map[string]string),
	}
}

// ID 会话标识
func (s *Session) ID() string {
	return s.id
}

// RecordTurn 追加一轮发言
func (s *Session) RecordTurn(speaker, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, dto.DialogTurn{Speaker: speaker, Text: text})
}

// SetStage 切换阶段, 非法取值时保持原阶段不变
func (s *Session) SetStage(stage string) (old string, err error) {
	stage, err = ParseStage(stage)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	old = s.stage
	s.stage = stage
	return old, nil
}

// Stage 当前阶段
func (s *Session) Stage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stage
}

// ReplaceProfilePersona 整体替换病历与行为参数, 对话历史保持不变
// nil入参表示该部分不替换
func (s *Session) ReplaceProfilePersona(profile *dto.PatientProfile, persona *dto.PatientPersona) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile != nil {
		s.profile = profile
	}
	if persona != nil {
		s.persona = persona
	}
}

// Profile 当前病历
func (s *Session) Profile() *dto.PatientProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Persona 当前行为参数
func (s *Session) Persona() *dto.PatientPersona {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persona
}

// History 返回对话历史的副本
func (s *Session) History() []dto.DialogTurn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]dto.DialogTurn, len(s.history))
	copy(out, s.history)
	return out
}

// Rounds 医生发言轮数
func (s *Session) Rounds() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, t := range s.history {
		if t.Speaker == consts.SpeakerDoctor {
			n++
		}
	}
	return n
}

// SetBelief 记录会话内形成的稳定说法, 同一敏感话题前后保持一致
func (s *Session) SetBelief(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beliefs[key] = value
}

// Belief 读取已形成的说法
func (s *Session) Belief(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.beliefs[key]
	return v, ok
}
