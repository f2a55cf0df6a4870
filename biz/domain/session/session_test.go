package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xh-polaris/psych-patient/biz/application/dto"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/consts"
)

func TestParseStage(t *testing.T) {
	for _, s := range []string{StageOpening, StageInfo, StagePlanning, StageClosing} {
		got, err := ParseStage(s)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStage("diagnosis")
	assert.ErrorIs(t, err, consts.ErrInvalidStage)
	_, err = ParseStage("")
	assert.ErrorIs(t, err, consts.ErrInvalidStage)
}

func TestNewSessionDefaults(t *testing.T) {
	s := New("sid", nil, nil)

	assert.Equal(t, "sid", s.ID())
	assert.Equal(t, StageOpening, s.Stage())
	assert.Equal(t, dto.NewPatientProfile(), s.Profile())
	assert.Equal(t, dto.NewPatientPersona(), s.Persona())
	assert.Empty(t, s.History())
}

func TestSetStage(t *testing.T) {
	s := New("sid", nil, nil)

	old, err := s.SetStage(StageInfo)
	require.NoError(t, err)
	assert.Equal(t, StageOpening, old)
	assert.Equal(t, StageInfo, s.Stage())

	// 非法取值保持原阶段不变
	_, err = s.SetStage("invalid")
	assert.ErrorIs(t, err, consts.ErrInvalidStage)
	assert.Equal(t, StageInfo, s.Stage())
}

func TestRecordTurnAppendOnly(t *testing.T) {
	s := New("sid", nil, nil)
	s.RecordTurn(consts.SpeakerDoctor, "你好")
	s.RecordTurn(consts.SpeakerPatient, "嗯")
	s.RecordTurn(consts.SpeakerDoctor, "最近怎么样")

	his := s.History()
	require.Len(t, his, 3)
	assert.Equal(t, dto.DialogTurn{Speaker: "doctor", Text: "你好"}, his[0])
	assert.Equal(t, dto.DialogTurn{Speaker: "patient", Text: "嗯"}, his[1])
	assert.Equal(t, 2, s.Rounds())

	// History返回副本, 修改副本不影响会话
	his[0].Text = "改写"
	assert.Equal(t, "你好", s.History()[0].Text)
}

func TestReplaceProfilePersonaKeepsHistory(t *testing.T) {
	s := New("sid", nil, nil)
	s.RecordTurn(consts.SpeakerDoctor, "你好")

	profile := dto.NewPatientProfile()
	profile.Diagnosis = "躁狂发作"
	s.ReplaceProfilePersona(profile, nil)

	assert.Equal(t, "躁狂发作", s.Profile().Diagnosis)
	// nil的部分保持原值
	assert.Equal(t, dto.NewPatientPersona(), s.Persona())
	assert.Len(t, s.History(), 1)
}

func TestBeliefs(t *testing.T) {
	s := New("sid", nil, nil)

	_, ok := s.Belief("drinking")
	assert.False(t, ok)

	s.SetBelief("drinking", "偶尔喝一点")
	v, ok := s.Belief("drinking")
	assert.True(t, ok)
	assert.Equal(t, "偶尔喝一点", v)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	assert.Equal(t, 0, store.Len())

	s := New("sid", nil, nil)
	store.Put(s)
	assert.Equal(t, 1, store.Len())

	got, ok := store.Get("sid")
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = store.Get("missing")
	assert.False(t, ok)

	store.Delete("sid")
	assert.Equal(t, 0, store.Len())
	_, ok = store.Get("sid")
	assert.False(t, ok)
}
