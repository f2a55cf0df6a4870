package policy

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xh-polaris/psych-patient/biz/application/dto"
)

func testPersona() *dto.PatientPersona {
	return &dto.PatientPersona{
		Traits:               []string{"敏感", "多疑"},
		Style:                "低声、迟缓",
		InsightLevel:         0.2,
		TrustTowardClinician: 0.7,
		Cooperativeness:      0.6,
		EmotionalReactivity:  0.7,
		Verbosity:            0.3,
		DisclosureThreshold:  0.7,
		LiePropensity:        0.1,
		OmissionStrategy:     dto.OmissionVague,
	}
}

func TestDecideNonSensitive(t *testing.T) {
	b := Decide(dto.NewPatientProfile(), testPersona(), TurnContext{
		Stage:           "information_gathering",
		DoctorUtterance: "最近睡眠怎么样？",
	}, nil)

	assert.False(t, b.Sensitive)
	// 0.5*0.7 + 0.3*0.7 + 0.2*0.6 = 0.68, 非敏感上调0.15
	assert.InDelta(t, 0.83, b.BaseDisclosureProb, 1e-9)
	assert.Equal(t, FullDisclose, b.DisclosureState)
	assert.Equal(t, ToneTruthfulDirect, b.ResponseTone)
	assert.True(t, b.WillDisclose)
	assert.False(t, b.WillLie)
}

func TestDecideSensitive(t *testing.T) {
	b := Decide(dto.NewPatientProfile(), testPersona(), TurnContext{
		Stage:           "information_gathering",
		DoctorUtterance: "你有没有想过自杀？",
	}, nil)

	assert.True(t, b.Sensitive)
	// 0.68, 敏感下调0.25
	assert.InDelta(t, 0.43, b.BaseDisclosureProb, 1e-9)
	assert.Equal(t, PartialDisclose, b.DisclosureState)
	assert.Equal(t, ToneTruthfulEvasive, b.ResponseTone)
	assert.True(t, b.WillDisclose)
	assert.False(t, b.WillLie)
}

func TestDecideNoDisclose(t *testing.T) {
	p := testPersona()
	p.DisclosureThreshold = 0.2
	p.TrustTowardClinician = 0.2
	p.Cooperativeness = 0.2
	p.LiePropensity = 0.7

	b := Decide(dto.NewPatientProfile(), p, TurnContext{
		Stage:           "information_gathering",
		DoctorUtterance: "你最近喝酒精饮料吗？",
	}, nil)

	assert.True(t, b.Sensitive)
	// 0.2 - 0.25 夹取到0
	assert.InDelta(t, 0, b.BaseDisclosureProb, 1e-9)
	assert.Equal(t, NoDisclose, b.DisclosureState)
	assert.Equal(t, ToneFabricatedDenial, b.ResponseTone)
	assert.False(t, b.WillDisclose)
	assert.True(t, b.WillLie)
}

// 非敏感问题无论参数多低都完全披露
func TestNonSensitiveAlwaysFullDisclose(t *testing.T) {
	p := testPersona()
	p.DisclosureThreshold = 0
	p.TrustTowardClinician = 0
	p.Cooperativeness = 0

	b := Decide(dto.NewPatientProfile(), p, TurnContext{DoctorUtterance: "今天天气不错"}, nil)
	assert.Equal(t, FullDisclose, b.DisclosureState)
}

func TestDecideNilDefaults(t *testing.T) {
	b := Decide(nil, nil, TurnContext{DoctorUtterance: "你好"}, nil)

	assert.Equal(t, "information_gathering", b.Stage)
	assert.Equal(t, "礼貌、谨慎", b.Style)
	assert.Equal(t, FullDisclose, b.DisclosureState)
	assert.Equal(t, ToneTruthfulDirect, b.ResponseTone)
	assert.NotEmpty(t, b.PatientFacts)
}

func TestDecideClampsAbnormalParams(t *testing.T) {
	p := testPersona()
	p.InsightLevel = math.NaN()
	p.Verbosity = 3.5
	p.LiePropensity = -1

	b := Decide(dto.NewPatientProfile(), p, TurnContext{DoctorUtterance: "你好"}, nil)

	assert.Equal(t, 0.5, b.InsightLevel)
	assert.Equal(t, 1.0, b.Verbosity)
	assert.Equal(t, 0.0, b.LiePropensity)
	assert.False(t, math.IsNaN(b.BaseDisclosureProb))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.5, Clamp01(math.NaN()))
	assert.Equal(t, 0.0, Clamp01(-1))
	assert.Equal(t, 1.0, Clamp01(2))
	assert.Equal(t, 0.3, Clamp01(0.3))
}

// 信任度上升时披露概率不应下降
func TestDisclosureMonotonicInTrust(t *testing.T) {
	prev := -1.0
	for _, trust := range []float64{0, 0.2, 0.4, 0.6, 0.8, 1} {
		p := testPersona()
		p.TrustTowardClinician = trust
		b := Decide(dto.NewPatientProfile(), p, TurnContext{DoctorUtterance: "你有没有想过自杀？"}, nil)
		require.GreaterOrEqual(t, b.BaseDisclosureProb, prev)
		prev = b.BaseDisclosureProb
	}
}

// 披露阈值上升时披露概率不应下降
func TestDisclosureMonotonicInThreshold(t *testing.T) {
	prev := -1.0
	for _, disc := range []float64{0, 0.2, 0.4, 0.6, 0.8, 1} {
		p := testPersona()
		p.DisclosureThreshold = disc
		b := Decide(dto.NewPatientProfile(), p, TurnContext{DoctorUtterance: "你有没有想过自杀？"}, nil)
		require.GreaterOrEqual(t, b.BaseDisclosureProb, prev)
		prev = b.BaseDisclosureProb
	}
}

func TestDecideDeterministic(t *testing.T) {
	p := testPersona()
	turn := TurnContext{Stage: "opening", DoctorUtterance: "你好，请坐"}
	a := Decide(dto.NewPatientProfile(), p, turn, nil)
	b := Decide(dto.NewPatientProfile(), p, turn, nil)
	assert.Equal(t, a, b)
}

func TestHistoryContext(t *testing.T) {
	history := []dto.DialogTurn{
		{Speaker: "doctor", Text: "d1"},
		{Speaker: "patient", Text: "p1"},
		{Speaker: "doctor", Text: "d2"},
		{Speaker: "patient", Text: "p2"},
		{Speaker: "doctor", Text: "d3"},
		{Speaker: "patient", Text: "p3"},
		{Speaker: "doctor", Text: "d4"},
		{Speaker: "patient", Text: "p4"},
	}

	b := Decide(dto.NewPatientProfile(), testPersona(), TurnContext{DoctorUtterance: "继续"}, history)

	// 只保留尾部3组医患对
	assert.NotContains(t, b.HistoryContext, "d1")
	assert.Contains(t, b.HistoryContext, "医生: d2")
	assert.Contains(t, b.HistoryContext, "患者: p4")
	lines := strings.Split(b.HistoryContext, "\n")
	assert.Len(t, lines, 6)
}

func TestHistoryContextSkipsEmptyText(t *testing.T) {
	history := []dto.DialogTurn{
		{Speaker: "doctor", Text: "d1"},
		{Speaker: "patient", Text: "  "},
	}
	b := Decide(dto.NewPatientProfile(), testPersona(), TurnContext{DoctorUtterance: "继续"}, history)
	assert.Equal(t, "医生: d1", b.HistoryContext)
}

func TestIsSensitive(t *testing.T) {
	assert.True(t, IsSensitive("你是否有自杀的念头"))
	assert.True(t, IsSensitive("平时喝酒精类饮品吗"))
	assert.True(t, IsSensitive("有没有药物滥用"))
	assert.False(t, IsSensitive("最近睡眠怎么样"))
	assert.False(t, IsSensitive(""))
}

func TestResponseToneGrid(t *testing.T) {
	cases := []struct {
		state string
		lie   float64
		want  string
	}{
		{FullDisclose, 0.1, ToneTruthfulDirect},
		{FullDisclose, 0.4, ToneTruthWithFiction},
		{FullDisclose, 0.8, ToneFabricatedConfident},
		{PartialDisclose, 0.1, ToneTruthfulEvasive},
		{PartialDisclose, 0.4, ToneTruthWithOmission},
		{PartialDisclose, 0.8, ToneFabricatedPartial},
		{NoDisclose, 0.1, ToneSilentDefensive},
		{NoDisclose, 0.4, ToneVagueDeflecting},
		{NoDisclose, 0.8, ToneFabricatedDenial},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, responseTone(c.state, c.lie))
	}
}

func TestResponseBehaviorJoinsToneAndOmission(t *testing.T) {
	p := testPersona()
	p.OmissionStrategy = "no"

	b := Decide(dto.NewPatientProfile(), p, TurnContext{DoctorUtterance: "你好"}, nil)
	// no归一为none
	assert.Equal(t, toneMap[b.ResponseTone]+"；"+omissionMap[dto.OmissionNone], b.ResponseBehavior)
}
