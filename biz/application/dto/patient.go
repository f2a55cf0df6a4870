package dto

// 病历与行为参数的结构化形态
// 所有字段都允许缺省, 空字符串表示"未知", 解析失败时保持默认值

// Demographics 基本信息
type Demographics struct {
	Name       string `json:"name,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Age        string `json:"age,omitempty"`
	Occupation string `json:"occupation,omitempty"`
	Marriage   string `json:"marriage,omitempty"`
	Education  string `json:"education,omitempty"`
}

// IllnessHistory 病史
type IllnessHistory struct {
	Onset           string `json:"onset,omitempty"`
	Course          string `json:"course,omitempty"`
	Triggers        string `json:"triggers,omitempty"`
	PastPsych       string `json:"past_psych,omitempty"`
	PastMedical     string `json:"past_medical,omitempty"`
	Substance       string `json:"substance,omitempty"`
	FamilyHistory   string `json:"family_history,omitempty"`
	PersonalHistory string `json:"personal_history,omitempty"`
}

// MentalStatusExam 精神状态检查
type MentalStatusExam struct {
	Consciousness string `json:"consciousness,omitempty"`
	Orientation   string `json:"orientation,omitempty"`
	Attention     string `json:"attention,omitempty"`
	Mood          string `json:"mood,omitempty"`
	Thought       string `json:"thought,omitempty"`
	Perception    string `json:"perception,omitempty"`
	Cognition     string `json:"cognition,omitempty"`
	Insight       string `json:"insight,omitempty"`
	Speech        string `json:"speech,omitempty"`
}

// RiskAssessment 风险评估
type RiskAssessment struct {
	Suicide  string `json:"suicide,omitempty"`
	SelfHarm string `json:"self_harm,omitempty"`
}

// 严重程度三级枚举
const (
	SeverityMild     = "轻度"
	SeverityModerate = "中度"
	SeveritySevere   = "重度"
)

// PatientProfile 结构化病历
// 零值是合法的"空病历", 任何字段都可以缺省
type PatientProfile struct {
	Demographics     Demographics     `json:"demographics"`
	ChiefComplaint   string           `json:"chief_complaint"`
	History          IllnessHistory   `json:"history"`
	MentalStatusExam MentalStatusExam `json:"mental_status_exam"`
	Diagnosis        string           `json:"diagnosis"`
	Severity         string           `json:"severity"`
	Risk             RiskAssessment   `json:"risk"`
}

// NewPatientProfile 返回默认空病历
func NewPatientProfile() *PatientProfile {
	return &PatientProfile{Severity: SeverityModerate}
}

// NormalizeSeverity 将任意输入归一到三级枚举, 无法识别时为中度
func NormalizeSeverity(s string) string {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return s
	default:
		return SeverityModerate
	}
}

// 回避策略枚举
const (
	OmissionNone     = "none"
	OmissionVague    = "vague"
	OmissionDeny     = "deny"
	OmissionOmit     = "omit"
	OmissionRedirect = "redirect"
	OmissionPartial  = "partial"
)

// NormalizeOmission 归一回避策略, 兼容旧值no, 无法识别时为vague
func NormalizeOmission(s string) string {
	switch s {
	case OmissionNone, OmissionVague, OmissionDeny, OmissionOmit, OmissionRedirect, OmissionPartial:
		return s
	case "no":
		return OmissionNone
	default:
		return OmissionVague
	}
}

// PatientPersona 行为倾向参数
// 七个数值参数始终落在[0,1], 下游不允许出现NaN
type PatientPersona struct {
	Traits               []string `json:"traits"`
	Style                string   `json:"style"`
	InsightLevel         float64  `json:"insight_level"`
	TrustTowardClinician float64  `json:"trust_toward_clinician"`
	Cooperativeness      float64  `json:"cooperativeness"`
	EmotionalReactivity  float64  `json:"emotional_reactivity"`
	Verbosity            float64  `json:"verbosity"`
	DisclosureThreshold  float64  `json:"disclosure_threshold"`
	LiePropensity        float64  `json:"lie_propensity"`
	OmissionStrategy     string   `json:"omission_strategy"`
}

// NewPatientPersona 返回默认行为参数
func NewPatientPersona() *PatientPersona {
	return &PatientPersona{
		Style:                "礼貌、谨慎",
		InsightLevel:         0.6,
		TrustTowardClinician: 0.5,
		Cooperativeness:      0.5,
		EmotionalReactivity:  0.3,
		Verbosity:            0.5,
		DisclosureThreshold:  0.5,
		LiePropensity:        0.05,
		OmissionStrategy:     OmissionVague,
	}
}
