package policy

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/xh-polaris/psych-patient/biz/application/dto"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/consts"
)

// 披露状态
const (
	FullDisclose    = "full_disclose"
	PartialDisclose = "partial_disclose"
	NoDisclose      = "no_disclose"
)

// 应答语气, 披露状态 x 撒谎倾向 共九类
const (
	ToneTruthfulDirect      = "truthful_direct"
	ToneTruthWithFiction    = "truth_with_fiction"
	ToneFabricatedConfident = "fabricated_confident"
	ToneTruthfulEvasive     = "truthful_evasive"
	ToneTruthWithOmission   = "truth_with_omission"
	ToneFabricatedPartial   = "fabricated_partial"
	ToneSilentDefensive     = "silent_defensive"
	ToneVagueDeflecting     = "vague_deflecting"
	ToneFabricatedDenial    = "fabricated_denial"
)

// toneMap 语气对应的行为指令
var toneMap = map[string]string{
	ToneTruthfulDirect:      "真实坦率地作答，给出具体事实",
	ToneTruthWithFiction:    "真实为主，少量润饰/虚构；对非关键细节可能夸大",
	ToneFabricatedConfident: "在非关键细节上编造虚构内容，语气自信连贯",
	ToneTruthfulEvasive:     "以实话回答，但规避问题核心，更多谈论外围信息",
	ToneTruthWithOmission:   "部分真实，对关键细节进行刻意省略与模糊化表达",
	ToneFabricatedPartial:   "部分回应问题，对非关键细节作叙事性偏移",
	ToneSilentDefensive:     "拒绝回应，态度防御抗拒",
	ToneVagueDeflecting:     "模糊措辞与泛化陈述，转移话题",
	ToneFabricatedDenial:    "对敏感核心点选择坚决否认或反向叙述，但不得改动诊断/用药/检验等关键事实，保持一致性",
}

// omissionMap 回避策略对应的措辞指令
// 语气决定真实性, 回避策略决定措辞方式, 两者各自独立拼接
var omissionMap = map[string]string{
	dto.OmissionNone:     "不回避，直接回应提问要点",
	dto.OmissionVague:    "使用模糊措辞，如“可能/大概/不太清楚”等，语义含糊",
	dto.OmissionDeny:     "直接否认问题前提或事实",
	dto.OmissionOmit:     "省略关键信息和细节",
	dto.OmissionRedirect: "转移话题，引向安全话题或以反问转向",
	dto.OmissionPartial:  "选择性回应，仅回答非核心问题",
}

// fabricatedTones 含编造成分的语气, 用于推导will_lie
var fabricatedTones = map[string]bool{
	ToneTruthWithFiction:    true,
	ToneFabricatedConfident: true,
	ToneFabricatedPartial:   true,
	ToneFabricatedDenial:    true,
}

// TurnContext 单轮对话上下文
type TurnContext struct {
	Stage           string
	DoctorUtterance string
}

// DirectiveBundle 一轮应答的全部决策结果
// 交给阶段模板插值, 本身不生成任何自然语言回复
type DirectiveBundle struct {
	Stage           string `json:"stage"`
	DoctorUtterance string `json:"doctor_last_utterance"`

	InsightLevel         float64 `json:"insight_level"`
	TrustTowardClinician float64 `json:"trust_toward_clinician"`
	Cooperativeness      float64 `json:"cooperativeness"`
	EmotionalReactivity  float64 `json:"emotional_reactivity"`
	Verbosity            float64 `json:"verbosity"`
	DisclosureThreshold  float64 `json:"disclosure_threshold"`
	LiePropensity        float64 `json:"lie_propensity"`

	SentenceTarget string `json:"sentence_target"`
	EmotionalStyle string `json:"emotional_style"`
	InsightStyle   string `json:"insight_style"`

	Sensitive          bool    `json:"sensitive"`
	BaseDisclosureProb float64 `json:"base_disclosure_prob"`
	DisclosureState    string  `json:"disclosure_state"`
	ResponseTone       string  `json:"response_tone"`
	ResponseBehavior   string  `json:"response_behavior"`
	WillDisclose       bool    `json:"will_disclose"`
	WillLie            bool    `json:"will_lie"`

	Severity string `json:"severity"`
	Traits   string `json:"traits"`
	Style    string `json:"style"`
	// PatientFacts 病历事实边界, 生成结果不得与之矛盾
	PatientFacts   string `json:"patient_facts"`
	HistoryContext string `json:"history_context"`
}

// Clamp01 将x夹取到[0,1], NaN回退到0.5
func Clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0.5
	}
	return math.Max(0, math.Min(1, x))
}

// insightStyle 自知力三档风格
func insightStyle(insight float64) string {
	switch {
	case insight <= 0.3:
		return "否认自身问题，倾向将困扰归因于外部环境"
	case insight <= 0.6:
		return "意识到可能存在问题，但态度模糊、尚未明确承认"
	default:
		return "明确承认问题，并希望获得帮助"
	}
}

// emotionalStyle 情绪反应三档风格
func emotionalStyle(react float64) string {
	switch {
	case react <= 0.3:
		return "情绪抑制明显，表达平淡、内敛"
	case react <= 0.6:
		return "表面情绪稳定，但话语中隐含起伏"
	default:
		return "情绪波动明显，可能带有激动、焦虑、愤怒等情绪色彩"
	}
}

// sentenceTarget 语言冗长度四档目标
func sentenceTarget(verb float64) string {
	switch {
	case verb <= 0.2:
		return "回答极简短，极少细节"
	case verb <= 0.5:
		return "表达清晰，偏向简洁，1–2句话带少量细节"
	case verb <= 0.7:
		return "倾向完整表达，会用2–4句话并提供1-2个细节"
	default:
		return "表达偏冗长，话多，可能包含4–5句，带有丰富细节甚至会不断重复"
	}
}

// disclosureState 由敏感标记和基础披露概率推导披露状态
// 非敏感问题一律完全披露
func disclosureState(sensitive bool, prob float64) string {
	if !sensitive {
		return FullDisclose
	}
	switch {
	case prob >= 0.75:
		return FullDisclose
	case prob >= 0.40:
		return PartialDisclose
	default:
		return NoDisclose
	}
}

// responseTone 披露状态与撒谎倾向交叉出九类语气
func responseTone(state string, lie float64) string {
	switch state {
	case FullDisclose:
		switch {
		case lie < 0.3:
			return ToneTruthfulDirect
		case lie < 0.6:
			return ToneTruthWithFiction
		default:
			return ToneFabricatedConfident
		}
	case PartialDisclose:
		switch {
		case lie < 0.3:
			return ToneTruthfulEvasive
		case lie < 0.6:
			return ToneTruthWithOmission
		default:
			return ToneFabricatedPartial
		}
	default:
		switch {
		case lie < 0.3:
			return ToneSilentDefensive
		case lie < 0.6:
			return ToneVagueDeflecting
		default:
			return ToneFabricatedDenial
		}
	}
}

// historyContext 从历史尾部提取最多maxRounds组完整的医患对
func historyContext(history []dto.DialogTurn, maxRounds int) string {
	var pairs [][]dto.DialogTurn
	var buffer []dto.DialogTurn
	for i := len(history) - 1; i >= 0; i-- {
		buffer = append(buffer, history[i])
		if len(buffer) == 2 {
			pairs = append(pairs, []dto.DialogTurn{buffer[1], buffer[0]})
			buffer = buffer[:0]
		}
		if len(pairs) >= maxRounds {
			break
		}
	}

	var lines []string
	// pairs是从尾部收集的, 倒序还原时间顺序
	for i := len(pairs) - 1; i >= 0; i-- {
		for _, turn := range pairs[i] {
			text := strings.TrimSpace(turn.Text)
			if text == "" {
				continue
			}
			lines = append(lines, speakerLabel(turn.Speaker)+": "+text)
		}
	}
	return strings.Join(lines, "\n")
}

func speakerLabel(speaker string) string {
	switch speaker {
	case consts.SpeakerDoctor:
		return "医生"
	case consts.SpeakerPatient:
		return "患者"
	default:
		return speaker
	}
}

// Decide 根据病历/行为参数/当轮上下文/历史, 计算应答指令
// 纯函数, 无隐藏状态与随机性, 相同输入必然得到相同输出
func Decide(profile *dto.PatientProfile, persona *dto.PatientPersona, turn TurnContext, history []dto.DialogTurn) *DirectiveBundle {
	if profile == nil {
		profile = dto.NewPatientProfile()
	}
	if persona == nil {
		persona = dto.NewPatientPersona()
	}

	insight := Clamp01(persona.InsightLevel)
	trust := Clamp01(persona.TrustTowardClinician)
	coop := Clamp01(persona.Cooperativeness)
	react := Clamp01(persona.EmotionalReactivity)
	verb := Clamp01(persona.Verbosity)
	disc := Clamp01(persona.DisclosureThreshold)
	lie := Clamp01(persona.LiePropensity)

	sensitive := IsSensitive(turn.DoctorUtterance)

	// 基础披露概率, 敏感问题降档, 普通问题升档
	prob := Clamp01(0.5*disc + 0.3*trust + 0.2*coop)
	if sensitive {
		prob = Clamp01(prob - 0.25)
	} else {
		prob = Clamp01(prob + 0.15)
	}

	state := disclosureState(sensitive, prob)
	tone := responseTone(state, lie)
	omission := dto.NormalizeOmission(persona.OmissionStrategy)

	style := persona.Style
	if style == "" {
		style = "礼貌、谨慎"
	}

	stage := turn.Stage
	if stage == "" {
		stage = "information_gathering"
	}

	facts, _ := json.Marshal(profile)

	return &DirectiveBundle{
		Stage:           stage,
		DoctorUtterance: turn.DoctorUtterance,

		InsightLevel:         insight,
		TrustTowardClinician: trust,
		Cooperativeness:      coop,
		EmotionalReactivity:  react,
		Verbosity:            verb,
		DisclosureThreshold:  disc,
		LiePropensity:        lie,

		SentenceTarget: sentenceTarget(verb),
		EmotionalStyle: emotionalStyle(react),
		InsightStyle:   insightStyle(insight),

		Sensitive:          sensitive,
		BaseDisclosureProb: prob,
		DisclosureState:    state,
		ResponseTone:       tone,
		ResponseBehavior:   toneMap[tone] + "；" + omissionMap[omission],
		WillDisclose:       state == FullDisclose || state == PartialDisclose,
		WillLie:            fabricatedTones[tone],

		Severity:       dto.NormalizeSeverity(profile.Severity),
		Traits:         strings.Join(persona.Traits, ", "),
		Style:          style,
		PatientFacts:   string(facts),
		HistoryContext: historyContext(history, 3),
	}
}
