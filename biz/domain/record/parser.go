package record

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/xh-polaris/psych-patient/biz/application/dto"
	"github.com/xh-polaris/psych-patient/biz/domain/policy"
)

// 病历解析器
// 病历遵循八段式结构(一、基本信息 ... 八、行为倾向参数), 每段内部是"标签：取值"式文本
// 解析是纯函数且永不报错: 缺段/缺字段/格式异常都退回对应默认值, 逐字段互不影响

// 八段标题, 按固定顺序出现
var sectionHeaders = []string{
	"一、基本信息",
	"二、主诉",
	"三、现病史",
	"四、既往史",
	"五、家族史",
	"六、个人史",
	"七、精神状态检查",
	"八、",
}

// 基本信息段的字段规则, 各自独立
var (
	reName       = regexp.MustCompile(`姓名[:：]\s*(\S+)`)
	reGender     = regexp.MustCompile(`性别[:：]\s*(\S+)`)
	reAge        = regexp.MustCompile(`年龄[:：]\s*(\d+)`)
	reOccupation = regexp.MustCompile(`职业[:：]\s*(\S+)`)
	reMarriage   = regexp.MustCompile(`婚姻状况[:：]\s*(\S+)`)
	reDiagnosis  = regexp.MustCompile(`诊断[:：]\s*(\S+)`)
	reSeverity   = regexp.MustCompile(`严重程度[:：]\s*(\S+)`)
)

// 现病史与既往史的抽取规则
var (
	reOnset    = regexp.MustCompile(`(数\S*前|\d+\s*周前|\d+\s*个月前|\d+\s*年前?)`)
	reTriggers = regexp.MustCompile(`诱因[^，。,]*[，,:：]\s*([^。]+)`)
)

// 精神状态检查的字段规则
var (
	reConsciousness = regexp.MustCompile(`意识[:：]\s*(\S+)`)
	reOrientation   = regexp.MustCompile(`定向力[:：]\s*(\S+)`)
	reAttention     = regexp.MustCompile(`注意力[:：]\s*([^\n]+)`)
	reMood          = regexp.MustCompile(`情绪[:：]\s*([^\n]+)`)
	reThought       = regexp.MustCompile(`思维[:：]\s*([^\n]+)`)
	rePerception    = regexp.MustCompile(`知觉[:：]\s*([^\n]+)`)
	reCognition     = regexp.MustCompile(`认知功能[:：]\s*([^\n]+)`)
	reInsight       = regexp.MustCompile(`自知力[:：]?\s*([^\n]+)`)
	reSpeech        = regexp.MustCompile(`语言[:：]\s*([^\n]+)`)
)

// 行为倾向参数段的规则
var (
	rePersonaSection = regexp.MustCompile(`(?s)八、[^\n]*\n(.+)`)
	reTraits         = regexp.MustCompile(`(?s)traits\s*[:：]\s*\[(.*?)\]`)
	reStyle          = regexp.MustCompile(`(?s)style\s*[:：]\s*\[(.*?)\]`)
	reOmission       = regexp.MustCompile(`omission_strategy\s*[:：]\s*([\w-]+)`)
)

// Parse 将完整病历文本解析为结构化病历与行为参数
// narrative为空时返回默认对象, 不视为错误
func Parse(narrative string) (*dto.PatientProfile, *dto.PatientPersona) {
	return ParseProfile(narrative), ParsePersona(narrative)
}

// section 截取两个标题之间的文本, 标题缺失时该段为空
func section(txt, start, next string) string {
	i := strings.Index(txt, start)
	if i < 0 {
		return ""
	}
	rest := txt[i+len(start):]
	if next != "" {
		if j := strings.Index(rest, next); j >= 0 {
			rest = rest[:j]
		}
	}
	return strings.TrimSpace(rest)
}

// match1 返回规则的首个捕获组, 未命中时为空串
func match1(re *regexp.Regexp, txt string) string {
	if m := re.FindStringSubmatch(txt); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// flatten 将多行文本压成一行
func flatten(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

// ParseProfile 解析结构化病历
func ParseProfile(narrative string) *dto.PatientProfile {
	p := dto.NewPatientProfile()
	if narrative == "" {
		return p
	}
	txt := strings.ReplaceAll(narrative, "\r", "")

	base := section(txt, "一、基本信息", "二、")
	chief := section(txt, "二、主诉", "三、")
	present := section(txt, "三、现病史", "四、")
	past := section(txt, "四、既往史", "五、")
	fam := section(txt, "五、家族史", "六、")
	personal := section(txt, "六、个人史", "七、")
	exam := section(txt, "七、精神状态检查", "八、")

	// 基本信息
	p.Demographics.Name = match1(reName, base)
	p.Demographics.Gender = match1(reGender, base)
	p.Demographics.Age = match1(reAge, base)
	p.Demographics.Occupation = match1(reOccupation, base)
	p.Demographics.Marriage = match1(reMarriage, base)
	p.Diagnosis = match1(reDiagnosis, base)
	if sev := match1(reSeverity, base); sev != "" {
		p.Severity = dto.NormalizeSeverity(sev)
	}

	// 主诉
	p.ChiefComplaint = flatten(chief)

	// 现病史: 起病时间/病程/诱因
	if present != "" {
		p.History.Onset = match1(reOnset, present)
		p.History.Course = flatten(present)
		if trig := match1(reTriggers, present); trig != "" {
			p.History.Triggers = normalizeTriggers(trig)
		}
	}

	// 既往史
	if past != "" {
		if strings.Contains(past, "无精神疾病") {
			p.History.PastPsych = "无"
		} else {
			p.History.PastPsych = flatten(past)
		}
		if strings.Contains(past, "无其他重大躯体疾病") {
			p.History.PastMedical = "无重大躯体病史或手术史"
		}
		if strings.Contains(past, "药物") || strings.Contains(past, "成瘾") {
			p.History.Substance = flatten(past)
		} else {
			p.History.Substance = "否认"
		}
	}

	if fam != "" {
		p.History.FamilyHistory = flatten(fam)
	}
	if personal != "" {
		p.History.PersonalHistory = flatten(personal)
	}

	// 精神状态检查
	if exam != "" {
		e := &p.MentalStatusExam
		e.Consciousness = match1(reConsciousness, exam)
		e.Orientation = match1(reOrientation, exam)
		e.Attention = match1(reAttention, exam)
		e.Mood = match1(reMood, exam)
		e.Thought = match1(reThought, exam)
		e.Perception = match1(rePerception, exam)
		e.Cognition = match1(reCognition, exam)
		e.Speech = match1(reSpeech, exam)
		if ins := match1(reInsight, exam); ins != "" {
			e.Insight = ins
		} else if strings.Contains(e.Cognition, "自知力") {
			// 认知功能一栏提到自知力缺失时作推断
			e.Insight = "缺失"
		}
	}

	return p
}

// normalizeTriggers 将诱因列表的连接词统一成逗号分隔
func normalizeTriggers(raw string) string {
	raw = strings.ReplaceAll(raw, "和", ",")
	raw = strings.ReplaceAll(raw, "、", ",")
	parts := make([]string, 0, 4)
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, ", ")
}

// ParsePersona 解析第八段的行为倾向参数
func ParsePersona(narrative string) *dto.PatientPersona {
	persona := dto.NewPatientPersona()
	if narrative == "" {
		return persona
	}

	m := rePersonaSection.FindStringSubmatch(strings.ReplaceAll(narrative, "\r", ""))
	if m == nil {
		return persona
	}
	sec := m[1]

	if raw := match1(reTraits, sec); raw != "" {
		if traits := splitQuotedList(raw); len(traits) > 0 {
			persona.Traits = traits
		}
	}
	if raw := match1(reStyle, sec); raw != "" {
		if styles := splitQuotedList(raw); len(styles) > 0 {
			persona.Style = strings.Join(styles, "、")
		}
	}

	// 数值字段逐个独立抽取, 解析失败保持默认
	setFloat(sec, "insight_level", &persona.InsightLevel)
	setFloat(sec, "trust_toward_clinician", &persona.TrustTowardClinician)
	setFloat(sec, "cooperativeness", &persona.Cooperativeness)
	setFloat(sec, "emotional_reactivity", &persona.EmotionalReactivity)
	setFloat(sec, "verbosity", &persona.Verbosity)
	setFloat(sec, "disclosure_threshold", &persona.DisclosureThreshold)
	setFloat(sec, "lie_propensity", &persona.LiePropensity)

	if om := match1(reOmission, sec); om != "" {
		persona.OmissionStrategy = dto.NormalizeOmission(om)
	}

	return persona
}

// setFloat 按"key: 0.x"抽取浮点并夹取到[0,1], 失败时不改动目标
func setFloat(sec, key string, dst *float64) {
	re := regexp.MustCompile(regexp.QuoteMeta(key) + `\s*[:：]\s*([0-9.]+)`)
	m := re.FindStringSubmatch(sec)
	if m == nil {
		return
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return
	}
	*dst = policy.Clamp01(v)
}

// quoteRunes 列表项可能使用的引号, 中英文都要容忍
var quoteRunes = map[rune]bool{'"': true, '\'': true, '“': true, '”': true, '‘': true, '’': true}

// splitQuotedList 按引号外的逗号切分列表
// 引号内的逗号属于列表项本身, 直接按逗号切分是错误的
func splitQuotedList(raw string) []string {
	var items []string
	var sb strings.Builder
	inQuote := false

	flush := func() {
		item := strings.TrimSpace(sb.String())
		item = strings.TrimFunc(item, func(r rune) bool { return quoteRunes[r] || r == ' ' })
		if item != "" {
			items = append(items, item)
		}
		sb.Reset()
	}

	for _, r := range raw {
		switch {
		case quoteRunes[r]:
			inQuote = !inQuote
			sb.WriteRune(r)
		case (r == ',' || r == '，') && !inQuote:
			flush()
		default:
			sb.WriteRune(r)
		}
	}
	flush()
	return items
}
