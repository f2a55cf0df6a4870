package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xh-polaris/psych-patient/biz/application/dto"
)

const sampleRecord = `一、基本信息
姓名：李某
性别：女
年龄：24
职业：教师
婚姻状况：未婚
诊断：精神分裂症
严重程度：重度

二、主诉
情绪低落伴评论性幻听两月余。

三、现病史
数周前出现情绪低落，诱因：工作压力和家庭矛盾。随后幻听逐渐加重，社交明显减少。

四、既往史
无精神疾病史，无其他重大躯体疾病。

五、家族史
无特殊。

六、个人史
自幼性格内向，工作后独居。

七、精神状态检查
意识：清醒
定向力：完整
注意力：涣散
情绪：低落
思维：联想松散
知觉：评论性幻听
认知功能：欠佳，自知力缺失
语言：语速缓慢

八、根据上述病历内容，推测该患者的以下行为倾向参数（值在0~1之间）：
- traits：["敏感", "多疑"]
- style：["低声、迟缓", "谨慎"]
- insight_level：0.2
- trust_toward_clinician：0.4
- cooperativeness：0.5
- emotional_reactivity：0.7
- verbosity：0.3
- disclosure_threshold：0.6
- lie_propensity：0.1
- omission_strategy：vague
`

func TestParseProfile(t *testing.T) {
	p := ParseProfile(sampleRecord)

	assert.Equal(t, "李某", p.Demographics.Name)
	assert.Equal(t, "女", p.Demographics.Gender)
	assert.Equal(t, "24", p.Demographics.Age)
	assert.Equal(t, "教师", p.Demographics.Occupation)
	assert.Equal(t, "未婚", p.Demographics.Marriage)
	assert.Equal(t, "精神分裂症", p.Diagnosis)
	assert.Equal(t, dto.SeveritySevere, p.Severity)

	assert.Equal(t, "情绪低落伴评论性幻听两月余。", p.ChiefComplaint)

	assert.Equal(t, "数周前", p.History.Onset)
	assert.Equal(t, "工作压力, 家庭矛盾", p.History.Triggers)
	assert.Contains(t, p.History.Course, "幻听逐渐加重")

	assert.Equal(t, "无", p.History.PastPsych)
	assert.Equal(t, "无重大躯体病史或手术史", p.History.PastMedical)
	assert.Equal(t, "否认", p.History.Substance)
	assert.Equal(t, "无特殊。", p.History.FamilyHistory)
	assert.Contains(t, p.History.PersonalHistory, "性格内向")

	e := p.MentalStatusExam
	assert.Equal(t, "清醒", e.Consciousness)
	assert.Equal(t, "完整", e.Orientation)
	assert.Equal(t, "涣散", e.Attention)
	assert.Equal(t, "低落", e.Mood)
	assert.Equal(t, "联想松散", e.Thought)
	assert.Equal(t, "评论性幻听", e.Perception)
	assert.Equal(t, "缺失", e.Insight)
	assert.Equal(t, "语速缓慢", e.Speech)
}

func TestParsePersona(t *testing.T) {
	persona := ParsePersona(sampleRecord)

	assert.Equal(t, []string{"敏感", "多疑"}, persona.Traits)
	assert.Equal(t, "低声、迟缓、谨慎", persona.Style)
	assert.Equal(t, 0.2, persona.InsightLevel)
	assert.Equal(t, 0.4, persona.TrustTowardClinician)
	assert.Equal(t, 0.5, persona.Cooperativeness)
	assert.Equal(t, 0.7, persona.EmotionalReactivity)
	assert.Equal(t, 0.3, persona.Verbosity)
	assert.Equal(t, 0.6, persona.DisclosureThreshold)
	assert.Equal(t, 0.1, persona.LiePropensity)
	assert.Equal(t, dto.OmissionVague, persona.OmissionStrategy)
}

// 空文本退回默认对象而不是报错
func TestParseEmpty(t *testing.T) {
	profile, persona := Parse("")
	assert.Equal(t, dto.NewPatientProfile(), profile)
	assert.Equal(t, dto.NewPatientPersona(), persona)
}

// 缺段时其余段不受影响
func TestParseMissingSections(t *testing.T) {
	p := ParseProfile("一、基本信息\n姓名：王某\n年龄：30\n")
	assert.Equal(t, "王某", p.Demographics.Name)
	assert.Equal(t, "30", p.Demographics.Age)
	assert.Empty(t, p.ChiefComplaint)
	// 严重程度缺失保持默认
	assert.Equal(t, dto.SeverityModerate, p.Severity)
}

// 数值越界夹取, 单字段解析失败不影响其他字段
func TestParsePersonaClampsAndIsolates(t *testing.T) {
	text := `八、行为倾向参数
- insight_level：1.8
- trust_toward_clinician：abc
- verbosity：0.4
- omission_strategy：no
`
	persona := ParsePersona(text)
	assert.Equal(t, 1.0, persona.InsightLevel)
	// 解析失败保持默认
	assert.Equal(t, 0.5, persona.TrustTowardClinician)
	assert.Equal(t, 0.4, persona.Verbosity)
	// no归一为none
	assert.Equal(t, dto.OmissionNone, persona.OmissionStrategy)
}

func TestParsePersonaUnknownOmission(t *testing.T) {
	persona := ParsePersona("八、参数\nomission_strategy：whatever\n")
	assert.Equal(t, dto.OmissionVague, persona.OmissionStrategy)
}

// 引号内的逗号属于列表项本身
func TestSplitQuotedList(t *testing.T) {
	items := splitQuotedList(`"焦虑，易怒", "回避"`)
	require.Len(t, items, 2)
	assert.Equal(t, "焦虑，易怒", items[0])
	assert.Equal(t, "回避", items[1])

	assert.Empty(t, splitQuotedList(""))
	assert.Equal(t, []string{"单项"}, splitQuotedList(`“单项”`))
}

// 相同输入必然得到相同输出
func TestParseIdempotent(t *testing.T) {
	p1, a1 := Parse(sampleRecord)
	p2, a2 := Parse(sampleRecord)
	assert.Equal(t, p1, p2)
	assert.Equal(t, a1, a2)
}
