package record

import "github.com/xh-polaris/psych-patient/biz/application/dto"

// DefaultProfile 演示用兜底病历, 在未指定病历且生成不可用时使用
func DefaultProfile() *dto.PatientProfile {
	return &dto.PatientProfile{
		Demographics: dto.Demographics{
			Name:       "张某",
			Gender:     "男",
			Age:        "17",
			Occupation: "学生",
			Marriage:   "未婚",
			Education:  "重点高中",
		},
		ChiefComplaint: "情绪异常波动，讲话滔滔不绝，常语无伦次",
		History: dto.IllnessHistory{
			Onset:           "数周前",
			Course:          "情绪高涨与愤怒交替，症状逐渐加重",
			Triggers:        "学习压力, 家庭矛盾, 父母高期待",
			PastPsych:       "无",
			PastMedical:     "无重大躯体病史或手术史",
			Substance:       "否认",
			FamilyHistory:   "无精神疾病或重大躯体疾病史",
			PersonalHistory: "自幼在城市成长，童年内敛，高中后性格稍显外向，升学压力显著",
		},
		MentalStatusExam: dto.MentalStatusExam{
			Consciousness: "清醒",
			Orientation:   "完整",
			Attention:     "涣散，难以集中",
			Mood:          "欣快与愤怒交替",
			Thought:       "思维奔逸，联想松散，夸大妄想",
			Perception:    "听觉幻觉，被害妄想",
			Cognition:     "欠佳",
			Insight:       "缺失",
			Speech:        "多语，语速快，语无伦次",
		},
		Diagnosis: "躁狂发作",
		Severity:  dto.SeveritySevere,
		Risk: dto.RiskAssessment{
			Suicide:  "无",
			SelfHarm: "否认",
		},
	}
}

// DefaultPersona 与DefaultProfile配套的兜底行为参数
func DefaultPersona() *dto.PatientPersona {
	return &dto.PatientPersona{
		Traits:               []string{"激动", "多语", "自信过度", "容易分心"},
		Style:                "语速快、语无伦次",
		InsightLevel:         0.1,
		TrustTowardClinician: 0.4,
		Cooperativeness:      0.5,
		EmotionalReactivity:  0.9,
		Verbosity:            0.9,
		DisclosureThreshold:  0.7,
		LiePropensity:        0.3,
		OmissionStrategy:     dto.OmissionDeny,
	}
}
