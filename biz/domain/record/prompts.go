package record

import (
	"fmt"
	"strings"
)

// 病历生成用的三段提示词, 分别对应诱因故事/症状清单/病历汇总

func storyPrompt(age, gender, diagnosis, severity string, retrieved []string) string {
	var sb strings.Builder
	sb.WriteString("你是一名专业的精神科医生助理，擅长根据患者资料撰写个性化、细致且符合临床逻辑的病情背景故事和初始陈述。\n")
	sb.WriteString("要求：充分参考既有案例但进行个性化改编；贴近真实精神科门诊场景；语气自然、临床化，避免诊断结论；")
	sb.WriteString("重点刻画事件背景、人物关系、心理变化与压力源；直接用“他/她”代称患者。\n\n")
	sb.WriteString(fmt.Sprintf("患者信息：\n- 年龄：%s\n- 性别：%s\n- 诊断：%s\n- 严重程度：%s\n\n", age, gender, diagnosis, severity))
	sb.WriteString("患者目前基本病情状况：\n")
	sb.WriteString(strings.Join(retrieved, "\n"))
	sb.WriteString("\n\n请基于上述信息生成一段约150-200字的个性化诱因故事，要求情境具体、细节丰富，可直接作为患者与医生对话的背景材料。")
	return sb.String()
}

func symptomPrompt(age, gender, diagnosis, severity string, retrieved []string) string {
	var sb strings.Builder
	sb.WriteString("你是一名专业的精神科医生助理，熟悉 DSM-5 的诊断标准和症状描述。\n")
	sb.WriteString("请结合 DSM-5 核心症状标准和患者信息，生成个性化的【症状参考清单】，分为七类：")
	sb.WriteString("外貌与行为、语言特征、情绪与情感、思维表现、知觉障碍、生理与功能状态、认知功能与判断洞察。")
	sb.WriteString("每类列出2-4条，每条不超过20字，语言贴近真实临床记录，不含诊断结论与治疗建议。\n\n")
	sb.WriteString(fmt.Sprintf("患者信息：\n- 年龄：%s\n- 性别：%s\n- 诊断：%s\n- 严重程度：%s\n\n", age, gender, diagnosis, severity))
	sb.WriteString("患者当前基本病情状况：\n")
	sb.WriteString(strings.Join(retrieved, "\n"))
	return sb.String()
}

func recordPrompt(age, gender, diagnosis, severity, story, symptoms string) string {
	var sb strings.Builder
	sb.WriteString("你是一名专业的精神科医生助理，熟悉精神科门诊的病历书写规范。\n")
	sb.WriteString("请根据患者信息、症状参考清单和患者故事，用第三人称生成一份完整的精神科病历，不给出治疗方案。\n")
	sb.WriteString("病历结构（标题必须逐字一致）：\n")
	sb.WriteString("一、基本信息（姓名：/性别：/年龄：/职业：/婚姻状况：/诊断：/严重程度：）\n")
	sb.WriteString("二、主诉\n三、现病史\n四、既往史\n五、家族史\n六、个人史\n七、精神状态检查\n")
	sb.WriteString("八、根据上述病历内容，推测该患者的以下行为倾向参数（值在0~1之间）：\n")
	sb.WriteString("- traits（关键词数组）\n- style（关键词数组）\n- insight_level\n- trust_toward_clinician\n")
	sb.WriteString("- cooperativeness\n- emotional_reactivity\n- verbosity\n- disclosure_threshold\n")
	sb.WriteString("- lie_propensity\n- omission_strategy（从none/vague/deny/omit/redirect/partial中选择一种）\n\n")
	sb.WriteString(fmt.Sprintf("患者信息：\n- 年龄：%s\n- 性别：%s\n- 诊断：%s\n- 严重程度：%s\n\n", age, gender, diagnosis, severity))
	sb.WriteString("症状参考清单：\n")
	sb.WriteString(symptoms)
	sb.WriteString("\n\n患者诱因故事：\n")
	sb.WriteString(story)
	sb.WriteString("\n\n请严格按照病历结构和要求生成完整病历。")
	return sb.String()
}
