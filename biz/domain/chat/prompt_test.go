package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xh-polaris/psych-patient/biz/application/dto"
	"github.com/xh-polaris/psych-patient/biz/domain/policy"
	"github.com/xh-polaris/psych-patient/biz/domain/session"
)

func bundleFor(stage string) *policy.DirectiveBundle {
	return policy.Decide(dto.NewPatientProfile(), dto.NewPatientPersona(), policy.TurnContext{
		Stage:           stage,
		DoctorUtterance: "最近睡得怎么样？",
	}, nil)
}

func TestBuildPromptStages(t *testing.T) {
	opening := BuildPrompt(bundleFor(session.StageOpening))
	assert.Contains(t, opening, "初诊-启动会谈")
	assert.Contains(t, opening, "最近睡得怎么样？")

	info := BuildPrompt(bundleFor(session.StageInfo))
	assert.Contains(t, info, "收集信息")
	assert.Contains(t, info, "事实边界")
	assert.Contains(t, info, "最近睡得怎么样？")

	plan := BuildPrompt(bundleFor(session.StagePlanning))
	assert.Contains(t, plan, "解释与规划")

	closing := BuildPrompt(bundleFor(session.StageClosing))
	assert.Contains(t, closing, "结束会谈")
	// 结束阶段不回应具体问题
	assert.NotContains(t, closing, "最近睡得怎么样？")
}

// 未知阶段按收集信息处理
func TestBuildPromptUnknownStage(t *testing.T) {
	p := BuildPrompt(bundleFor(""))
	assert.Contains(t, p, "收集信息")
}
