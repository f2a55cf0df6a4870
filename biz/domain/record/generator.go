package record

import (
	"context"
	"fmt"
	"sync"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/xh-polaris/gopkg/util/log"

	"github.com/xh-polaris/psych-patient/biz/domain/model"
	"github.com/xh-polaris/psych-patient/biz/domain/retrieval"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/config"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/consts"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/util"
)

// Generator 负责生成完整病历文本
// 诱因故事与症状清单两条分支并行生成, 齐备后汇总为病历
type Generator struct {
	chat     model.ChatApp
	story    *retrieval.Index
	symptom  *retrieval.Index
	storyK   int
	symptomK int
}

// MustNewGenerator 按配置构建生成器, 启动时写入语料库
// 症状目录可以为空, 此时仅使用内置语料
func MustNewGenerator(c *config.Config, chat model.ChatApp, embed model.EmbedApp) *Generator {
	ctx := context.Background()

	story := retrieval.NewIndex(embed)
	if err := story.Add(ctx, retrieval.StoryCorpus()...); err != nil {
		util.FailOnError("build story index failed", err)
	}

	symptom := retrieval.NewIndex(embed)
	docs, err := retrieval.LoadSymptomDir(c.Record.SymptomDir)
	if err != nil {
		util.FailOnError("load symptom dir failed", err)
	}
	if len(docs) == 0 {
		docs = retrieval.StoryCorpus()
	}
	if err := symptom.Add(ctx, docs...); err != nil {
		util.FailOnError("build symptom index failed", err)
	}

	return NewGenerator(chat, story, symptom, c.Record.StoryK, c.Record.SymptomK)
}

// NewGenerator 创建病历生成器
func NewGenerator(chat model.ChatApp, story, symptom *retrieval.Index, storyK, symptomK int) *Generator {
	if storyK <= 0 {
		storyK = 1
	}
	if symptomK <= 0 {
		symptomK = 3
	}
	return &Generator{chat: chat, story: story, symptom: symptom, storyK: storyK, symptomK: symptomK}
}

// Generate 生成一份完整病历
// 两条分支各自检索-生成, 先后完成的一方触发汇总, 汇总恰好发生一次
func (g *Generator) Generate(ctx context.Context, age, gender, diagnosis, severity string) (string, error) {
	r := &CompositionRecord{}
	compose := func(story, symptoms string) (string, error) {
		return g.chat.Call(recordPrompt(age, gender, diagnosis, severity, story, symptoms), "")
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(2)
	gopool.CtxGo(ctx, func() {
		defer wg.Done()
		retrieved, err := g.story.Search(ctx, fmt.Sprintf("%s %s %s %s", age, gender, diagnosis, severity), g.storyK)
		if err != nil {
			// 检索失败降级为无参考案例, 不中断生成
			log.CtxError(ctx, "[Generator] story retrieval failed: %v", err)
			retrieved = nil
		}
		story, err := g.chat.Call(storyPrompt(age, gender, diagnosis, severity, retrieved), "")
		if err != nil {
			errs[0] = err
			return
		}
		r.SetStory(story)
		if _, _, err := r.TryCompose(compose); err != nil {
			errs[0] = err
		}
	})
	gopool.CtxGo(ctx, func() {
		defer wg.Done()
		retrieved, err := g.symptom.Search(ctx, fmt.Sprintf("%s %s 症状 DSM-5", diagnosis, severity), g.symptomK)
		if err != nil {
			log.CtxError(ctx, "[Generator] symptom retrieval failed: %v", err)
			retrieved = nil
		}
		symptoms, err := g.chat.Call(symptomPrompt(age, gender, diagnosis, severity, retrieved), "")
		if err != nil {
			errs[1] = err
			return
		}
		r.SetSymptoms(symptoms)
		if _, _, err := r.TryCompose(compose); err != nil {
			errs[1] = err
		}
	})
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return "", consts.ErrGeneration
		}
	}
	composed := r.MedicalRecord()
	if composed == "" {
		return "", consts.ErrGeneration
	}
	return composed, nil
}
