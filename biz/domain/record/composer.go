package record

import "sync"

// CompositionRecord 病历生成期间两条分支的汇合点
// 诱因故事与症状清单各自独立完成, 完成顺序不确定, 且都会尝试触发汇总
// 只在两段素材齐备时汇总, 且恰好汇总一次
type CompositionRecord struct {
	mu        sync.Mutex
	story     string
	symptoms  string
	composed  string
	composing bool
}

// ComposeFunc 将两段素材合成完整病历
type ComposeFunc func(story, symptoms string) (string, error)

// SetStory 写入诱因故事分支的结果
func (r *CompositionRecord) SetStory(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.story = s
}

// SetSymptoms 写入症状清单分支的结果
func (r *CompositionRecord) SetSymptoms(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.symptoms = s
}

// Story 读取诱因故事
func (r *CompositionRecord) Story() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.story
}

// Symptoms 读取症状清单
func (r *CompositionRecord) Symptoms() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.symptoms
}

// MedicalRecord 读取汇总后的完整病历, 未汇总时为空
func (r *CompositionRecord) MedicalRecord() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.composed
}

// TryCompose 尝试汇总
// 素材不齐备或已经汇总过都返回ok=false, 这是正常的"还没轮到"信号而非错误
// 两条分支并发调用时, 检查与认领在同一临界区内完成, compose只会被胜出方执行一次
// compose失败时释放认领, 后续调用可以重试
func (r *CompositionRecord) TryCompose(compose ComposeFunc) (string, bool, error) {
	r.mu.Lock()
	if r.story == "" || r.symptoms == "" || r.composed != "" || r.composing {
		r.mu.Unlock()
		return "", false, nil
	}
	r.composing = true
	story, symptoms := r.story, r.symptoms
	r.mu.Unlock()

	// compose可能是一次长时间的生成调用, 不能占着锁
	composed, err := compose(story, symptoms)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.composing = false
	if err != nil {
		return "", false, err
	}
	r.composed = composed
	return composed, true, nil
}
