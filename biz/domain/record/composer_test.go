package record

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinCompose(story, symptoms string) (string, error) {
	return story + "|" + symptoms, nil
}

// 素材不齐备时不触发汇总
func TestTryComposeIncomplete(t *testing.T) {
	r := &CompositionRecord{}

	out, ok, err := r.TryCompose(joinCompose)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out)

	r.SetStory("story")
	out, ok, err = r.TryCompose(joinCompose)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out)
	assert.Empty(t, r.MedicalRecord())
}

func TestTryComposeOnce(t *testing.T) {
	r := &CompositionRecord{}
	r.SetStory("story")
	r.SetSymptoms("symptoms")

	out, ok, err := r.TryCompose(joinCompose)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "story|symptoms", out)
	assert.Equal(t, "story|symptoms", r.MedicalRecord())

	// 已汇总后不再触发
	out, ok, err = r.TryCompose(joinCompose)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out)
}

// 汇总失败释放认领, 后续调用可以重试
func TestTryComposeRetryAfterError(t *testing.T) {
	r := &CompositionRecord{}
	r.SetStory("story")
	r.SetSymptoms("symptoms")

	boom := errors.New("boom")
	_, ok, err := r.TryCompose(func(story, symptoms string) (string, error) {
		return "", boom
	})
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, r.MedicalRecord())

	out, ok, err := r.TryCompose(joinCompose)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "story|symptoms", out)
}

// 两条分支并发触发时, 汇总恰好执行一次
func TestTryComposeConcurrentExactlyOnce(t *testing.T) {
	for i := 0; i < 100; i++ {
		r := &CompositionRecord{}
		var calls int64

		compose := func(story, symptoms string) (string, error) {
			atomic.AddInt64(&calls, 1)
			return story + "|" + symptoms, nil
		}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.SetStory("story")
			_, _, _ = r.TryCompose(compose)
		}()
		go func() {
			defer wg.Done()
			r.SetSymptoms("symptoms")
			_, _, _ = r.TryCompose(compose)
		}()
		wg.Wait()

		// 两条分支都完成后至少有一方看到素材齐备
		if r.MedicalRecord() == "" {
			_, _, _ = r.TryCompose(compose)
		}
		assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
		assert.Equal(t, "story|symptoms", r.MedicalRecord())
	}
}
