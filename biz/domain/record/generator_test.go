package record

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xh-polaris/psych-patient/biz/domain/model"
	"github.com/xh-polaris/psych-patient/biz/domain/retrieval"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/consts"
)

// fakeChat 按提示词内容返回对应分支的固定结果
type fakeChat struct {
	failStory bool
}

func (f *fakeChat) Call(prompt string, sessionId string) (string, error) {
	switch {
	case strings.Contains(prompt, "个性化诱因故事"):
		if f.failStory {
			return "", errors.New("upstream down")
		}
		return "STORY", nil
	case strings.Contains(prompt, "【症状参考清单】"):
		return "SYMPTOMS", nil
	case strings.Contains(prompt, "病历结构"):
		// 汇总提示词必须携带两条分支的素材
		if !strings.Contains(prompt, "STORY") || !strings.Contains(prompt, "SYMPTOMS") {
			return "", errors.New("missing material")
		}
		return "RECORD", nil
	default:
		return "", errors.New("unexpected prompt")
	}
}

func (f *fakeChat) StreamCall(prompt string, sessionId string) (model.ChatAppScanner, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeChat) Close() error { return nil }

type constEmbed struct{}

func (constEmbed) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = []float64{1, 0}
	}
	return out, nil
}

func testIndex(t *testing.T) *retrieval.Index {
	idx := retrieval.NewIndex(constEmbed{})
	require.NoError(t, idx.Add(context.Background(), retrieval.Document{ID: "1", Content: "参考案例"}))
	return idx
}

func TestGenerate(t *testing.T) {
	g := NewGenerator(&fakeChat{}, testIndex(t), testIndex(t), 1, 3)

	out, err := g.Generate(context.Background(), "24", "女", "精神分裂症", "重度")
	require.NoError(t, err)
	assert.Equal(t, "RECORD", out)
}

func TestGenerateBranchFailure(t *testing.T) {
	g := NewGenerator(&fakeChat{failStory: true}, testIndex(t), testIndex(t), 1, 3)

	_, err := g.Generate(context.Background(), "24", "女", "精神分裂症", "重度")
	assert.ErrorIs(t, err, consts.ErrGeneration)
}
