package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbed 按预置表返回向量, 未知文本返回零向量
type fakeEmbed struct {
	vectors map[string][]float64
}

func (f *fakeEmbed) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		if v, ok := f.vectors[t]; ok {
			out[i] = v
		} else {
			out[i] = []float64{0, 0}
		}
	}
	return out, nil
}

func TestIndexSearch(t *testing.T) {
	embed := &fakeEmbed{vectors: map[string][]float64{
		"a": {1, 0},
		"b": {0, 1},
		"c": {0.7, 0.7},
		"q": {1, 0.1},
	}}
	idx := NewIndex(embed)
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx,
		Document{ID: "1", Content: "a"},
		Document{ID: "2", Content: "b"},
		Document{ID: "3", Content: "c"},
	))
	assert.Equal(t, 3, idx.Len())

	got, err := idx.Search(ctx, "q", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, got)
}

// k超过语料数时收缩, k<=0时返回空
func TestIndexSearchBounds(t *testing.T) {
	embed := &fakeEmbed{vectors: map[string][]float64{"a": {1, 0}, "q": {1, 0}}}
	idx := NewIndex(embed)
	ctx := context.Background()
	require.NoError(t, idx.Add(ctx, Document{ID: "1", Content: "a"}))

	got, err := idx.Search(ctx, "q", 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = idx.Search(ctx, "q", 0)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// 相似度相同的按写入顺序返回
func TestIndexSearchStableOrder(t *testing.T) {
	embed := &fakeEmbed{vectors: map[string][]float64{
		"x1": {1, 0},
		"x2": {1, 0},
		"q":  {1, 0},
	}}
	idx := NewIndex(embed)
	ctx := context.Background()
	require.NoError(t, idx.Add(ctx,
		Document{ID: "1", Content: "x1"},
		Document{ID: "2", Content: "x2"},
	))

	got, err := idx.Search(ctx, "q", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"x1", "x2"}, got)
}

func TestIndexAddEmpty(t *testing.T) {
	idx := NewIndex(&fakeEmbed{})
	require.NoError(t, idx.Add(context.Background()))
	assert.Equal(t, 0, idx.Len())
}

func TestStoryCorpusIsCopy(t *testing.T) {
	docs := StoryCorpus()
	require.NotEmpty(t, docs)
	docs[0].Content = "改写"
	assert.NotEqual(t, "改写", StoryCorpus()[0].Content)
}
