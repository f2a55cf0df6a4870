package retrieval

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/xh-polaris/psych-patient/biz/domain/model"
)

// Document 一条可检索的语料
type Document struct {
	ID      string
	Content string
	Meta    map[string]string
}

// Index 内存向量索引
// 写入时计算嵌入, 检索按余弦相似度取top-k
// 排序是确定的: 相似度相同的按写入顺序取先写入的
type Index struct {
	embed model.EmbedApp

	mu      sync.RWMutex
	entries []entry
}

type entry struct {
	doc Document
	vec []float64
}

// NewIndex 创建索引
func NewIndex(embed model.EmbedApp) *Index {
	return &Index{embed: embed}
}

// Add 写入语料并计算嵌入
func (i *Index) Add(ctx context.Context, docs ...Document) error {
	if len(docs) == 0 {
		return nil
	}
	texts := make([]string, 0, len(docs))
	for _, d := range docs {
		texts = append(texts, d.Content)
	}
	vecs, err := i.embed.Embed(ctx, texts)
	if err != nil {
		return err
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	for k, d := range docs {
		if k >= len(vecs) {
			break
		}
		i.entries = append(i.entries, entry{doc: d, vec: vecs[k]})
	}
	return nil
}

// Len 语料条数
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}

// Search 返回与query最相似的k条语料文本, 相似度降序
func (i *Index) Search(ctx context.Context, query string, k int) ([]string, error) {
	if k <= 0 {
		return nil, nil
	}
	vecs, err := i.embed.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, nil
	}
	q := vecs[0]

	i.mu.RLock()
	defer i.mu.RUnlock()

	type scored struct {
		pos   int
		score float64
	}
	ss := make([]scored, 0, len(i.entries))
	for pos, e := range i.entries {
		ss = append(ss, scored{pos: pos, score: cosine(q, e.vec)})
	}
	sort.SliceStable(ss, func(a, b int) bool { return ss[a].score > ss[b].score })

	if k > len(ss) {
		k = len(ss)
	}
	out := make([]string, 0, k)
	for _, s := range ss[:k] {
		out = append(out, i.entries[s.pos].doc.Content)
	}
	return out, nil
}

// cosine 余弦相似度, 零向量记为0
func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
