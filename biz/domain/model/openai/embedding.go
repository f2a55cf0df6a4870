package openai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/xh-polaris/psych-patient/biz/domain/model"
	"github.com/xh-polaris/psych-patient/biz/infrastructure/config"
)

var _ model.EmbedApp = (*EmbedApp)(nil)

// EmbedApp 是OpenAI协议的文本嵌入应用
// 支持通过BaseUrl指向任意兼容OpenAI协议的服务
type EmbedApp struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewEmbedApp 创建嵌入模型应用实例
func NewEmbedApp(c *config.Config) *EmbedApp {
	cfg := openai.DefaultConfig(c.OpenAI.ApiKey)
	if c.OpenAI.BaseUrl != "" {
		cfg.BaseURL = c.OpenAI.BaseUrl
	}
	m := openai.EmbeddingModel(c.OpenAI.EmbedModel)
	if m == "" {
		m = openai.SmallEmbedding3
	}
	return &EmbedApp{
		client: openai.NewClientWithConfig(cfg),
		model:  m,
	}
}

// Embed 批量计算文本向量
func (a *EmbedApp) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	resp, err := a.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: a.model,
	})
	if err != nil {
		return nil, err
	}

	out := make([][]float64, len(resp.Data))
	for i, d := range resp.Data {
		vec := make([]float64, len(d.Embedding))
		for j, v := range d.Embedding {
			vec[j] = float64(v)
		}
		out[i] = vec
	}
	return out, nil
}
