package model

import (
	"context"

	"github.com/xh-polaris/psych-patient/biz/application/dto"
)

// ChatApp 是第三方对话大模型应用的抽象
type ChatApp interface {
	// Call 整体调用, 阻塞到生成完成并返回完整文本
	Call(prompt string, sessionId string) (string, error)

	// StreamCall 流式调用, 默认应该采用增量输出, 即后续的输出不包括之前的输出
	StreamCall(prompt string, sessionId string) (ChatAppScanner, error)

	// Close 关闭资源
	Close() error
}

// ChatAppScanner 是第三方对话调用的响应
type ChatAppScanner interface {
	Next() (*dto.ChatData, error)
	Close() error
}

// ReportApp 是第三方评估大模型应用的抽象
type ReportApp interface {
	// Call 获取评估报告
	Call(msg string) (*dto.InterviewReport, error)

	// Close 关闭资源
	Close() error
}

// EmbedApp 是第三方文本嵌入模型的抽象
type EmbedApp interface {
	// Embed 批量计算文本向量
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}
