package interfaces

import (
	"context"

	"EditorialSync/internal/model"
)

// GenerationClient 外部生成服务边界。超时与响应格式错误统一返回类型化错误，
// 不在内部重试——重试策略属于调用方（补齐引擎）
type GenerationClient interface {
	// GenerateSlot 生成单槽位自由文本
	GenerateSlot(ctx context.Context, systemPrompt string, payload *model.Payload) (string, error)
	// GenerateValueFind 生成页面级价值发现产物（固定schema）
	GenerateValueFind(ctx context.Context, systemPrompt string, payloads []*model.Payload) (*model.ValueFindArtifact, error)
}
