package interfaces

import (
	"context"

	"EditorialSync/internal/model"
)

// MarketOddsFetcher 按比赛标题拉取预测市场双方价格（用于 payload 的 market_odds 块）
// 拉取失败或未匹配到市场返回 nil——市场赔率处处可空，不失败整体流程
type MarketOddsFetcher interface {
	FetchGameOdds(ctx context.Context, game *model.GameView) (*model.MarketOdds, error)
}
