package interfaces

import (
	"context"

	"EditorialSync/internal/config"
	"EditorialSync/internal/model"

	"github.com/sirupsen/logrus"
)

// SportAdapter 所有运动数据源必须实现的核心接口
type SportAdapter interface {
	GetSport() model.SportType                                                // 运动类型
	FetchGames(ctx context.Context, gameIDs []string) ([]*model.RawGame, error) // 拉取比赛（gameIDs 为空=全部在售场次）
	ConvertToGameViews(raw []*model.RawGame) (map[string]*model.GameView, error) // 归一化为统一视图，key=game_id
}

// Factory 运动适配器工厂函数签名
// 入参：数据源配置、日志实例
// 出参：实现SportAdapter接口的适配器实例
type Factory func(cfg *config.FeedConfig, logger *logrus.Logger) SportAdapter
