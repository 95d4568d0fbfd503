package service

import (
	"context"
	"fmt"

	"EditorialSync/internal/adapter"
	"EditorialSync/internal/model"

	"github.com/sirupsen/logrus"
)

// GameCatalog 统一比赛目录边界。补齐引擎与分类器只依赖此接口，
// 绝不触碰各运动数据源的字段差异（差异在适配器层抹平一次）
type GameCatalog interface {
	// Fetch 拉取并归一化比赛。gameIDs 为空=全部在售场次。返回 map[game_id]*GameView
	Fetch(ctx context.Context, sport model.SportType, gameIDs []string) (map[string]*model.GameView, error)
}

// CatalogService 目录服务：适配器归一化 + 队伍资源装饰
type CatalogService struct {
	registry *adapter.SportRegistry
	assets   *adapter.AssetResolver
	logger   *logrus.Logger
}

// NewCatalogService 创建目录服务
func NewCatalogService(registry *adapter.SportRegistry, assets *adapter.AssetResolver, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		registry: registry,
		assets:   assets,
		logger:   logger,
	}
}

// Fetch 实现 GameCatalog
func (s *CatalogService) Fetch(ctx context.Context, sport model.SportType, gameIDs []string) (map[string]*model.GameView, error) {
	adapterIns, err := s.registry.GetAdapter(sport)
	if err != nil {
		return nil, err
	}

	raw, err := adapterIns.FetchGames(ctx, gameIDs)
	if err != nil {
		return nil, fmt.Errorf("%s拉取比赛失败: %w", sport, err)
	}
	if len(raw) == 0 {
		return map[string]*model.GameView{}, nil
	}

	views, err := adapterIns.ConvertToGameViews(raw)
	if err != nil {
		return nil, fmt.Errorf("%s归一化失败: %w", sport, err)
	}

	// 队伍资源在目录边界解析一次，未命中降级占位、不失败
	for _, view := range views {
		s.assets.Decorate(view)
	}
	return views, nil
}
