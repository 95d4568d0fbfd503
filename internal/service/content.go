package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"EditorialSync/internal/config"
	"EditorialSync/internal/model"
	"EditorialSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SlotView 面向终端用户的单槽位文本。Generated=false表示当前给的是静态兜底
// （槽位停用、生成失败或尚未生成）——终端用户永远看不到原始错误
type SlotView struct {
	SlotType  model.SlotType `json:"slot_type"`
	Text      string         `json:"text"`
	Generated bool           `json:"generated"`
}

// ContentService 终端用户读取面：槽位文本（含总开关兜底）、已发布价值发现、分桶精选。
// 所有读取都是过滤后的投影，终端用户没有任何变更路径
type ContentService struct {
	completionRepo repository.CompletionRepository
	valueFindRepo  repository.ValueFindRepository
	pickRepo       repository.PickRepository
	catalog        GameCatalog
	cfg            *config.ContentConfig
	logger         *logrus.Logger
	now            func() time.Time
}

// NewContentService 创建读取面服务
func NewContentService(
	completionRepo repository.CompletionRepository,
	valueFindRepo repository.ValueFindRepository,
	pickRepo repository.PickRepository,
	catalog GameCatalog,
	cfg *config.ContentConfig,
	logger *logrus.Logger,
) *ContentService {
	return &ContentService{
		completionRepo: completionRepo,
		valueFindRepo:  valueFindRepo,
		pickRepo:       pickRepo,
		catalog:        catalog,
		cfg:            cfg,
		logger:         logger,
		now:            time.Now,
	}
}

// GetGameCompletions 一场比赛的全部槽位文本。
// 总开关（completion_configs.enabled）每次读取现查：停用即兜底静态文案，
// 已生成的行原样保留，重新启用后恢复原文而非重新生成
func (s *ContentService) GetGameCompletions(ctx context.Context, sport model.SportType, gameID string) ([]SlotView, error) {
	if !model.ValidSport(sport) {
		return nil, fmt.Errorf("非法运动类型: %s", sport)
	}
	configs, err := s.completionRepo.ListConfigs(ctx, &sport)
	if err != nil {
		return nil, fmt.Errorf("读取槽位配置失败: %w", err)
	}
	texts, err := s.completionRepo.GetCompletionsForGame(ctx, sport, gameID)
	if err != nil {
		return nil, fmt.Errorf("读取槽位文本失败: %w", err)
	}

	views := make([]SlotView, 0, len(configs))
	for _, cfg := range configs {
		view := SlotView{SlotType: cfg.SlotType, Text: s.cfg.FallbackText, Generated: false}
		if cfg.Enabled {
			if text, ok := texts[cfg.SlotType]; ok && text != "" {
				view.Text = text
				view.Generated = true
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// GetPublishedValueFind 当前已发布的价值发现产物；无则返回nil（不是错误）
func (s *ContentService) GetPublishedValueFind(ctx context.Context, sport model.SportType) (*model.ValueFindBundle, error) {
	if !model.ValidSport(sport) {
		return nil, fmt.Errorf("非法运动类型: %s", sport)
	}
	bundle, err := s.valueFindRepo.GetLatestPublished(ctx, sport)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return bundle, nil
}

// GetClassifiedPicks 分桶精选。非管理员只取已发布行；比赛数据查不到不隐藏（占位露出）
func (s *ContentService) GetClassifiedPicks(ctx context.Context, sport model.SportType, isAdmin bool) (*PickBuckets, error) {
	if !model.ValidSport(sport) {
		return nil, fmt.Errorf("非法运动类型: %s", sport)
	}
	picks, err := s.pickRepo.List(ctx, sport, !isAdmin)
	if err != nil {
		return nil, fmt.Errorf("读取精选失败: %w", err)
	}
	if len(picks) == 0 {
		return ClassifyPicks(nil, nil, s.now(), s.cfg.GraceDays, isAdmin), nil
	}

	gameIDs := make([]string, 0, len(picks))
	seen := make(map[string]bool, len(picks))
	for _, p := range picks {
		if !seen[p.GameID] {
			seen[p.GameID] = true
			gameIDs = append(gameIDs, p.GameID)
		}
	}

	// 目录查询失败不隐藏精选——全部按"查不到比赛数据"占位露出
	gamesByKey := make(map[string]*model.GameView)
	games, err := s.catalog.Fetch(ctx, sport, gameIDs)
	if err != nil {
		s.logger.WithError(err).Warnf("%s拉取精选比赛数据失败，精选按占位露出", sport)
	} else {
		for _, g := range games {
			gamesByKey[g.Key()] = g
		}
	}

	return ClassifyPicks(picks, gamesByKey, s.now(), s.cfg.GraceDays, isAdmin), nil
}
