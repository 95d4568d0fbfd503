package service

import (
	"context"
	"fmt"
	"time"

	"EditorialSync/internal/interfaces"
	"EditorialSync/internal/model"
	"EditorialSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// ReconcileResult 补齐结果聚合计数。成功按条目定义，不按批次定义
type ReconcileResult struct {
	Generated int `json:"generated"`
	Errors    int `json:"errors"`
}

// ReconcileService 补齐引擎：枚举窗口内比赛，对每个启用的(运动,槽位)做集合差，
// 逐条生成缺失文本。单条失败只计数不中断批次
type ReconcileService struct {
	catalog        GameCatalog
	completionRepo repository.CompletionRepository
	genClient      interfaces.GenerationClient
	marketOdds     interfaces.MarketOddsFetcher // 可为nil
	windowDays     int
	logger         *logrus.Logger
	now            func() time.Time
}

// NewReconcileService 创建补齐引擎
func NewReconcileService(
	catalog GameCatalog,
	completionRepo repository.CompletionRepository,
	genClient interfaces.GenerationClient,
	marketOdds interfaces.MarketOddsFetcher,
	windowDays int,
	logger *logrus.Logger,
) *ReconcileService {
	if windowDays <= 0 {
		windowDays = 3
	}
	return &ReconcileService{
		catalog:        catalog,
		completionRepo: completionRepo,
		genClient:      genClient,
		marketOdds:     marketOdds,
		windowDays:     windowDays,
		logger:         logger,
		now:            time.Now,
	}
}

// Reconcile 批量补齐缺失文本。sport为nil时覆盖全部运动。
// ctx取消后不再取新条目，已完成的计数保留返回
func (s *ReconcileService) Reconcile(ctx context.Context, sport *model.SportType) (*ReconcileResult, error) {
	// 仅操作级错误（非法运动类型）作为整体失败传播
	if sport != nil && !model.ValidSport(*sport) {
		return nil, fmt.Errorf("非法运动类型: %s", *sport)
	}
	sports := model.AllSports
	if sport != nil {
		sports = []model.SportType{*sport}
	}

	result := &ReconcileResult{}
	for _, sp := range sports {
		if ctx.Err() != nil {
			s.logger.Warn("补齐任务被取消，保留已完成计数")
			return result, nil
		}
		if err := s.reconcileSport(ctx, sp, result); err != nil {
			// 指定单运动时传播失败；全量模式下单运动失败不阻塞其余运动
			if sport != nil {
				return nil, err
			}
			s.logger.WithError(err).Warnf("%s补齐失败，继续其余运动", sp)
		}
	}

	s.logger.Infof("补齐完成：生成%d条，失败%d条", result.Generated, result.Errors)
	return result, nil
}

// reconcileSport 单运动补齐：窗口枚举→集合差→逐条生成
func (s *ReconcileService) reconcileSport(ctx context.Context, sport model.SportType, result *ReconcileResult) error {
	games, err := s.catalog.Fetch(ctx, sport, nil)
	if err != nil {
		return fmt.Errorf("%s枚举比赛失败: %w", sport, err)
	}

	// 滚动窗口 [now, now+N天)：窗口外的比赛绝不触碰，避免无边界回填历史
	windowStart := s.now()
	windowEnd := windowStart.Add(time.Duration(s.windowDays) * 24 * time.Hour)
	inWindow := make([]*model.GameView, 0, len(games))
	for _, g := range games {
		if !g.Kickoff.Before(windowStart) && g.Kickoff.Before(windowEnd) {
			inWindow = append(inWindow, g)
		}
	}
	if len(inWindow) == 0 {
		s.logger.Debugf("%s窗口内无比赛", sport)
		return nil
	}

	configs, err := s.completionRepo.ListConfigs(ctx, &sport)
	if err != nil {
		return fmt.Errorf("%s读取槽位配置失败: %w", sport, err)
	}

	// 每场比赛的市场赔率与已有文本在本轮内复用
	marketCache := make(map[string]*model.MarketOdds)
	existingCache := make(map[string]map[model.SlotType]string)

	for _, cfg := range configs {
		// 停用的(运动,槽位)是跳过，不是错误
		if !cfg.Enabled {
			s.logger.Debugf("%s/%s已停用，跳过", cfg.SportType, cfg.SlotType)
			continue
		}

		done, err := s.completionRepo.ListCompletionGameIDs(ctx, sport, cfg.SlotType)
		if err != nil {
			return fmt.Errorf("%s/%s读取已有文本失败: %w", sport, cfg.SlotType, err)
		}

		// 集合差即工作清单：已满足的组合在重复触发时天然是no-op（幂等）
		for _, game := range inWindow {
			if done[game.GameID] {
				continue
			}
			if ctx.Err() != nil {
				s.logger.Warn("补齐任务被取消，保留已完成计数")
				return nil
			}
			s.generateOne(ctx, cfg, game, marketCache, existingCache, result)
		}
	}
	return nil
}

// generateOne 单条目生成与落库。任何失败只计数并告警，绝不中断批次
func (s *ReconcileService) generateOne(
	ctx context.Context,
	cfg *model.CompletionConfig,
	game *model.GameView,
	marketCache map[string]*model.MarketOdds,
	existingCache map[string]map[model.SlotType]string,
	result *ReconcileResult,
) {
	key := game.Key()
	existing, ok := existingCache[key]
	if !ok {
		var err error
		existing, err = s.completionRepo.GetCompletionsForGame(ctx, game.Sport, game.GameID)
		if err != nil {
			s.logger.WithError(err).Warnf("读取%s已有槽位文本失败", key)
			existing = map[model.SlotType]string{}
		}
		existingCache[key] = existing
	}

	market, ok := marketCache[key]
	if !ok && s.marketOdds != nil {
		var err error
		market, err = s.marketOdds.FetchGameOdds(ctx, game)
		if err != nil {
			// 市场赔率是可选增强，失败不影响生成
			s.logger.WithError(err).Debugf("拉取%s市场赔率失败", key)
			market = nil
		}
		marketCache[key] = market
	}

	payload := BuildPayload(game, existing, market)
	content, err := s.genClient.GenerateSlot(ctx, cfg.Prompt, payload)
	if err != nil {
		result.Errors++
		s.logger.WithError(err).WithFields(logrus.Fields{
			"game_id": game.GameID,
			"sport":   game.Sport,
			"slot":    cfg.SlotType,
		}).Warn("生成失败，跳过该条目")
		return
	}

	if err := s.completionRepo.UpsertCompletion(ctx, &model.Completion{
		GameID:    game.GameID,
		SportType: game.Sport,
		SlotType:  cfg.SlotType,
		Content:   content,
	}); err != nil {
		result.Errors++
		s.logger.WithError(err).WithFields(logrus.Fields{
			"game_id": game.GameID,
			"sport":   game.Sport,
			"slot":    cfg.SlotType,
		}).Warn("落库失败，跳过该条目")
		return
	}
	result.Generated++
}
