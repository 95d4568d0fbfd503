package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"EditorialSync/internal/interfaces"
	"EditorialSync/internal/model"
	"EditorialSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// PageGenService 页面级价值发现生成：整窗口比赛打包送生成服务，
// 产物以未发布状态落库，由管理员预览后手动发布
type PageGenService struct {
	catalog        GameCatalog
	completionRepo repository.CompletionRepository
	scheduleRepo   repository.ScheduleRepository
	valueFindRepo  repository.ValueFindRepository
	genClient      interfaces.GenerationClient
	marketOdds     interfaces.MarketOddsFetcher // 可为nil
	windowDays     int
	logger         *logrus.Logger
	now            func() time.Time
}

// NewPageGenService 创建页面级生成服务
func NewPageGenService(
	catalog GameCatalog,
	completionRepo repository.CompletionRepository,
	scheduleRepo repository.ScheduleRepository,
	valueFindRepo repository.ValueFindRepository,
	genClient interfaces.GenerationClient,
	marketOdds interfaces.MarketOddsFetcher,
	windowDays int,
	logger *logrus.Logger,
) *PageGenService {
	if windowDays <= 0 {
		windowDays = 3
	}
	return &PageGenService{
		catalog:        catalog,
		completionRepo: completionRepo,
		scheduleRepo:   scheduleRepo,
		valueFindRepo:  valueFindRepo,
		genClient:      genClient,
		marketOdds:     marketOdds,
		windowDays:     windowDays,
		logger:         logger,
		now:            time.Now,
	}
}

// GeneratePage 为一个运动生成页面级价值发现产物。
// 排程行提供提示词；产物落库后盖 last_run_at 戳（手动触发与定时触发共用）
func (s *PageGenService) GeneratePage(ctx context.Context, sport model.SportType) (*model.ValueFindBundle, error) {
	if !model.ValidSport(sport) {
		return nil, fmt.Errorf("非法运动类型: %s", sport)
	}
	schedule, err := s.scheduleRepo.GetBySport(ctx, sport)
	if err != nil {
		return nil, fmt.Errorf("%s读取排程失败: %w", sport, err)
	}

	games, err := s.catalog.Fetch(ctx, sport, nil)
	if err != nil {
		return nil, fmt.Errorf("%s枚举比赛失败: %w", sport, err)
	}

	windowStart := s.now()
	windowEnd := windowStart.Add(time.Duration(s.windowDays) * 24 * time.Hour)
	var payloads []*model.Payload
	for _, game := range games {
		if game.Kickoff.Before(windowStart) || !game.Kickoff.Before(windowEnd) {
			continue
		}
		existing, err := s.completionRepo.GetCompletionsForGame(ctx, sport, game.GameID)
		if err != nil {
			s.logger.WithError(err).Warnf("读取%s已有槽位文本失败", game.Key())
			existing = map[model.SlotType]string{}
		}
		var market *model.MarketOdds
		if s.marketOdds != nil {
			market, err = s.marketOdds.FetchGameOdds(ctx, game)
			if err != nil {
				s.logger.WithError(err).Debugf("拉取%s市场赔率失败", game.Key())
				market = nil
			}
		}
		payloads = append(payloads, BuildPayload(game, existing, market))
	}
	if len(payloads) == 0 {
		return nil, fmt.Errorf("%s窗口内无比赛，无法生成页面分析", sport)
	}

	artifact, err := s.genClient.GenerateValueFind(ctx, schedule.Prompt, payloads)
	if err != nil {
		return nil, fmt.Errorf("%s页面级生成失败: %w", sport, err)
	}

	bundle, err := artifact.ToBundle(sport)
	if err != nil {
		return nil, fmt.Errorf("%s产物落库转换失败: %w", sport, err)
	}
	if err := s.valueFindRepo.Save(ctx, bundle); err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.MarkRun(ctx, sport, s.now()); err != nil {
		// 戳失败不回滚产物，下次tick可能重复生成一次，产物以最新行为准
		s.logger.WithError(err).Warnf("%s更新last_run_at失败", sport)
	}

	s.logger.Infof("%s页面级生成完成：badges=%d cards=%d picks=%d",
		sport, lenJSON(bundle.Badges), lenJSON(bundle.EditorCards), lenJSON(bundle.ValuePicks))
	return bundle, nil
}

// lenJSON 统计jsonb数组元素个数（仅用于日志）
func lenJSON(raw []byte) int {
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return 0
	}
	return len(arr)
}
