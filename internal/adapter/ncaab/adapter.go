package ncaab

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"EditorialSync/internal/adapter"
	"EditorialSync/internal/config"
	"EditorialSync/internal/interfaces"
	"EditorialSync/internal/model"
	"EditorialSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

func init() {
	adapter.Register(model.SportNCAAB, NewAdapter)
}

type Adapter struct {
	cfg        *config.FeedConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewAdapter(cfg *config.FeedConfig, logger *logrus.Logger) interfaces.SportAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.New(httpclient.Options{Timeout: cfg.Timeout, Proxy: cfg.Proxy}, logger),
		logger:     logger,
	}
}

// GetSport ========== 实现SportAdapter接口 ==========
func (a *Adapter) GetSport() model.SportType {
	return model.SportNCAAB
}

func (a *Adapter) FetchGames(ctx context.Context, gameIDs []string) ([]*model.RawGame, error) {
	gamesURL := fmt.Sprintf("%s/games", a.cfg.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, gamesURL, nil)
	if err != nil {
		return nil, err
	}
	if a.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+a.cfg.AuthToken)
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("获取NCAAB比赛失败: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			a.logger.Errorf("关闭NCAAB响应体失败: %v", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NCAAB数据源返回 %d", resp.StatusCode)
	}

	var feedGames []model.NCAABFeedGame
	if err := json.NewDecoder(resp.Body).Decode(&feedGames); err != nil {
		return nil, fmt.Errorf("解析NCAAB比赛失败: %w", err)
	}

	wanted := make(map[string]bool, len(gameIDs))
	for _, id := range gameIDs {
		wanted[id] = true
	}

	var raw []*model.RawGame
	for _, g := range feedGames {
		if len(wanted) > 0 && !wanted[g.ID] {
			continue
		}
		raw = append(raw, &model.RawGame{
			Sport:  model.SportNCAAB,
			GameID: g.ID,
			Data:   g,
		})
	}
	return raw, nil
}

func (a *Adapter) ConvertToGameViews(raw []*model.RawGame) (map[string]*model.GameView, error) {
	views := make(map[string]*model.GameView, len(raw))
	for _, r := range raw {
		g, ok := r.Data.(model.NCAABFeedGame)
		if !ok {
			a.logger.Warn("RawGame数据类型错误，跳过")
			continue
		}

		gameDate, err := parseGameDate(g.GameDate)
		if err != nil {
			a.logger.Warnf("解析NCAAB比赛时间失败（%s）: %v", g.ID, err)
			continue
		}

		view := &model.GameView{
			GameID:   g.ID,
			Sport:    model.SportNCAAB,
			Kickoff:  gameDate,
			HomeTeam: model.TeamView{Name: g.Home},
			AwayTeam: model.TeamView{Name: g.Away},
		}
		if g.Spread != nil || g.Total != nil || g.HomeML != nil || g.AwayML != nil {
			view.Lines = &model.VegasLines{
				Spread:        g.Spread,
				Total:         g.Total,
				HomeMoneyline: g.HomeML,
				AwayMoneyline: g.AwayML,
			}
		}
		if g.HomeWinProb != nil && g.AwayWinProb != nil {
			view.Prediction = &model.ModelPrediction{
				HomeWinProb: *g.HomeWinProb,
				AwayWinProb: *g.AwayWinProb,
			}
		}

		views[g.ID] = view
	}
	return views, nil
}

// parseGameDate NCAAB季初常只有纯日期，开球时刻确定后变为完整ISO。
// 纯日期按美东当日最后一刻解析：开球时刻未知时按当日晚场兜底，
// 否则零点解析会让当日比赛一进当天就掉出补齐窗口下界
func parseGameDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(model.ReferenceZone), nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, model.ReferenceZone); err == nil {
		// 按墙上时钟取23:59:59，夏令时切换日用时长加法会窜到次日
		return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, model.ReferenceZone), nil
	}
	return time.Time{}, fmt.Errorf("不支持的时间格式: %q", s)
}
