package nba

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
	adapter.Register(model.SportNBA, NewAdapter)
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
	return model.SportNBA
}

func (a *Adapter) FetchGames(ctx context.Context, gameIDs []string) ([]*model.RawGame, error) {
	gamesURL := fmt.Sprintf("%s/scoreboard/upcoming", a.cfg.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, gamesURL, nil)
	if err != nil {
		return nil, err
	}
	if a.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+a.cfg.AuthToken)
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("获取NBA比赛失败: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			a.logger.Errorf("关闭NBA响应体失败: %v", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NBA数据源返回 %d", resp.StatusCode)
	}

	var feedGames []model.NBAFeedGame
	if err := json.NewDecoder(resp.Body).Decode(&feedGames); err != nil {
		return nil, fmt.Errorf("解析NBA比赛失败: %w", err)
	}

	wanted := make(map[string]bool, len(gameIDs))
	for _, id := range gameIDs {
		wanted[id] = true
	}

	var raw []*model.RawGame
	for _, g := range feedGames {
		if len(wanted) > 0 && !wanted[g.GID] {
			continue
		}
		raw = append(raw, &model.RawGame{
			Sport:  model.SportNBA,
			GameID: g.GID,
			Data:   g,
		})
	}
	return raw, nil
}

func (a *Adapter) ConvertToGameViews(raw []*model.RawGame) (map[string]*model.GameView, error) {
	views := make(map[string]*model.GameView, len(raw))
	for _, r := range raw {
		g, ok := r.Data.(model.NBAFeedGame)
		if !ok {
			a.logger.Warn("RawGame数据类型错误，跳过")
			continue
		}

		start, err := parseStart(g.StartTime)
		if err != nil {
			a.logger.Warnf("解析NBA开赛时间失败（%s）: %v", g.GID, err)
			continue
		}

		view := &model.GameView{
			GameID:   g.GID,
			Sport:    model.SportNBA,
			Kickoff:  start,
			HomeTeam: model.TeamView{Name: g.HomeName},
			AwayTeam: model.TeamView{Name: g.AwayName},
		}
		// 盘口整块可空（未开盘时数据源直接给null）
		if g.Lines != nil {
			view.Lines = &model.VegasLines{
				Spread:        g.Lines.Spread,
				Total:         g.Lines.OU,
				HomeMoneyline: g.Lines.HomeML,
				AwayMoneyline: g.Lines.AwayML,
			}
		}
		if g.HomeWinProb != nil && g.AwayWinProb != nil {
			view.Prediction = &model.ModelPrediction{
				HomeWinProb: *g.HomeWinProb,
				AwayWinProb: *g.AwayWinProb,
			}
		}
		if g.PublicSpread != "" || g.PublicTotal != "" || g.PublicML != "" {
			view.Public = &model.PublicBetting{
				SpreadLabel:    g.PublicSpread,
				TotalLabel:     g.PublicTotal,
				MoneylineLabel: g.PublicML,
			}
		}

		views[g.GID] = view
	}
	return views, nil
}

// parseStart NBA数据源给完整ISO（带偏移）
func parseStart(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("不支持的时间格式: %q", s)
	}
	return t.In(model.ReferenceZone), nil
}
