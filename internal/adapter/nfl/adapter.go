package nfl

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
	adapter.Register(model.SportNFL, NewAdapter)
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
	return model.SportNFL
}

func (a *Adapter) FetchGames(ctx context.Context, gameIDs []string) ([]*model.RawGame, error) {
	gamesURL := fmt.Sprintf("%s/games/upcoming", a.cfg.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, gamesURL, nil)
	if err != nil {
		return nil, err
	}
	if a.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+a.cfg.AuthToken)
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("获取NFL比赛失败: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			a.logger.Errorf("关闭NFL响应体失败: %v", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NFL数据源返回 %d", resp.StatusCode)
	}

	var feedGames []model.NFLFeedGame
	if err := json.NewDecoder(resp.Body).Decode(&feedGames); err != nil {
		return nil, fmt.Errorf("解析NFL比赛失败: %w", err)
	}

	wanted := toIDSet(gameIDs)
	var raw []*model.RawGame
	for _, g := range feedGames {
		if len(wanted) > 0 && !wanted[g.ID] {
			continue
		}
		raw = append(raw, &model.RawGame{
			Sport:  model.SportNFL,
			GameID: g.ID,
			Data:   g,
		})
	}
	return raw, nil
}

func (a *Adapter) ConvertToGameViews(raw []*model.RawGame) (map[string]*model.GameView, error) {
	views := make(map[string]*model.GameView, len(raw))
	for _, r := range raw {
		g, ok := r.Data.(model.NFLFeedGame)
		if !ok {
			a.logger.Warn("RawGame数据类型错误，跳过")
			continue
		}

		kickoff, err := parseKickoff(g.Kickoff)
		if err != nil {
			a.logger.Warnf("解析NFL开球时间失败（%s）: %v", g.ID, err)
			continue
		}

		view := &model.GameView{
			GameID:   g.ID,
			Sport:    model.SportNFL,
			Kickoff:  kickoff,
			HomeTeam: model.TeamView{Name: g.HomeTeam},
			AwayTeam: model.TeamView{Name: g.AwayTeam},
		}

		// 盘口：moneyline 新旧字段名并存，取先出现者
		homeML := coalesceInt(g.HomeMoneyline, g.HomeML)
		awayML := coalesceInt(g.AwayMoneyline, g.AwayML)
		if g.Spread != nil || g.Total != nil || homeML != nil || awayML != nil {
			view.Lines = &model.VegasLines{
				Spread:        g.Spread,
				Total:         g.Total,
				HomeMoneyline: homeML,
				AwayMoneyline: awayML,
			}
		}
		if g.HomeWinProb != nil && g.AwayWinProb != nil {
			view.Prediction = &model.ModelPrediction{
				HomeWinProb: *g.HomeWinProb,
				AwayWinProb: *g.AwayWinProb,
			}
		}
		if g.Public != nil {
			view.Public = &model.PublicBetting{
				SpreadLabel:    g.Public.Spread,
				TotalLabel:     g.Public.Total,
				MoneylineLabel: g.Public.Moneyline,
			}
		}
		if g.Weather != nil {
			view.Weather = &model.Weather{
				TempF:       g.Weather.TempF,
				WindMPH:     g.Weather.WindMPH,
				Description: g.Weather.Description,
			}
		}

		views[g.ID] = view
	}
	return views, nil
}

// parseKickoff NFL数据源给完整ISO（带偏移），历史数据偶见无偏移的组合时间（按美东）
func parseKickoff(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(model.ReferenceZone), nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, model.ReferenceZone); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("不支持的时间格式: %q", s)
}

func coalesceInt(vals ...*int) *int {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func toIDSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
