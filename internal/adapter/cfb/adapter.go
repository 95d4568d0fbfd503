package cfb

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"EditorialSync/internal/adapter"
	"EditorialSync/internal/config"
	"EditorialSync/internal/interfaces"
	"EditorialSync/internal/model"
	"EditorialSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

func init() {
	adapter.Register(model.SportCFB, NewAdapter)
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
	return model.SportCFB
}

func (a *Adapter) FetchGames(ctx context.Context, gameIDs []string) ([]*model.RawGame, error) {
	scheduleURL := fmt.Sprintf("%s/schedule", a.cfg.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, scheduleURL, nil)
	if err != nil {
		return nil, err
	}
	if a.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+a.cfg.AuthToken)
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("获取CFB赛程失败: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			a.logger.Errorf("关闭CFB响应体失败: %v", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CFB数据源返回 %d", resp.StatusCode)
	}

	var feedGames []model.CFBFeedGame
	if err := json.NewDecoder(resp.Body).Decode(&feedGames); err != nil {
		return nil, fmt.Errorf("解析CFB赛程失败: %w", err)
	}

	wanted := make(map[string]bool, len(gameIDs))
	for _, id := range gameIDs {
		wanted[id] = true
	}

	var raw []*model.RawGame
	for _, g := range feedGames {
		// CFB的ID是数字，统一转字符串作为game_id
		gameID := strconv.FormatInt(g.GameID, 10)
		if len(wanted) > 0 && !wanted[gameID] {
			continue
		}
		raw = append(raw, &model.RawGame{
			Sport:  model.SportCFB,
			GameID: gameID,
			Data:   g,
		})
	}
	return raw, nil
}

func (a *Adapter) ConvertToGameViews(raw []*model.RawGame) (map[string]*model.GameView, error) {
	views := make(map[string]*model.GameView, len(raw))
	for _, r := range raw {
		g, ok := r.Data.(model.CFBFeedGame)
		if !ok {
			a.logger.Warn("RawGame数据类型错误，跳过")
			continue
		}

		kickoff, err := parseGameDate(g.GameDate)
		if err != nil {
			a.logger.Warnf("解析CFB比赛时间失败（%d）: %v", g.GameID, err)
			continue
		}

		view := &model.GameView{
			GameID:   r.GameID,
			Sport:    model.SportCFB,
			Kickoff:  kickoff,
			HomeTeam: model.TeamView{Name: g.Home},
			AwayTeam: model.TeamView{Name: g.Away},
		}

		spread := a.deriveSpread(g.SpreadMagnitude, g.Favorite, r.GameID)
		if spread != nil || g.OverUnder != nil || g.HomeMoneyline != nil || g.AwayMoneyline != nil {
			view.Lines = &model.VegasLines{
				Spread:        spread,
				Total:         g.OverUnder,
				HomeMoneyline: g.HomeMoneyline,
				AwayMoneyline: g.AwayMoneyline,
			}
		}
		if g.HomeWinProb != nil && g.AwayWinProb != nil {
			view.Prediction = &model.ModelPrediction{
				HomeWinProb: *g.HomeWinProb,
				AwayWinProb: *g.AwayWinProb,
			}
		}
		if g.Weather != nil {
			view.Weather = &model.Weather{
				TempF:       g.Weather.Temperature,
				WindMPH:     g.Weather.WindSpeed,
				Description: g.Weather.Conditions,
			}
		}

		views[r.GameID] = view
	}
	return views, nil
}

// deriveSpread CFB数据源的让分是无符号幅度，配合favorite推导主队视角符号：
// 主队被让（favorite=home）为负，客队被让为正
func (a *Adapter) deriveSpread(magnitude *float64, favorite string, gameID string) *float64 {
	if magnitude == nil {
		return nil
	}
	mag := math.Abs(*magnitude)
	switch favorite {
	case "home":
		v := -mag
		return &v
	case "away":
		v := mag
		return &v
	default:
		a.logger.Warnf("CFB比赛%s的favorite字段无效（%q），让分置空", gameID, favorite)
		return nil
	}
}

// parseGameDate CFB数据源常给无时区的本地组合时间（按美东），偶见完整ISO与纯日期。
// 纯日期按美东当日最后一刻解析，当日比赛不被补齐窗口下界剔除
func parseGameDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, model.ReferenceZone); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(model.ReferenceZone), nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, model.ReferenceZone); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, model.ReferenceZone), nil
	}
	return time.Time{}, fmt.Errorf("不支持的时间格式: %q", s)
}
