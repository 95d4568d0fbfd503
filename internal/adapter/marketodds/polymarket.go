package marketodds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"EditorialSync/internal/config"
	"EditorialSync/internal/interfaces"
	"EditorialSync/internal/model"
	"EditorialSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// Ensure Fetcher implements interfaces.MarketOddsFetcher
var _ interfaces.MarketOddsFetcher = (*Fetcher)(nil)

// Fetcher Polymarket 预测市场赔率拉取器，对接 Gamma API（只读，不涉及下单）
type Fetcher struct {
	cfg        *config.MarketOddsConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

// gammaEventResponse Gamma API 单事件响应
type gammaEventResponse struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Markets []gammaMarket `json:"markets"`
}

type gammaMarket struct {
	ID            string `json:"id"`
	Outcomes      string `json:"outcomes"`      // "[\"Chiefs\",\"Broncos\"]"（伪JSON数组字符串）
	OutcomePrices string `json:"outcomePrices"` // "[\"0.62\",\"0.38\"]"
	Active        bool   `json:"active"`
}

// NewFetcher 创建 Polymarket 赔率拉取器
func NewFetcher(cfg *config.MarketOddsConfig, logger *logrus.Logger) *Fetcher {
	return &Fetcher{
		cfg:        cfg,
		httpClient: httpclient.New(httpclient.Options{Timeout: cfg.Timeout, Proxy: cfg.Proxy}, logger),
		logger:     logger,
	}
}

// FetchGameOdds 按比赛双方队名搜索事件并解析双方价格。
// 任何失败（请求、解析、未命中）都返回 nil——市场赔率是可选增强，不阻塞管线
func (f *Fetcher) FetchGameOdds(ctx context.Context, game *model.GameView) (*model.MarketOdds, error) {
	if game == nil {
		return nil, nil
	}
	baseURL := "https://gamma-api.polymarket.com"
	if f.cfg != nil && f.cfg.BaseURL != "" {
		baseURL = strings.TrimSuffix(f.cfg.BaseURL, "/")
	}

	query := fmt.Sprintf("%s vs %s", game.AwayTeam.Name, game.HomeTeam.Name)
	u := fmt.Sprintf("%s/events?title=%s&closed=false", baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求 Gamma 事件失败: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Gamma 返回 %d: %s", resp.StatusCode, string(body))
	}

	var events []gammaEventResponse
	if err := json.Unmarshal(body, &events); err != nil {
		// 单事件响应兼容
		var single gammaEventResponse
		if err2 := json.Unmarshal(body, &single); err2 != nil {
			return nil, fmt.Errorf("解析 Gamma 响应失败: %w", err)
		}
		events = []gammaEventResponse{single}
	}

	for _, ev := range events {
		for _, m := range ev.Markets {
			if !m.Active {
				continue
			}
			odds := f.matchMarket(m, game)
			if odds != nil {
				return odds, nil
			}
		}
	}
	return nil, nil
}

// matchMarket 在市场的 outcomes 里按队名对齐主客价格（排除 YES/NO 型市场）
func (f *Fetcher) matchMarket(m gammaMarket, game *model.GameView) *model.MarketOdds {
	outcomes, err := parseJSONStringSlice(m.Outcomes)
	if err != nil || len(outcomes) != 2 {
		return nil
	}
	prices, err := parseJSONStringSlice(m.OutcomePrices)
	if err != nil || len(prices) != len(outcomes) {
		return nil
	}
	// 排除 YES/NO，只用给出真实双方名称的市场
	if strings.EqualFold(outcomes[0], "YES") || strings.EqualFold(outcomes[0], "NO") {
		return nil
	}

	var homeProb, awayProb *float64
	for i, o := range outcomes {
		price, err := strconv.ParseFloat(prices[i], 64)
		if err != nil {
			f.logger.Warnf("转换市场价格失败: %v", err)
			continue
		}
		switch {
		case teamMatches(o, game.HomeTeam.Name):
			homeProb = &price
		case teamMatches(o, game.AwayTeam.Name):
			awayProb = &price
		}
	}
	if homeProb == nil || awayProb == nil {
		return nil
	}
	return &model.MarketOdds{
		HomeProb: *homeProb,
		AwayProb: *awayProb,
		Source:   "polymarket",
	}
}

// teamMatches 队名与outcome名的宽松匹配（数据源常只给队名或城市名其一）
func teamMatches(outcome, teamName string) bool {
	o := strings.ToLower(strings.TrimSpace(outcome))
	t := strings.ToLower(strings.TrimSpace(teamName))
	if o == t {
		return true
	}
	return strings.Contains(t, o) || strings.Contains(o, t)
}

// parseJSONStringSlice 解析伪JSON数组字符串
func parseJSONStringSlice(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}
