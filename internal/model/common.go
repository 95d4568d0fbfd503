package model

import (
	"fmt"
	"time"
)

// SportType 运动类型枚举
type SportType string

const (
	SportNFL   SportType = "nfl"
	SportCFB   SportType = "cfb"
	SportNBA   SportType = "nba"
	SportNCAAB SportType = "ncaab"
)

// AllSports 全部支持的运动（补齐任务缺省目标）
var AllSports = []SportType{SportNFL, SportCFB, SportNBA, SportNCAAB}

// ValidSport 校验运动类型
func ValidSport(s SportType) bool {
	switch s {
	case SportNFL, SportCFB, SportNBA, SportNCAAB:
		return true
	}
	return false
}

// SlotType 卡片内容槽位枚举（每个槽位独立持有一条生成文本）
type SlotType string

const (
	SlotSpread     SlotType = "spread"     // 让分解读
	SlotTotal      SlotType = "total"      // 大小分解读
	SlotMoneyline  SlotType = "moneyline"  // 独赢解读
	SlotPrediction SlotType = "prediction" // 模型预测解读
)

// ReferenceZone 全局统一参考时区。各数据源时间格式不一（纯日期/本地时间/带偏移ISO），
// 统一在目录层解析到美东后再参与后续比较。
var ReferenceZone = mustLoadEastern()

func mustLoadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic(fmt.Sprintf("加载美东时区失败: %v", err))
	}
	return loc
}

// GameKey 组合键：game_id 仅在各自运动内唯一，跨运动可能数字碰撞，必须带上运动类型
func GameKey(sport SportType, gameID string) string {
	return string(sport) + "|" + gameID
}

// TeamView 归一化后的队伍信息（资源缺失时用占位，不报错）
type TeamView struct {
	Name         string `json:"name"`
	Abbrev       string `json:"abbrev"`
	LogoURL      string `json:"logo_url"`
	PrimaryColor string `json:"primary_color"`
}

// VegasLines 盘口（各项可空：没开盘与0必须区分）
type VegasLines struct {
	Spread        *float64 `json:"spread"` // 主队视角，负数=主让
	Total         *float64 `json:"total"`
	HomeMoneyline *int     `json:"home_moneyline"`
	AwayMoneyline *int     `json:"away_moneyline"`
}

// ModelPrediction 模型预测胜率
type ModelPrediction struct {
	HomeWinProb float64 `json:"home_win_prob"`
	AwayWinProb float64 `json:"away_win_prob"`
}

// PublicBetting 公众投注分布标签（数据源给的是文案标签而非数值）
type PublicBetting struct {
	SpreadLabel    string `json:"spread_label"`
	TotalLabel     string `json:"total_label"`
	MoneylineLabel string `json:"moneyline_label"`
}

// Weather 天气（仅 NFL/CFB 室外场）
type Weather struct {
	TempF       float64 `json:"temp_f"`
	WindMPH     float64 `json:"wind_mph"`
	Description string  `json:"description"`
}

// MarketOdds 预测市场赔率（Polymarket 等）
type MarketOdds struct {
	HomeProb float64 `json:"home_prob"`
	AwayProb float64 `json:"away_prob"`
	Source   string  `json:"source"`
}

// GameView 统一的比赛视图（抹平各运动数据源差异）
type GameView struct {
	GameID     string           `json:"game_id"`
	Sport      SportType        `json:"sport_type"`
	Kickoff    time.Time        `json:"kickoff"` // 已归一化到美东
	HomeTeam   TeamView         `json:"home_team"`
	AwayTeam   TeamView         `json:"away_team"`
	Lines      *VegasLines      `json:"lines"`          // 可空
	Prediction *ModelPrediction `json:"prediction"`     // 可空
	Public     *PublicBetting   `json:"public_betting"` // 可空
	Weather    *Weather         `json:"weather"`        // 可空，NFL/CFB 专属
	Market     *MarketOdds      `json:"market_odds"`    // 可空
}

// Key 返回组合键
func (g *GameView) Key() string {
	return GameKey(g.Sport, g.GameID)
}
