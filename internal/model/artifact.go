package model

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// Payload 送入生成服务的固定结构。各块用指针承载可空语义：
// 序列化后缺数据必须是显式 null，生成服务要能区分"没数据"和"0"
type Payload struct {
	GameID    string           `json:"game_id"`
	SportType SportType        `json:"sport_type"`
	Kickoff   string           `json:"kickoff"` // 美东ISO
	HomeTeam  TeamView         `json:"home_team"`
	AwayTeam  TeamView         `json:"away_team"`
	Vegas     *VegasLines      `json:"vegas_lines"`
	Weather   *Weather         `json:"weather"`
	Public    *PublicBetting   `json:"public_betting"`
	Market    *MarketOdds      `json:"market_odds"`
	Predicted *ModelPrediction `json:"predictions"`
	// 该比赛已有的槽位文本，生成服务可参考保持口径一致
	ExistingCompletions map[SlotType]string `json:"existing_completions"`
}

// ValueFindBadge 价值发现徽章
type ValueFindBadge struct {
	GameID string `json:"game_id"`
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

// ValueFindEditorCard 价值发现编辑卡片
type ValueFindEditorCard struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	GameIDs []string `json:"game_ids"`
}

// ValueFindPick 价值投注
type ValueFindPick struct {
	GameID    string  `json:"game_id"`
	BetType   string  `json:"bet_type"`
	Selection string  `json:"selection"`
	Rationale string  `json:"rationale"`
	Edge      float64 `json:"edge"`
}

// ValueFindArtifact 页面级生成产物的固定格式，生成服务必须返回该结构的JSON
type ValueFindArtifact struct {
	Badges      []ValueFindBadge      `json:"badges"`
	EditorCards []ValueFindEditorCard `json:"editor_cards"`
	ValuePicks  []ValueFindPick       `json:"value_picks"`
}

// Validate 校验产物格式：三个数组都必须出现（可为空数组，不可缺失）
func (a *ValueFindArtifact) Validate() error {
	if a.Badges == nil {
		return fmt.Errorf("badges 字段缺失")
	}
	if a.EditorCards == nil {
		return fmt.Errorf("editor_cards 字段缺失")
	}
	if a.ValuePicks == nil {
		return fmt.Errorf("value_picks 字段缺失")
	}
	return nil
}

// ToBundle 产物落库：序列化三段JSON写入 ValueFindBundle（uuid由调用方补）
func (a *ValueFindArtifact) ToBundle(sport SportType) (*ValueFindBundle, error) {
	badges, err := json.Marshal(a.Badges)
	if err != nil {
		return nil, fmt.Errorf("序列化 badges 失败: %w", err)
	}
	cards, err := json.Marshal(a.EditorCards)
	if err != nil {
		return nil, fmt.Errorf("序列化 editor_cards 失败: %w", err)
	}
	picks, err := json.Marshal(a.ValuePicks)
	if err != nil {
		return nil, fmt.Errorf("序列化 value_picks 失败: %w", err)
	}
	return &ValueFindBundle{
		SportType:   sport,
		Badges:      datatypes.JSON(badges),
		EditorCards: datatypes.JSON(cards),
		ValuePicks:  datatypes.JSON(picks),
		Published:   false,
	}, nil
}
