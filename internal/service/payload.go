package service

import (
	"EditorialSync/internal/model"
)

// BuildPayload 组装送入生成服务的固定结构。纯转换，无副作用。
// 缺失的数据块保持nil指针，序列化后是显式null——生成服务必须能区分"没数据"和"0"
func BuildPayload(game *model.GameView, existing map[model.SlotType]string, market *model.MarketOdds) *model.Payload {
	if existing == nil {
		existing = map[model.SlotType]string{}
	}
	// 适配器已填的市场赔率优先，调用方传入的实时值覆盖
	if market == nil {
		market = game.Market
	}
	return &model.Payload{
		GameID:              game.GameID,
		SportType:           game.Sport,
		Kickoff:             game.Kickoff.Format("2006-01-02T15:04:05-07:00"),
		HomeTeam:            game.HomeTeam,
		AwayTeam:            game.AwayTeam,
		Vegas:               game.Lines,
		Weather:             game.Weather,
		Public:              game.Public,
		Market:              market,
		Predicted:           game.Prediction,
		ExistingCompletions: existing,
	}
}
