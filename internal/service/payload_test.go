package service

import (
	"encoding/json"
	"testing"
	"time"

	"EditorialSync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPayloadExplicitNulls(t *testing.T) {
	game := gameAt(model.SportNCAAB, "g1", time.Date(2025, 11, 21, 19, 0, 0, 0, model.ReferenceZone))

	payload := BuildPayload(game, nil, nil)
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	// 缺失的数据块序列化后必须是显式null，不是缺字段也不是零值
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, field := range []string{"vegas_lines", "weather", "public_betting", "market_odds", "predictions"} {
		require.Contains(t, decoded, field)
		assert.Equal(t, "null", string(decoded[field]), field)
	}
	assert.Equal(t, "ncaab", string(payload.SportType))
	assert.NotNil(t, payload.ExistingCompletions)
}

func TestBuildPayloadZeroVsMissing(t *testing.T) {
	spread := 0.0
	game := gameAt(model.SportNFL, "g1", testNow)
	game.Lines = &model.VegasLines{Spread: &spread}

	raw, err := json.Marshal(BuildPayload(game, nil, nil))
	require.NoError(t, err)

	// 让分为0（pick'em）与没开盘必须可区分
	var decoded struct {
		Vegas *model.VegasLines `json:"vegas_lines"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.NotNil(t, decoded.Vegas)
	require.NotNil(t, decoded.Vegas.Spread)
	assert.Equal(t, 0.0, *decoded.Vegas.Spread)
	assert.Nil(t, decoded.Vegas.Total)
}

func TestBuildPayloadMarketPriority(t *testing.T) {
	game := gameAt(model.SportNBA, "g1", testNow)
	game.Market = &model.MarketOdds{HomeProb: 0.4, AwayProb: 0.6, Source: "adapter"}

	// 调用方传入的实时值覆盖适配器已填的
	live := &model.MarketOdds{HomeProb: 0.55, AwayProb: 0.45, Source: "polymarket"}
	payload := BuildPayload(game, nil, live)
	assert.Equal(t, "polymarket", payload.Market.Source)

	// 未传入时回退到适配器值
	payload = BuildPayload(game, nil, nil)
	assert.Equal(t, "adapter", payload.Market.Source)
}

func TestBuildPayloadKickoffEastern(t *testing.T) {
	kick := time.Date(2025, 11, 21, 13, 0, 0, 0, model.ReferenceZone)
	payload := BuildPayload(gameAt(model.SportNFL, "g1", kick), nil, nil)
	assert.Equal(t, "2025-11-21T13:00:00-05:00", payload.Kickoff)
}

func TestBuildPayloadExistingCompletions(t *testing.T) {
	existing := map[model.SlotType]string{model.SlotSpread: "已有让分解读"}
	payload := BuildPayload(gameAt(model.SportNFL, "g1", testNow), existing, nil)
	assert.Equal(t, "已有让分解读", payload.ExistingCompletions[model.SlotSpread])
}
