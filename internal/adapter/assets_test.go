package adapter

import (
	"testing"

	"EditorialSync/internal/model"

	"github.com/stretchr/testify/assert"
)

func testTables() map[model.SportType]map[string]TeamAsset {
	return map[model.SportType]map[string]TeamAsset{
		model.SportNFL: {
			"Kansas City Chiefs": {Abbrev: "KC", LogoURL: "/assets/logos/nfl/kc.svg", PrimaryColor: "#e31837"},
			"Denver Broncos":     {Abbrev: "DEN", LogoURL: "/assets/logos/nfl/den.svg", PrimaryColor: "#fb4f14"},
		},
	}
}

func TestResolveMatchOrder(t *testing.T) {
	r := NewAssetResolver(testTables())

	// 精确
	assert.Equal(t, "KC", r.Resolve(model.SportNFL, "Kansas City Chiefs").Abbrev)
	// 大小写不敏感
	assert.Equal(t, "DEN", r.Resolve(model.SportNFL, "denver broncos").Abbrev)
	// 子串（数据源只给队名其一）
	assert.Equal(t, "KC", r.Resolve(model.SportNFL, "Chiefs").Abbrev)
}

func TestResolvePlaceholderFallback(t *testing.T) {
	r := NewAssetResolver(testTables())

	// 未命中降级占位，绝不报错
	got := r.Resolve(model.SportNFL, "Some Expansion Team")
	assert.Equal(t, placeholderAsset.LogoURL, got.LogoURL)
	assert.Equal(t, placeholderAsset.PrimaryColor, got.PrimaryColor)

	// 未配置的运动整体走占位
	got = r.Resolve(model.SportNBA, "Boston Celtics")
	assert.Equal(t, placeholderAsset.LogoURL, got.LogoURL)
}

func TestDecorate(t *testing.T) {
	r := NewAssetResolver(testTables())
	game := &model.GameView{
		Sport:    model.SportNFL,
		HomeTeam: model.TeamView{Name: "Denver Broncos"},
		AwayTeam: model.TeamView{Name: "Nobody FC"},
	}
	r.Decorate(game)

	assert.Equal(t, "DEN", game.HomeTeam.Abbrev)
	assert.Equal(t, "#fb4f14", game.HomeTeam.PrimaryColor)
	// 客队未命中：占位而非空白
	assert.Equal(t, placeholderAsset.LogoURL, game.AwayTeam.LogoURL)
}
