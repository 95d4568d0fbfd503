package adapter

import (
	"strings"

	"EditorialSync/internal/model"
)

// TeamAsset 队伍静态资源（logo与主色）
type TeamAsset struct {
	Abbrev       string
	LogoURL      string
	PrimaryColor string
}

// 占位资源：资源表未命中时使用，绝不因缺失让整次拉取失败
var placeholderAsset = TeamAsset{
	Abbrev:       "",
	LogoURL:      "/assets/logos/placeholder.svg",
	PrimaryColor: "#6b7280",
}

// AssetResolver 队名→资源解析器。匹配顺序：精确→大小写不敏感→子串
type AssetResolver struct {
	bySport map[model.SportType]map[string]TeamAsset
}

// NewAssetResolver 用各运动的资源表构建解析器
func NewAssetResolver(tables map[model.SportType]map[string]TeamAsset) *AssetResolver {
	if tables == nil {
		tables = make(map[model.SportType]map[string]TeamAsset)
	}
	return &AssetResolver{bySport: tables}
}

// Resolve 解析队名对应资源。未命中降级为占位，不报错
func (r *AssetResolver) Resolve(sport model.SportType, teamName string) TeamAsset {
	table := r.bySport[sport]
	if len(table) == 0 {
		return placeholderAsset
	}

	// 1. 精确匹配
	if asset, ok := table[teamName]; ok {
		return asset
	}

	// 2. 大小写不敏感
	lower := strings.ToLower(strings.TrimSpace(teamName))
	for name, asset := range table {
		if strings.ToLower(name) == lower {
			return asset
		}
	}

	// 3. 子串匹配（数据源常只给城市名或队名其一）
	for name, asset := range table {
		nameLower := strings.ToLower(name)
		if strings.Contains(nameLower, lower) || strings.Contains(lower, nameLower) {
			return asset
		}
	}

	return placeholderAsset
}

// Decorate 为统一视图补齐主客队资源（就地修改）
func (r *AssetResolver) Decorate(game *model.GameView) {
	if game == nil {
		return
	}
	home := r.Resolve(game.Sport, game.HomeTeam.Name)
	game.HomeTeam.Abbrev = home.Abbrev
	game.HomeTeam.LogoURL = home.LogoURL
	game.HomeTeam.PrimaryColor = home.PrimaryColor

	away := r.Resolve(game.Sport, game.AwayTeam.Name)
	game.AwayTeam.Abbrev = away.Abbrev
	game.AwayTeam.LogoURL = away.LogoURL
	game.AwayTeam.PrimaryColor = away.PrimaryColor
}
