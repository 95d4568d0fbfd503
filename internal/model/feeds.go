package model

// RawGame 各运动数据源的原始比赛通用包装
type RawGame struct {
	Sport  SportType   // 来源运动
	GameID string      // 数据源原生比赛ID
	Data   interface{} // 数据源原生数据（NFLFeedGame/CFBFeedGame/…）
}

// NFLFeedGame NFL数据源原始结构
type NFLFeedGame struct {
	ID       string `json:"id"`       // 比赛ID（形如 "2025_12_KC_DEN"）
	Kickoff  string `json:"kickoff"`  // 开球时间（完整ISO，带偏移）
	HomeTeam string `json:"homeTeam"` // 主队全名
	AwayTeam string `json:"awayTeam"` // 客队全名
	// 盘口（后端历史字段更名：moneyline 新字段与 ml 旧字段并存，取先出现者）
	Spread        *float64 `json:"spread"`        // 主队视角让分（已带符号）
	Total         *float64 `json:"total"`         // 大小分
	HomeMoneyline *int     `json:"homeMoneyline"` // 主队独赢（新字段名）
	AwayMoneyline *int     `json:"awayMoneyline"` // 客队独赢（新字段名）
	HomeML        *int     `json:"homeMl"`        // 主队独赢（旧字段名）
	AwayML        *int     `json:"awayMl"`        // 客队独赢（旧字段名）
	// 预测与公众投注（可空，缺失时为显式null）
	HomeWinProb *float64           `json:"homeWinProb"`
	AwayWinProb *float64           `json:"awayWinProb"`
	Public      *NFLPublicBetting  `json:"publicBetting"`
	Weather     *NFLFeedWeather    `json:"weather"`
}

// NFLPublicBetting NFL公众投注标签
type NFLPublicBetting struct {
	Spread    string `json:"spread"`
	Total     string `json:"total"`
	Moneyline string `json:"moneyline"`
}

// NFLFeedWeather NFL天气块
type NFLFeedWeather struct {
	TempF       float64 `json:"tempF"`
	WindMPH     float64 `json:"windMph"`
	Description string  `json:"description"`
}

// CFBFeedGame CFB数据源原始结构。注意：spread 是无符号幅度，
// 配合 favorite 字段推导主客视角符号
type CFBFeedGame struct {
	GameID   int64  `json:"game_id"`   // 数字ID（与NFL字符串ID格式不同）
	GameDate string `json:"game_date"` // 本地组合时间 "2006-01-02 15:04"（无时区，按美东）
	Home     string `json:"home"`
	Away     string `json:"away"`
	// 盘口
	SpreadMagnitude *float64 `json:"spread"`   // 让分幅度（无符号）
	Favorite        string   `json:"favorite"` // "home"/"away"，幅度归属方
	OverUnder       *float64 `json:"over_under"`
	HomeMoneyline   *int     `json:"home_moneyline"`
	AwayMoneyline   *int     `json:"away_moneyline"`
	// 预测与天气（可空）
	HomeWinProb *float64        `json:"home_win_prob"`
	AwayWinProb *float64        `json:"away_win_prob"`
	Weather     *CFBFeedWeather `json:"weather"`
}

// CFBFeedWeather CFB天气块
type CFBFeedWeather struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"wind_speed"`
	Conditions  string  `json:"conditions"`
}

// NBAFeedGame NBA数据源原始结构
type NBAFeedGame struct {
	GID       string        `json:"gid"`   // 形如 "0022500123"
	StartTime string        `json:"start"` // 完整ISO，带偏移
	HomeName  string        `json:"h_name"`
	AwayName  string        `json:"a_name"`
	Lines     *NBAFeedLines `json:"lines"` // 可空
	// 预测与公众投注
	HomeWinProb   *float64 `json:"h_win_prob"`
	AwayWinProb   *float64 `json:"a_win_prob"`
	PublicSpread  string   `json:"public_spread"`
	PublicTotal   string   `json:"public_total"`
	PublicML      string   `json:"public_ml"`
}

// NBAFeedLines NBA盘口嵌套块
type NBAFeedLines struct {
	Spread *float64 `json:"spread"` // 主队视角，已带符号
	OU     *float64 `json:"ou"`
	HomeML *int     `json:"home_ml"`
	AwayML *int     `json:"away_ml"`
}

// NCAABFeedGame NCAAB数据源原始结构。季初常只有纯日期，无开球时刻
type NCAABFeedGame struct {
	ID       string   `json:"id"`
	GameDate string   `json:"gameDate"` // 纯日期 "2006-01-02" 或完整ISO
	Home     string   `json:"home"`
	Away     string   `json:"away"`
	Spread   *float64 `json:"spread"` // 主队视角，已带符号
	Total    *float64 `json:"total"`
	HomeML   *int     `json:"homeMl"`
	AwayML   *int     `json:"awayMl"`
	// 小样本模型，预测常缺失
	HomeWinProb *float64 `json:"homeWinProb"`
	AwayWinProb *float64 `json:"awayWinProb"`
}
