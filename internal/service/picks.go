package service

import (
	"time"

	"EditorialSync/internal/model"
)

// ClassifiedPick 带比赛数据的精选条目。比赛查不到时置GameDataMissing并照常露出，
// 让坏引用可被发现、可被修复，而不是悄悄消失
type ClassifiedPick struct {
	Pick            *model.EditorPick `json:"pick"`
	Game            *model.GameView   `json:"game"`
	GameDataMissing bool              `json:"game_data_missing"`
}

// PickBuckets 精选分桶结果
type PickBuckets struct {
	Draft      []ClassifiedPick `json:"draft"`      // 草稿，仅管理员可见
	Active     []ClassifiedPick `json:"active"`     // 未开打（或查不到比赛数据的占位条目）
	Historical []ClassifiedPick `json:"historical"` // 已过期；非管理员只看宽限期内的
}

// ClassifyPicks 按比赛日期分桶。
// "已过期"定义：比赛日期（美东按天截断）严格早于今天（同样截断）。
// 非管理员：仅发布的精选；过期后再保留graceDays天（宽限窗口），之后隐藏。
// 管理员：全部发布精选按 active/historical 分桶、无截断；草稿单独分桶。
// 发布状态不会因开赛/结束自动变化——时效性每次读取现算，与"是否允许展示"解耦
func ClassifyPicks(picks []*model.EditorPick, games map[string]*model.GameView, now time.Time, graceDays int, isAdmin bool) *PickBuckets {
	if graceDays <= 0 {
		graceDays = 2
	}
	buckets := &PickBuckets{
		Draft:      []ClassifiedPick{},
		Active:     []ClassifiedPick{},
		Historical: []ClassifiedPick{},
	}
	today := truncateDay(now)

	for _, pick := range picks {
		if !pick.IsPublished {
			if isAdmin {
				buckets.Draft = append(buckets.Draft, classify(pick, games))
			}
			continue
		}

		entry := classify(pick, games)
		// 查不到比赛数据：不隐藏，作为占位放进active等待处理
		if entry.GameDataMissing {
			buckets.Active = append(buckets.Active, entry)
			continue
		}

		gameDate := truncateDay(entry.Game.Kickoff)
		if !gameDate.Before(today) {
			// 未来（含今天）的比赛无条件展示
			buckets.Active = append(buckets.Active, entry)
			continue
		}

		if isAdmin {
			buckets.Historical = append(buckets.Historical, entry)
			continue
		}
		// 非管理员的宽限窗口：按日历日差计算（夏令时切换当周按小时折算会少算一天）
		if !gameDate.AddDate(0, 0, graceDays).Before(today) {
			buckets.Historical = append(buckets.Historical, entry)
		}
	}
	return buckets
}

func classify(pick *model.EditorPick, games map[string]*model.GameView) ClassifiedPick {
	game := games[model.GameKey(pick.SportType, pick.GameID)]
	return ClassifiedPick{
		Pick:            pick,
		Game:            game,
		GameDataMissing: game == nil,
	}
}

// truncateDay 美东时区按天截断
func truncateDay(t time.Time) time.Time {
	e := t.In(model.ReferenceZone)
	return time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, model.ReferenceZone)
}
