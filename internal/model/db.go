package model

import (
	"time"

	"gorm.io/datatypes"
)

// CompletionConfig 每个(运动,槽位)一行：启用开关即紧急回滚开关，关闭后读路径兜底静态文案，不删已生成数据
type CompletionConfig struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	SportType SportType `gorm:"column:sport_type;type:varchar(16);not null;uniqueIndex:uk_sport_slot;comment:运动类型"`
	SlotType  SlotType  `gorm:"column:slot_type;type:varchar(32);not null;uniqueIndex:uk_sport_slot;comment:内容槽位"`
	Enabled   bool      `gorm:"column:enabled;type:boolean;default:true;comment:是否启用（总开关）"`
	Prompt    string    `gorm:"column:prompt;type:text;comment:生成提示词"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

// PageSchedule 页面级生成排程：每运动一行
type PageSchedule struct {
	ID            uint64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	SportType     SportType  `gorm:"column:sport_type;type:varchar(16);uniqueIndex;not null;comment:运动类型"`
	ScheduledTime string     `gorm:"column:scheduled_time;type:varchar(8);not null;comment:每日触发时刻 HH:MM（美东）"`
	Enabled       bool       `gorm:"column:enabled;type:boolean;default:false;comment:是否启用定时生成"`
	Prompt        string     `gorm:"column:prompt;type:text;comment:页面级生成提示词"`
	LastRunAt     *time.Time `gorm:"column:last_run_at;type:timestamp;comment:上次触发时间"`
	CreatedAt     time.Time  `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

// Completion 单槽位生成文本：(game_id,sport,slot) 唯一，重复生成覆盖而非新增；行存在即视为"不缺失"
type Completion struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	GameID    string    `gorm:"column:game_id;type:varchar(64);not null;uniqueIndex:uk_game_sport_slot;comment:比赛ID（仅在运动内唯一）"`
	SportType SportType `gorm:"column:sport_type;type:varchar(16);not null;uniqueIndex:uk_game_sport_slot;comment:运动类型"`
	SlotType  SlotType  `gorm:"column:slot_type;type:varchar(32);not null;uniqueIndex:uk_game_sport_slot;comment:内容槽位"`
	Content   string    `gorm:"column:content;type:text;not null;comment:生成文本"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

// ValueFindBundle 页面级价值发现产物：每次生成插入新行，每运动以 created_at 最新一行为当前版本
type ValueFindBundle struct {
	ID          uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	BundleUUID  string         `gorm:"column:bundle_uuid;type:varchar(64);uniqueIndex;not null;comment:全局唯一ID"`
	SportType   SportType      `gorm:"column:sport_type;type:varchar(16);index;not null;comment:运动类型"`
	Badges      datatypes.JSON `gorm:"column:badges;type:jsonb;not null;comment:徽章列表"`
	EditorCards datatypes.JSON `gorm:"column:editor_cards;type:jsonb;not null;comment:编辑卡片列表"`
	ValuePicks  datatypes.JSON `gorm:"column:value_picks;type:jsonb;not null;comment:价值投注列表"`
	Published   bool           `gorm:"column:published;type:boolean;default:false;comment:是否对外发布"`
	CreatedAt   time.Time      `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

// EditorPick 编辑精选：草稿创建→发布可逆切换→可随时删除（先删关联投票）
type EditorPick struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	PickUUID        string    `gorm:"column:pick_uuid;type:varchar(64);uniqueIndex;not null;comment:全局唯一ID"`
	GameID          string    `gorm:"column:game_id;type:varchar(64);not null;index:idx_pick_game;comment:比赛ID"`
	SportType       SportType `gorm:"column:sport_type;type:varchar(16);not null;index:idx_pick_game;comment:运动类型"`
	SelectedBetType string    `gorm:"column:selected_bet_type;type:varchar(32);not null;comment:所选注型：spread/total/moneyline"`
	Notes           string    `gorm:"column:notes;type:text;comment:编辑备注"`
	IsPublished     bool      `gorm:"column:is_published;type:boolean;default:false;comment:是否发布（false=草稿）"`
	CreatedAt       time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt       time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

// EditorPickVote 精选投票：删除精选前须先删投票，避免孤儿外键
type EditorPickVote struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	PickID    uint64    `gorm:"column:pick_id;type:bigint;not null;index;comment:关联精选ID"`
	VoterID   string    `gorm:"column:voter_id;type:varchar(64);not null;comment:投票用户标识"`
	Value     int       `gorm:"column:value;type:smallint;not null;comment:投票值：+1/-1"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

func (CompletionConfig) TableName() string { return "completion_configs" }
func (PageSchedule) TableName() string     { return "page_schedules" }
func (Completion) TableName() string       { return "completions" }
func (ValueFindBundle) TableName() string  { return "value_find_bundles" }
func (EditorPick) TableName() string       { return "editor_picks" }
func (EditorPickVote) TableName() string   { return "editor_pick_votes" }
