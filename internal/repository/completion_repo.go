package repository

import (
	"context"
	"fmt"
	"time"

	"EditorialSync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompletionRepository 槽位配置与槽位文本仓储
type CompletionRepository interface {
	// ListConfigs 列出槽位配置；sport为nil时返回全部运动
	ListConfigs(ctx context.Context, sport *model.SportType) ([]*model.CompletionConfig, error)
	GetConfigByID(ctx context.Context, id uint64) (*model.CompletionConfig, error)
	// UpdateConfig 局部更新配置（enabled/prompt），目标不存在时返回错误，不留半状态
	UpdateConfig(ctx context.Context, id uint64, updates map[string]interface{}) error
	// UpsertCompletion 按(game_id,sport,slot)唯一键落库：已存在则覆盖content（幂等重生成）
	UpsertCompletion(ctx context.Context, c *model.Completion) error
	// ListCompletionGameIDs 返回该(运动,槽位)下已有文本的game_id集合（存在即"不缺失"）
	ListCompletionGameIDs(ctx context.Context, sport model.SportType, slot model.SlotType) (map[string]bool, error)
	// GetCompletionsForGame 返回一场比赛的全部槽位文本
	GetCompletionsForGame(ctx context.Context, sport model.SportType, gameID string) (map[model.SlotType]string, error)
}

type completionRepository struct {
	db *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) CompletionRepository {
	return &completionRepository{db: db}
}

func (r *completionRepository) ListConfigs(ctx context.Context, sport *model.SportType) ([]*model.CompletionConfig, error) {
	db := r.db.WithContext(ctx).Model(&model.CompletionConfig{})
	if sport != nil {
		db = db.Where("sport_type = ?", *sport)
	}
	var configs []*model.CompletionConfig
	if err := db.Order("sport_type, slot_type").Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

func (r *completionRepository) GetConfigByID(ctx context.Context, id uint64) (*model.CompletionConfig, error) {
	var cfg model.CompletionConfig
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *completionRepository) UpdateConfig(ctx context.Context, id uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&model.CompletionConfig{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("更新槽位配置失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *completionRepository) UpsertCompletion(ctx context.Context, c *model.Completion) error {
	c.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}, {Name: "sport_type"}, {Name: "slot_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(c).Error
}

func (r *completionRepository) ListCompletionGameIDs(ctx context.Context, sport model.SportType, slot model.SlotType) (map[string]bool, error) {
	var gameIDs []string
	if err := r.db.WithContext(ctx).Model(&model.Completion{}).
		Where("sport_type = ? AND slot_type = ?", sport, slot).
		Pluck("game_id", &gameIDs).Error; err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(gameIDs))
	for _, id := range gameIDs {
		set[id] = true
	}
	return set, nil
}

func (r *completionRepository) GetCompletionsForGame(ctx context.Context, sport model.SportType, gameID string) (map[model.SlotType]string, error) {
	var rows []*model.Completion
	if err := r.db.WithContext(ctx).
		Where("sport_type = ? AND game_id = ?", sport, gameID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[model.SlotType]string, len(rows))
	for _, row := range rows {
		out[row.SlotType] = row.Content
	}
	return out, nil
}
