package repository

import (
	"context"
	"fmt"
	"time"

	"EditorialSync/internal/model"

	"gorm.io/gorm"
)

// ScheduleRepository 页面级排程仓储
type ScheduleRepository interface {
	GetBySport(ctx context.Context, sport model.SportType) (*model.PageSchedule, error)
	// ListEnabled 列出所有启用的排程（定时器每次tick扫描）
	ListEnabled(ctx context.Context) ([]*model.PageSchedule, error)
	// Update 局部更新排程（prompt/enabled/scheduled_time），目标不存在时返回错误
	Update(ctx context.Context, sport model.SportType, updates map[string]interface{}) error
	// MarkRun 记录一次触发时间
	MarkRun(ctx context.Context, sport model.SportType, at time.Time) error
}

type scheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) GetBySport(ctx context.Context, sport model.SportType) (*model.PageSchedule, error) {
	var s model.PageSchedule
	if err := r.db.WithContext(ctx).Where("sport_type = ?", sport).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *scheduleRepository) ListEnabled(ctx context.Context) ([]*model.PageSchedule, error) {
	var list []*model.PageSchedule
	if err := r.db.WithContext(ctx).Where("enabled = ?", true).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *scheduleRepository) Update(ctx context.Context, sport model.SportType, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&model.PageSchedule{}).Where("sport_type = ?", sport).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("更新排程失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *scheduleRepository) MarkRun(ctx context.Context, sport model.SportType, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.PageSchedule{}).
		Where("sport_type = ?", sport).
		Updates(map[string]interface{}{"last_run_at": at, "updated_at": time.Now()}).Error
}
