package repository

import (
	"context"
	"fmt"

	"EditorialSync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ValueFindRepository 页面级价值发现产物仓储。
// 每次生成插入新行，读取恒取 created_at 最新一行（旧行被逻辑取代）
type ValueFindRepository interface {
	Save(ctx context.Context, b *model.ValueFindBundle) error
	GetLatest(ctx context.Context, sport model.SportType) (*model.ValueFindBundle, error)
	GetLatestPublished(ctx context.Context, sport model.SportType) (*model.ValueFindBundle, error)
	// SetPublished 发布开关（可逆）。目标不存在时返回错误，不留半状态
	SetPublished(ctx context.Context, id uint64, published bool) error
	// Delete 删除（终态，不可逆）
	Delete(ctx context.Context, id uint64) error
}

type valueFindRepository struct {
	db *gorm.DB
}

func NewValueFindRepository(db *gorm.DB) ValueFindRepository {
	return &valueFindRepository{db: db}
}

func (r *valueFindRepository) Save(ctx context.Context, b *model.ValueFindBundle) error {
	if b.BundleUUID == "" {
		b.BundleUUID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("保存价值发现产物失败: %w", err)
	}
	return nil
}

func (r *valueFindRepository) GetLatest(ctx context.Context, sport model.SportType) (*model.ValueFindBundle, error) {
	var b model.ValueFindBundle
	if err := r.db.WithContext(ctx).
		Where("sport_type = ?", sport).
		Order("created_at DESC").
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *valueFindRepository) GetLatestPublished(ctx context.Context, sport model.SportType) (*model.ValueFindBundle, error) {
	var b model.ValueFindBundle
	if err := r.db.WithContext(ctx).
		Where("sport_type = ? AND published = ?", sport, true).
		Order("created_at DESC").
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *valueFindRepository) SetPublished(ctx context.Context, id uint64, published bool) error {
	res := r.db.WithContext(ctx).Model(&model.ValueFindBundle{}).
		Where("id = ?", id).
		Update("published", published)
	if res.Error != nil {
		return fmt.Errorf("切换发布状态失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *valueFindRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ValueFindBundle{})
	if res.Error != nil {
		return fmt.Errorf("删除价值发现产物失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
