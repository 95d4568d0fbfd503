package repository

import (
	"context"
	"fmt"
	"time"

	"EditorialSync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PickRepository 编辑精选仓储
type PickRepository interface {
	Create(ctx context.Context, p *model.EditorPick) error
	GetByID(ctx context.Context, id uint64) (*model.EditorPick, error)
	// List 按运动列出精选；publishedOnly=true 时过滤掉草稿（非管理员视图）
	List(ctx context.Context, sport model.SportType, publishedOnly bool) ([]*model.EditorPick, error)
	// SetPublished 草稿↔发布切换（可逆，管理员专属）
	SetPublished(ctx context.Context, id uint64, published bool) error
	// Delete 删除精选：同一事务先删关联投票再删精选，避免孤儿外键
	Delete(ctx context.Context, id uint64) error
}

type pickRepository struct {
	db *gorm.DB
}

func NewPickRepository(db *gorm.DB) PickRepository {
	return &pickRepository{db: db}
}

func (r *pickRepository) Create(ctx context.Context, p *model.EditorPick) error {
	if p.PickUUID == "" {
		p.PickUUID = uuid.NewString()
	}
	// 新建一律是草稿，发布走显式切换
	p.IsPublished = false
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("创建编辑精选失败: %w", err)
	}
	return nil
}

func (r *pickRepository) GetByID(ctx context.Context, id uint64) (*model.EditorPick, error) {
	var p model.EditorPick
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pickRepository) List(ctx context.Context, sport model.SportType, publishedOnly bool) ([]*model.EditorPick, error) {
	db := r.db.WithContext(ctx).Where("sport_type = ?", sport)
	if publishedOnly {
		db = db.Where("is_published = ?", true)
	}
	var picks []*model.EditorPick
	if err := db.Order("created_at DESC").Find(&picks).Error; err != nil {
		return nil, err
	}
	return picks, nil
}

func (r *pickRepository) SetPublished(ctx context.Context, id uint64, published bool) error {
	res := r.db.WithContext(ctx).Model(&model.EditorPick{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_published": published, "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("切换精选发布状态失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pickRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pick_id = ?", id).Delete(&model.EditorPickVote{}).Error; err != nil {
			return fmt.Errorf("删除精选投票失败: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&model.EditorPick{})
		if res.Error != nil {
			return fmt.Errorf("删除精选失败: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
