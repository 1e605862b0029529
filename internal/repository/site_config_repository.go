package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/starlog/internal/model"
)

// SiteConfigRepository 站点配置仓储，owner_id 唯一
type SiteConfigRepository interface {
	// Upsert 只合并 patch 中非 nil 的字段，记录不存在时创建
	Upsert(ctx context.Context, patch *model.SiteConfig) error
	// GetByOwner 不存在时返回 (nil, nil)
	GetByOwner(ctx context.Context, ownerID string) (*model.SiteConfig, error)
}

type siteConfigRepository struct{ db *gorm.DB }

func NewSiteConfigRepository(db *gorm.DB) SiteConfigRepository {
	return &siteConfigRepository{db: db}
}

func (r *siteConfigRepository) Upsert(ctx context.Context, patch *model.SiteConfig) error {
	row := *patch
	if row.ID == "" {
		row.ID = uuid.New().String()
	}

	onConflict := clause.OnConflict{Columns: []clause.Column{{Name: "owner_id"}}}
	if cols := patchColumns(patch); len(cols) > 0 {
		onConflict.DoUpdates = clause.AssignmentColumns(append(cols, "updated_at"))
	} else {
		onConflict.DoNothing = true
	}
	return r.db.WithContext(ctx).Clauses(onConflict).Create(&row).Error
}

func (r *siteConfigRepository) GetByOwner(ctx context.Context, ownerID string) (*model.SiteConfig, error) {
	var cfg model.SiteConfig
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func patchColumns(p *model.SiteConfig) []string {
	var cols []string
	if p.ThemeColor != nil {
		cols = append(cols, "theme_color")
	}
	if p.CoverImage != nil {
		cols = append(cols, "cover_image")
	}
	if p.SiteTitle != nil {
		cols = append(cols, "site_title")
	}
	if p.SiteSubtitle != nil {
		cols = append(cols, "site_subtitle")
	}
	return cols
}
