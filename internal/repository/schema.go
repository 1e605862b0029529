package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/starlog/internal/model"
)

// InitSchema 初始化表结构
func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Post{}, &model.SiteConfig{}); err != nil {
		return fmt.Errorf("failed to migrate starlog tables: %w", err)
	}
	return nil
}
