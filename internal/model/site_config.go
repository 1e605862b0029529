package model

import "time"

// SiteConfig 每个用户至多一条，首次写入时 upsert 创建
type SiteConfig struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID      string    `json:"owner_id" gorm:"type:varchar(128);uniqueIndex:ux_site_config_owner;not null"`
	ThemeColor   *string   `json:"theme_color,omitempty" gorm:"type:varchar(16)"`
	CoverImage   *string   `json:"cover_image,omitempty" gorm:"type:varchar(1024)"`
	SiteTitle    *string   `json:"site_title,omitempty" gorm:"type:varchar(255)"`
	SiteSubtitle *string   `json:"site_subtitle,omitempty" gorm:"type:varchar(255)"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (SiteConfig) TableName() string { return "site_configs" }
