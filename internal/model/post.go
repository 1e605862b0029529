package model

import "time"

// PostType 区分时间线日记与票夹
type PostType string

const (
	PostTypeTimeline PostType = "timeline"
	PostTypeWallet   PostType = "wallet"
)

func (t PostType) Valid() bool {
	return t == PostTypeTimeline || t == PostTypeWallet
}

// Post 用户内容（日记与票根共用一张表）
type Post struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID   string     `json:"owner_id" gorm:"type:varchar(128);index:idx_post_owner_event;not null"`
	Type      PostType   `json:"type" gorm:"type:varchar(16);not null;default:timeline"`
	Title     string     `json:"title" gorm:"type:varchar(255);not null"`
	Content   *string    `json:"content,omitempty" gorm:"type:text"`
	Location  *string    `json:"location,omitempty" gorm:"type:varchar(512)"`
	ImageURL  *string    `json:"image_url" gorm:"type:varchar(1024)"`
	EventDate *time.Time `json:"event_date" gorm:"index:idx_post_owner_event"`
	Color     *string    `json:"color,omitempty" gorm:"type:varchar(16)"`
	Mood      *string    `json:"mood,omitempty" gorm:"type:varchar(16)"`
	CreatedAt time.Time  `json:"created_at" gorm:"not null"`
}

func (Post) TableName() string { return "posts" }
