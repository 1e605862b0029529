package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/starlog/internal/model"
)

// PostRepository 帖子仓储，所有读删都按 owner 限定
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	// DeleteByOwner 返回受影响行数，id 不存在或不属于 owner 时为 0
	DeleteByOwner(ctx context.Context, ownerID, id string) (int64, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Post, error)
}

type postRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) DeleteByOwner(ctx context.Context, ownerID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.Post{})
	return res.RowsAffected, res.Error
}

func (r *postRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Post, error) {
	res := make([]*model.Post, 0)
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("COALESCE(event_date, created_at) DESC").
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}
