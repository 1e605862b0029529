package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/d60-Lab/starlog/internal/model"
	"github.com/d60-Lab/starlog/internal/repository"
	"github.com/d60-Lab/starlog/pkg/blob"
	"github.com/d60-Lab/starlog/pkg/logger"
	"github.com/d60-Lab/starlog/pkg/sentryx"
)

// CreatePostInput 发帖参数；wallet 类型可直接给 venue/zone/seat
type CreatePostInput struct {
	Title     string `validate:"required"`
	Content   string
	Type      string `validate:"omitempty,oneof=timeline wallet"`
	Location  string
	Venue     string
	Zone      string
	Seat      string
	Color     string `validate:"omitempty,hexcolor"`
	Mood      string
	EventDate string
	Image     *Attachment
}

// ViewInvalidator 写操作后让读视图失效
type ViewInvalidator interface {
	Invalidate(ctx context.Context, ownerID string) error
}

// PostService 帖子/票根服务
type PostService interface {
	CreatePost(ctx context.Context, caller string, in CreatePostInput) (*model.Post, error)
	DeletePost(ctx context.Context, caller, id string) error
	ListPosts(ctx context.Context, caller string) ([]*model.Post, error)
}

type postService struct {
	repo  repository.PostRepository
	store blob.Store
	views ViewInvalidator
	now   func() time.Time
}

func NewPostService(repo repository.PostRepository, store blob.Store, views ViewInvalidator) PostService {
	return &postService{repo: repo, store: store, views: views, now: time.Now}
}

func (s *postService) CreatePost(ctx context.Context, caller string, in CreatePostInput) (*model.Post, error) {
	if caller == "" {
		return nil, ErrUnauthenticated
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Type = strings.TrimSpace(in.Type)
	in.Color = strings.TrimSpace(in.Color)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	post := &model.Post{
		ID:        uuid.New().String(),
		OwnerID:   caller,
		Type:      model.PostTypeTimeline,
		Title:     in.Title,
		Content:   optional(in.Content),
		Color:     optional(in.Color),
		Mood:      optional(in.Mood),
		CreatedAt: now,
	}
	if in.Type != "" {
		post.Type = model.PostType(in.Type)
	}
	eventDate := parseEventDate(in.EventDate, now)
	post.EventDate = &eventDate

	location := in.Location
	if post.Type == model.PostTypeWallet && hasAny(in.Venue, in.Zone, in.Seat) {
		location = model.ComposeTicketLocation(in.Venue, in.Zone, in.Seat)
	}
	post.Location = optional(location)

	if in.Image.present() {
		name := fmt.Sprintf("posts/%s/%s", ownerSegment(caller), baseFilename(in.Image.Filename))
		url, err := upload(ctx, s.store, name, in.Image, blob.PutOptions{AddRandomSuffix: true})
		if err != nil {
			return nil, err
		}
		post.ImageURL = &url
	}

	if err := s.repo.Create(ctx, post); err != nil {
		if post.ImageURL != nil {
			s.discard(ctx, *post.ImageURL)
		}
		return nil, fmt.Errorf("%w: create post: %v", ErrPersistence, err)
	}
	if err := invalidateView(ctx, s.views, caller); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost 只删除 caller 自己的记录；存储层错误记录日志后吞掉
func (s *postService) DeletePost(ctx context.Context, caller, id string) error {
	if caller == "" {
		return ErrUnauthenticated
	}
	n, err := s.repo.DeleteByOwner(ctx, caller, id)
	if err != nil {
		logger.Error("delete post failed", zap.String("owner", caller), zap.String("post", id), zap.Error(err))
		sentryx.Capture(ctx, err, caller)
	} else if n == 0 {
		logger.Debug("delete post affected no rows", zap.String("owner", caller), zap.String("post", id))
	}
	return invalidateView(ctx, s.views, caller)
}

func (s *postService) ListPosts(ctx context.Context, caller string) ([]*model.Post, error) {
	if caller == "" {
		return nil, ErrUnauthenticated
	}
	posts, err := s.repo.ListByOwner(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("%w: list posts: %v", ErrPersistence, err)
	}
	return posts, nil
}

// discard 删除已上传但没有落库的图片
func (s *postService) discard(ctx context.Context, url string) {
	if err := s.store.Delete(ctx, url); err != nil {
		logger.Warn("discard orphaned image failed", zap.String("url", url), zap.Error(err))
	}
}

var eventDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseEventDate 解析失败或为空时退回 now，结果统一为 UTC
func parseEventDate(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.UTC()
	}
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return now.UTC()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func hasAny(vals ...string) bool {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
