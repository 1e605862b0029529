package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/d60-Lab/starlog/config"
	"github.com/d60-Lab/starlog/internal/model"
	"github.com/d60-Lab/starlog/internal/repository"
	"github.com/d60-Lab/starlog/pkg/blob"
)

// UpdateConfigInput 空字段表示不修改
type UpdateConfigInput struct {
	Color        string `validate:"omitempty,hexcolor"`
	SiteTitle    string
	SiteSubtitle string
	CoverImage   *Attachment
}

// ResolvedConfig 已套用默认值的站点配置
type ResolvedConfig struct {
	ThemeColor   string `json:"theme_color"`
	CoverImage   string `json:"cover_image"`
	SiteTitle    string `json:"site_title"`
	SiteSubtitle string `json:"site_subtitle"`
	Customized   bool   `json:"customized"`
}

// ConfigService 站点配置服务
type ConfigService interface {
	UpdateConfig(ctx context.Context, caller string, in UpdateConfigInput) (*model.SiteConfig, error)
	// GetConfig 没有配置时返回 (nil, nil)
	GetConfig(ctx context.Context, caller string) (*model.SiteConfig, error)
	Resolve(cfg *model.SiteConfig) ResolvedConfig
}

type configService struct {
	repo     repository.SiteConfigRepository
	store    blob.Store
	views    ViewInvalidator
	defaults config.SiteDefaults
}

func NewConfigService(repo repository.SiteConfigRepository, store blob.Store, views ViewInvalidator, defaults config.SiteDefaults) ConfigService {
	return &configService{repo: repo, store: store, views: views, defaults: defaults}
}

func (s *configService) UpdateConfig(ctx context.Context, caller string, in UpdateConfigInput) (*model.SiteConfig, error) {
	if caller == "" {
		return nil, ErrUnauthenticated
	}
	in.Color = strings.TrimSpace(in.Color)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	patch := &model.SiteConfig{
		OwnerID:      caller,
		ThemeColor:   optional(in.Color),
		SiteTitle:    optional(strings.TrimSpace(in.SiteTitle)),
		SiteSubtitle: optional(strings.TrimSpace(in.SiteSubtitle)),
	}
	if in.CoverImage.present() {
		// 每个用户只有一个封面槽位，覆盖写
		name := fmt.Sprintf("covers/%s/cover-image", ownerSegment(caller))
		url, err := upload(ctx, s.store, name, in.CoverImage, blob.PutOptions{AllowOverwrite: true})
		if err != nil {
			return nil, err
		}
		patch.CoverImage = &url
	}

	if err := s.repo.Upsert(ctx, patch); err != nil {
		return nil, fmt.Errorf("%w: upsert config: %v", ErrPersistence, err)
	}
	if err := invalidateView(ctx, s.views, caller); err != nil {
		return nil, err
	}

	cfg, err := s.repo.GetByOwner(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("%w: reload config: %v", ErrPersistence, err)
	}
	return cfg, nil
}

func (s *configService) GetConfig(ctx context.Context, caller string) (*model.SiteConfig, error) {
	if caller == "" {
		return nil, ErrUnauthenticated
	}
	cfg, err := s.repo.GetByOwner(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("%w: get config: %v", ErrPersistence, err)
	}
	return cfg, nil
}

func (s *configService) Resolve(cfg *model.SiteConfig) ResolvedConfig {
	out := ResolvedConfig{
		ThemeColor:   s.defaults.ThemeColor,
		CoverImage:   s.defaults.CoverImage,
		SiteTitle:    s.defaults.SiteTitle,
		SiteSubtitle: s.defaults.SiteSubtitle,
	}
	if cfg == nil {
		return out
	}
	out.Customized = true
	setIfPresent(&out.ThemeColor, cfg.ThemeColor)
	setIfPresent(&out.CoverImage, cfg.CoverImage)
	setIfPresent(&out.SiteTitle, cfg.SiteTitle)
	setIfPresent(&out.SiteSubtitle, cfg.SiteSubtitle)
	return out
}

func setIfPresent(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}
