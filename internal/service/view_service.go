package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/d60-Lab/starlog/internal/cache"
	"github.com/d60-Lab/starlog/internal/model"
	"github.com/d60-Lab/starlog/pkg/logger"
)

// PostView 帖子 + 展示所需的派生字段
type PostView struct {
	model.Post
	EffectiveColor string                `json:"effective_color"`
	Ticket         *model.TicketLocation `json:"ticket,omitempty"`
}

// HomeView 首页读视图
type HomeView struct {
	Config ResolvedConfig `json:"config"`
	Posts  []PostView     `json:"posts"`
}

// ViewService 首页读路径，结果按 owner 缓存，写操作时失效
type ViewService interface {
	Home(ctx context.Context, caller string) (*HomeView, error)
}

type viewService struct {
	posts   PostService
	configs ConfigService
	cache   *cache.ViewCache
}

func NewViewService(posts PostService, configs ConfigService, c *cache.ViewCache) ViewService {
	return &viewService{posts: posts, configs: configs, cache: c}
}

func (s *viewService) Home(ctx context.Context, caller string) (*HomeView, error) {
	if caller == "" {
		return nil, ErrUnauthenticated
	}

	var cached HomeView
	ok, err := s.cache.Get(ctx, caller, &cached)
	if err != nil {
		logger.Warn("read view cache get failed", zap.String("owner", caller), zap.Error(err))
	}
	if ok {
		return &cached, nil
	}

	// generation 必须在读库之前取，构建期间的写入会让这次 Set 作废
	gen, genErr := s.cache.Generation(ctx, caller)
	if genErr != nil {
		logger.Warn("read view generation failed", zap.String("owner", caller), zap.Error(genErr))
	}

	view, err := s.build(ctx, caller)
	if err != nil {
		return nil, err
	}
	if genErr != nil {
		return view, nil
	}
	if _, err := s.cache.Set(ctx, caller, gen, view); err != nil {
		logger.Warn("read view cache set failed", zap.String("owner", caller), zap.Error(err))
	}
	return view, nil
}

// invalidateView 写操作提交后调用；失败时重试一次，仍失败则返回错误，
// 否则旧视图会一直留到 TTL 过期
func invalidateView(ctx context.Context, views ViewInvalidator, owner string) error {
	if views == nil {
		return nil
	}
	err := views.Invalidate(ctx, owner)
	if err == nil {
		return nil
	}
	logger.Warn("invalidate read view failed, retrying", zap.String("owner", owner), zap.Error(err))
	if err = views.Invalidate(ctx, owner); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidation, err)
	}
	return nil
}

func (s *viewService) build(ctx context.Context, caller string) (*HomeView, error) {
	posts, err := s.posts.ListPosts(ctx, caller)
	if err != nil {
		return nil, err
	}
	cfg, err := s.configs.GetConfig(ctx, caller)
	if err != nil {
		return nil, err
	}

	resolved := s.configs.Resolve(cfg)
	view := &HomeView{Config: resolved, Posts: make([]PostView, 0, len(posts))}
	for _, p := range posts {
		view.Posts = append(view.Posts, NewPostView(p, resolved.ThemeColor))
	}
	return view, nil
}

// NewPostView 单条帖子的颜色回退到主题色，票根解析座位
func NewPostView(p *model.Post, themeColor string) PostView {
	pv := PostView{Post: *p, EffectiveColor: themeColor}
	if p.Color != nil && *p.Color != "" {
		pv.EffectiveColor = *p.Color
	}
	if p.Type == model.PostTypeWallet {
		loc := ""
		if p.Location != nil {
			loc = *p.Location
		}
		ticket := model.ParseTicketLocation(loc)
		pv.Ticket = &ticket
	}
	return pv
}
