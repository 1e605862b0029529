package service

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/d60-Lab/starlog/config"
	"github.com/d60-Lab/starlog/internal/cache"
	"github.com/d60-Lab/starlog/internal/model"
	"github.com/d60-Lab/starlog/internal/repository"
	"github.com/d60-Lab/starlog/pkg/blob"
)

var testDefaults = config.SiteDefaults{
	ThemeColor:   "#ec4899",
	CoverImage:   "https://example.com/cover.jpg",
	SiteTitle:    "My StarLog",
	SiteSubtitle: "fan diary",
}

type fixture struct {
	db      *gorm.DB
	fs      afero.Fs
	store   *countingStore
	cache   *cache.ViewCache
	posts   PostService
	configs ConfigService
	views   ViewService
}

// countingStore 记录上传次数
type countingStore struct {
	blob.Store
	calls int
}

func (s *countingStore) Put(ctx context.Context, name string, r io.Reader, opts blob.PutOptions) (string, error) {
	s.calls++
	return s.Store.Put(ctx, name, r, opts)
}

type failingStore struct{ calls int }

func (s *failingStore) Put(context.Context, string, io.Reader, blob.PutOptions) (string, error) {
	s.calls++
	return "", errors.New("bucket unavailable")
}

func (s *failingStore) Delete(context.Context, string) error { return errors.New("bucket unavailable") }

// flakyInvalidator 前 failures 次失效调用返回错误
type flakyInvalidator struct {
	failures int
	calls    int
}

func (v *flakyInvalidator) Invalidate(context.Context, string) error {
	v.calls++
	if v.calls <= v.failures {
		return errors.New("redis unavailable")
	}
	return nil
}

type brokenPostRepo struct{}

func (brokenPostRepo) Create(context.Context, *model.Post) error { return errors.New("db down") }
func (brokenPostRepo) DeleteByOwner(context.Context, string, string) (int64, error) {
	return 0, errors.New("db down")
}
func (brokenPostRepo) ListByOwner(context.Context, string) ([]*model.Post, error) {
	return nil, errors.New("db down")
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repository.InitSchema(db))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	fs := afero.NewMemMapFs()
	store := &countingStore{Store: blob.NewAferoStore(fs, "http://cdn.test/uploads")}
	vc := cache.NewViewCache(client, time.Minute)

	posts := NewPostService(repository.NewPostRepository(db), store, vc)
	configs := NewConfigService(repository.NewSiteConfigRepository(db), store, vc, testDefaults)
	return &fixture{
		db:      db,
		fs:      fs,
		store:   store,
		cache:   vc,
		posts:   posts,
		configs: configs,
		views:   NewViewService(posts, configs, vc),
	}
}

func image(name, body string) *Attachment {
	return &Attachment{Filename: name, Size: int64(len(body)), Body: strings.NewReader(body)}
}

// countFiles 统计 fs 里的普通文件
func countFiles(t *testing.T, fs afero.Fs) int {
	t.Helper()
	n := 0
	require.NoError(t, afero.Walk(fs, "/", func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			n++
		}
		return nil
	}))
	return n
}

func countPosts(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.Post{}).Count(&n).Error)
	return n
}
