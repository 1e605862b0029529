package service

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/starlog/internal/model"
	"github.com/d60-Lab/starlog/internal/repository"
)

func TestUpdateConfig_RequiresCaller(t *testing.T) {
	f := setup(t)

	_, err := f.configs.UpdateConfig(context.Background(), "", UpdateConfigInput{Color: "#ff0000"})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUpdateConfig_PartialMerge(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.configs.UpdateConfig(ctx, "alice", UpdateConfigInput{Color: "#ff0000"})
	require.NoError(t, err)
	cfg, err := f.configs.UpdateConfig(ctx, "alice", UpdateConfigInput{SiteTitle: "X"})
	require.NoError(t, err)

	require.NotNil(t, cfg)
	require.NotNil(t, cfg.ThemeColor)
	require.NotNil(t, cfg.SiteTitle)
	assert.Equal(t, "#ff0000", *cfg.ThemeColor)
	assert.Equal(t, "X", *cfg.SiteTitle)
	assert.Nil(t, cfg.SiteSubtitle)

	cfg, err = f.configs.UpdateConfig(ctx, "alice", UpdateConfigInput{SiteTitle: "   ", SiteSubtitle: "sub"})
	require.NoError(t, err)
	assert.Equal(t, "X", *cfg.SiteTitle)
	assert.Equal(t, "sub", *cfg.SiteSubtitle)
}

func TestUpdateConfig_InvalidColor(t *testing.T) {
	f := setup(t)

	_, err := f.configs.UpdateConfig(context.Background(), "alice", UpdateConfigInput{Color: "red"})
	assert.ErrorIs(t, err, ErrValidation)

	cfg, err := f.configs.GetConfig(context.Background(), "alice")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestUpdateConfig_CoverImageOverwritesSlot(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.configs.UpdateConfig(ctx, "alice", UpdateConfigInput{CoverImage: image("me.png", "v1")})
	require.NoError(t, err)
	second, err := f.configs.UpdateConfig(ctx, "alice", UpdateConfigInput{CoverImage: image("other.png", "v2")})
	require.NoError(t, err)

	require.NotNil(t, first.CoverImage)
	assert.Equal(t, "http://cdn.test/uploads/covers/alice/cover-image", *first.CoverImage)
	assert.Equal(t, *first.CoverImage, *second.CoverImage)

	data, err := afero.ReadFile(f.fs, "/covers/alice/cover-image")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}

func TestUpdateConfig_OwnerCannotOverwriteAnotherCover(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.configs.UpdateConfig(ctx, "bob", UpdateConfigInput{CoverImage: image("me.png", "bob's")})
	require.NoError(t, err)
	for _, caller := range []string{"../bob", "x/../bob", ".."} {
		_, err := f.configs.UpdateConfig(ctx, caller, UpdateConfigInput{CoverImage: image("evil.png", "evil")})
		require.NoError(t, err)
	}

	data, err := afero.ReadFile(f.fs, "/covers/bob/cover-image")
	require.NoError(t, err)
	assert.Equal(t, "bob's", string(data))

	exists, err := afero.Exists(f.fs, "/covers/cover-image")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpdateConfig_InvalidationFailureIsReported(t *testing.T) {
	f := setup(t)
	svc := NewConfigService(repository.NewSiteConfigRepository(f.db), f.store, &flakyInvalidator{failures: 2}, testDefaults)

	_, err := svc.UpdateConfig(context.Background(), "alice", UpdateConfigInput{SiteTitle: "t"})
	assert.ErrorIs(t, err, ErrInvalidation)
}

func TestUpdateConfig_UploadFailureAborts(t *testing.T) {
	f := setup(t)
	svc := NewConfigService(repository.NewSiteConfigRepository(f.db), &failingStore{}, f.cache, testDefaults)

	_, err := svc.UpdateConfig(context.Background(), "alice", UpdateConfigInput{Color: "#000000", CoverImage: image("c.png", "x")})
	assert.ErrorIs(t, err, ErrStorage)

	cfg, err := svc.GetConfig(context.Background(), "alice")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestResolve_Defaults(t *testing.T) {
	f := setup(t)

	cfg, err := f.configs.GetConfig(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, cfg)

	resolved := f.configs.Resolve(cfg)
	assert.Equal(t, ResolvedConfig{
		ThemeColor:   testDefaults.ThemeColor,
		CoverImage:   testDefaults.CoverImage,
		SiteTitle:    testDefaults.SiteTitle,
		SiteSubtitle: testDefaults.SiteSubtitle,
	}, resolved)

	title := "Mine"
	partial := f.configs.Resolve(&model.SiteConfig{OwnerID: "x", SiteTitle: &title})
	assert.True(t, partial.Customized)
	assert.Equal(t, "Mine", partial.SiteTitle)
	assert.Equal(t, testDefaults.ThemeColor, partial.ThemeColor)
}
