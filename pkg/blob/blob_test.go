package blob

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPut_RandomSuffixKeepsExtension(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewAferoStore(fs, "http://cdn.test/uploads/")
	s.suffix = func() string { return "abc123" }

	u, err := s.Put(context.Background(), "posts/u1/live photo.jpg", strings.NewReader("img"), PutOptions{AddRandomSuffix: true})
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.test/uploads/posts/u1/live%20photo-abc123.jpg", u)

	data, err := afero.ReadFile(fs, "/posts/u1/live photo-abc123.jpg")
	require.NoError(t, err)
	assert.Equal(t, "img", string(data))
}

func TestPut_SameNameTwiceGetsDistinctKeys(t *testing.T) {
	s := NewAferoStore(afero.NewMemMapFs(), "http://cdn.test")

	a, err := s.Put(context.Background(), "a.png", strings.NewReader("1"), PutOptions{AddRandomSuffix: true})
	require.NoError(t, err)
	b, err := s.Put(context.Background(), "a.png", strings.NewReader("2"), PutOptions{AddRandomSuffix: true})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPut_Overwrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewAferoStore(fs, "http://cdn.test")
	ctx := context.Background()

	first, err := s.Put(ctx, "covers/u1/cover-image", strings.NewReader("old"), PutOptions{AllowOverwrite: true})
	require.NoError(t, err)
	second, err := s.Put(ctx, "covers/u1/cover-image", strings.NewReader("new"), PutOptions{AllowOverwrite: true})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	data, err := afero.ReadFile(fs, "/covers/u1/cover-image")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	_, err = s.Put(ctx, "covers/u1/cover-image", strings.NewReader("x"), PutOptions{})
	assert.ErrorIs(t, err, ErrExists)
}

func TestPut_NameIsConfinedToRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewAferoStore(fs, "http://cdn.test")

	u, err := s.Put(context.Background(), "../../etc/passwd", strings.NewReader("x"), PutOptions{})
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.test/etc/passwd", u)

	_, err = s.Put(context.Background(), "  ", strings.NewReader("x"), PutOptions{})
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestPut_CancelledContext(t *testing.T) {
	s := NewAferoStore(afero.NewMemMapFs(), "http://cdn.test")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Put(ctx, "a.png", strings.NewReader("1"), PutOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDelete_RemovesBlobBehindURL(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewAferoStore(fs, "http://cdn.test/uploads")
	ctx := context.Background()

	u, err := s.Put(ctx, "posts/a%2Fb/live photo.jpg", strings.NewReader("img"), PutOptions{})
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.test/uploads/posts/a%252Fb/live%20photo.jpg", u)

	require.NoError(t, s.Delete(ctx, u))
	exists, err := afero.Exists(fs, "/posts/a%2Fb/live photo.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	// 再删一次不报错
	require.NoError(t, s.Delete(ctx, u))
}

func TestDelete_RejectsForeignURL(t *testing.T) {
	s := NewAferoStore(afero.NewMemMapFs(), "http://cdn.test/uploads")

	err := s.Delete(context.Background(), "http://elsewhere.test/uploads/a.png")
	assert.ErrorIs(t, err, ErrForeignURL)
}
