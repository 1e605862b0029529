// Package blob stores uploaded images and hands back public URLs.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

var (
	ErrExists      = errors.New("blob already exists")
	ErrInvalidName = errors.New("invalid blob name")
	ErrForeignURL  = errors.New("url not served by this store")
)

// PutOptions mirrors the two modes the hosted store offered: a random suffix
// for one-off uploads, or overwrite for a fixed slot.
type PutOptions struct {
	AddRandomSuffix bool
	AllowOverwrite  bool
}

// Store 对象存储
type Store interface {
	Put(ctx context.Context, name string, r io.Reader, opts PutOptions) (string, error)
	// Delete removes the blob behind a URL returned by Put. Deleting a
	// missing blob is not an error.
	Delete(ctx context.Context, url string) error
}

// AferoStore keeps blobs on an afero filesystem and exposes them under baseURL.
type AferoStore struct {
	fs      afero.Fs
	baseURL string
	suffix  func() string
}

func NewAferoStore(fs afero.Fs, baseURL string) *AferoStore {
	return &AferoStore{fs: fs, baseURL: strings.TrimRight(baseURL, "/"), suffix: randomSuffix}
}

// NewOSStore roots the store at dir on the local disk.
func NewOSStore(dir, baseURL string) (*AferoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return NewAferoStore(afero.NewBasePathFs(afero.NewOsFs(), dir), baseURL), nil
}

func (s *AferoStore) Put(ctx context.Context, name string, r io.Reader, opts PutOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key, err := cleanName(name)
	if err != nil {
		return "", err
	}
	if opts.AddRandomSuffix {
		key = withSuffix(key, s.suffix())
	}

	fsPath := "/" + key
	if !opts.AllowOverwrite {
		exists, err := afero.Exists(s.fs, fsPath)
		if err != nil {
			return "", err
		}
		if exists {
			return "", fmt.Errorf("%w: %s", ErrExists, key)
		}
	}

	if err := s.fs.MkdirAll(path.Dir(fsPath), 0o755); err != nil {
		return "", err
	}
	if err := afero.WriteReader(s.fs, fsPath, r); err != nil {
		return "", fmt.Errorf("write blob %s: %w", key, err)
	}
	return s.URL(key), nil
}

func (s *AferoStore) Delete(ctx context.Context, u string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := s.keyOf(u)
	if err != nil {
		return err
	}
	if err := s.fs.Remove("/" + key); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}

// keyOf reverses URL.
func (s *AferoStore) keyOf(u string) (string, error) {
	rest, ok := strings.CutPrefix(u, s.baseURL+"/")
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, u)
	}
	parts := strings.Split(rest, "/")
	for i, p := range parts {
		seg, err := url.PathUnescape(p)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidName, u)
		}
		parts[i] = seg
	}
	return cleanName(strings.Join(parts, "/"))
}

// URL builds the public address of key.
func (s *AferoStore) URL(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return s.baseURL + "/" + strings.Join(parts, "/")
}

// FileSystem exposes the stored blobs for http serving.
func (s *AferoStore) FileSystem() http.FileSystem {
	return afero.NewHttpFs(s.fs)
}

func cleanName(name string) (string, error) {
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	key := strings.TrimPrefix(path.Clean("/"+name), "/")
	if key == "" || key == "." {
		return "", ErrInvalidName
	}
	return key, nil
}

func withSuffix(key, suffix string) string {
	ext := path.Ext(key)
	return strings.TrimSuffix(key, ext) + "-" + suffix + ext
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
}
