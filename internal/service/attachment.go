package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/d60-Lab/starlog/pkg/blob"
)

// Attachment 随请求上传的文件
type Attachment struct {
	Filename string
	Size     int64
	Body     io.Reader
}

func (a *Attachment) present() bool {
	return a != nil && a.Size > 0 && a.Body != nil
}

func upload(ctx context.Context, store blob.Store, name string, a *Attachment, opts blob.PutOptions) (string, error) {
	u, err := store.Put(ctx, name, a.Body, opts)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return u, nil
}

// ownerSegment 把身份编码成单个路径段，"/" 和 ".." 不能跳到别的用户目录
func ownerSegment(owner string) string {
	seg := url.PathEscape(owner)
	if seg == "." || seg == ".." {
		seg = strings.ReplaceAll(seg, ".", "%2E")
	}
	return seg
}

func baseFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "image"
	}
	return name
}
