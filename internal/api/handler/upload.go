package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/starlog/internal/service"
)

var errTooLarge = errors.New("file too large")

// formOverhead 文本字段和 multipart 头部的额外余量
const formOverhead = 64 << 10

// formAttachment 取出表单文件；没有上传时返回 nil。
// 请求体先按上限截断，超限的上传在解析途中就会失败，不会整体落盘。
func (h *Handler) formAttachment(c *gin.Context, field string) (*service.Attachment, io.Closer, error) {
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+formOverhead)
	}
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return nil, nil, errTooLarge
	}
	if err != nil {
		return nil, nil, err
	}
	if h.maxUpload > 0 && fh.Size > h.maxUpload {
		return nil, nil, errTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return attachmentOf(fh, f), f, nil
}

func attachmentOf(fh *multipart.FileHeader, f multipart.File) *service.Attachment {
	return &service.Attachment{Filename: fh.Filename, Size: fh.Size, Body: f}
}
