package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/starlog/internal/service"
	"github.com/d60-Lab/starlog/pkg/response"
)

// Handler HTTP 处理器集合
type Handler struct {
	postService   service.PostService
	configService service.ConfigService
	viewService   service.ViewService
	maxUpload     int64
}

func NewHandler(posts service.PostService, configs service.ConfigService, views service.ViewService, maxUpload int64) *Handler {
	return &Handler{postService: posts, configService: configs, viewService: views, maxUpload: maxUpload}
}

// Health 健康检查
// @Summary 健康检查
// @Tags 系统
// @Success 200 {object} response.Response
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}

// writeError 把服务层错误映射为 HTTP 状态码
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		response.Unauthorized(c, "login required")
	case errors.Is(err, service.ErrValidation):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

func statusTooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, response.Response{Code: http.StatusRequestEntityTooLarge, Message: "file too large"})
}
