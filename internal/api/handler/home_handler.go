package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/starlog/internal/api/middleware"
	"github.com/d60-Lab/starlog/pkg/response"
)

// Home 首页读视图：帖子 + 配置
// @Summary 首页数据
// @Tags 首页
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=service.HomeView}
// @Failure 401 {object} response.Response
// @Router /api/v1/home [get]
func (h *Handler) Home(c *gin.Context) {
	view, err := h.viewService.Home(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, view)
}
