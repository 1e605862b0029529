package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/starlog/internal/api/middleware"
	"github.com/d60-Lab/starlog/internal/service"
	"github.com/d60-Lab/starlog/pkg/response"
)

// GetConfig 站点配置（已套用默认值）
// @Summary 查询站点配置
// @Tags 站点配置
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=service.ResolvedConfig}
// @Failure 401 {object} response.Response
// @Router /api/v1/config [get]
func (h *Handler) GetConfig(c *gin.Context) {
	cfg, err := h.configService.GetConfig(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, h.configService.Resolve(cfg))
}

// UpdateConfig 部分更新站点配置，未提供的字段保持不变
// @Summary 更新站点配置
// @Tags 站点配置
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param color formData string false "主题色 #rrggbb"
// @Param siteTitle formData string false "站点标题"
// @Param siteSubtitle formData string false "副标题"
// @Param coverImage formData file false "封面图"
// @Success 200 {object} response.Response{data=service.ResolvedConfig}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/config [put]
func (h *Handler) UpdateConfig(c *gin.Context) {
	cover, closer, err := h.formAttachment(c, "coverImage")
	if errors.Is(err, errTooLarge) {
		statusTooLarge(c)
		return
	}
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	in := service.UpdateConfigInput{
		Color:        c.PostForm("color"),
		SiteTitle:    c.PostForm("siteTitle"),
		SiteSubtitle: c.PostForm("siteSubtitle"),
		CoverImage:   cover,
	}
	cfg, err := h.configService.UpdateConfig(c.Request.Context(), middleware.CallerID(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, h.configService.Resolve(cfg))
}
