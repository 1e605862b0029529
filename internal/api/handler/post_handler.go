package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/starlog/internal/api/middleware"
	"github.com/d60-Lab/starlog/internal/service"
	"github.com/d60-Lab/starlog/pkg/response"
)

// ListPosts 当前用户的全部帖子
// @Summary 帖子列表（按 event_date 倒序）
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]model.Post}
// @Failure 401 {object} response.Response
// @Router /api/v1/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, posts)
}

// CreatePost 发布日记或票根
// @Summary 发布帖子
// @Tags 帖子
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "标题"
// @Param content formData string false "内容"
// @Param type formData string false "timeline 或 wallet" default(timeline)
// @Param location formData string false "地点（票根可用 venue/zone/seat）"
// @Param venue formData string false "场馆"
// @Param zone formData string false "区域"
// @Param seat formData string false "座位"
// @Param color formData string false "颜色 #rrggbb"
// @Param mood formData string false "心情"
// @Param eventDate formData string false "活动时间 ISO-8601"
// @Param image formData file false "图片"
// @Success 201 {object} response.Response{data=model.Post}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	image, closer, err := h.formAttachment(c, "image")
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

	in := service.CreatePostInput{
		Title:     c.PostForm("title"),
		Content:   c.PostForm("content"),
		Type:      c.PostForm("type"),
		Location:  c.PostForm("location"),
		Venue:     c.PostForm("venue"),
		Zone:      c.PostForm("zone"),
		Seat:      c.PostForm("seat"),
		Color:     c.PostForm("color"),
		Mood:      c.PostForm("mood"),
		EventDate: c.PostForm("eventDate"),
		Image:     image,
	}
	post, err := h.postService.CreatePost(c.Request.Context(), middleware.CallerID(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, post)
}

// DeletePost 删除自己的帖子，不存在或不属于自己时静默成功
// @Summary 删除帖子
// @Tags 帖子
// @Security BearerAuth
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.postService.DeletePost(c.Request.Context(), middleware.CallerID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}
