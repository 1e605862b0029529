package api

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/starlog/config"
	_ "github.com/d60-Lab/starlog/docs"
	"github.com/d60-Lab/starlog/internal/api/handler"
	"github.com/d60-Lab/starlog/internal/api/middleware"
	"github.com/d60-Lab/starlog/pkg/sentryx"
)

// SetupRouter 注册中间件与路由；uploads 非空时同时提供图片静态访问
func SetupRouter(cfg *config.Config, h *handler.Handler, uploads http.FileSystem) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	if cfg.Server.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = cfg.Server.MaxUploadBytes
	}

	r.Use(gin.Recovery())
	if sentryx.Enabled() {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(middleware.RequestLogger())

	r.GET("/health", h.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if uploads != nil {
		r.StaticFS("/uploads", uploads)
	}

	v1 := r.Group("/api/v1")
	v1.Use(gzip.Gzip(gzip.DefaultCompression), middleware.Auth(cfg.JWT.Secret))
	{
		v1.GET("/home", h.Home)

		v1.GET("/posts", h.ListPosts)
		v1.POST("/posts", h.CreatePost)
		v1.DELETE("/posts/:id", h.DeletePost)

		v1.GET("/config", h.GetConfig)
		v1.PUT("/config", h.UpdateConfig)
	}
	return r
}
