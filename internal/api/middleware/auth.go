package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/starlog/pkg/jwt"
	"github.com/d60-Lab/starlog/pkg/logger"
	"github.com/d60-Lab/starlog/pkg/response"
)

const callerKey = "caller_id"

// Auth 解析 Bearer 令牌。没有令牌时放行（调用者为空，由服务层拒绝写操作），
// 令牌无效时直接 401。
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tokenStr) == "" {
			response.Unauthorized(c, "malformed authorization header")
			return
		}
		userID, err := jwt.ParseToken(strings.TrimSpace(tokenStr), secret)
		if err != nil {
			logger.Debug("reject token", zap.Error(err))
			response.Unauthorized(c, "invalid token")
			return
		}
		c.Set(callerKey, userID)
		c.Next()
	}
}

// CallerID 当前请求的调用者身份，未登录为空串
func CallerID(c *gin.Context) string {
	return c.GetString(callerKey)
}
