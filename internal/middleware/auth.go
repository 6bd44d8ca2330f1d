package middleware

import (
	"assessment_backend/internal/config"
	"assessment_backend/internal/model"
	"assessment_backend/internal/util"
	"assessment_backend/pkg/logger"
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClaimsVerifier 按令牌重新加载并校验用户
type ClaimsVerifier interface {
	VerifyClaims(ctx context.Context, claims *util.Claims) (*model.User, error)
}

func tokenFromRequest(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if cookie, err := c.Cookie(util.AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

func AuthMiddleware(cfg *config.Config, verifier ClaimsVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			logger.Log.Debug("JWT解析错误", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		// 令牌签发后用户可能已被删除、封禁或变更角色
		if _, err := verifier.VerifyClaims(c.Request.Context(), claims); err != nil {
			switch {
			case errors.Is(err, util.ErrUserBlocked):
				util.ForbiddenMessage(c, "用户已被封禁")
			case errors.Is(err, util.ErrUserNotFound), errors.Is(err, util.ErrPermissionDenied):
				util.Unauthorized(c)
			default:
				util.LogInternalError(c, err)
			}
			c.Abort()
			return
		}

		c.Set(util.ContextUserKey, claims)
		c.Next()
	}
}

// AdminOnly 仅管理员
func AdminOnly() gin.HandlerFunc {
	return requireRole(func(claims *util.Claims) bool { return claims.IsAdmin })
}

// UserOnly 仅普通用户，管理员不参与答题
func UserOnly() gin.HandlerFunc {
	return requireRole(func(claims *util.Claims) bool { return !claims.IsAdmin })
}

func requireRole(allowed func(*util.Claims) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		if !allowed(user) {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
