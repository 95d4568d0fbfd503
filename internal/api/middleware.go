package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminAuth 管理端鉴权：只区分"管理员/非管理员"，凭配置的Bearer Token判定。
// 更细粒度的认证授权不在本服务范围
func AdminAuth(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminToken == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "管理端未配置admin_token，拒绝所有管理请求"})
			return
		}
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token != adminToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "无效的管理凭证"})
			return
		}
		c.Next()
	}
}

// IsAdminCaller 读取面共用：带有效管理凭证的请求按管理员视图返回
func IsAdminCaller(c *gin.Context, adminToken string) bool {
	if adminToken == "" {
		return false
	}
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ") == adminToken
}
