package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"cosmoport/pkg/jwt"
	"cosmoport/pkg/response"
)

const operatorKey = "operator"

// OperatorAuth 写接口的操作员令牌认证
// 从 Authorization: Bearer <token> 中提取并验证令牌，操作员名注入上下文
func OperatorAuth(jwtMgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			msg := "Token 无效"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token 已过期"
			}
			response.Unauthorized(c, 10002, msg)
			c.Abort()
			return
		}

		c.Set(operatorKey, claims.Operator)
		c.Next()
	}
}
