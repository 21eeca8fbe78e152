package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cosmoport/pkg/response"
)

// BodyLimit 请求体大小限制中间件
// 超出 maxBytes 后读取请求体会失败，JSON 绑定随之返回 400
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
