package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ferrum/backend/pkg/response"
)

// maxBodyBytes 请求体大小上限（1 MiB），工序批量更新足够用
const maxBodyBytes = 1 << 20

// BodyLimit 请求体大小限制中间件
func BodyLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBodyBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 41301, "请求体过大")
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		c.Next()
	}
}
