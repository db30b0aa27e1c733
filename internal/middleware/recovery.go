package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/trekline/gotours/internal/pkg/response"
)

// Recovery funnels panics into the terminal error renderer so crashed
// handlers answer with the same JSON shape as every other failure.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		response.Error(c, fmt.Errorf("panic: %v", recovered))
	})
}
