package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const userHeader = "X-User-ID"

// UserID pulls the caller identity the auth layer in front of us injects.
// Aborts with 400 when the header is missing.
func UserID(c *gin.Context) (string, bool) {
	id := c.GetHeader(userHeader)
	if id == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"code":  "INVALID_ARGUMENT",
			"error": "missing " + userHeader + " header",
		})
		return "", false
	}
	return id, true
}
