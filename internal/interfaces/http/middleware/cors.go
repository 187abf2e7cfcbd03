package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	corsAllowMethods = strings.Join([]string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
	}, ", ")
	corsAllowHeaders  = "Content-Type, Authorization, X-Request-ID, Accept, Origin"
	corsExposeHeaders = "X-Request-ID, X-RateLimit-Limit, X-RateLimit-Remaining"
)

// CORS returns a middleware that answers preflight requests and sets
// cross-origin headers for whitelisted origins. An empty whitelist
// rejects all cross-origin requests; "*" allows any origin without
// credentials.
func CORS(allowOrigins []string) gin.HandlerFunc {
	allowWildcard := false
	for _, origin := range allowOrigins {
		if origin == "*" {
			allowWildcard = true
			break
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := ""
		if allowWildcard {
			allowed = "*"
		} else {
			for _, o := range allowOrigins {
				if o == origin && origin != "" {
					allowed = origin
					break
				}
			}
		}

		if allowed != "" {
			header := c.Writer.Header()
			header.Set("Access-Control-Allow-Origin", allowed)
			header.Set("Access-Control-Allow-Methods", corsAllowMethods)
			header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			header.Set("Access-Control-Expose-Headers", corsExposeHeaders)
			if allowed != "*" {
				header.Set("Access-Control-Allow-Credentials", "true")
			}
		}

		// Preflight requests get a 204 even when the origin is not
		// whitelisted so they never fall through to the route table
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
