package response

import "github.com/gin-gonic/gin"

// Error writes the uniform client-facing error body. Callers log the
// underlying cause; it is never echoed to the client.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// AbortError writes an error body and stops the handler chain. Used by
// middleware.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
