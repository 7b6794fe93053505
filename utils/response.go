package utils

import "github.com/gin-gonic/gin"

// JSONError writes the API's error envelope: {"error": message}.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// JSONSuccess writes {"success": true}, the acknowledgement used by deletes.
func JSONSuccess(c *gin.Context, code int) {
	c.JSON(code, gin.H{"success": true})
}
