package controllers

import "github.com/gin-gonic/gin"

func respondOK(c *gin.Context, data any) {
	c.JSON(200, gin.H{"status": "success", "data": data})
}

func respondError(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{"status": "error", "message": msg})
}
