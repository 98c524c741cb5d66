package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHome reports that the service is up.
func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Kassi listings backend"})
}
