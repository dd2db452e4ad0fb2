package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// orderIDParam parses the :id path segment. A malformed ID gets the same
// response as a missing order.
func orderIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return 0, false
	}
	return uint(id), true
}
