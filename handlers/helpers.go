package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// monthQuery parses the month and year query parameters, answering 400
// itself when they are missing or out of range.
func monthQuery(c *gin.Context) (year int, month time.Month, ok bool) {
	m, err := strconv.Atoi(c.Query("month"))
	if err != nil || m < 1 || m > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid query parameter: month"})
		return 0, 0, false
	}
	y, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid query parameter: year"})
		return 0, 0, false
	}
	return y, time.Month(m), true
}
