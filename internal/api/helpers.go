package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// intParam parses a numeric path parameter, answering 400 itself on failure
func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " parameter"})
		return 0, false
	}
	return v, true
}

// intQuery parses an optional numeric query parameter, 0 when absent
func intQuery(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}

// langQuery returns the requested translation language, defaulting to English
func langQuery(c *gin.Context) string {
	return c.DefaultQuery("lang", "en")
}
