package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// queryInt parses an integer query parameter, returning fallback when the
// parameter is absent or malformed.
func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// referenceDate resolves an optional YYYY-MM-DD reference-date value,
// defaulting to the current time.
func referenceDate(raw string) time.Time {
	if raw == "" {
		return time.Now()
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Now()
	}
	return parsed
}
