package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// parseDaysQuery 解析 days 参数；缺省、非数字或为 0 时返回 fallback，ok 表示调用方是否显式给出了值。
// 负数原样返回，由调用方校验。
func parseDaysQuery(c *gin.Context, fallback int) (days int, ok bool) {
	raw := strings.TrimSpace(c.Query("days"))
	if raw == "" {
		return fallback, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value == 0 {
		return fallback, false
	}
	return value, true
}
