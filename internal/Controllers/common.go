package Controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Peezy0/Accel1/internal/flow"
	"github.com/Peezy0/Accel1/internal/forms"
	"github.com/Peezy0/Accel1/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SessionHeader 客户端携带会话 id 的请求头
const SessionHeader = "X-Session-ID"

// sessionID 从请求头或查询参数中读取会话 id
func sessionID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.GetHeader(SessionHeader))
	if id == "" {
		id = strings.TrimSpace(c.Query("session_id"))
	}
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少会话 id"})
		return "", false
	}
	return id, true
}

// success 统一的成功响应
func success(c *gin.Context, status int, data any, msg string) {
	c.JSON(status, gin.H{"code": 200, "data": data, "msg": msg})
}

// statusFor 错误到 HTTP 状态码的映射
func statusFor(err error) int {
	switch {
	case errors.Is(err, flow.ErrUnknownSession),
		errors.Is(err, flow.ErrUnknownGoal),
		errors.Is(err, forms.ErrUnknownForm),
		errors.Is(err, services.ErrNoPastWork),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, flow.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, services.ErrMirrorDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail 按错误类型返回错误响应，服务端错误记录日志
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("请求处理失败", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// pathID 解析路径中的整数 id
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 " + name})
		return 0, false
	}
	return id, true
}
