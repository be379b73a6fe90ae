package Controllers

import (
	"net/http"

	"github.com/Peezy0/Accel1/internal/services"

	"github.com/gin-gonic/gin"
)

// ExportController 导出历史记录快照到对象存储
type ExportController struct {
	export *services.ExportService
}

// NewExportController 创建导出控制器，export 为 nil 表示未启用对象存储
func NewExportController(export *services.ExportService) *ExportController {
	return &ExportController{export: export}
}

// PastWork 导出最近一次工作
func (ec *ExportController) PastWork(c *gin.Context) {
	if ec.export == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "对象存储未启用"})
		return
	}
	receipt, err := ec.export.ExportPastWork(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusCreated, receipt, "导出成功")
}
