package Controllers

import (
	"log/slog"
	"net/http"

	"github.com/Peezy0/Accel1/internal/services"

	"github.com/gin-gonic/gin"
)

// GraphController 课程图谱控制器
type GraphController struct {
	plan *services.PlanService
}

// NewGraphController 创建新的图控制器
func NewGraphController(plan *services.PlanService) *GraphController {
	return &GraphController{plan: plan}
}

// SyncGoal 把目标及其下属记录重新同步到图数据库
func (gc *GraphController) SyncGoal(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	report, err := gc.plan.ResyncGoal(c.Request.Context(), id)
	if err != nil {
		slog.Warn("同步目标到图数据库失败", "goal_id", id, "error", err)
		fail(c, err)
		return
	}
	success(c, http.StatusOK, report, "目标同步成功")
}
