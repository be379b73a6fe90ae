package Controllers

import (
	"github.com/Peezy0/Accel1/internal/services"

	"github.com/gin-gonic/gin"
)

type OverviewController struct {
	plan *services.PlanService
}

func NewOverviewController(plan *services.PlanService) *OverviewController {
	return &OverviewController{plan: plan}
}

// Index 各表记录数
func (oc *OverviewController) Index(c *gin.Context) {
	ov, err := oc.plan.Overview(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(200, gin.H{
		"code": 200,
		"data": ov,
		"msg":  "获取成功",
	})
}
