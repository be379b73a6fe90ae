package Controllers

import (
	"context"
	"net/http"

	"github.com/Peezy0/Accel1/internal/services"

	"github.com/gin-gonic/gin"
)

// GoalController 只读查询目标及其下属记录
type GoalController struct {
	plan *services.PlanService
}

// NewGoalController 创建目标查询控制器
func NewGoalController(plan *services.PlanService) *GoalController {
	return &GoalController{plan: plan}
}

// Index 按创建顺序列出所有目标
func (gc *GoalController) Index(c *gin.Context) {
	goals, err := gc.plan.ListGoals(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, goals, "获取成功")
}

// children 先确认目标存在，再查询其下属记录
func (gc *GoalController) children(c *gin.Context, list func(ctx context.Context, goalID int) (any, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := gc.plan.GetGoal(ctx, id); err != nil {
		fail(c, err)
		return
	}
	data, err := list(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, data, "获取成功")
}

// Proficiencies 目标下的能力
func (gc *GoalController) Proficiencies(c *gin.Context) {
	gc.children(c, func(ctx context.Context, goalID int) (any, error) {
		return gc.plan.ListProficiencies(ctx, goalID)
	})
}

// SLOs 目标下的学习成果
func (gc *GoalController) SLOs(c *gin.Context) {
	gc.children(c, func(ctx context.Context, goalID int) (any, error) {
		return gc.plan.ListSLOs(ctx, goalID)
	})
}

// AssessmentAreas 目标下的考核领域
func (gc *GoalController) AssessmentAreas(c *gin.Context) {
	gc.children(c, func(ctx context.Context, goalID int) (any, error) {
		return gc.plan.ListAssessmentAreas(ctx, goalID)
	})
}

// Courses 目标下的课程
func (gc *GoalController) Courses(c *gin.Context) {
	gc.children(c, func(ctx context.Context, goalID int) (any, error) {
		return gc.plan.ListCourses(ctx, goalID)
	})
}
