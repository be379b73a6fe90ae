package routers

import (
	"github.com/Peezy0/Accel1/internal/Controllers"
	"github.com/Peezy0/Accel1/internal/flow"
	"github.com/Peezy0/Accel1/internal/metrics"
	"github.com/Peezy0/Accel1/internal/services"

	"github.com/gin-gonic/gin"
)

// Deps 路由需要的服务，Export 和 Metrics 可为 nil
type Deps struct {
	Plan      *services.PlanService
	Sessions  *flow.Store
	Navigator *flow.Navigator
	Export    *services.ExportService
	Metrics   *metrics.Collector
}

func RoutersInit(r *gin.Engine, deps Deps) {
	flowCtrl := Controllers.NewFlowController(deps.Sessions, deps.Navigator)
	r.POST("/session", flowCtrl.CreateSession)
	r.GET("/screen", flowCtrl.Screen)

	// 主菜单
	menuRouter := r.Group("/menu")
	{
		menuRouter.POST("/new-work", flowCtrl.NewWork)
		menuRouter.GET("/past-work", flowCtrl.PastWork)
		menuRouter.POST("/close", flowCtrl.Close)
	}

	r.POST("/welcome", flowCtrl.Welcome)

	// 选项页
	optionsRouter := r.Group("/options")
	{
		optionsRouter.POST("/back", flowCtrl.Back)
		optionsRouter.POST("/goal", flowCtrl.SelectGoal)
	}

	// 录入表单
	formRouter := r.Group("/forms")
	{
		formCtrl := Controllers.NewFormController(deps.Sessions, deps.Navigator, deps.Metrics)
		formRouter.GET("/:name", formCtrl.Show)
		formRouter.POST("/:name/refresh", formCtrl.Refresh)
		formRouter.POST("/:name", formCtrl.Submit)
	}

	// 历史记录导出
	exportCtrl := Controllers.NewExportController(deps.Export)
	r.POST("/past-work/export", exportCtrl.PastWork)

	// 目标查询
	goalRouter := r.Group("/goals")
	{
		goalCtrl := Controllers.NewGoalController(deps.Plan)
		goalRouter.GET("", goalCtrl.Index)
		goalRouter.GET("/:id/proficiencies", goalCtrl.Proficiencies)
		goalRouter.GET("/:id/slos", goalCtrl.SLOs)
		goalRouter.GET("/:id/assessment-areas", goalCtrl.AssessmentAreas)
		goalRouter.GET("/:id/courses", goalCtrl.Courses)

		graphCtrl := Controllers.NewGraphController(deps.Plan)
		goalRouter.POST("/:id/graph-sync", graphCtrl.SyncGoal)
	}

	overviewCtrl := Controllers.NewOverviewController(deps.Plan)
	r.GET("/overview", overviewCtrl.Index)

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
}
