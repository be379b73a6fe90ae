package Controllers

import (
	"net/http"

	"github.com/Peezy0/Accel1/internal/flow"

	"github.com/gin-gonic/gin"
)

// FlowController 主菜单、欢迎页和选项页之间的流转
type FlowController struct {
	sessions  *flow.Store
	navigator *flow.Navigator
}

// NewFlowController 创建流转控制器
func NewFlowController(sessions *flow.Store, navigator *flow.Navigator) *FlowController {
	return &FlowController{
		sessions:  sessions,
		navigator: navigator,
	}
}

// screenAction 在会话锁内执行一次页面操作并返回新页面
func (fc *FlowController) screenAction(c *gin.Context, msg string, action func(s *flow.Session) (flow.ScreenView, error)) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var view flow.ScreenView
	err := fc.sessions.With(id, func(s *flow.Session) error {
		var err error
		view, err = action(s)
		return err
	})
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, view, msg)
}

// CreateSession 新建会话，停在主菜单
func (fc *FlowController) CreateSession(c *gin.Context) {
	s := fc.sessions.Create()

	var view flow.ScreenView
	err := fc.sessions.With(s.ID, func(s *flow.Session) error {
		var err error
		view, err = fc.navigator.View(c.Request.Context(), s)
		return err
	})
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusCreated, view, "会话创建成功")
}

// Screen 当前页面
func (fc *FlowController) Screen(c *gin.Context) {
	fc.screenAction(c, "获取成功", func(s *flow.Session) (flow.ScreenView, error) {
		return fc.navigator.View(c.Request.Context(), s)
	})
}

// NewWork 主菜单 -> 新建工作
func (fc *FlowController) NewWork(c *gin.Context) {
	fc.screenAction(c, "已新建工作", func(s *flow.Session) (flow.ScreenView, error) {
		return fc.navigator.NewWork(c.Request.Context(), s)
	})
}

// Close 主菜单 -> 关闭，关闭后会话从会话表中移除
func (fc *FlowController) Close(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var view flow.ScreenView
	err := fc.sessions.With(id, func(s *flow.Session) error {
		var err error
		view, err = fc.navigator.Close(c.Request.Context(), s)
		return err
	})
	if err != nil {
		fail(c, err)
		return
	}
	fc.sessions.Delete(id)
	success(c, http.StatusOK, view, "程序即将关闭")
}

// PastWork 主菜单 -> 查看历史记录
func (fc *FlowController) PastWork(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var view flow.PastWorkView
	err := fc.sessions.With(id, func(s *flow.Session) error {
		var err error
		view, err = fc.navigator.OpenPastWork(c.Request.Context(), s)
		return err
	})
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, view, "获取成功")
}

// Welcome 欢迎页提交项目名称
func (fc *FlowController) Welcome(c *gin.Context) {
	var req struct {
		ProgramName string `json:"program_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fc.screenAction(c, "欢迎", func(s *flow.Session) (flow.ScreenView, error) {
		return fc.navigator.SubmitProgramName(c.Request.Context(), s, req.ProgramName)
	})
}

// Back 选项页返回主菜单
func (fc *FlowController) Back(c *gin.Context) {
	fc.screenAction(c, "已返回主菜单", func(s *flow.Session) (flow.ScreenView, error) {
		return fc.navigator.Back(c.Request.Context(), s)
	})
}

// SelectGoal 选项页切换当前目标
func (fc *FlowController) SelectGoal(c *gin.Context) {
	var req struct {
		GoalID *int `json:"goal_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fc.screenAction(c, "目标已切换", func(s *flow.Session) (flow.ScreenView, error) {
		return fc.navigator.SelectGoal(c.Request.Context(), s, *req.GoalID)
	})
}
