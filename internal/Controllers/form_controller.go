package Controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Peezy0/Accel1/internal/flow"
	"github.com/Peezy0/Accel1/internal/forms"
	"github.com/Peezy0/Accel1/internal/metrics"

	"github.com/gin-gonic/gin"
)

// 下拉框在查询参数中的名称
var selectionQueryParams = map[string]string{
	forms.DropdownGoal:           "goal_id",
	forms.DropdownAssessmentArea: "assessment_area_id",
	forms.DropdownSLO:            "slo_id",
	forms.DropdownProficiency:    "proficiency_id",
}

// FormController 五个录入表单
type FormController struct {
	sessions  *flow.Store
	navigator *flow.Navigator
	metrics   *metrics.Collector
}

// NewFormController 创建表单控制器，collector 可为 nil
func NewFormController(sessions *flow.Store, navigator *flow.Navigator, collector *metrics.Collector) *FormController {
	return &FormController{
		sessions:  sessions,
		navigator: navigator,
		metrics:   collector,
	}
}

type refreshRequest struct {
	Selections map[string]*int `json:"selections"`
	Changed    string          `json:"changed" binding:"required"`
}

type submitRequest struct {
	Selections map[string]*int `json:"selections"`
	Text       string          `json:"text"`
}

// withSessionGoal 请求中没有选择目标时使用会话当前目标
func withSessionGoal(sel forms.Selections, s *flow.Session) forms.Selections {
	if !sel.Has(forms.DropdownGoal) && s.Goal().Valid {
		sel[forms.DropdownGoal] = s.Goal()
	}
	return sel
}

// querySelections 从查询参数读取选择，非数字的值忽略
func querySelections(c *gin.Context) forms.Selections {
	ids := map[string]*int{}
	for dropdown, param := range selectionQueryParams {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		ids[dropdown] = &id
	}
	return forms.FromIDs(ids)
}

// formAction 在会话锁内打开表单并执行 fn
func (fc *FormController) formAction(c *gin.Context, fn func(s *flow.Session, form *forms.Form) error) bool {
	id, ok := sessionID(c)
	if !ok {
		return false
	}
	err := fc.sessions.With(id, func(s *flow.Session) error {
		form, err := fc.navigator.OpenForm(s, c.Param("name"))
		if err != nil {
			return err
		}
		return fn(s, form)
	})
	if err != nil {
		fail(c, err)
		return false
	}
	return true
}

// Show 渲染表单
func (fc *FormController) Show(c *gin.Context) {
	var view forms.View
	done := fc.formAction(c, func(s *flow.Session, form *forms.Form) error {
		var err error
		view, err = form.Render(c.Request.Context(), withSessionGoal(querySelections(c), s))
		return err
	})
	if done {
		success(c, http.StatusOK, view, "获取成功")
	}
}

// Refresh 父下拉框变化后重新渲染
func (fc *FormController) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var view forms.View
	done := fc.formAction(c, func(s *flow.Session, form *forms.Form) error {
		var err error
		view, err = form.Refresh(c.Request.Context(), withSessionGoal(forms.FromIDs(req.Selections), s), req.Changed)
		return err
	})
	if done {
		success(c, http.StatusOK, view, "已刷新")
	}
}

// Submit 提交表单，写库后返回确认信息和刷新后的表单
func (fc *FormController) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := c.Param("name")
	var result forms.Result
	done := fc.formAction(c, func(s *flow.Session, form *forms.Form) error {
		sel := withSessionGoal(forms.FromIDs(req.Selections), s)
		slog.Info("提交表单", "session", s.ID, "form", name, "text", req.Text, "selections", sel)

		var err error
		result, err = form.Submit(c.Request.Context(), sel, req.Text)
		fc.metrics.RecordSubmission(name, err)
		return err
	})
	if done {
		success(c, http.StatusCreated, result, result.Receipt.Message)
	}
}
