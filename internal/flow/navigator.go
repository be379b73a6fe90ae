package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Peezy0/Accel1/internal/forms"
	"github.com/Peezy0/Accel1/internal/services"

	"gorm.io/gorm"
)

var (
	// ErrInvalidTransition 当前页面不支持该操作
	ErrInvalidTransition = errors.New("invalid screen transition")
	// ErrUnknownGoal 选择的目标不存在
	ErrUnknownGoal = errors.New("unknown goal")
)

// 各页面可执行的操作
const (
	ActionNewWork           = "new_work"
	ActionOpenPastWork      = "open_past_work"
	ActionClose             = "close"
	ActionSubmitProgramName = "submit_program_name"
	ActionSelectGoal        = "select_goal"
	ActionBack              = "back"
)

// ScreenView 当前页面的展示数据
type ScreenView struct {
	SessionID string         `json:"session_id"`
	Screen    Screen         `json:"screen"`
	Title     string         `json:"title"`
	Actions   []string       `json:"actions"`
	Forms     []string       `json:"forms,omitempty"`
	Goals     []forms.Option `json:"goals,omitempty"`
	Goal      *forms.Option  `json:"goal,omitempty"`
}

// PastWorkView 历史记录页
type PastWorkView struct {
	Found   bool                     `json:"found"`
	Message string                   `json:"message,omitempty"`
	Entries []services.PastWorkEntry `json:"entries,omitempty"`
}

// Navigator 页面流转：主菜单 -> 欢迎页 -> 选项页。
// 所有方法都要求调用方已持有会话锁（见 Store.With）。
type Navigator struct {
	plan     *services.PlanService
	forms    *forms.Registry
	shutdown func()
}

// NewNavigator 创建页面流转控制器，shutdown 在主菜单点击关闭时调用，可为 nil
func NewNavigator(plan *services.PlanService, registry *forms.Registry, shutdown func()) *Navigator {
	return &Navigator{
		plan:     plan,
		forms:    registry,
		shutdown: shutdown,
	}
}

func expect(s *Session, screen Screen, action string) error {
	if s.screen != screen {
		return fmt.Errorf("%w: %s not available on %s", ErrInvalidTransition, action, s.screen)
	}
	return nil
}

// NewWork 新建工作：插入占位目标并选中，然后进入欢迎页
func (n *Navigator) NewWork(ctx context.Context, s *Session) (ScreenView, error) {
	if err := expect(s, ScreenMenu, ActionNewWork); err != nil {
		return ScreenView{}, err
	}
	goal, err := n.plan.CreatePlaceholderGoal(ctx)
	if err != nil {
		return ScreenView{}, err
	}
	s.goal = services.Select(goal.ID)
	s.screen = ScreenWelcome
	slog.Info("新建工作", "session", s.ID, "goal_id", goal.ID)
	return n.View(ctx, s)
}

// SubmitProgramName 保存项目名称并进入选项页
func (n *Navigator) SubmitProgramName(ctx context.Context, s *Session, name string) (ScreenView, error) {
	if err := expect(s, ScreenWelcome, ActionSubmitProgramName); err != nil {
		return ScreenView{}, err
	}
	s.programName = name
	s.screen = ScreenOptions
	return n.View(ctx, s)
}

// Back 从选项页返回主菜单
func (n *Navigator) Back(ctx context.Context, s *Session) (ScreenView, error) {
	if err := expect(s, ScreenOptions, ActionBack); err != nil {
		return ScreenView{}, err
	}
	s.screen = ScreenMenu
	return n.View(ctx, s)
}

// SelectGoal 在选项页切换当前目标
func (n *Navigator) SelectGoal(ctx context.Context, s *Session, goalID int) (ScreenView, error) {
	if err := expect(s, ScreenOptions, ActionSelectGoal); err != nil {
		return ScreenView{}, err
	}
	if _, err := n.plan.GetGoal(ctx, goalID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ScreenView{}, fmt.Errorf("%w: %d", ErrUnknownGoal, goalID)
		}
		return ScreenView{}, err
	}
	s.goal = services.Select(goalID)
	return n.View(ctx, s)
}

// OpenPastWork 只读查看最近一次工作，不改变当前页面
func (n *Navigator) OpenPastWork(ctx context.Context, s *Session) (PastWorkView, error) {
	if err := expect(s, ScreenMenu, ActionOpenPastWork); err != nil {
		return PastWorkView{}, err
	}
	pw, err := n.plan.PastWork(ctx)
	if errors.Is(err, services.ErrNoPastWork) {
		return PastWorkView{Found: false, Message: services.NoPastWorkMessage}, nil
	}
	if err != nil {
		return PastWorkView{}, err
	}
	return PastWorkView{Found: true, Entries: pw.Entries()}, nil
}

// Close 关闭程序
func (n *Navigator) Close(ctx context.Context, s *Session) (ScreenView, error) {
	if err := expect(s, ScreenMenu, ActionClose); err != nil {
		return ScreenView{}, err
	}
	s.screen = ScreenClosed
	slog.Info("收到关闭请求", "session", s.ID)
	if n.shutdown != nil {
		n.shutdown()
	}
	return n.View(ctx, s)
}

// OpenForm 打开录入表单，只能在选项页进行
func (n *Navigator) OpenForm(s *Session, name string) (*forms.Form, error) {
	if err := expect(s, ScreenOptions, name); err != nil {
		return nil, err
	}
	return n.forms.Get(name)
}

// View 渲染当前页面
func (n *Navigator) View(ctx context.Context, s *Session) (ScreenView, error) {
	view := ScreenView{SessionID: s.ID, Screen: s.screen}

	switch s.screen {
	case ScreenMenu:
		view.Title = "Menu"
		view.Actions = []string{ActionNewWork, ActionOpenPastWork, ActionClose}
	case ScreenWelcome:
		view.Title = "Welcome: Enter your program name"
		view.Actions = []string{ActionSubmitProgramName}
	case ScreenOptions:
		view.Title = fmt.Sprintf("Welcome %s, choose an option", s.programName)
		view.Actions = []string{ActionSelectGoal, ActionBack}
		view.Forms = n.forms.Names()

		goals, err := forms.GoalOptions(n.plan)(ctx, nil)
		if err != nil {
			return ScreenView{}, err
		}
		view.Goals = goals
		if s.goal.Valid {
			for i := range goals {
				if goals[i].ID == s.goal.ID {
					selected := goals[i]
					view.Goal = &selected
					break
				}
			}
		}
	case ScreenClosed:
		view.Title = "Closed"
		view.Actions = []string{}
	}
	return view, nil
}
