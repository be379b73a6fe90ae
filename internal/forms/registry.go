package forms

import (
	"context"
	"fmt"

	"github.com/Peezy0/Accel1/internal/services"
)

// 表单与下拉框名称
const (
	FormGoal           = "goal"
	FormSLO            = "slo"
	FormAssessmentArea = "assessment_area"
	FormProficiency    = "proficiency"
	FormCourse         = "course"

	DropdownGoal           = "goal"
	DropdownAssessmentArea = "assessment_area"
	DropdownSLO            = "slo"
	DropdownProficiency    = "proficiency"
)

// Registry 所有录入表单
type Registry struct {
	forms map[string]*Form
	order []string
}

// NewRegistry 基于培养方案服务注册五个录入表单
func NewRegistry(plan *services.PlanService) *Registry {
	r := &Registry{forms: map[string]*Form{}}
	for _, spec := range Specs(plan) {
		r.Register(New(spec))
	}
	return r
}

// Register 注册表单，同名表单会被覆盖
func (r *Registry) Register(f *Form) {
	if _, ok := r.forms[f.Name()]; !ok {
		r.order = append(r.order, f.Name())
	}
	r.forms[f.Name()] = f
}

// Get 按名称获取表单
func (r *Registry) Get(name string) (*Form, error) {
	f, ok := r.forms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownForm, name)
	}
	return f, nil
}

// Names 按注册顺序返回表单名称
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Specs 返回五个实体表单的描述
func Specs(plan *services.PlanService) []Spec {
	goalDropdown := Dropdown{
		Name:  DropdownGoal,
		Label: "Select Goal:",
		Load:  GoalOptions(plan),
	}

	return []Spec{
		{
			Name:  FormGoal,
			Title: "Goal Window",
			Field: Field{Name: "goal_text", Label: "Enter your goal:"},
			Submit: func(ctx context.Context, _ Selections, text string) (Receipt, error) {
				goal, err := plan.CreateGoal(ctx, &text)
				if err != nil {
					return Receipt{}, err
				}
				return Receipt{
					Stored:  []string{goal.Text()},
					Message: "Goal: " + text,
				}, nil
			},
		},
		{
			Name:      FormSLO,
			Title:     "Input SLO Window",
			Dropdowns: []Dropdown{goalDropdown},
			Field: Field{
				Name:       "slo_text",
				Label:      "Enter Student Learning Outcomes (separated by commas):",
				MultiValue: true,
			},
			Submit: func(ctx context.Context, sel Selections, text string) (Receipt, error) {
				slos, err := plan.CreateSLOs(ctx, sel.Get(DropdownGoal), text)
				stored := make([]string, 0, len(slos))
				for _, slo := range slos {
					stored = append(stored, slo.SLOText)
				}
				if err != nil {
					return Receipt{Stored: stored}, err
				}
				return Receipt{
					Stored:  stored,
					Message: "Student Learning Outcomes: " + text,
				}, nil
			},
		},
		{
			Name:      FormAssessmentArea,
			Title:     "Assessment Area Window",
			Dropdowns: []Dropdown{goalDropdown},
			Field:     Field{Name: "area_name", Label: "Enter Assessment Area Name:"},
			Submit: func(ctx context.Context, sel Selections, text string) (Receipt, error) {
				area, err := plan.CreateAssessmentArea(ctx, sel.Get(DropdownGoal), text)
				if err != nil {
					return Receipt{}, err
				}
				return Receipt{
					Stored:  []string{area.AreaName},
					Message: "Assessment Area Name: " + text,
				}, nil
			},
		},
		{
			Name:  FormProficiency,
			Title: "Proficiencies Window",
			Dropdowns: []Dropdown{
				goalDropdown,
				{
					Name:      DropdownAssessmentArea,
					Label:     "Select Assessment Area:",
					DependsOn: []string{DropdownGoal},
					Load:      AssessmentAreaOptions(plan),
				},
				{
					Name:      DropdownSLO,
					Label:     "Select SLO:",
					DependsOn: []string{DropdownGoal},
					Load:      SLOOptions(plan),
				},
			},
			Field: Field{
				Name:       "proficiency_text",
				Label:      "Enter Proficiencies (separated by commas):",
				MultiValue: true,
			},
			Submit: func(ctx context.Context, sel Selections, text string) (Receipt, error) {
				profs, err := plan.CreateProficiencies(ctx,
					sel.Get(DropdownGoal),
					sel.Get(DropdownAssessmentArea),
					sel.Get(DropdownSLO),
					text,
				)
				stored := make([]string, 0, len(profs))
				for _, p := range profs {
					stored = append(stored, p.ProficiencyText)
				}
				if err != nil {
					return Receipt{Stored: stored}, err
				}
				return Receipt{
					Stored:  stored,
					Message: "Proficiencies: " + text,
				}, nil
			},
		},
		{
			Name:  FormCourse,
			Title: "Course Window",
			Dropdowns: []Dropdown{
				goalDropdown,
				{
					Name:      DropdownProficiency,
					Label:     "Select Proficiency:",
					DependsOn: []string{DropdownGoal},
					Load:      ProficiencyOptions(plan),
				},
			},
			Field: Field{Name: "course_name", Label: "Enter Course Name:"},
			Submit: func(ctx context.Context, sel Selections, text string) (Receipt, error) {
				course, err := plan.CreateCourse(ctx, sel.Get(DropdownGoal), sel.Get(DropdownProficiency), text)
				if err != nil {
					return Receipt{}, err
				}
				return Receipt{
					Stored:  []string{course.CourseName},
					Message: "Course Name: " + text,
				}, nil
			},
		},
	}
}

// GoalOptions 所有目标
func GoalOptions(plan *services.PlanService) OptionsLoader {
	return func(ctx context.Context, _ Selections) ([]Option, error) {
		goals, err := plan.ListGoals(ctx)
		if err != nil {
			return nil, err
		}
		opts := make([]Option, 0, len(goals))
		for _, g := range goals {
			opts = append(opts, Option{ID: g.ID, Label: g.Text()})
		}
		return opts, nil
	}
}

// AssessmentAreaOptions 当前目标下的考核领域
func AssessmentAreaOptions(plan *services.PlanService) OptionsLoader {
	return func(ctx context.Context, sel Selections) ([]Option, error) {
		areas, err := plan.ListAssessmentAreas(ctx, sel.Get(DropdownGoal).ID)
		if err != nil {
			return nil, err
		}
		opts := make([]Option, 0, len(areas))
		for _, a := range areas {
			opts = append(opts, Option{ID: a.ID, Label: a.AreaName})
		}
		return opts, nil
	}
}

// SLOOptions 当前目标下的学习成果
func SLOOptions(plan *services.PlanService) OptionsLoader {
	return func(ctx context.Context, sel Selections) ([]Option, error) {
		slos, err := plan.ListSLOs(ctx, sel.Get(DropdownGoal).ID)
		if err != nil {
			return nil, err
		}
		opts := make([]Option, 0, len(slos))
		for _, s := range slos {
			opts = append(opts, Option{ID: s.ID, Label: s.SLOText})
		}
		return opts, nil
	}
}

// ProficiencyOptions 当前目标下的能力
func ProficiencyOptions(plan *services.PlanService) OptionsLoader {
	return func(ctx context.Context, sel Selections) ([]Option, error) {
		profs, err := plan.ListProficiencies(ctx, sel.Get(DropdownGoal).ID)
		if err != nil {
			return nil, err
		}
		opts := make([]Option, 0, len(profs))
		for _, p := range profs {
			opts = append(opts, Option{ID: p.ID, Label: p.ProficiencyText})
		}
		return opts, nil
	}
}
