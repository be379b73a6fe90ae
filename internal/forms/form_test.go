package forms

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Peezy0/Accel1/internal/config"
	"github.com/Peezy0/Accel1/internal/models"
	"github.com/Peezy0/Accel1/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlan(t *testing.T) *services.PlanService {
	t.Helper()
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Type:   "sqlite",
			SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "plan.db")},
		},
	}
	db, err := models.OpenDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = models.CloseDB(db) })
	require.NoError(t, models.ResetSchema(db, true))
	return services.NewPlanService(db, nil, nil)
}

func staticLoader(opts ...Option) OptionsLoader {
	return func(context.Context, Selections) ([]Option, error) { return opts, nil }
}

func TestParseOption(t *testing.T) {
	tests := []struct {
		in     string
		want   Option
		wantOK bool
	}{
		{"3: Communicate", Option{ID: 3, Label: "Communicate"}, true},
		{"12: ratio: 1:2", Option{ID: 12, Label: "ratio: 1:2"}, true},
		{"7:", Option{ID: 7, Label: ""}, true},
		{"no colon", Option{}, false},
		{"x: label", Option{}, false},
		{"", Option{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseOption(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "3: Communicate", Option{ID: 3, Label: "Communicate"}.String())
}

func TestForm_RenderDependencies(t *testing.T) {
	var childCalls int
	f := New(Spec{
		Name: "demo",
		Dropdowns: []Dropdown{
			{Name: "parent", Load: staticLoader(Option{ID: 1, Label: "one"}, Option{ID: 2, Label: "two"})},
			{Name: "child", DependsOn: []string{"parent"}, Load: func(_ context.Context, sel Selections) ([]Option, error) {
				childCalls++
				return []Option{{ID: 10 * sel.Get("parent").ID, Label: "c"}}, nil
			}},
		},
		Field: Field{Name: "text", Label: "Text", MultiValue: true},
	})

	view, err := f.Render(context.Background(), nil)
	require.NoError(t, err)
	parent, _ := view.Dropdown("parent")
	child, _ := view.Dropdown("child")
	assert.Len(t, parent.Options, 2)
	assert.Nil(t, parent.Selected)
	assert.Empty(t, child.Options)
	assert.Equal(t, 0, childCalls)
	assert.True(t, view.Field.MultiValue)

	view, err = f.Render(context.Background(), Selections{"parent": services.Select(2), "child": services.Select(20)})
	require.NoError(t, err)
	child, _ = view.Dropdown("child")
	require.NotNil(t, child.Selected)
	assert.Equal(t, 20, child.Selected.ID)
	assert.Equal(t, Selections{"parent": services.Select(2), "child": services.Select(20)}, view.Selections)
}

func TestForm_RenderDropsUnknownSelection(t *testing.T) {
	f := New(Spec{
		Name:      "demo",
		Dropdowns: []Dropdown{{Name: "parent", Load: staticLoader(Option{ID: 1, Label: "one"})}},
	})

	view, err := f.Render(context.Background(), Selections{"parent": services.Select(99)})
	require.NoError(t, err)
	parent, ok := view.Dropdown("parent")
	require.True(t, ok)
	assert.Nil(t, parent.Selected)
	assert.Empty(t, view.Selections)
}

func TestForm_RenderLoaderError(t *testing.T) {
	f := New(Spec{
		Name: "demo",
		Dropdowns: []Dropdown{{Name: "parent", Load: func(context.Context, Selections) ([]Option, error) {
			return nil, errors.New("db closed")
		}}},
	})
	_, err := f.Render(context.Background(), nil)
	assert.ErrorContains(t, err, "db closed")
}

func TestForm_RefreshClearsTransitiveDependents(t *testing.T) {
	f := New(Spec{
		Name: "demo",
		Dropdowns: []Dropdown{
			{Name: "a", Load: staticLoader(Option{ID: 1}, Option{ID: 2})},
			{Name: "b", DependsOn: []string{"a"}, Load: staticLoader(Option{ID: 3})},
			{Name: "c", DependsOn: []string{"b"}, Load: staticLoader(Option{ID: 4})},
			{Name: "d", Load: staticLoader(Option{ID: 5})},
		},
	})

	sel := Selections{
		"a": services.Select(2),
		"b": services.Select(3),
		"c": services.Select(4),
		"d": services.Select(5),
	}
	view, err := f.Refresh(context.Background(), sel, "a")
	require.NoError(t, err)
	assert.Equal(t, Selections{"a": services.Select(2), "d": services.Select(5)}, view.Selections)

	// 原选择不被修改
	assert.Len(t, sel, 4)
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry(newTestPlan(t))
	assert.Equal(t, []string{FormGoal, FormSLO, FormAssessmentArea, FormProficiency, FormCourse}, r.Names())

	_, err := r.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownForm)
}

func TestGoalForm_SubmitRefreshesGoalOptions(t *testing.T) {
	plan := newTestPlan(t)
	r := NewRegistry(plan)
	ctx := context.Background()

	goalForm, err := r.Get(FormGoal)
	require.NoError(t, err)
	res, err := goalForm.Submit(ctx, nil, "Think critically")
	require.NoError(t, err)
	assert.Equal(t, "Goal: Think critically", res.Receipt.Message)
	assert.Equal(t, "", res.View.Field.Value)

	sloForm, err := r.Get(FormSLO)
	require.NoError(t, err)
	view, err := sloForm.Render(ctx, nil)
	require.NoError(t, err)
	goals, _ := view.Dropdown(DropdownGoal)
	require.Len(t, goals.Options, 1)
	assert.Equal(t, "Think critically", goals.Options[0].Label)
}

func TestProficiencyForm_EndToEnd(t *testing.T) {
	plan := newTestPlan(t)
	r := NewRegistry(plan)
	ctx := context.Background()

	g1Text, g2Text := "g1", "g2"
	g1, err := plan.CreateGoal(ctx, &g1Text)
	require.NoError(t, err)
	g2, err := plan.CreateGoal(ctx, &g2Text)
	require.NoError(t, err)
	area, err := plan.CreateAssessmentArea(ctx, services.Select(g1.ID), "exams")
	require.NoError(t, err)
	_, err = plan.CreateAssessmentArea(ctx, services.Select(g2.ID), "other")
	require.NoError(t, err)
	slos, err := plan.CreateSLOs(ctx, services.Select(g1.ID), "solve, explain")
	require.NoError(t, err)

	form, err := r.Get(FormProficiency)
	require.NoError(t, err)

	view, err := form.Render(ctx, Selections{DropdownGoal: services.Select(g1.ID)})
	require.NoError(t, err)
	areas, _ := view.Dropdown(DropdownAssessmentArea)
	assert.Equal(t, []Option{{ID: area.ID, Label: "exams"}}, areas.Options)
	sloDD, _ := view.Dropdown(DropdownSLO)
	assert.Len(t, sloDD.Options, 2)

	sel := Selections{
		DropdownGoal:           services.Select(g1.ID),
		DropdownAssessmentArea: services.Select(area.ID),
		DropdownSLO:            services.Select(slos[1].ID),
	}
	res, err := form.Submit(ctx, sel, "proofs, estimation,")
	require.NoError(t, err)
	assert.Equal(t, []string{"proofs", "estimation"}, res.Receipt.Stored)
	assert.Equal(t, "Proficiencies: proofs, estimation,", res.Receipt.Message)
	assert.Equal(t, res.Receipt.Message, res.View.Message)

	// 切换目标后依赖的下拉框清空
	sel[DropdownGoal] = services.Select(g2.ID)
	view, err = form.Refresh(ctx, sel, DropdownGoal)
	require.NoError(t, err)
	areas, _ = view.Dropdown(DropdownAssessmentArea)
	assert.Nil(t, areas.Selected)
	require.Len(t, areas.Options, 1)
	assert.Equal(t, "other", areas.Options[0].Label)

	courseForm, err := r.Get(FormCourse)
	require.NoError(t, err)
	view, err = courseForm.Render(ctx, Selections{DropdownGoal: services.Select(g1.ID)})
	require.NoError(t, err)
	profDD, _ := view.Dropdown(DropdownProficiency)
	require.Len(t, profDD.Options, 2)

	res, err = courseForm.Submit(ctx, Selections{
		DropdownGoal:        services.Select(g1.ID),
		DropdownProficiency: services.Select(profDD.Options[0].ID),
	}, "MATH250")
	require.NoError(t, err)
	assert.Equal(t, "Course Name: MATH250", res.Receipt.Message)

	names, err := plan.CourseNames(ctx, g1.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"MATH250"}, names)
}

func TestForm_SubmitIgnoresUnknownParents(t *testing.T) {
	plan := newTestPlan(t)
	r := NewRegistry(plan)
	ctx := context.Background()

	sloForm, err := r.Get(FormSLO)
	require.NoError(t, err)
	res, err := sloForm.Submit(ctx, Selections{DropdownGoal: services.Select(999)}, "orphan")
	require.NoError(t, err)
	assert.Equal(t, []string{"orphan"}, res.Receipt.Stored)
	assert.Empty(t, res.View.Selections)

	under999, err := plan.ListSLOs(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, under999)
	var slos []models.SLO
	require.NoError(t, plan.DB.Find(&slos).Error)
	require.Len(t, slos, 1)
	assert.Nil(t, slos[0].GoalID)

	// 其他目标下的考核领域和学习成果不能挂到当前目标的能力上
	g1Text, g2Text := "g1", "g2"
	g1, err := plan.CreateGoal(ctx, &g1Text)
	require.NoError(t, err)
	g2, err := plan.CreateGoal(ctx, &g2Text)
	require.NoError(t, err)
	foreignArea, err := plan.CreateAssessmentArea(ctx, services.Select(g2.ID), "elsewhere")
	require.NoError(t, err)
	foreignSLOs, err := plan.CreateSLOs(ctx, services.Select(g2.ID), "foreign")
	require.NoError(t, err)

	profForm, err := r.Get(FormProficiency)
	require.NoError(t, err)
	_, err = profForm.Submit(ctx, Selections{
		DropdownGoal:           services.Select(g1.ID),
		DropdownAssessmentArea: services.Select(foreignArea.ID),
		DropdownSLO:            services.Select(foreignSLOs[0].ID),
	}, "mismatch")
	require.NoError(t, err)

	profs, err := plan.ListProficiencies(ctx, g1.ID)
	require.NoError(t, err)
	require.Len(t, profs, 1)
	assert.Nil(t, profs[0].AssessmentAreaID)
	assert.Nil(t, profs[0].SLOID)
}

func TestAssessmentAreaForm_WithoutGoal(t *testing.T) {
	plan := newTestPlan(t)
	r := NewRegistry(plan)
	ctx := context.Background()

	form, err := r.Get(FormAssessmentArea)
	require.NoError(t, err)
	res, err := form.Submit(ctx, nil, "")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, res.Receipt.Stored)
	assert.Equal(t, "Assessment Area Name: ", res.Receipt.Message)
}

func TestFromIDs(t *testing.T) {
	one := 1
	sel := FromIDs(map[string]*int{DropdownGoal: &one, DropdownSLO: nil})
	assert.Equal(t, Selections{DropdownGoal: services.Select(1)}, sel)
}
