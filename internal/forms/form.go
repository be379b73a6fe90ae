package forms

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownForm 请求的表单不存在
var ErrUnknownForm = errors.New("unknown form")

// OptionsLoader 根据当前选择加载下拉框选项
type OptionsLoader func(ctx context.Context, sel Selections) ([]Option, error)

// Dropdown 父记录下拉框定义
type Dropdown struct {
	Name      string
	Label     string
	DependsOn []string // 这些下拉框都选择后才加载选项
	Load      OptionsLoader
}

// Field 文本输入框定义
type Field struct {
	Name       string
	Label      string
	MultiValue bool // 逗号分隔的多值输入
}

// Receipt 提交结果
type Receipt struct {
	Stored  []string `json:"stored"`
	Message string   `json:"message"`
}

// SubmitFunc 提交处理函数，收到原始输入文本和当前选择
type SubmitFunc func(ctx context.Context, sel Selections, text string) (Receipt, error)

// Spec 表单描述
type Spec struct {
	Name      string
	Title     string
	Dropdowns []Dropdown
	Field     Field
	Submit    SubmitFunc
}

// DropdownView 渲染后的下拉框
type DropdownView struct {
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	DependsOn []string `json:"depends_on,omitempty"`
	Options   []Option `json:"options"`
	Selected  *Option  `json:"selected"`
}

// FieldView 渲染后的输入框
type FieldView struct {
	Name       string `json:"name"`
	Label      string `json:"label"`
	MultiValue bool   `json:"multi_value"`
	Value      string `json:"value"`
}

// View 表单渲染结果
type View struct {
	Name       string         `json:"name"`
	Title      string         `json:"title"`
	Dropdowns  []DropdownView `json:"dropdowns"`
	Field      FieldView      `json:"field"`
	Message    string         `json:"message"`
	Selections Selections     `json:"selections"`
}

// Dropdown 按名称查找渲染后的下拉框
func (v View) Dropdown(name string) (DropdownView, bool) {
	for _, d := range v.Dropdowns {
		if d.Name == name {
			return d, true
		}
	}
	return DropdownView{}, false
}

// Result 提交后的回执与清空输入后的表单
type Result struct {
	Receipt Receipt `json:"receipt"`
	View    View    `json:"view"`
}

// Form 由 Spec 构建的表单
type Form struct {
	spec Spec
}

// New 根据描述构建表单
func New(spec Spec) *Form {
	return &Form{spec: spec}
}

// Name 表单名称
func (f *Form) Name() string {
	return f.spec.Name
}

// Title 表单标题
func (f *Form) Title() string {
	return f.spec.Title
}

// Render 按当前选择渲染表单。
// 下拉框按定义顺序加载，依赖未满足的下拉框没有选项；
// 不在选项列表中的选择会被丢弃。
func (f *Form) Render(ctx context.Context, sel Selections) (View, error) {
	effective := Selections{}
	view := View{
		Name:  f.spec.Name,
		Title: f.spec.Title,
		Field: FieldView{
			Name:       f.spec.Field.Name,
			Label:      f.spec.Field.Label,
			MultiValue: f.spec.Field.MultiValue,
		},
		Dropdowns: make([]DropdownView, 0, len(f.spec.Dropdowns)),
	}

	for _, d := range f.spec.Dropdowns {
		dv := DropdownView{
			Name:      d.Name,
			Label:     d.Label,
			DependsOn: d.DependsOn,
			Options:   []Option{},
		}

		if dependenciesMet(d, effective) {
			opts, err := d.Load(ctx, effective)
			if err != nil {
				return View{}, fmt.Errorf("加载 %s 选项失败: %w", d.Name, err)
			}
			dv.Options = opts

			if want := sel.Get(d.Name); want.Valid {
				for i := range opts {
					if opts[i].ID == want.ID {
						selected := opts[i]
						dv.Selected = &selected
						effective[d.Name] = want
						break
					}
				}
			}
		}
		view.Dropdowns = append(view.Dropdowns, dv)
	}

	view.Selections = effective
	return view, nil
}

// Refresh 某个父下拉框变化后重新渲染，依赖它的下拉框（含间接依赖）清空选择
func (f *Form) Refresh(ctx context.Context, sel Selections, changed string) (View, error) {
	next := sel.Clone()
	for _, name := range f.dependents(changed) {
		delete(next, name)
	}
	return f.Render(ctx, next)
}

// Submit 提交输入，返回回执和清空输入后的表单。
// 只有出现在下拉框选项中的选择才会写库，其余按未选择处理（存为 NULL）。
func (f *Form) Submit(ctx context.Context, sel Selections, text string) (Result, error) {
	checked, err := f.Render(ctx, sel)
	if err != nil {
		return Result{}, err
	}

	receipt, err := f.spec.Submit(ctx, checked.Selections, text)
	if err != nil {
		return Result{}, err
	}

	view, err := f.Render(ctx, checked.Selections)
	if err != nil {
		return Result{}, err
	}
	view.Message = receipt.Message
	return Result{Receipt: receipt, View: view}, nil
}

// dependents 返回直接或间接依赖 name 的下拉框
func (f *Form) dependents(name string) []string {
	seen := map[string]bool{name: true}
	var out []string
	changed := true
	for changed {
		changed = false
		for _, d := range f.spec.Dropdowns {
			if seen[d.Name] {
				continue
			}
			for _, dep := range d.DependsOn {
				if seen[dep] {
					seen[d.Name] = true
					out = append(out, d.Name)
					changed = true
					break
				}
			}
		}
	}
	return out
}

func dependenciesMet(d Dropdown, sel Selections) bool {
	for _, dep := range d.DependsOn {
		if !sel.Has(dep) {
			return false
		}
	}
	return true
}
