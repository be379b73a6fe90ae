package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Peezy0/Accel1/internal/services"
)

// Option 下拉框选项，id 与展示文本分开保存
type Option struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// String 展示用的 "id: 文本" 形式
func (o Option) String() string {
	return fmt.Sprintf("%d: %s", o.ID, o.Label)
}

// Selection 转成写库用的父记录选择
func (o Option) Selection() services.Selection {
	return services.Select(o.ID)
}

// ParseOption 解析 "id: 文本" 形式的展示字符串，只按第一个冒号拆分
func ParseOption(s string) (Option, bool) {
	idPart, label, found := strings.Cut(s, ":")
	if !found {
		return Option{}, false
	}
	id, err := strconv.Atoi(strings.TrimSpace(idPart))
	if err != nil {
		return Option{}, false
	}
	return Option{ID: id, Label: strings.TrimPrefix(label, " ")}, true
}

// Selections 表单中各下拉框的当前选择，键为下拉框名称
type Selections map[string]services.Selection

// Get 读取某个下拉框的选择，未选择时返回 services.None
func (s Selections) Get(name string) services.Selection {
	if s == nil {
		return services.None
	}
	return s[name]
}

// Has 判断某个下拉框是否已选择
func (s Selections) Has(name string) bool {
	return s.Get(name).Valid
}

// Clone 复制一份选择
func (s Selections) Clone() Selections {
	out := make(Selections, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// FromIDs 由可空 id 构造选择，nil 的项不会写入
func FromIDs(ids map[string]*int) Selections {
	sel := Selections{}
	for name, id := range ids {
		if id != nil {
			sel[name] = services.Select(*id)
		}
	}
	return sel
}
