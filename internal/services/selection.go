package services

import "log/slog"

// Selection 下拉框中选中的父记录
// Valid 为 false 表示用户尚未选择，写库时存为 NULL
type Selection struct {
	ID    int  `json:"id"`
	Valid bool `json:"valid"`
}

// Select 构造一个已选择的父记录
func Select(id int) Selection {
	return Selection{ID: id, Valid: true}
}

// None 未选择
var None = Selection{}

// SelectPtr 由可空 id 构造选择，nil 表示未选择
func SelectPtr(id *int) Selection {
	if id == nil {
		return None
	}
	return Select(*id)
}

// Ptr 转成可空外键
func (s Selection) Ptr() *int {
	if !s.Valid {
		return nil
	}
	id := s.ID
	return &id
}

// LogValue 日志中输出 id，未选择时输出 none
func (s Selection) LogValue() slog.Value {
	if !s.Valid {
		return slog.StringValue("none")
	}
	return slog.IntValue(s.ID)
}
