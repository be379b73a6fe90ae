package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNoPastWork 数据库中还没有任何目标
var ErrNoPastWork = errors.New("no past work found")

// NoPastWorkMessage 没有历史记录时展示的提示
const NoPastWorkMessage = "No past work found."

// PastWork 最近一个目标及其下属记录的只读汇总
type PastWork struct {
	GoalID          int    `json:"goal_id"`
	Goal            string `json:"goal"`
	Proficiencies   string `json:"proficiencies"`
	SLOs            string `json:"slos"`
	AssessmentAreas string `json:"assessment_areas"`
	Courses         string `json:"courses"`
}

// PastWorkEntry 汇总中的一行（标签 + 值）
type PastWorkEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Entries 按固定顺序返回展示行
func (p *PastWork) Entries() []PastWorkEntry {
	return []PastWorkEntry{
		{Key: "Goal", Value: p.Goal},
		{Key: "Proficiencies", Value: p.Proficiencies},
		{Key: "SLOs", Value: p.SLOs},
		{Key: "Assessment Areas", Value: p.AssessmentAreas},
		{Key: "Courses", Value: p.Courses},
	}
}

// Lines 返回 "Key: value" 形式的文本行
func (p *PastWork) Lines() []string {
	entries := p.Entries()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Key+": "+e.Value)
	}
	return lines
}

// PastWork 读取最近创建的目标并汇总其下所有记录，各列表以 ", " 连接。
// 没有任何目标时返回 ErrNoPastWork。
func (s *PlanService) PastWork(ctx context.Context) (*PastWork, error) {
	goal, err := s.LatestGoal(ctx)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, ErrNoPastWork
	}

	proficiencies, err := s.ListProficiencies(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("汇总能力失败: %w", err)
	}
	profTexts := make([]string, 0, len(proficiencies))
	for _, p := range proficiencies {
		profTexts = append(profTexts, p.ProficiencyText)
	}

	slos, err := s.SLOTexts(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("汇总学习成果失败: %w", err)
	}

	areas, err := s.ListAssessmentAreas(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("汇总考核领域失败: %w", err)
	}
	areaNames := make([]string, 0, len(areas))
	for _, a := range areas {
		areaNames = append(areaNames, a.AreaName)
	}

	courses, err := s.CourseNames(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("汇总课程失败: %w", err)
	}

	return &PastWork{
		GoalID:          goal.ID,
		Goal:            goal.Text(),
		Proficiencies:   strings.Join(profTexts, ", "),
		SLOs:            strings.Join(slos, ", "),
		AssessmentAreas: strings.Join(areaNames, ", "),
		Courses:         strings.Join(courses, ", "),
	}, nil
}
