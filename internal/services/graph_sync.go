package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrMirrorDisabled 未配置课程图谱
var ErrMirrorDisabled = errors.New("curriculum graph is not enabled")

// SyncReport 重新同步的记录数
type SyncReport struct {
	GoalID          int `json:"goal_id"`
	SLOs            int `json:"slos"`
	AssessmentAreas int `json:"assessment_areas"`
	Proficiencies   int `json:"proficiencies"`
	Courses         int `json:"courses"`
}

// ResyncGoal 把一个目标及其下属记录重新写入课程图谱。
// 父节点先于子节点写入，遇到第一个错误即停止。
func (s *PlanService) ResyncGoal(ctx context.Context, goalID int) (SyncReport, error) {
	if s.Mirror == nil {
		return SyncReport{}, ErrMirrorDisabled
	}
	goal, err := s.GetGoal(ctx, goalID)
	if err != nil {
		return SyncReport{}, err
	}
	report := SyncReport{GoalID: goal.ID}
	if err := s.Mirror.SyncGoal(ctx, *goal); err != nil {
		return report, fmt.Errorf("同步目标失败: %w", err)
	}

	slos, err := s.ListSLOs(ctx, goalID)
	if err != nil {
		return report, err
	}
	for _, slo := range slos {
		if err := s.Mirror.SyncSLO(ctx, slo); err != nil {
			return report, fmt.Errorf("同步学习成果 %d 失败: %w", slo.ID, err)
		}
		report.SLOs++
	}

	areas, err := s.ListAssessmentAreas(ctx, goalID)
	if err != nil {
		return report, err
	}
	for _, area := range areas {
		if err := s.Mirror.SyncAssessmentArea(ctx, area); err != nil {
			return report, fmt.Errorf("同步考核领域 %d 失败: %w", area.ID, err)
		}
		report.AssessmentAreas++
	}

	profs, err := s.ListProficiencies(ctx, goalID)
	if err != nil {
		return report, err
	}
	for _, p := range profs {
		if err := s.Mirror.SyncProficiency(ctx, p); err != nil {
			return report, fmt.Errorf("同步能力 %d 失败: %w", p.ID, err)
		}
		report.Proficiencies++
	}

	courses, err := s.ListCourses(ctx, goalID)
	if err != nil {
		return report, err
	}
	for _, course := range courses {
		if err := s.Mirror.SyncCourse(ctx, course); err != nil {
			return report, fmt.Errorf("同步课程 %d 失败: %w", course.ID, err)
		}
		report.Courses++
	}

	slog.Info("课程图谱重新同步完成", "goal_id", goalID,
		"slos", report.SLOs, "areas", report.AssessmentAreas,
		"proficiencies", report.Proficiencies, "courses", report.Courses)
	return report, nil
}
