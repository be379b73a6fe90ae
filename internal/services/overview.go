package services

import (
	"context"
	"fmt"

	"github.com/Peezy0/Accel1/internal/models"
)

// Overview 各表的记录数
type Overview struct {
	Goals           int64 `json:"goals"`
	SLOs            int64 `json:"slos"`
	AssessmentAreas int64 `json:"assessment_areas"`
	Proficiencies   int64 `json:"proficiencies"`
	Courses         int64 `json:"courses"`
}

// Overview 统计五张表的记录数
func (s *PlanService) Overview(ctx context.Context) (Overview, error) {
	var ov Overview
	counts := []struct {
		model any
		dst   *int64
		name  string
	}{
		{&models.Goal{}, &ov.Goals, "目标"},
		{&models.SLO{}, &ov.SLOs, "学习成果"},
		{&models.AssessmentArea{}, &ov.AssessmentAreas, "考核领域"},
		{&models.Proficiency{}, &ov.Proficiencies, "能力"},
		{&models.Course{}, &ov.Courses, "课程"},
	}
	for _, c := range counts {
		if err := s.DB.WithContext(ctx).Model(c.model).Count(c.dst).Error; err != nil {
			return Overview{}, fmt.Errorf("统计%s失败: %w", c.name, err)
		}
	}
	return ov, nil
}
