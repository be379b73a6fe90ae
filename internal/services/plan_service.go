package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Peezy0/Accel1/internal/metrics"
	"github.com/Peezy0/Accel1/internal/models"

	"gorm.io/gorm"
)

// CurriculumMirror 新记录的旁路同步（例如课程图谱），失败不影响主流程
type CurriculumMirror interface {
	SyncGoal(ctx context.Context, goal models.Goal) error
	SyncSLO(ctx context.Context, slo models.SLO) error
	SyncAssessmentArea(ctx context.Context, area models.AssessmentArea) error
	SyncProficiency(ctx context.Context, p models.Proficiency) error
	SyncCourse(ctx context.Context, course models.Course) error
}

// PlanService 培养方案数据读写
type PlanService struct {
	DB      *gorm.DB
	Mirror  CurriculumMirror
	Metrics *metrics.Collector
}

// NewPlanService 创建培养方案服务，mirror 与 collector 均可为 nil
func NewPlanService(db *gorm.DB, mirror CurriculumMirror, collector *metrics.Collector) *PlanService {
	return &PlanService{
		DB:      db,
		Mirror:  mirror,
		Metrics: collector,
	}
}

// SplitSegments 按逗号拆分输入，去掉首尾空白并丢弃空段
func SplitSegments(text string) []string {
	parts := strings.Split(text, ",")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		segments = append(segments, p)
	}
	return segments
}

// CreateGoal 新增目标，text 为 nil 时存为 NULL
func (s *PlanService) CreateGoal(ctx context.Context, text *string) (models.Goal, error) {
	goal := models.Goal{GoalText: text}
	if err := s.DB.WithContext(ctx).Create(&goal).Error; err != nil {
		return models.Goal{}, fmt.Errorf("创建目标失败: %w", err)
	}
	slog.Info("录入目标", "goal_id", goal.ID, "goal_text", goal.Text())

	s.Metrics.RecordCreated(metrics.EntityGoal, 1)
	if s.Mirror != nil {
		if err := s.Mirror.SyncGoal(ctx, goal); err != nil {
			slog.Warn("同步目标到图谱失败", "goal_id", goal.ID, "error", err)
		}
	}
	return goal, nil
}

// CreatePlaceholderGoal 新建工作时插入一条空目标，稍后再补充内容
func (s *PlanService) CreatePlaceholderGoal(ctx context.Context) (models.Goal, error) {
	return s.CreateGoal(ctx, nil)
}

// ListGoals 按创建顺序列出所有目标
func (s *PlanService) ListGoals(ctx context.Context) ([]models.Goal, error) {
	goals := []models.Goal{}
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("查询目标失败: %w", err)
	}
	return goals, nil
}

// GetGoal 按 id 获取目标
func (s *PlanService) GetGoal(ctx context.Context, id int) (*models.Goal, error) {
	var goal models.Goal
	if err := s.DB.WithContext(ctx).First(&goal, id).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// LatestGoal 获取最近创建的目标，没有目标时返回 nil
func (s *PlanService) LatestGoal(ctx context.Context) (*models.Goal, error) {
	var goal models.Goal
	err := s.DB.WithContext(ctx).Order("id DESC").Limit(1).Take(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询最近目标失败: %w", err)
	}
	return &goal, nil
}

// CreateProficiencies 逗号分隔批量录入能力，所有行共享同一组父记录。
// 每行独立提交，中途失败时已写入的行保留，并随错误一起返回。
func (s *PlanService) CreateProficiencies(ctx context.Context, goal, area, slo Selection, text string) ([]models.Proficiency, error) {
	slog.Info("录入能力",
		"text", text,
		"goal_id", goal,
		"assessment_area_id", area,
		"slo_id", slo,
	)

	segments := SplitSegments(text)
	stored := make([]models.Proficiency, 0, len(segments))
	for _, seg := range segments {
		p := models.Proficiency{
			ProficiencyText:  seg,
			GoalID:           goal.Ptr(),
			AssessmentAreaID: area.Ptr(),
			SLOID:            slo.Ptr(),
		}
		if err := s.DB.WithContext(ctx).Create(&p).Error; err != nil {
			s.Metrics.RecordCreated(metrics.EntityProficiency, len(stored))
			return stored, fmt.Errorf("创建能力 %q 失败: %w", seg, err)
		}
		stored = append(stored, p)
	}

	s.Metrics.RecordCreated(metrics.EntityProficiency, len(stored))
	if s.Mirror != nil {
		for _, p := range stored {
			if err := s.Mirror.SyncProficiency(ctx, p); err != nil {
				slog.Warn("同步能力到图谱失败", "proficiency_id", p.ID, "error", err)
			}
		}
	}
	return stored, nil
}

// ListProficiencies 列出目标下的能力
func (s *PlanService) ListProficiencies(ctx context.Context, goalID int) ([]models.Proficiency, error) {
	list := []models.Proficiency{}
	if err := s.DB.WithContext(ctx).Where("goal_id = ?", goalID).Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("查询能力失败: %w", err)
	}
	return list, nil
}

// CreateSLOs 逗号分隔批量录入学习成果
func (s *PlanService) CreateSLOs(ctx context.Context, goal Selection, text string) ([]models.SLO, error) {
	slog.Info("录入学习成果", "text", text, "goal_id", goal)

	segments := SplitSegments(text)
	stored := make([]models.SLO, 0, len(segments))
	for _, seg := range segments {
		slo := models.SLO{SLOText: seg, GoalID: goal.Ptr()}
		if err := s.DB.WithContext(ctx).Create(&slo).Error; err != nil {
			s.Metrics.RecordCreated(metrics.EntitySLO, len(stored))
			return stored, fmt.Errorf("创建学习成果 %q 失败: %w", seg, err)
		}
		stored = append(stored, slo)
	}

	s.Metrics.RecordCreated(metrics.EntitySLO, len(stored))
	if s.Mirror != nil {
		for _, slo := range stored {
			if err := s.Mirror.SyncSLO(ctx, slo); err != nil {
				slog.Warn("同步学习成果到图谱失败", "slo_id", slo.ID, "error", err)
			}
		}
	}
	return stored, nil
}

// ListSLOs 列出目标下的学习成果
func (s *PlanService) ListSLOs(ctx context.Context, goalID int) ([]models.SLO, error) {
	list := []models.SLO{}
	if err := s.DB.WithContext(ctx).Where("goal_id = ?", goalID).Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("查询学习成果失败: %w", err)
	}
	return list, nil
}

// SLOTexts 只返回学习成果文本
func (s *PlanService) SLOTexts(ctx context.Context, goalID int) ([]string, error) {
	list, err := s.ListSLOs(ctx, goalID)
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(list))
	for _, slo := range list {
		texts = append(texts, slo.SLOText)
	}
	return texts, nil
}

// CreateAssessmentArea 录入考核领域，名称为空也照常保存
func (s *PlanService) CreateAssessmentArea(ctx context.Context, goal Selection, name string) (models.AssessmentArea, error) {
	slog.Info("录入考核领域", "area_name", name, "goal_id", goal)

	area := models.AssessmentArea{AreaName: name, GoalID: goal.Ptr()}
	if err := s.DB.WithContext(ctx).Create(&area).Error; err != nil {
		return models.AssessmentArea{}, fmt.Errorf("创建考核领域失败: %w", err)
	}

	s.Metrics.RecordCreated(metrics.EntityAssessmentArea, 1)
	if s.Mirror != nil {
		if err := s.Mirror.SyncAssessmentArea(ctx, area); err != nil {
			slog.Warn("同步考核领域到图谱失败", "area_id", area.ID, "error", err)
		}
	}
	return area, nil
}

// ListAssessmentAreas 列出目标下的考核领域
func (s *PlanService) ListAssessmentAreas(ctx context.Context, goalID int) ([]models.AssessmentArea, error) {
	list := []models.AssessmentArea{}
	if err := s.DB.WithContext(ctx).Where("goal_id = ?", goalID).Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("查询考核领域失败: %w", err)
	}
	return list, nil
}

// CreateCourse 录入课程
func (s *PlanService) CreateCourse(ctx context.Context, goal, proficiency Selection, name string) (models.Course, error) {
	slog.Info("录入课程", "course_name", name, "goal_id", goal, "proficiency_id", proficiency)

	course := models.Course{CourseName: name, GoalID: goal.Ptr(), ProficiencyID: proficiency.Ptr()}
	if err := s.DB.WithContext(ctx).Create(&course).Error; err != nil {
		return models.Course{}, fmt.Errorf("创建课程失败: %w", err)
	}

	s.Metrics.RecordCreated(metrics.EntityCourse, 1)
	if s.Mirror != nil {
		if err := s.Mirror.SyncCourse(ctx, course); err != nil {
			slog.Warn("同步课程到图谱失败", "course_id", course.ID, "error", err)
		}
	}
	return course, nil
}

// ListCourses 列出目标下的课程
func (s *PlanService) ListCourses(ctx context.Context, goalID int) ([]models.Course, error) {
	list := []models.Course{}
	if err := s.DB.WithContext(ctx).Where("goal_id = ?", goalID).Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("查询课程失败: %w", err)
	}
	return list, nil
}

// CourseNames 只返回课程名称
func (s *PlanService) CourseNames(ctx context.Context, goalID int) ([]string, error) {
	list, err := s.ListCourses(ctx, goalID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(list))
	for _, c := range list {
		names = append(names, c.CourseName)
	}
	return names, nil
}
