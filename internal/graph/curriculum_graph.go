package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/Peezy0/Accel1/internal/models"
)

// 节点标签
const (
	LabelGoal           = "Goal"
	LabelSLO            = "SLO"
	LabelAssessmentArea = "AssessmentArea"
	LabelProficiency    = "Proficiency"
	LabelCourse         = "Course"
)

// 关系类型
const (
	RelHasSLO            = "HAS_SLO"
	RelHasAssessmentArea = "HAS_ASSESSMENT_AREA"
	RelHasProficiency    = "HAS_PROFICIENCY"
	RelAssesses          = "ASSESSES"
	RelMeasuredBy        = "MEASURED_BY"
	RelHasCourse         = "HAS_COURSE"
	RelTaughtIn          = "TAUGHT_IN"
)

// Statement 一条 Cypher 语句及其参数
type Statement struct {
	Query  string
	Params map[string]any
}

// Runner 执行写语句，Neo4jClient 实现了该接口
type Runner interface {
	RunWrite(ctx context.Context, stmt Statement) error
}

// CurriculumGraphService 把目标及其下属记录同步为课程图谱
type CurriculumGraphService struct {
	runner Runner
}

// NewCurriculumGraphService 创建课程图谱服务
func NewCurriculumGraphService(runner Runner) *CurriculumGraphService {
	return &CurriculumGraphService{runner: runner}
}

// parentLink 父节点到当前节点的关系，parent 在当前节点之前合并
type parentLink struct {
	label string
	id    *int
	rel   string
	// reverse 为 true 时关系方向为 当前节点 -> 父节点
	reverse bool
}

// nodeStatement 合并节点并连接所有已知父节点，父节点不存在时先建占位节点
func nodeStatement(label string, id int, text string, links ...parentLink) Statement {
	var b strings.Builder
	params := map[string]any{
		"id":   id,
		"text": text,
	}

	fmt.Fprintf(&b, "MERGE (n:%s {id: $id})\nSET n.text = $text\n", label)
	for i, l := range links {
		if l.id == nil {
			continue
		}
		key := fmt.Sprintf("p%d", i)
		params[key] = *l.id
		fmt.Fprintf(&b, "MERGE (%s:%s {id: $%s})\n", key, l.label, key)
		if l.reverse {
			fmt.Fprintf(&b, "MERGE (n)-[:%s]->(%s)\n", l.rel, key)
		} else {
			fmt.Fprintf(&b, "MERGE (%s)-[:%s]->(n)\n", key, l.rel)
		}
	}
	return Statement{Query: b.String(), Params: params}
}

// GoalStatement 目标节点
func GoalStatement(goal models.Goal) Statement {
	return nodeStatement(LabelGoal, goal.ID, goal.Text())
}

// SLOStatement 学习成果节点，挂在目标下
func SLOStatement(slo models.SLO) Statement {
	return nodeStatement(LabelSLO, slo.ID, slo.SLOText,
		parentLink{label: LabelGoal, id: slo.GoalID, rel: RelHasSLO},
	)
}

// AssessmentAreaStatement 考核领域节点，挂在目标下
func AssessmentAreaStatement(area models.AssessmentArea) Statement {
	return nodeStatement(LabelAssessmentArea, area.ID, area.AreaName,
		parentLink{label: LabelGoal, id: area.GoalID, rel: RelHasAssessmentArea},
	)
}

// ProficiencyStatement 能力节点，连接目标、考核领域和学习成果
func ProficiencyStatement(p models.Proficiency) Statement {
	return nodeStatement(LabelProficiency, p.ID, p.ProficiencyText,
		parentLink{label: LabelGoal, id: p.GoalID, rel: RelHasProficiency},
		parentLink{label: LabelAssessmentArea, id: p.AssessmentAreaID, rel: RelAssesses},
		parentLink{label: LabelSLO, id: p.SLOID, rel: RelMeasuredBy, reverse: true},
	)
}

// CourseStatement 课程节点，连接目标和能力
func CourseStatement(course models.Course) Statement {
	return nodeStatement(LabelCourse, course.ID, course.CourseName,
		parentLink{label: LabelGoal, id: course.GoalID, rel: RelHasCourse},
		parentLink{label: LabelProficiency, id: course.ProficiencyID, rel: RelTaughtIn},
	)
}

// SyncGoal 同步目标
func (s *CurriculumGraphService) SyncGoal(ctx context.Context, goal models.Goal) error {
	return s.runner.RunWrite(ctx, GoalStatement(goal))
}

// SyncSLO 同步学习成果
func (s *CurriculumGraphService) SyncSLO(ctx context.Context, slo models.SLO) error {
	return s.runner.RunWrite(ctx, SLOStatement(slo))
}

// SyncAssessmentArea 同步考核领域
func (s *CurriculumGraphService) SyncAssessmentArea(ctx context.Context, area models.AssessmentArea) error {
	return s.runner.RunWrite(ctx, AssessmentAreaStatement(area))
}

// SyncProficiency 同步能力
func (s *CurriculumGraphService) SyncProficiency(ctx context.Context, p models.Proficiency) error {
	return s.runner.RunWrite(ctx, ProficiencyStatement(p))
}

// SyncCourse 同步课程
func (s *CurriculumGraphService) SyncCourse(ctx context.Context, course models.Course) error {
	return s.runner.RunWrite(ctx, CourseStatement(course))
}
