package models

// Goal 培养目标，其余记录都挂在目标下
type Goal struct {
	ID int `gorm:"primaryKey;autoIncrement" json:"id"`

	// 新建工作时插入的占位目标没有文本，存为 NULL
	GoalText *string `gorm:"column:goal_text;type:text" json:"goal_text"`
}

func (Goal) TableName() string {
	return "goals"
}

// Text 返回目标文本，占位目标返回空字符串
func (g Goal) Text() string {
	if g.GoalText == nil {
		return ""
	}
	return *g.GoalText
}

// Proficiency 能力描述，关联一个目标、一个考核领域和一个学习成果
type Proficiency struct {
	ID               int    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProficiencyText  string `gorm:"column:proficiency_text;type:text" json:"proficiency_text"`
	GoalID           *int   `gorm:"column:goal_id" json:"goal_id"`
	AssessmentAreaID *int   `gorm:"column:assessment_area_id" json:"assessment_area_id"`
	SLOID            *int   `gorm:"column:slo_id" json:"slo_id"`
}

func (Proficiency) TableName() string {
	return "proficiencies"
}

// SLO 学生学习成果（Student Learning Outcome）
type SLO struct {
	ID      int    `gorm:"primaryKey;autoIncrement" json:"id"`
	SLOText string `gorm:"column:slo_text;type:text" json:"slo_text"`
	GoalID  *int   `gorm:"column:goal_id" json:"goal_id"`
}

func (SLO) TableName() string {
	return "slo_table"
}

// AssessmentArea 考核领域
type AssessmentArea struct {
	ID       int    `gorm:"primaryKey;autoIncrement" json:"id"`
	AreaName string `gorm:"column:area_name;type:text" json:"area_name"`
	GoalID   *int   `gorm:"column:goal_id" json:"goal_id"`
}

func (AssessmentArea) TableName() string {
	return "assessment_areas"
}

// Course 课程，关联一个目标和一个能力
type Course struct {
	ID            int    `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseName    string `gorm:"column:course_name;type:text" json:"course_name"`
	GoalID        *int   `gorm:"column:goal_id" json:"goal_id"`
	ProficiencyID *int   `gorm:"column:proficiency_id" json:"proficiency_id"`
}

func (Course) TableName() string {
	return "courses"
}
