package models

import (
	"path/filepath"
	"testing"

	"github.com/Peezy0/Accel1/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T, path string) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Type:   "sqlite",
			SQLite: config.SQLiteConfig{Path: path},
		},
	}
	db, err := OpenDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDB(db) })
	return db
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestResetSchema_CreatesTables(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "plan.db"))
	require.NoError(t, ResetSchema(db, true))

	for _, table := range []string{"goals", "proficiencies", "slo_table", "assessment_areas", "courses"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestResetSchema_RestartClearsOnlyProficiencies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.db")

	db := openTestDB(t, path)
	require.NoError(t, ResetSchema(db, true))

	text := "Graduates communicate clearly"
	goal := Goal{GoalText: &text}
	require.NoError(t, db.Create(&goal).Error)
	require.NoError(t, db.Create(&SLO{SLOText: "write", GoalID: &goal.ID}).Error)
	require.NoError(t, db.Create(&AssessmentArea{AreaName: "essays", GoalID: &goal.ID}).Error)
	require.NoError(t, db.Create(&Proficiency{ProficiencyText: "grammar", GoalID: &goal.ID}).Error)
	require.NoError(t, db.Create(&Course{CourseName: "ENG101", GoalID: &goal.ID}).Error)
	require.NoError(t, CloseDB(db))

	// 模拟进程重启
	db = openTestDB(t, path)
	require.NoError(t, ResetSchema(db, true))

	assert.EqualValues(t, 0, count(t, db, &Proficiency{}))
	assert.EqualValues(t, 1, count(t, db, &Goal{}))
	assert.EqualValues(t, 1, count(t, db, &SLO{}))
	assert.EqualValues(t, 1, count(t, db, &AssessmentArea{}))
	assert.EqualValues(t, 1, count(t, db, &Course{}))
}

func TestResetSchema_KeepProficiencies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.db")

	db := openTestDB(t, path)
	require.NoError(t, ResetSchema(db, true))
	require.NoError(t, db.Create(&Proficiency{ProficiencyText: "grammar"}).Error)

	require.NoError(t, ResetSchema(db, false))
	assert.EqualValues(t, 1, count(t, db, &Proficiency{}))
}

func TestResetSchema_NilDB(t *testing.T) {
	assert.Error(t, ResetSchema(nil, true))
}

func TestGoal_Text(t *testing.T) {
	assert.Equal(t, "", Goal{}.Text())
	s := "x"
	assert.Equal(t, "x", Goal{GoalText: &s}.Text())
}
