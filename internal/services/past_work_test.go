package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPastWork_Empty(t *testing.T) {
	s := newTestService(t)

	pw, err := s.PastWork(context.Background())
	assert.ErrorIs(t, err, ErrNoPastWork)
	assert.Nil(t, pw)
}

func TestPastWork_LatestGoalAggregated(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	old, err := s.CreateGoal(ctx, strPtr("old goal"))
	require.NoError(t, err)
	_, err = s.CreateSLOs(ctx, Select(old.ID), "ignored")
	require.NoError(t, err)

	goal, err := s.CreateGoal(ctx, strPtr("Lead teams"))
	require.NoError(t, err)
	_, err = s.CreateSLOs(ctx, Select(goal.ID), "plan, delegate")
	require.NoError(t, err)
	area, err := s.CreateAssessmentArea(ctx, Select(goal.ID), "capstone")
	require.NoError(t, err)
	_, err = s.CreateAssessmentArea(ctx, Select(goal.ID), "peer review")
	require.NoError(t, err)
	profs, err := s.CreateProficiencies(ctx, Select(goal.ID), Select(area.ID), None, "feedback, conflict resolution")
	require.NoError(t, err)
	_, err = s.CreateCourse(ctx, Select(goal.ID), Select(profs[0].ID), "MGT310")
	require.NoError(t, err)

	pw, err := s.PastWork(ctx)
	require.NoError(t, err)
	require.NotNil(t, pw)

	assert.Equal(t, goal.ID, pw.GoalID)
	assert.Equal(t, "Lead teams", pw.Goal)
	assert.Equal(t, "feedback, conflict resolution", pw.Proficiencies)
	assert.Equal(t, "plan, delegate", pw.SLOs)
	assert.Equal(t, "capstone, peer review", pw.AssessmentAreas)
	assert.Equal(t, "MGT310", pw.Courses)

	assert.Equal(t, []string{
		"Goal: Lead teams",
		"Proficiencies: feedback, conflict resolution",
		"SLOs: plan, delegate",
		"Assessment Areas: capstone, peer review",
		"Courses: MGT310",
	}, pw.Lines())
}

func TestPastWork_PlaceholderGoal(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.CreatePlaceholderGoal(ctx)
	require.NoError(t, err)

	pw, err := s.PastWork(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", pw.Goal)
	assert.Equal(t, "", pw.Proficiencies)
	assert.Len(t, pw.Entries(), 5)
}
