package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordCreated(t *testing.T) {
	c := NewCollector()
	c.RecordCreated(EntitySLO, 3)
	c.RecordCreated(EntitySLO, 0)
	c.RecordCreated(EntityGoal, 1)

	assert.Equal(t, 3.0, testutil.ToFloat64(c.rowsCreated.WithLabelValues(EntitySLO)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rowsCreated.WithLabelValues(EntityGoal)))
}

func TestCollector_RecordSubmission(t *testing.T) {
	c := NewCollector()
	c.RecordSubmission("course", nil)
	c.RecordSubmission("course", errors.New("boom"))
	c.RecordSubmission("course", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.submissions.WithLabelValues("course", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.submissions.WithLabelValues("course", "error")))
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.RecordCreated(EntityCourse, 1)
		c.RecordSubmission("course", nil)
	})
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.RecordCreated(EntityCourse, 2)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `programplan_rows_created_total{entity="course"} 2`)
}
