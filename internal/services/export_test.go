package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	objects     map[string][]byte
	contentType string
	uploadErr   error
}

func (m *memoryStore) UploadFile(_ context.Context, bucket, key string, r io.Reader, size int64, contentType string) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if int64(len(b)) != size {
		return errors.New("size mismatch")
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[bucket+"/"+key] = b
	m.contentType = contentType
	return nil
}

func (m *memoryStore) PresignGet(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	return "http://localhost:9000/" + bucket + "/" + key + "?sig", nil
}

func TestExportPastWork(t *testing.T) {
	plan := newTestService(t)
	ctx := context.Background()
	goal, err := plan.CreateGoal(ctx, strPtr("Think critically"))
	require.NoError(t, err)
	_, err = plan.CreateSLOs(ctx, Select(goal.ID), "argue, cite")
	require.NoError(t, err)

	store := &memoryStore{}
	exp := NewExportService(plan, store, "program-plans", "past-work", time.Hour)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	exp.now = func() time.Time { return fixed }

	receipt, err := exp.ExportPastWork(ctx)
	require.NoError(t, err)
	assert.Equal(t, "program-plans", receipt.Bucket)
	assert.True(t, strings.HasPrefix(receipt.Key, "past-work/goal-1/"))
	assert.True(t, strings.HasSuffix(receipt.Key, ".json"))
	assert.Contains(t, receipt.URL, receipt.Key)
	assert.Equal(t, fixed.Add(time.Hour), receipt.ExpiresAt)
	assert.Equal(t, "application/json", store.contentType)

	raw := store.objects["program-plans/"+receipt.Key]
	require.NotEmpty(t, raw)
	var snap struct {
		PastWork PastWork        `json:"past_work"`
		Entries  []PastWorkEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.Equal(t, "Think critically", snap.PastWork.Goal)
	assert.Equal(t, "argue, cite", snap.PastWork.SLOs)
	assert.Len(t, snap.Entries, 5)
}

func TestExportPastWork_Errors(t *testing.T) {
	plan := newTestService(t)
	ctx := context.Background()

	exp := NewExportService(plan, &memoryStore{}, "b", "", time.Minute)
	_, err := exp.ExportPastWork(ctx)
	assert.ErrorIs(t, err, ErrNoPastWork)

	_, err = plan.CreatePlaceholderGoal(ctx)
	require.NoError(t, err)
	failing := NewExportService(plan, &memoryStore{uploadErr: errors.New("bucket missing")}, "b", "", time.Minute)
	_, err = failing.ExportPastWork(ctx)
	assert.ErrorContains(t, err, "bucket missing")
}

func TestExportKey(t *testing.T) {
	assert.True(t, strings.HasPrefix(exportKey("past-work/", 2), "past-work/goal-2/"))
	assert.True(t, strings.HasPrefix(exportKey("x", 3), "x/goal-3/"))
	assert.True(t, strings.HasPrefix(exportKey("", 4), "goal-4/"))
}
