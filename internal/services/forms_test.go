package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelens/resume-analyzer/internal/models"
)

func TestFormRegistry_OpenGetClose(t *testing.T) {
	dir := t.TempDir()
	storage := NewResumeStorage(dir)
	store := NewViewStore()
	registry := NewFormRegistry(&fakeAnalyzer{}, store, storage, models.PolicyStrict)

	id, controller := registry.Open()
	assert.Equal(t, models.PolicyStrict, controller.Policy())
	assert.Equal(t, store, registry.Store())

	got, err := registry.Get(id)
	require.NoError(t, err)
	assert.Equal(t, controller, got)

	path := filepath.Join(dir, "resume_test.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0644))
	controller.SetResumeFile(&models.ResumeFile{Name: "cv.pdf", Path: path})

	require.NoError(t, registry.Close(id))
	_, err = registry.Get(id)
	assert.ErrorIs(t, err, ErrFormNotFound)

	assert.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return os.IsNotExist(err)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFormRegistry_UnknownForm(t *testing.T) {
	registry := NewFormRegistry(&fakeAnalyzer{}, NewViewStore(), NewResumeStorage(t.TempDir()), models.PolicyPermissive)

	_, err := registry.Get(uuid.New())
	assert.ErrorIs(t, err, ErrFormNotFound)
	assert.ErrorIs(t, registry.Close(uuid.New()), ErrFormNotFound)
}

func TestFormRegistry_FormsShareViewStore(t *testing.T) {
	client := &fakeAnalyzer{response: okResponse(t, 93)}
	registry := NewFormRegistry(client, NewViewStore(), NewResumeStorage(t.TempDir()), models.PolicyPermissive)

	_, first := registry.Open()
	_, second := registry.Open()
	assert.NotSame(t, first, second)

	first.SetResumeFile(testResume())
	first.SetJobDescription("Go")
	_, err := first.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 93, registry.Store().Current().OverallScore)
	assert.Equal(t, models.StateIdle, second.State())
}
