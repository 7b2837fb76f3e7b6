package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelens/resume-analyzer/internal/models"
)

func TestViewStore_DefaultsToDemo(t *testing.T) {
	store := NewViewStore()

	assert.True(t, store.IsDemo())
	assert.Equal(t, models.DemoView(), store.Current())
}

func TestViewStore_Publish(t *testing.T) {
	store := NewViewStore()
	view := &models.AnalysisView{
		RoleDetected: "Data Analyst",
		OverallScore: 91,
		ChartSeries:  models.ChartSeries{{Label: models.MetricOverallScore, Value: 91}},
	}

	store.Publish(view)

	assert.False(t, store.IsDemo())
	current := store.Current()
	assert.Equal(t, 91, current.OverallScore)
	assert.Equal(t, "Data Analyst", current.RoleDetected)
}

func TestViewStore_IgnoresNil(t *testing.T) {
	store := NewViewStore()
	store.Publish(&models.AnalysisView{OverallScore: 10})
	store.Publish(nil)

	assert.Equal(t, 10, store.Current().OverallScore)
}

func TestViewStore_ReturnsIsolatedCopies(t *testing.T) {
	store := NewViewStore()
	view := &models.AnalysisView{
		Strengths:   []string{"Concise"},
		ChartSeries: models.ChartSeries{{Label: "A", Value: 1}},
	}
	store.Publish(view)

	view.Strengths[0] = "changed by publisher"
	current := store.Current()
	current.ChartSeries[0].Value = 99

	again := store.Current()
	require.Len(t, again.Strengths, 1)
	assert.Equal(t, "Concise", again.Strengths[0])
	assert.Equal(t, 1, again.ChartSeries[0].Value)
}

func TestViewStore_DemoCannotBeMutated(t *testing.T) {
	store := NewViewStore()
	demo := store.Current()
	demo.OverallScore = 0
	demo.Skills.Matched[0] = "cobol"

	assert.Equal(t, 72, store.Current().OverallScore)
	assert.Equal(t, "python", store.Current().Skills.Matched[0])
}
