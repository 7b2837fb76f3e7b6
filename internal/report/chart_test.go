package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelens/resume-analyzer/internal/models"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestRenderChart_PNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderChart(&buf, models.DemoView().ChartSeries))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestRenderChart_AllZeroScores(t *testing.T) {
	series := models.ChartSeries{}
	for _, label := range models.ChartMetrics {
		series = append(series, models.ChartPoint{Label: label})
	}

	var buf bytes.Buffer
	require.NoError(t, RenderChart(&buf, series))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestRenderChart_EmptySeries(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, RenderChart(&buf, nil))
	assert.Zero(t, buf.Len())
}
