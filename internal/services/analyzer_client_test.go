package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelens/resume-analyzer/internal/models"
)

func writeResumeFixture(t *testing.T) *models.ResumeFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume_fixture.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 fixture"), 0644))
	return &models.ResumeFile{Name: "jane.pdf", Path: path, Size: 16, PageCount: 1}
}

func TestAnalyzerClient_SendsMultipartForm(t *testing.T) {
	var (
		gotFields   map[string][]string
		gotFileName string
		gotFile     string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}

		gotFields = r.MultipartForm.Value
		file, header, err := r.FormFile("resume")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		gotFileName = header.Filename
		gotFile = string(data)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"analysis": {"overall_score": 72}, "download_url": "/r/1"}`))
	}))
	defer server.Close()

	client := NewAnalyzerClient(server.URL+"/", 5*time.Second)
	raw, err := client.Analyze(context.Background(), models.AnalyzeRequest{
		Resume:         writeResumeFixture(t),
		JobDescription: "Go developer",
		Role:           "Backend Developer",
		IncludeRole:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, raw.StatusCode)
	_, ok := raw.Field("analysis")
	assert.True(t, ok)

	assert.Equal(t, "jane.pdf", gotFileName)
	assert.Equal(t, "%PDF-1.4 fixture", gotFile)
	assert.Equal(t, []string{"Go developer"}, gotFields["job_description"])
	assert.Equal(t, []string{"Backend Developer"}, gotFields["role"])
}

func TestAnalyzerClient_OmitsRoleWhenNotIncluded(t *testing.T) {
	var hasRole bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		_, hasRole = r.MultipartForm.Value["role"]
		_, _ = w.Write([]byte(`{"analysis": {}}`))
	}))
	defer server.Close()

	_, err := NewAnalyzerClient(server.URL, 5*time.Second).Analyze(context.Background(), models.AnalyzeRequest{
		Resume:         writeResumeFixture(t),
		JobDescription: "Description",
	})
	require.NoError(t, err)
	assert.False(t, hasRole)
}

func TestAnalyzerClient_NonSuccessResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "structured error", status: 400, body: `{"error": "Unsupported file"}`, wantMsg: "Unsupported file"},
		{name: "plain text", status: 502, body: "Bad gateway\n  upstream down", wantMsg: "Bad gateway upstream down"},
		{name: "json without error", status: 500, body: `{"detail": "x"}`, wantMsg: `{"detail": "x"}`},
		{name: "empty body", status: 503, body: "", wantMsg: "Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			raw, err := NewAnalyzerClient(server.URL, 5*time.Second).Analyze(context.Background(), models.AnalyzeRequest{
				Resume: writeResumeFixture(t),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.status, raw.StatusCode)

			_, serr := Normalize(raw)
			require.NotNil(t, serr)
			assert.Equal(t, models.ErrorKindServer, serr.Kind)
			assert.Equal(t, tt.wantMsg, serr.Message)
		})
	}
}

func TestAnalyzerClient_LongErrorBodyIsTruncated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer server.Close()

	raw, err := NewAnalyzerClient(server.URL, 5*time.Second).Analyze(context.Background(), models.AnalyzeRequest{
		Resume: writeResumeFixture(t),
	})
	require.NoError(t, err)

	_, serr := Normalize(raw)
	require.NotNil(t, serr)
	assert.Equal(t, maxErrorMessageRunes+3, len([]rune(serr.Message)))
	assert.True(t, strings.HasSuffix(serr.Message, "..."))
}

func TestAnalyzerClient_UndecodableSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	raw, err := NewAnalyzerClient(server.URL, 5*time.Second).Analyze(context.Background(), models.AnalyzeRequest{
		Resume: writeResumeFixture(t),
	})
	require.NoError(t, err)

	_, serr := Normalize(raw)
	require.NotNil(t, serr)
	assert.Equal(t, models.ErrorKindEmptyResult, serr.Kind)
}

func TestAnalyzerClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	raw, err := NewAnalyzerClient(url, time.Second).Analyze(context.Background(), models.AnalyzeRequest{
		Resume: writeResumeFixture(t),
	})
	assert.Error(t, err)
	assert.Nil(t, raw)
}

func TestAnalyzerClient_MissingResumeFile(t *testing.T) {
	_, err := NewAnalyzerClient("http://127.0.0.1:1", time.Second).Analyze(context.Background(), models.AnalyzeRequest{
		Resume: &models.ResumeFile{Name: "gone.pdf", Path: filepath.Join(t.TempDir(), "gone.pdf")},
	})
	assert.Error(t, err)
}
