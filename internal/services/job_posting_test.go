package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingHTML = `<html>
<head><title>Backend Engineer</title><style>.x{}</style></head>
<body>
  <nav>Home | Jobs | About</nav>
  <header>Acme Careers</header>
  <div class="job-description">
    <h1>Backend Engineer</h1>
    <p>Build   reliable services in Go.</p>
    <ul><li>PostgreSQL</li><li>Kubernetes</li></ul>
  </div>
  <footer>Copyright Acme</footer>
  <script>track()</script>
</body>
</html>`

func TestExtractJobDescription_PrefersDescriptionContainer(t *testing.T) {
	text, err := ExtractJobDescription(strings.NewReader(postingHTML))
	require.NoError(t, err)

	assert.Contains(t, text, "Backend Engineer")
	assert.Contains(t, text, "Build reliable services in Go.")
	assert.Contains(t, text, "PostgreSQL")
	assert.NotContains(t, text, "Acme Careers")
	assert.NotContains(t, text, "Copyright")
	assert.NotContains(t, text, "track()")
}

func TestExtractJobDescription_FallsBackToBody(t *testing.T) {
	text, err := ExtractJobDescription(strings.NewReader(`<html><body><nav>menu</nav><p>We need a data analyst.</p></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "We need a data analyst.", text)
}

func TestJobPostingFetcher_FetchDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.UserAgent(), "HireLens")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	text, err := NewJobPostingFetcher(5*time.Second).FetchDescription(context.Background(), server.URL+"/jobs/1")
	require.NoError(t, err)
	assert.Contains(t, text, "Build reliable services in Go.")
}

func TestJobPostingFetcher_Errors(t *testing.T) {
	notFound := httptest.NewServer(http.NotFoundHandler())
	defer notFound.Close()

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><nav>only chrome</nav></body></html>`))
	}))
	defer empty.Close()

	fetcher := NewJobPostingFetcher(5 * time.Second)
	for name, url := range map[string]string{
		"unsupported scheme": "ftp://example.com/job",
		"missing host":       "https:///job",
		"not found":          notFound.URL,
		"no text":            empty.URL,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := fetcher.FetchDescription(context.Background(), url)
			assert.Error(t, err)
		})
	}
}
