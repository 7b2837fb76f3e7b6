package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	jobPostingUserAgent = "Mozilla/5.0 (compatible; HireLens/1.0)"
	maxJobPostingBytes  = 2 << 20
)

// jobPostingSelectors are tried in order; the first match wins.
var jobPostingSelectors = []string{
	".job-description",
	"#job-description",
	".job-content",
	"#job-content",
	".posting-page",
	"[data-automation-id='jobPostingDescription']",
	"main",
	"article",
}

// JobPostingFetcher turns a job posting page into a plain-text description
// that can be used as the draft's job description.
type JobPostingFetcher interface {
	FetchDescription(ctx context.Context, pageURL string) (string, error)
}

type jobPostingFetcher struct {
	httpClient *http.Client
}

func NewJobPostingFetcher(timeout time.Duration) JobPostingFetcher {
	return &jobPostingFetcher{httpClient: &http.Client{Timeout: timeout}}
}

func (f *jobPostingFetcher) FetchDescription(ctx context.Context, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("invalid job posting URL: %q", pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", jobPostingUserAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch job posting: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch job posting: HTTP status %d", resp.StatusCode)
	}

	text, err := ExtractJobDescription(io.LimitReader(resp.Body, maxJobPostingBytes))
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("no job description text found at %s", pageURL)
	}
	return text, nil
}

// ExtractJobDescription strips page chrome and returns the posting text.
func ExtractJobDescription(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, form, .cookie-banner, .sidebar").Remove()

	content := doc.Find("body")
	for _, selector := range jobPostingSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}

	var lines []string
	for _, line := range strings.Split(content.Text(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}
