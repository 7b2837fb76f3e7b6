package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hirelens/resume-analyzer/internal/models"
)

const (
	analyzePath          = "/analyze"
	maxErrorMessageRunes = 300
)

// AnalyzerClient talks to the remote analysis service. A returned error
// always means no response was received.
type AnalyzerClient interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.RawResponse, error)
}

type analyzerClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAnalyzerClient(baseURL string, timeout time.Duration) AnalyzerClient {
	return &analyzerClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Analyze implements AnalyzerClient.
func (a *analyzerClient) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.RawResponse, error) {
	body, contentType, err := buildMultipart(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+analyzePath, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyze request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("analyze request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read analyze response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorResponse(resp.StatusCode, payload), nil
	}

	raw, err := models.DecodeRawResponse(resp.StatusCode, payload)
	if err != nil {
		log.Printf("⚠️  Analysis service returned an undecodable body (%d bytes): %v\n", len(payload), err)
		return &models.RawResponse{StatusCode: resp.StatusCode, Fields: map[string]json.RawMessage{}}, nil
	}
	return raw, nil
}

// errorResponse turns a non-2xx reply into a raw response carrying an error
// field: the structured one if the body has it, else the body text.
func errorResponse(status int, payload []byte) *models.RawResponse {
	if raw, err := models.DecodeRawResponse(status, payload); err == nil {
		if _, ok := raw.Field("error"); ok {
			return raw
		}
	}

	msg := singleLine(string(payload))
	if msg == "" {
		msg = http.StatusText(status)
	}
	encoded, _ := json.Marshal(msg)
	return &models.RawResponse{
		StatusCode: status,
		Fields:     map[string]json.RawMessage{"error": encoded},
	}
}

func buildMultipart(req models.AnalyzeRequest) (io.Reader, string, error) {
	if req.Resume == nil {
		return nil, "", fmt.Errorf("resume file is required")
	}

	src, err := os.Open(req.Resume.Path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open resume file: %w", err)
	}
	defer src.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	name := req.Resume.Name
	if name == "" {
		name = filepath.Base(req.Resume.Path)
	}
	part, err := writer.CreateFormFile("resume", name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create resume part: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, "", fmt.Errorf("failed to copy resume file: %w", err)
	}

	if err := writer.WriteField("job_description", req.JobDescription); err != nil {
		return nil, "", fmt.Errorf("failed to write job description: %w", err)
	}
	if req.IncludeRole {
		if err := writer.WriteField("role", req.Role); err != nil {
			return nil, "", fmt.Errorf("failed to write role: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

func singleLine(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if runes := []rune(text); len(runes) > maxErrorMessageRunes {
		text = string(runes[:maxErrorMessageRunes]) + "..."
	}
	return text
}
