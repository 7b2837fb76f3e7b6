package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawResponse is the undecoded top level of an analysis service reply.
type RawResponse struct {
	StatusCode int
	Fields     map[string]json.RawMessage
}

// DecodeRawResponse parses a JSON object body. Non-object bodies are
// reported as an error so callers can decide how to degrade.
func DecodeRawResponse(statusCode int, body []byte) (*RawResponse, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(body), &fields); err != nil {
		return nil, fmt.Errorf("failed to decode analysis response: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("failed to decode analysis response: not an object")
	}
	return &RawResponse{StatusCode: statusCode, Fields: fields}, nil
}

// Field returns the raw value of name when it is present and not null.
func (r *RawResponse) Field(name string) (json.RawMessage, bool) {
	if r == nil {
		return nil, false
	}
	raw, ok := r.Fields[name]
	if !ok {
		return nil, false
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, false
	}
	return raw, true
}

type AnalyzeRequest struct {
	Resume         *ResumeFile
	JobDescription string
	Role           string
	IncludeRole    bool
}

type FormResponse struct {
	ID     string           `json:"id"`
	State  SubmissionState  `json:"state"`
	Draft  DraftSubmission  `json:"draft"`
	Error  *SubmissionError `json:"error,omitempty"`
	Policy ValidationPolicy `json:"policy"`
}

type ViewResponse struct {
	Demo bool          `json:"demo"`
	View *AnalysisView `json:"view"`
}

type RoleRequest struct {
	Role string `json:"role"`
}

type JobDescriptionRequest struct {
	JobDescription string `json:"job_description"`
}

type JobPostingRequest struct {
	URL string `json:"url"`
}
