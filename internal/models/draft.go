package models

import (
	"fmt"
	"strings"
)

type ResumeFile struct {
	Name      string `json:"name"`
	Path      string `json:"-"`
	Size      int64  `json:"size"`
	PageCount int    `json:"page_count"`
	HasText   bool   `json:"has_text"`
}

type DraftSubmission struct {
	ResumeFile     *ResumeFile `json:"resume_file,omitempty"`
	TargetRole     string      `json:"target_role"`
	JobDescription string      `json:"job_description"`
}

type ValidationPolicy string

const (
	// PolicyStrict requires a resume and a non-blank job description.
	PolicyStrict ValidationPolicy = "strict"
	// PolicyPermissive accepts the target role in place of a job description.
	PolicyPermissive ValidationPolicy = "permissive"
)

func ParseValidationPolicy(raw string) (ValidationPolicy, error) {
	switch ValidationPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PolicyPermissive:
		return PolicyPermissive, nil
	case PolicyStrict:
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("unknown validation policy: %q", raw)
	}
}

type SubmissionState string

const (
	StateIdle       SubmissionState = "idle"
	StateValidating SubmissionState = "validating"
	StateSubmitting SubmissionState = "submitting"
	StateResolved   SubmissionState = "resolved"
	StateFailed     SubmissionState = "failed"
)

// Terminal reports whether the state is a finished submission outcome.
func (s SubmissionState) Terminal() bool {
	return s == StateResolved || s == StateFailed
}
