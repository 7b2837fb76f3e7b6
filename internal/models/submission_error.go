package models

type ErrorKind string

const (
	ErrorKindValidation  ErrorKind = "validation"
	ErrorKindNetwork     ErrorKind = "network"
	ErrorKindServer      ErrorKind = "server"
	ErrorKindEmptyResult ErrorKind = "empty-result"
)

const (
	MsgStrictMissingInput  = "please upload a resume and provide a job description"
	MsgResumeRequired      = "please upload your resume"
	MsgRoleOrDescription   = "select a role or provide a job description"
	MsgAnalysisFailed      = "resume analysis failed, try again."
	MsgNoAnalysisReceived  = "no analysis result received, please try again"
	msgServerErrorFallback = "analysis service returned an error"
)

// SubmissionError is the user-facing failure of a submission. Messages are
// single-line and never carry transport diagnostics.
type SubmissionError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *SubmissionError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func NewValidationError(msg string) *SubmissionError {
	return &SubmissionError{Kind: ErrorKindValidation, Message: msg}
}

func NewNetworkError() *SubmissionError {
	return &SubmissionError{Kind: ErrorKindNetwork, Message: MsgAnalysisFailed}
}

func NewServerError(msg string) *SubmissionError {
	if msg == "" {
		msg = msgServerErrorFallback
	}
	return &SubmissionError{Kind: ErrorKindServer, Message: msg}
}

func NewEmptyResultError() *SubmissionError {
	return &SubmissionError{Kind: ErrorKindEmptyResult, Message: MsgNoAnalysisReceived}
}
