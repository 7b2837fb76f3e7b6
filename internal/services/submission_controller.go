package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"hirelens/resume-analyzer/internal/models"
)

var (
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrUnknownRole        = errors.New("role is not in the role catalog")
)

// SubmissionController owns the draft of one upload form and drives at most
// one analysis request at a time.
type SubmissionController interface {
	SetResumeFile(file *models.ResumeFile)
	SetTargetRole(role string) error
	SetJobDescription(text string)
	Reset()

	// Submit validates the draft and blocks until the analysis resolves.
	Submit(ctx context.Context) (*models.AnalysisView, error)
	// Start validates the draft and resolves the analysis in the background.
	Start(ctx context.Context) error
	// Wait blocks until the outstanding submission, if any, has resolved.
	Wait()

	State() models.SubmissionState
	LastError() *models.SubmissionError
	Draft() models.DraftSubmission
	Policy() models.ValidationPolicy
}

type submissionController struct {
	client AnalyzerClient
	store  ViewStore
	policy models.ValidationPolicy

	mu      sync.Mutex
	draft   models.DraftSubmission
	state   models.SubmissionState
	lastErr *models.SubmissionError
	done    chan struct{}
}

func NewSubmissionController(
	client AnalyzerClient,
	store ViewStore,
	policy models.ValidationPolicy,
) SubmissionController {
	if policy == "" {
		policy = models.PolicyPermissive
	}
	return &submissionController{
		client: client,
		store:  store,
		policy: policy,
		state:  models.StateIdle,
	}
}

// SetResumeFile implements SubmissionController.
func (c *submissionController) SetResumeFile(file *models.ResumeFile) {
	c.mutate(func(d *models.DraftSubmission) { d.ResumeFile = file })
}

// SetTargetRole implements SubmissionController.
func (c *submissionController) SetTargetRole(role string) error {
	role = strings.TrimSpace(role)
	if role != "" && !models.IsKnownRole(role) {
		return ErrUnknownRole
	}
	c.mutate(func(d *models.DraftSubmission) { d.TargetRole = role })
	return nil
}

// SetJobDescription implements SubmissionController.
func (c *submissionController) SetJobDescription(text string) {
	c.mutate(func(d *models.DraftSubmission) { d.JobDescription = text })
}

// Reset implements SubmissionController.
func (c *submissionController) Reset() {
	c.mutate(func(d *models.DraftSubmission) { *d = models.DraftSubmission{} })
}

func (c *submissionController) mutate(apply func(d *models.DraftSubmission)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	apply(&c.draft)
	c.lastErr = nil
	if c.state.Terminal() {
		c.state = models.StateIdle
	}
}

// Submit implements SubmissionController.
func (c *submissionController) Submit(ctx context.Context) (*models.AnalysisView, error) {
	req, err := c.begin()
	if err != nil {
		return nil, err
	}
	return c.run(ctx, req)
}

// Start implements SubmissionController.
func (c *submissionController) Start(ctx context.Context) error {
	req, err := c.begin()
	if err != nil {
		return err
	}
	// The request outlives the caller: there is no way to abort it early.
	go func() { _, _ = c.run(context.WithoutCancel(ctx), req) }()
	return nil
}

// Wait implements SubmissionController.
func (c *submissionController) Wait() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

// begin admits a submission: it rejects re-entry, validates the draft and
// moves the controller to submitting.
func (c *submissionController) begin() (models.AnalyzeRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == models.StateSubmitting {
		return models.AnalyzeRequest{}, ErrSubmissionInFlight
	}

	c.state = models.StateValidating
	req, verr := buildRequest(c.draft, c.policy)
	if verr != nil {
		c.state = models.StateFailed
		c.lastErr = verr
		return models.AnalyzeRequest{}, verr
	}

	c.state = models.StateSubmitting
	c.lastErr = nil
	c.done = make(chan struct{})
	return req, nil
}

func (c *submissionController) run(ctx context.Context, req models.AnalyzeRequest) (*models.AnalysisView, error) {
	log.Printf("📤 Submitting resume %q for analysis\n", req.Resume.Name)

	var (
		view *models.AnalysisView
		serr *models.SubmissionError
	)
	raw, err := c.client.Analyze(ctx, req)
	if err != nil {
		log.Printf("❌ Analysis request failed: %v\n", err)
		serr = models.NewNetworkError()
	} else {
		view, serr = Normalize(raw)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	defer close(c.done)

	if serr != nil {
		if serr.Kind != models.ErrorKindNetwork {
			log.Printf("⚠️  Analysis rejected (%s): %s\n", serr.Kind, serr.Message)
		}
		c.state = models.StateFailed
		c.lastErr = serr
		return nil, serr
	}

	c.store.Publish(view)
	c.state = models.StateResolved
	c.lastErr = nil
	log.Printf("✅ Analysis resolved with overall score %d\n", view.OverallScore)
	return view, nil
}

// buildRequest applies the validation policy and derives the payload.
func buildRequest(d models.DraftSubmission, policy models.ValidationPolicy) (models.AnalyzeRequest, *models.SubmissionError) {
	description := strings.TrimSpace(d.JobDescription)

	if policy == models.PolicyStrict {
		if d.ResumeFile == nil || description == "" {
			return models.AnalyzeRequest{}, models.NewValidationError(models.MsgStrictMissingInput)
		}
		return models.AnalyzeRequest{Resume: d.ResumeFile, JobDescription: description}, nil
	}

	if d.ResumeFile == nil {
		return models.AnalyzeRequest{}, models.NewValidationError(models.MsgResumeRequired)
	}
	if d.TargetRole == "" && description == "" {
		return models.AnalyzeRequest{}, models.NewValidationError(models.MsgRoleOrDescription)
	}
	if description == "" {
		description = d.TargetRole
	}
	return models.AnalyzeRequest{
		Resume:         d.ResumeFile,
		JobDescription: description,
		Role:           d.TargetRole,
		IncludeRole:    true,
	}, nil
}

// State implements SubmissionController.
func (c *submissionController) State() models.SubmissionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError implements SubmissionController.
func (c *submissionController) LastError() *models.SubmissionError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Draft implements SubmissionController.
func (c *submissionController) Draft() models.DraftSubmission {
	c.mu.Lock()
	defer c.mu.Unlock()
	draft := c.draft
	if draft.ResumeFile != nil {
		file := *draft.ResumeFile
		draft.ResumeFile = &file
	}
	return draft
}

// Policy implements SubmissionController.
func (c *submissionController) Policy() models.ValidationPolicy {
	return c.policy
}
