package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"hirelens/resume-analyzer/internal/config"
	"hirelens/resume-analyzer/internal/models"
	"hirelens/resume-analyzer/internal/report"
	"hirelens/resume-analyzer/internal/schemas"
	"hirelens/resume-analyzer/internal/services"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Analyze a resume against a role or job description",
	Long:  "Validate the resume and description, send them to the analysis service, and print the normalized report.",
	RunE:  runSubmit,
}

var (
	submitResume      string
	submitRole        string
	submitDescription string
	submitJDFile      string
	submitJDURL       string
	submitPolicy      string
	submitAnalyzerURL string
	submitJSON        bool
	submitChart       string
)

func init() {
	submitCmd.Flags().StringVarP(&submitResume, "resume", "r", "", "Path to the resume PDF")
	submitCmd.Flags().StringVar(&submitRole, "role", "", "Target role (see 'analyze roles')")
	submitCmd.Flags().StringVarP(&submitDescription, "job-description", "d", "", "Job description text")
	submitCmd.Flags().StringVar(&submitJDFile, "jd-file", "", "Read the job description from a text file")
	submitCmd.Flags().StringVar(&submitJDURL, "jd-url", "", "Fetch the job description from a job posting URL")
	submitCmd.Flags().StringVar(&submitPolicy, "policy", "", "Validation policy: strict or permissive (overrides SUBMISSION_POLICY)")
	submitCmd.Flags().StringVar(&submitAnalyzerURL, "analyzer-url", "", "Analysis service base URL (overrides ANALYZER_URL)")
	submitCmd.Flags().BoolVar(&submitJSON, "json", false, "Print the normalized view as JSON")
	submitCmd.Flags().StringVar(&submitChart, "chart", "", "Write the score chart as PNG to this path")

	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if submitAnalyzerURL != "" {
		cfg.Analyzer.URL = submitAnalyzerURL
	}
	if submitPolicy != "" {
		cfg.Submission.Policy = strings.ToLower(submitPolicy)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sources := 0
	for _, s := range []string{submitDescription, submitJDFile, submitJDURL} {
		if s != "" {
			sources++
		}
	}
	if sources > 1 {
		return fmt.Errorf("use only one of --job-description, --jd-file and --jd-url")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	resume, description, err := prepareInputs(ctx, cfg)
	if err != nil {
		return err
	}

	store := services.NewViewStore()
	controller := services.NewSubmissionController(
		services.NewAnalyzerClient(cfg.Analyzer.URL, cfg.Analyzer.Timeout),
		store,
		cfg.ValidationPolicy(),
	)
	controller.SetResumeFile(resume)
	if err := controller.SetTargetRole(submitRole); err != nil {
		return fmt.Errorf("unknown role %q (see 'analyze roles')", submitRole)
	}
	controller.SetJobDescription(description)

	cmd.SilenceUsage = true
	view, err := controller.Submit(ctx)
	if err != nil {
		var serr *models.SubmissionError
		if errors.As(err, &serr) {
			report.NewPrinter(cmd.ErrOrStderr()).PrintError(serr)
		}
		return err
	}

	return writeView(cmd, view, false, submitJSON, submitChart)
}

// prepareInputs loads the resume and the job description concurrently.
// A missing resume is left nil so that validation reports it.
func prepareInputs(ctx context.Context, cfg *config.Config) (*models.ResumeFile, string, error) {
	var (
		resume      *models.ResumeFile
		description = submitDescription
	)

	g, gCtx := errgroup.WithContext(ctx)

	if submitResume != "" {
		g.Go(func() error {
			file, err := services.NewPDFInspector(cfg.Storage.MaxFileSize).Inspect(submitResume, "")
			if err != nil {
				return fmt.Errorf("failed to read resume: %w", err)
			}
			resume = file
			return nil
		})
	}

	switch {
	case submitJDFile != "":
		g.Go(func() error {
			data, err := os.ReadFile(submitJDFile)
			if err != nil {
				return fmt.Errorf("failed to read job description file: %w", err)
			}
			description = string(data)
			return nil
		})
	case submitJDURL != "":
		g.Go(func() error {
			text, err := services.NewJobPostingFetcher(cfg.Analyzer.JobPostTimeout).FetchDescription(gCtx, submitJDURL)
			if err != nil {
				return err
			}
			description = text
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, "", err
	}
	return resume, description, nil
}

func writeView(cmd *cobra.Command, view *models.AnalysisView, demo bool, asJSON bool, chartPath string) error {
	if chartPath != "" {
		f, err := os.Create(chartPath)
		if err != nil {
			return fmt.Errorf("failed to create chart file: %w", err)
		}
		if err := report.RenderChart(f, view.ChartSeries); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write chart file: %w", err)
		}
	}

	if !asJSON {
		report.NewPrinter(cmd.OutOrStdout()).PrintView(view, demo)
		return nil
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal view: %w", err)
	}
	if err := schemas.ValidateViewJSON(data); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
