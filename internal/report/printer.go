// Package report renders normalized analysis views for terminals and images.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"hirelens/resume-analyzer/internal/models"
)

const (
	ruleWidth  = 60
	scoreGood  = 75
	scoreFair  = 50
	barCharMax = 30
)

var (
	colorTitle   = color.New(color.FgCyan, color.Bold)
	colorGood    = color.New(color.FgGreen, color.Bold)
	colorFair    = color.New(color.FgYellow, color.Bold)
	colorPoor    = color.New(color.FgRed, color.Bold)
	colorMatched = color.New(color.FgGreen)
	colorMissing = color.New(color.FgRed)
	colorMuted   = color.New(color.FgHiBlack)
)

// Printer writes a human-readable analysis report.
type Printer struct {
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// PrintView renders the full report. demo marks the built-in sample view.
//
//nolint:errcheck // terminal output; write errors are not recoverable
func (p *Printer) PrintView(view *models.AnalysisView, demo bool) {
	p.rule()
	colorTitle.Fprintln(p.out, "Resume Analysis Report")
	if demo {
		colorMuted.Fprintln(p.out, "(demo data: submit a resume to see your own analysis)")
	}
	if view.RoleDetected != "" {
		fmt.Fprintf(p.out, "Detected Role: %s\n", view.RoleDetected)
	}
	p.rule()

	fmt.Fprint(p.out, "Overall ATS Score: ")
	scoreColor(view.OverallScore).Fprintf(p.out, "%d%%\n", view.OverallScore)
	fmt.Fprintf(p.out, "  Skills Match:     %3d%%\n", view.ScoreBreakdown.SkillsMatch)
	fmt.Fprintf(p.out, "  Experience Match: %3d%%\n", view.ScoreBreakdown.ExperienceMatch)
	fmt.Fprintf(p.out, "  Education Match:  %3d%%\n", view.ScoreBreakdown.EducationMatch)

	p.section("Score Chart")
	p.printChart(view.ChartSeries)

	p.section("Matched Skills")
	p.printTags(view.Skills.Matched, colorMatched, "No matched skills found")
	p.section("Missing Skills")
	p.printTags(view.Skills.Missing, colorMissing, "No missing skills")
	if len(view.Skills.Extra) > 0 {
		p.section("Extra Skills")
		p.printTags(view.Skills.Extra, colorMuted, "")
	}

	p.printList("Strengths", view.Strengths)
	p.printList("Weaknesses", view.Weaknesses)
	p.printList("Improvement Suggestions", view.Suggestions)

	if view.DownloadURL != nil {
		p.section("Report")
		fmt.Fprintf(p.out, "Download: %s\n", *view.DownloadURL)
	}
	p.rule()
}

// PrintError renders a submission failure as a single line.
//
//nolint:errcheck // terminal output
func (p *Printer) PrintError(err *models.SubmissionError) {
	colorPoor.Fprintf(p.out, "✗ %s\n", err.Message)
}

//nolint:errcheck // terminal output
func (p *Printer) printChart(series models.ChartSeries) {
	width := 0
	for _, point := range series {
		if len(point.Label) > width {
			width = len(point.Label)
		}
	}
	for _, point := range series {
		bar := strings.Repeat("█", point.Value*barCharMax/100)
		fmt.Fprintf(p.out, "%-*s ", width, point.Label)
		scoreColor(point.Value).Fprintf(p.out, "%-*s", barCharMax, bar)
		fmt.Fprintf(p.out, " %3d\n", point.Value)
	}
}

//nolint:errcheck // terminal output
func (p *Printer) printTags(tags []string, c *color.Color, empty string) {
	if len(tags) == 0 {
		if empty != "" {
			colorMuted.Fprintln(p.out, empty)
		}
		return
	}
	c.Fprintln(p.out, strings.Join(tags, ", "))
}

//nolint:errcheck // terminal output
func (p *Printer) printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	p.section(title)
	for _, item := range items {
		fmt.Fprintf(p.out, "  • %s\n", item)
	}
}

//nolint:errcheck // terminal output
func (p *Printer) section(title string) {
	fmt.Fprintln(p.out)
	colorTitle.Fprintln(p.out, title)
}

//nolint:errcheck // terminal output
func (p *Printer) rule() {
	fmt.Fprintln(p.out, strings.Repeat("─", ruleWidth))
}

func scoreColor(score int) *color.Color {
	switch {
	case score >= scoreGood:
		return colorGood
	case score >= scoreFair:
		return colorFair
	default:
		return colorPoor
	}
}
