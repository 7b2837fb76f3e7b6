package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	MetricTechStackCoverage  = "Tech Stack Coverage"
	MetricSkillsMatch        = "Skills Match"
	MetricExperienceMatch    = "Experience Match"
	MetricEducationMatch     = "Education Match"
	MetricSemanticSimilarity = "Semantic Similarity"
	MetricOverallScore       = "Overall ATS Score"
)

// ChartMetrics is the fixed slot order of a synthesized chart series.
var ChartMetrics = []string{
	MetricTechStackCoverage,
	MetricSkillsMatch,
	MetricExperienceMatch,
	MetricEducationMatch,
	MetricSemanticSimilarity,
	MetricOverallScore,
}

// AnalysisView is the canonical, display-ready analysis result. Values are
// treated as immutable once built; use Clone before modifying a copy.
type AnalysisView struct {
	RoleDetected   string         `json:"role_detected"`
	OverallScore   int            `json:"overall_score"`
	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`
	Skills         SkillSets      `json:"skills"`
	Strengths      []string       `json:"strengths"`
	Weaknesses     []string       `json:"weaknesses"`
	Suggestions    []string       `json:"suggestions"`
	ChartSeries    ChartSeries    `json:"chart_series"`
	DownloadURL    *string        `json:"download_url,omitempty"`
}

type ScoreBreakdown struct {
	SkillsMatch     int `json:"skills_match"`
	ExperienceMatch int `json:"experience_match"`
	EducationMatch  int `json:"education_match"`
}

type SkillSets struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	Extra   []string `json:"extra"`
}

type ChartPoint struct {
	Label string
	Value int
}

// ChartSeries is an ordered label to score mapping. It encodes as a JSON
// object whose keys keep the series order.
type ChartSeries []ChartPoint

// Get returns the value for label and whether it is present.
func (s ChartSeries) Get(label string) (int, bool) {
	for _, p := range s {
		if p.Label == label {
			return p.Value, true
		}
	}
	return 0, false
}

func (s ChartSeries) Labels() []string {
	labels := make([]string, 0, len(s))
	for _, p := range s {
		labels = append(labels, p.Label)
	}
	return labels
}

func (s ChartSeries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", p.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *ChartSeries) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("chart series: expected object, got %v", tok)
	}
	out := ChartSeries{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var value int
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("chart series %q: %w", key, err)
		}
		out = append(out, ChartPoint{Label: key, Value: value})
	}
	*s = out
	return nil
}

func (v *AnalysisView) Clone() *AnalysisView {
	if v == nil {
		return nil
	}
	out := *v
	out.Skills = SkillSets{
		Matched: cloneStrings(v.Skills.Matched),
		Missing: cloneStrings(v.Skills.Missing),
		Extra:   cloneStrings(v.Skills.Extra),
	}
	out.Strengths = cloneStrings(v.Strengths)
	out.Weaknesses = cloneStrings(v.Weaknesses)
	out.Suggestions = cloneStrings(v.Suggestions)
	out.ChartSeries = append(ChartSeries{}, v.ChartSeries...)
	if v.DownloadURL != nil {
		url := *v.DownloadURL
		out.DownloadURL = &url
	}
	return &out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
