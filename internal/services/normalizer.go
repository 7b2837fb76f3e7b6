package services

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"hirelens/resume-analyzer/internal/models"
)

// rawAnalysis mirrors the analysis object of the service. Every field is
// optional and kept raw so that malformed values degrade to defaults.
type rawAnalysis struct {
	RoleDetected      json.RawMessage `json:"role_detected"`
	OverallScore      json.RawMessage `json:"overall_score"`
	TechStackCoverage json.RawMessage `json:"techstack_coverage"`
	SemanticScore     json.RawMessage `json:"semantic_score"`
	ChartData         json.RawMessage `json:"chart_data"`
	Strengths         json.RawMessage `json:"strengths"`
	Weaknesses        json.RawMessage `json:"weaknesses"`
	Suggestions       json.RawMessage `json:"suggestions"`
	ScoreBreakdown    struct {
		SkillsMatch     json.RawMessage `json:"skills_match"`
		ExperienceMatch json.RawMessage `json:"experience_match"`
		EducationMatch  json.RawMessage `json:"education_match"`
	} `json:"-"`
	Skills struct {
		Matched json.RawMessage `json:"matched_skills"`
		Missing json.RawMessage `json:"missing_skills"`
		Extra   json.RawMessage `json:"extra_skills"`
	} `json:"-"`
}

// Normalize maps a raw service reply onto the canonical view. Exactly one of
// the results is non-nil. It has no side effects.
func Normalize(raw *models.RawResponse) (*models.AnalysisView, *models.SubmissionError) {
	if msg, ok := errorField(raw); ok {
		return nil, models.NewServerError(msg)
	}

	analysisRaw, ok := raw.Field("analysis")
	if !ok || !isJSONObject(analysisRaw) {
		return nil, models.NewEmptyResultError()
	}

	view := mapAnalysis(analysisRaw)
	if urlRaw, ok := raw.Field("download_url"); ok {
		if url := strings.TrimSpace(coerceString(urlRaw)); url != "" {
			view.DownloadURL = &url
		}
	}
	return view, nil
}

func errorField(raw *models.RawResponse) (string, bool) {
	errRaw, ok := raw.Field("error")
	if !ok {
		return "", false
	}
	var msg string
	if err := json.Unmarshal(errRaw, &msg); err == nil {
		return msg, msg != ""
	}
	// A non-string error payload still marks a failed analysis.
	if bytes.Equal(bytes.TrimSpace(errRaw), []byte("false")) {
		return "", false
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(errRaw, &nested); err == nil && nested.Message != "" {
		return nested.Message, true
	}
	return string(bytes.TrimSpace(errRaw)), true
}

func mapAnalysis(data json.RawMessage) *models.AnalysisView {
	var a rawAnalysis
	_ = json.Unmarshal(data, &a)

	var nested struct {
		ScoreBreakdown json.RawMessage `json:"score_breakdown"`
		Skills         json.RawMessage `json:"skills"`
	}
	_ = json.Unmarshal(data, &nested)
	if isJSONObject(nested.ScoreBreakdown) {
		_ = json.Unmarshal(nested.ScoreBreakdown, &a.ScoreBreakdown)
	}
	if isJSONObject(nested.Skills) {
		_ = json.Unmarshal(nested.Skills, &a.Skills)
	}

	view := &models.AnalysisView{
		RoleDetected: strings.TrimSpace(coerceString(a.RoleDetected)),
		OverallScore: coerceScore(a.OverallScore),
		ScoreBreakdown: models.ScoreBreakdown{
			SkillsMatch:     coerceScore(a.ScoreBreakdown.SkillsMatch),
			ExperienceMatch: coerceScore(a.ScoreBreakdown.ExperienceMatch),
			EducationMatch:  coerceScore(a.ScoreBreakdown.EducationMatch),
		},
		Skills: models.SkillSets{
			Matched: stringSet(a.Skills.Matched),
			Missing: stringSet(a.Skills.Missing),
			Extra:   stringSet(a.Skills.Extra),
		},
		Strengths:   stringList(a.Strengths),
		Weaknesses:  stringList(a.Weaknesses),
		Suggestions: stringList(a.Suggestions),
	}

	if series, ok := decodeChartData(a.ChartData); ok {
		view.ChartSeries = series
	} else {
		view.ChartSeries = synthesizeChartSeries(view, a)
	}
	return view
}

func synthesizeChartSeries(view *models.AnalysisView, a rawAnalysis) models.ChartSeries {
	values := []int{
		coerceScore(a.TechStackCoverage),
		view.ScoreBreakdown.SkillsMatch,
		view.ScoreBreakdown.ExperienceMatch,
		view.ScoreBreakdown.EducationMatch,
		coerceScore(a.SemanticScore),
		view.OverallScore,
	}
	series := make(models.ChartSeries, 0, len(models.ChartMetrics))
	for i, label := range models.ChartMetrics {
		series = append(series, models.ChartPoint{Label: label, Value: values[i]})
	}
	return series
}

// decodeChartData copies a precomputed chart mapping in its original key
// order. It reports false when the field is missing, empty or not an object.
func decodeChartData(data json.RawMessage) (models.ChartSeries, bool) {
	if !isJSONObject(data) {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, false
	}
	series := models.ChartSeries{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		label, _ := keyTok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}
		series = append(series, models.ChartPoint{Label: label, Value: coerceScore(value)})
	}
	if len(series) == 0 {
		return nil, false
	}
	return series, true
}

// coerceScore turns any JSON value into an integer score in [0,100].
// Numbers are rounded, numeric strings are parsed, everything else is 0.
func coerceScore(data json.RawMessage) int {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0
		}
		parsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
		if err != nil {
			return 0
		}
		f = parsed
	}
	return clampScore(f)
}

func clampScore(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return int(math.Round(f))
}

func coerceString(data json.RawMessage) string {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ""
	}
	return s
}

// stringList keeps every non-blank string entry in order.
func stringList(data json.RawMessage) []string {
	out := []string{}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return out
	}
	for _, item := range items {
		if s := strings.TrimSpace(coerceString(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// stringSet is stringList without duplicates, keeping first occurrence.
func stringSet(data json.RawMessage) []string {
	list := stringList(data)
	seen := make(map[string]struct{}, len(list))
	out := list[:0]
	for _, s := range list {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func isJSONObject(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
