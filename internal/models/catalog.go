package models

// RoleCatalog lists the selectable target roles in display order.
var RoleCatalog = []string{
	"Software Development Engineer",
	"Frontend Developer",
	"Backend Developer",
	"Full Stack Developer",
	"Data Scientist",
	"Data Analyst",
	"Machine Learning Engineer",
	"DevOps Engineer",
	"Product Intern",
}

func IsKnownRole(role string) bool {
	for _, r := range RoleCatalog {
		if r == role {
			return true
		}
	}
	return false
}

var demoView = AnalysisView{
	RoleDetected: "Software Development Engineer",
	OverallScore: 72,
	ScoreBreakdown: ScoreBreakdown{
		SkillsMatch:     65,
		ExperienceMatch: 80,
		EducationMatch:  70,
	},
	Skills: SkillSets{
		Matched: []string{"python", "react", "sql"},
		Missing: []string{"docker", "aws"},
		Extra:   []string{"c++"},
	},
	Strengths:   []string{},
	Weaknesses:  []string{},
	Suggestions: []string{},
	ChartSeries: ChartSeries{
		{Label: MetricTechStackCoverage, Value: 60},
		{Label: MetricSkillsMatch, Value: 65},
		{Label: MetricExperienceMatch, Value: 80},
		{Label: MetricEducationMatch, Value: 70},
		{Label: MetricSemanticSimilarity, Value: 55},
		{Label: MetricOverallScore, Value: 72},
	},
}

// DemoView returns the fixed view shown before any real submission completes.
func DemoView() *AnalysisView {
	return demoView.Clone()
}
