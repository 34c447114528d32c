package interview

import (
	"encoding/json"
	"os"
)

// Readiness verdicts derived from the average score.
const (
	VerdictReady          = "Ready for the Role"
	VerdictPartiallyReady = "Partially Ready"
	VerdictNotReady       = "Not Ready"
)

// Skill level labels used in the report breakdown.
const (
	LevelStrong           = "Strong"
	LevelGood             = "Good"
	LevelAverage          = "Average"
	LevelWeak             = "Weak"
	LevelNeedsImprovement = "Needs Improvement"
)

// Skill names, in report order.
const (
	SkillTechnical      = "Technical"
	SkillCommunication  = "Communication"
	SkillProblemSolving = "ProblemSolving"
)

const (
	adviceTechnical      = "Strengthen core technical fundamentals."
	adviceCommunication  = "Practice structuring clear and concise answers."
	adviceProblemSolving = "Work on breaking problems into logical steps."
	adviceAllGood        = "You are interview-ready. Continue practicing advanced scenarios."
)

// Report is a read-only summary computed over the final score history.
// Synthesizing it again from the same history yields the same report.
type Report struct {
	AverageScore   float64  `json:"average_score"`
	Readiness      string   `json:"hiring_readiness"`
	Technical      string   `json:"technical"`
	Communication  string   `json:"communication"`
	ProblemSolving string   `json:"problem_solving"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Feedback       []string `json:"feedback"`
}

// Synthesize builds the readiness report from the score history. An empty
// history yields an average of 0 and the lowest verdict.
func Synthesize(scores []int) *Report {
	avg := average(scores)

	r := &Report{AverageScore: avg}

	switch {
	case avg >= 75:
		r.Readiness = VerdictReady
	case avg >= 55:
		r.Readiness = VerdictPartiallyReady
	default:
		r.Readiness = VerdictNotReady
	}

	// Each skill is thresholded against the same average with its own
	// boundaries.
	r.Technical = gradeSkill(avg, 75, 55, LevelStrong, LevelAverage, LevelWeak)
	r.Communication = gradeSkill(avg, 70, 50, LevelGood, LevelAverage, LevelNeedsImprovement)
	r.ProblemSolving = gradeSkill(avg, 80, 60, LevelStrong, LevelAverage, LevelWeak)

	for _, skill := range []struct {
		name   string
		level  string
		advice string
	}{
		{SkillTechnical, r.Technical, adviceTechnical},
		{SkillCommunication, r.Communication, adviceCommunication},
		{SkillProblemSolving, r.ProblemSolving, adviceProblemSolving},
	} {
		switch skill.level {
		case LevelStrong, LevelGood:
			r.Strengths = append(r.Strengths, skill.name)
		case LevelWeak, LevelNeedsImprovement:
			r.Weaknesses = append(r.Weaknesses, skill.name)
			r.Feedback = append(r.Feedback, skill.advice)
		}
	}

	if len(r.Feedback) == 0 {
		r.Feedback = []string{adviceAllGood}
	}

	return r
}

// DumpToTmpFile writes the report as indented JSON to a temporary file and
// returns its name.
func (r *Report) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "interview_report_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}

	return file.Name(), nil
}

func gradeSkill(avg, high, mid float64, top, middle, low string) string {
	switch {
	case avg >= high:
		return top
	case avg >= mid:
		return middle
	default:
		return low
	}
}

func average(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}

	sum := 0
	for _, s := range scores {
		sum += s
	}

	return float64(sum) / float64(len(scores))
}
