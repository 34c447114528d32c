package interview

import (
	"reflect"
	"testing"
)

func TestSynthesizeReadyReport(t *testing.T) {
	t.Parallel()

	report := Synthesize([]int{90, 90, 90, 90, 90})

	if report.AverageScore != 90 {
		t.Fatalf("expected average 90, got %v", report.AverageScore)
	}
	if report.Readiness != VerdictReady {
		t.Fatalf("expected %q, got %q", VerdictReady, report.Readiness)
	}
	if report.Technical != LevelStrong {
		t.Fatalf("expected technical %q, got %q", LevelStrong, report.Technical)
	}
	if report.Communication != LevelGood {
		t.Fatalf("expected communication %q, got %q", LevelGood, report.Communication)
	}
	if report.ProblemSolving != LevelStrong {
		t.Fatalf("expected problem solving %q, got %q", LevelStrong, report.ProblemSolving)
	}

	wantStrengths := []string{SkillTechnical, SkillCommunication, SkillProblemSolving}
	if !reflect.DeepEqual(report.Strengths, wantStrengths) {
		t.Fatalf("unexpected strengths: %v", report.Strengths)
	}
	if len(report.Weaknesses) != 0 {
		t.Fatalf("expected no weaknesses, got %v", report.Weaknesses)
	}
	if !reflect.DeepEqual(report.Feedback, []string{adviceAllGood}) {
		t.Fatalf("expected single fallback feedback, got %v", report.Feedback)
	}
}

func TestSynthesizeNotReadyReport(t *testing.T) {
	t.Parallel()

	report := Synthesize([]int{20, 20, 20})

	if report.Readiness != VerdictNotReady {
		t.Fatalf("expected %q, got %q", VerdictNotReady, report.Readiness)
	}
	if report.Technical != LevelWeak || report.ProblemSolving != LevelWeak {
		t.Fatalf("expected weak skills, got %q/%q", report.Technical, report.ProblemSolving)
	}
	if report.Communication != LevelNeedsImprovement {
		t.Fatalf("expected %q, got %q", LevelNeedsImprovement, report.Communication)
	}

	// Feedback sentences come in fixed skill order.
	want := []string{adviceTechnical, adviceCommunication, adviceProblemSolving}
	if !reflect.DeepEqual(report.Feedback, want) {
		t.Fatalf("unexpected feedback: %v", report.Feedback)
	}
}

func TestSynthesizeMixedThresholds(t *testing.T) {
	t.Parallel()

	// avg 72: Partially Ready, Technical Average, Communication Good,
	// ProblemSolving Average.
	report := Synthesize([]int{72, 72})

	if report.Readiness != VerdictPartiallyReady {
		t.Fatalf("expected %q, got %q", VerdictPartiallyReady, report.Readiness)
	}
	if report.Technical != LevelAverage {
		t.Fatalf("expected technical %q, got %q", LevelAverage, report.Technical)
	}
	if report.Communication != LevelGood {
		t.Fatalf("expected communication %q, got %q", LevelGood, report.Communication)
	}
	if report.ProblemSolving != LevelAverage {
		t.Fatalf("expected problem solving %q, got %q", LevelAverage, report.ProblemSolving)
	}

	if !reflect.DeepEqual(report.Strengths, []string{SkillCommunication}) {
		t.Fatalf("unexpected strengths: %v", report.Strengths)
	}
	if len(report.Weaknesses) != 0 {
		t.Fatalf("expected no weaknesses, got %v", report.Weaknesses)
	}
}

func TestSynthesizeEmptyHistory(t *testing.T) {
	t.Parallel()

	report := Synthesize(nil)

	if report.AverageScore != 0 {
		t.Fatalf("expected average 0, got %v", report.AverageScore)
	}
	if report.Readiness != VerdictNotReady {
		t.Fatalf("expected %q, got %q", VerdictNotReady, report.Readiness)
	}
}

func TestSynthesizeIsIdempotent(t *testing.T) {
	t.Parallel()

	scores := []int{90, 70, 40, 80, 60}
	first := Synthesize(scores)
	second := Synthesize(scores)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical reports, got %+v and %+v", first, second)
	}
}
