package interview

// Difficulty governs the question pool and the per-question time limit.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Score thresholds for picking the next tier.
const (
	hardThreshold = 75
	easyThreshold = 40
)

// TimeLimit returns the answer time limit in seconds for the given tier.
func TimeLimit(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 60
	case DifficultyMedium:
		return 90
	default:
		return 120
	}
}

// NextDifficulty maps the latest score to the next question's tier. It is a
// pure function of the score alone.
func NextDifficulty(score int) Difficulty {
	switch {
	case score >= hardThreshold:
		return DifficultyHard
	case score < easyThreshold:
		return DifficultyEasy
	default:
		return DifficultyMedium
	}
}
