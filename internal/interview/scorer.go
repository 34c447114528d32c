package interview

// lowTimeFraction is the share of the tier's time limit below which a manual
// submission is considered rushed.
const lowTimeFraction = 0.2

// Score grades a submitted answer from its length and timing. The content is
// never evaluated semantically; length and time pressure serve as an
// engagement proxy. The result is always within [0, 100].
//
// The timeout penalty (-20) and the low-time penalty (-10) are mutually
// exclusive: a timed-out submission skips the remaining-time check.
func Score(answer string, timedOut bool, timeLeft, limit int) int {
	var score int

	switch {
	case len(answer) > 150:
		score = 90
	case len(answer) > 80:
		score = 80
	case len(answer) > 30:
		score = 70
	default:
		score = 40
	}

	if timedOut {
		score -= 20
	} else if float64(timeLeft) < float64(limit)*lowTimeFraction {
		score -= 10
	}

	if score < 0 {
		score = 0
	}

	return score
}
