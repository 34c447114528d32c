package interview

import (
	"fmt"
	"math/rand/v2"
)

// noQuestion is returned for an unrecognized tier instead of failing. The
// tier enum is closed, so reaching it means a programming error upstream.
const noQuestion = "No question available."

// questionTemplates returns the two question templates per tier with the
// role name interpolated.
func questionTemplates(role Role) map[Difficulty][]string {
	return map[Difficulty][]string{
		DifficultyEasy: {
			fmt.Sprintf("What is %s?", role),
			fmt.Sprintf("Why is %s used in modern applications?", role),
		},
		DifficultyMedium: {
			fmt.Sprintf("How does %s handle data or state?", role),
			fmt.Sprintf("What are common challenges when working with %s?", role),
		},
		DifficultyHard: {
			fmt.Sprintf("Design a scalable %s-based system.", role),
			fmt.Sprintf("How would you optimize performance in a large %s application?", role),
		},
	}
}

// PickQuestion selects a question for the tier uniformly at random. Repeats
// across a session are permitted.
func PickQuestion(d Difficulty, role Role) string {
	list := questionTemplates(role)[d]
	if len(list) == 0 {
		return noQuestion
	}

	return list[rand.IntN(len(list))]
}
