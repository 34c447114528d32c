package interview

import "strings"

// Role is the job category detected from the job description. It
// parametrizes the question texts for the whole session.
type Role string

const (
	RoleReact    Role = "React"
	RolePython   Role = "Python"
	RoleSoftware Role = "Software"
)

// DetectRole classifies a job description into a role category. Matching is
// a case-insensitive substring check and the first match wins: "react" is
// checked before "python", anything else falls back to Software.
func DetectRole(jd string) Role {
	lower := strings.ToLower(jd)

	switch {
	case strings.Contains(lower, "react"):
		return RoleReact
	case strings.Contains(lower, "python"):
		return RolePython
	default:
		return RoleSoftware
	}
}
