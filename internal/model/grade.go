package model

// Grade is the ordinal risk severity used across the assessment:
// N/A (no signal) through A (lowest risk) to E (highest risk).
type Grade string

const (
	GradeNA Grade = "N/A"
	GradeA  Grade = "A"
	GradeB  Grade = "B"
	GradeC  Grade = "C"
	GradeD  Grade = "D"
	GradeE  Grade = "E"
)

// Score returns the numeric position of the grade in the total order.
// Unknown values score as N/A.
func (g Grade) Score() int {
	switch g {
	case GradeA:
		return 1
	case GradeB:
		return 2
	case GradeC:
		return 3
	case GradeD:
		return 4
	case GradeE:
		return 5
	default:
		return 0
	}
}

// ParseGrade normalizes a raw grade label. Anything outside the known
// vocabulary collapses to N/A rather than failing; partial AI output is
// expected and the result must always render.
func ParseGrade(raw string) Grade {
	switch Grade(raw) {
	case GradeA, GradeB, GradeC, GradeD, GradeE:
		return Grade(raw)
	default:
		return GradeNA
	}
}
