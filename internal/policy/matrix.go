package policy

import (
	"strings"

	"github.com/ykomori/riskfuse/internal/model"
)

// Fixed matrix axes: x is the legal evaluation (3 columns), y the social
// sensitivity grade (5 rows), index 0 best on both.
var (
	matrixXLabels = []string{LabelNoConflict, LabelPossibleConflict, LabelConflict}
	matrixYLabels = []string{"A", "B", "C", "D", "E"}
)

// ResolveMatrixPosition determines the (x, y) cell for the risk matrix.
// A recognized axis label overrides the externally supplied raw position
// for that coordinate; otherwise the raw position is used, or 0. Both
// coordinates are clamped into range.
func ResolveMatrixPosition(rawPosition []int, legalLabel, socialLabel string) [2]int {
	x, y := 0, 0
	if len(rawPosition) >= 2 {
		x, y = rawPosition[0], rawPosition[1]
	}

	if i := indexOf(matrixXLabels, legalLabel); i >= 0 {
		x = i
	}
	if i := indexOf(matrixYLabels, socialLabel); i >= 0 {
		y = i
	}

	return [2]int{
		clamp(x, 0, len(matrixXLabels)-1),
		clamp(y, 0, len(matrixYLabels)-1),
	}
}

// CategoryMatrixX returns the x index for a normalized legal category
func CategoryMatrixX(category model.LegalCategory) int {
	switch category {
	case model.LegalReview:
		return 1
	case model.LegalFix:
		return 2
	default:
		return 0
	}
}

func indexOf(labels []string, label string) int {
	label = strings.TrimSpace(label)
	if label == "" {
		return -1
	}
	for i, l := range labels {
		if l == label {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
