// Package policy derives the normalized legal category and resolves the
// combined legal/social action status from a fixed policy table.
package policy

import (
	"strings"

	"github.com/ykomori/riskfuse/internal/model"
)

// Raw legal grade labels the assessment pass emits
const (
	LabelNoConflict       = "抵触していない"
	LabelPossibleConflict = "抵触する可能性がある"
	LabelConflict         = "抵触している"
)

// severityScore maps a violation severity label to its weight
func severityScore(severity string) int {
	switch strings.TrimSpace(severity) {
	case "高":
		return 3
	case "中":
		return 2
	case "低":
		return 1
	default:
		return 0
	}
}

// DeriveLegalCategory normalizes the raw legal grade plus structured
// violations into the three-way category. With violations present the
// worst severity decides: 高 means fix, 中 means review. Anything milder
// falls back to classifying the raw grade label, so a lone 低 violation
// resolves exactly like having no violations at all. That quirk is kept
// as-is; see DESIGN.md.
func DeriveLegalCategory(rawGrade string, violations []model.LegalViolation) model.LegalCategory {
	maxSeverity := 0
	for _, v := range violations {
		if s := severityScore(v.Severity); s > maxSeverity {
			maxSeverity = s
		}
	}

	switch {
	case maxSeverity >= 3:
		return model.LegalFix
	case maxSeverity >= 2:
		return model.LegalReview
	default:
		return classifyRawGrade(rawGrade)
	}
}

// classifyRawGrade maps a raw legal grade label to a category: exact
// label match first, then keyword heuristics for free-form labels,
// defaulting to ok.
func classifyRawGrade(rawGrade string) model.LegalCategory {
	label := strings.TrimSpace(rawGrade)

	switch label {
	case LabelNoConflict:
		return model.LegalOK
	case LabelPossibleConflict:
		return model.LegalReview
	case LabelConflict:
		return model.LegalFix
	}

	// Free-form labels: negation first, then possibility, then any
	// conflict/violation wording.
	switch {
	case strings.Contains(label, "していない"), strings.Contains(label, "問題ない"):
		return model.LegalOK
	case strings.Contains(label, "可能性"), strings.Contains(label, "おそれ"):
		return model.LegalReview
	case strings.Contains(label, "抵触"), strings.Contains(label, "違反"):
		return model.LegalFix
	default:
		return model.LegalOK
	}
}
