package model

// Source identifies the analysis pass that produced a detection
type Source string

const (
	SourceTranscript Source = "transcript" // Speech-to-text pass
	SourceOCR        Source = "ocr"        // On-screen text pass
	SourceVisual     Source = "visual"     // Vision model pass
	SourceManual     Source = "manual"     // Operator-authored detection
)

// Detection is one reported risk occurrence from a single analysis pass.
// The passes run independently, so the same real-world occurrence is
// frequently reported multiple times with slightly different wording and
// offsets; clustering reconciles those afterwards. Detections are
// immutable once produced.
type Detection struct {
	Tag              string `json:"tag"`                         // Risk category name
	SubTag           string `json:"sub_tag,omitempty"`           // Sub-category, empty for the main tag record
	Grade            Grade  `json:"grade"`                       // Severity, N/A when the pass gave none
	DetectedText     string `json:"detected_text,omitempty"`     // Excerpt the pass flagged
	DetectedTimecode string `json:"detected_timecode,omitempty"` // mm:ss style, or a no-timecode sentinel
	Reason           string `json:"reason,omitempty"`            // Free-text justification
	Source           Source `json:"source,omitempty"`
}

// EvidenceGroup is a cluster of detections believed to describe the same
// real occurrence. Built once per reconciliation run; members are only
// appended during the clustering pass, never reshuffled.
type EvidenceGroup struct {
	RepresentativeText     string      `json:"representative_text"`
	RepresentativeTimecode string      `json:"representative_timecode,omitempty"`
	AllTexts               []string    `json:"all_texts"`
	AllTimecodes           []string    `json:"all_timecodes"`
	Members                []Detection `json:"members"`
}

// MaxGradeScore returns the highest member grade score in the group
func (g *EvidenceGroup) MaxGradeScore() int {
	max := 0
	for _, d := range g.Members {
		if s := d.Grade.Score(); s > max {
			max = s
		}
	}
	return max
}

// Finding is an independent evidentiary statement from the social-risk
// pass, used only as a fallback source of justification text.
type Finding struct {
	Timecode string `json:"timecode"`
	Detail   string `json:"detail"`
}

// LegalViolation is one structured violation from the legal assessment
type LegalViolation struct {
	Reference  string `json:"reference,omitempty"`  // Law or guideline cited
	Expression string `json:"expression"`           // Offending wording or depiction
	Severity   string `json:"severity,omitempty"`   // 高, 中, 低, or empty
	Timecode   string `json:"timecode,omitempty"`
}

// LegalCategory is the normalized three-way legal-compliance classification
type LegalCategory string

const (
	LegalOK     LegalCategory = "ok"     // No conflict identified
	LegalReview LegalCategory = "review" // Possible conflict, needs legal review
	LegalFix    LegalCategory = "fix"    // Conflict identified, must be fixed
)
