package model

// RiskSubTag is a nested sub-category entry inside a RiskTag, exactly as
// the backend's risk assessment JSON carries it.
type RiskSubTag struct {
	Name             string `json:"name"`
	Grade            string `json:"grade"`
	Reason           string `json:"reason,omitempty"`
	DetectedText     string `json:"detected_text,omitempty"`
	DetectedTimecode string `json:"detected_timecode,omitempty"`
	Source           string `json:"source,omitempty"`
	RiskLevel        int    `json:"risk_level,omitempty"` // 1..5 taxonomy risk, 1 riskiest
}

// RiskTag is one detected risk category with its related sub-tags
type RiskTag struct {
	Name             string       `json:"name"`
	Grade            string       `json:"grade"`
	Reason           string       `json:"reason,omitempty"`
	DetectedText     string       `json:"detected_text,omitempty"`
	DetectedTimecode string       `json:"detected_timecode,omitempty"`
	Source           string       `json:"source,omitempty"`
	RiskLevel        int          `json:"risk_level,omitempty"`
	RelatedSubTags   []RiskSubTag `json:"related_sub_tags,omitempty"`
}

// SocialAssessment is the raw social-sensitivity section of the report
type SocialAssessment struct {
	Grade    string    `json:"grade"`
	Reason   string    `json:"reason,omitempty"`
	Findings []Finding `json:"findings,omitempty"`
}

// LegalAssessment is the raw legal-compliance section of the report
type LegalAssessment struct {
	Grade           string           `json:"grade"`
	Reason          string           `json:"reason,omitempty"`
	Recommendations string           `json:"recommendations,omitempty"`
	Violations      []LegalViolation `json:"violations,omitempty"`
	Findings        []Finding        `json:"findings,omitempty"`
}

// Matrix is the raw risk-matrix section supplied by the assessment pass.
// Position may be absent or out of range; the policy resolver clamps it.
type Matrix struct {
	XAxis    string `json:"x_axis,omitempty"`
	YAxis    string `json:"y_axis,omitempty"`
	Position []int  `json:"position,omitempty"`
}

// Assessment is the risk section of the backend's final report: the raw,
// unreconciled output of the analysis passes.
type Assessment struct {
	Social SocialAssessment `json:"social"`
	Legal  LegalAssessment  `json:"legal"`
	Matrix Matrix           `json:"matrix"`
	Tags   []RiskTag        `json:"tags"`
}

// PolicyProfile is the display and action guidance resolved from a
// (LegalCategory, Grade) pair.
type PolicyProfile struct {
	Badge       string `json:"badge"`
	Description string `json:"description"`
	BadgeStyle  string `json:"badge_style"`
	MatrixStyle string `json:"matrix_style"`
}

// ResolvedDetection pairs a detection with the best human-readable
// justification the evidence resolver could find for it.
type ResolvedDetection struct {
	Detection  Detection `json:"detection"`
	Expression string    `json:"expression"`
	Timecode   string    `json:"timecode,omitempty"`
}

// BurnEntry is one tag or sub-tag contributing to the burn-risk profile
type BurnEntry struct {
	Name         string `json:"name"`
	Risk         int    `json:"risk"` // 1..5, 1 riskiest
	Label        string `json:"label"`
	Type         string `json:"type"` // "tag" or "subtag"
	DetectedText string `json:"detected_text,omitempty"`
	Reason       string `json:"reason,omitempty"`
	ParentTag    string `json:"parent_tag,omitempty"`
}

// BurnProfile summarizes taxonomy risk levels across detected tags
type BurnProfile struct {
	Count   int         `json:"count"`
	Average float64     `json:"average,omitempty"`
	Grade   Grade       `json:"grade,omitempty"`
	Label   string      `json:"label,omitempty"`
	Min     int         `json:"min,omitempty"`
	Max     int         `json:"max,omitempty"`
	Details []BurnEntry `json:"details"`
}

// Result is the reconciled view of one asset's assessment: deduplicated
// evidence, aggregated grades, and the derived action status.
type Result struct {
	Groups        []EvidenceGroup     `json:"groups"`
	TagGrades     map[string]Grade    `json:"tag_grades"`
	SocialGrade   Grade               `json:"social_grade"`
	LegalCategory LegalCategory       `json:"legal_category"`
	Profile       PolicyProfile       `json:"profile"`
	Matrix        [2]int              `json:"matrix"`
	Resolved      []ResolvedDetection `json:"resolved"`
	BurnRisk      BurnProfile         `json:"burn_risk"`
}
