// Package reconcile wires clustering, grade algebra, policy resolution
// and evidence resolution into one pass over an asset's assessment.
// Every presentation surface consumes this package instead of carrying
// its own copy of the logic.
package reconcile

import (
	"strings"

	"github.com/ykomori/riskfuse/internal/cluster"
	"github.com/ykomori/riskfuse/internal/evidence"
	"github.com/ykomori/riskfuse/internal/grade"
	"github.com/ykomori/riskfuse/internal/model"
	"github.com/ykomori/riskfuse/internal/policy"
)

// Input is everything one reconciliation run needs. Detections must
// already be flattened (main tag and each sub-tag as separate records);
// FlattenTags produces that from a raw assessment.
type Input struct {
	Detections     []model.Detection
	Findings       []model.Finding
	Violations     []model.LegalViolation
	RawSocialGrade string
	RawLegalGrade  string
	RawMatrix      []int
	RiskLevels     map[string]int // tag/sub-tag name to 1..5 taxonomy risk
}

// Reconciler runs the deterministic reconciliation pipeline. It is pure:
// no I/O, no shared state, safe to run one instance per asset in
// parallel.
type Reconciler struct {
	clusterer *cluster.Clusterer
}

// NewReconciler creates a reconciler with the given clustering thresholds
func NewReconciler(cfg model.ClusterConfig) *Reconciler {
	return &Reconciler{
		clusterer: &cluster.Clusterer{
			SimilarityThreshold: cfg.SimilarityThreshold,
			ToleranceSeconds:    cfg.ToleranceSeconds,
		},
	}
}

// Reconcile clusters the detections, aggregates grades, derives the
// action status and resolves display text for every detection.
func (r *Reconciler) Reconcile(in Input) model.Result {
	groups := r.clusterer.Cluster(in.Detections)

	tagGrades := aggregateTagGrades(in.Detections)

	allGrades := make([]model.Grade, 0, len(in.Detections))
	for _, d := range in.Detections {
		allGrades = append(allGrades, d.Grade)
	}
	socialGrade := grade.AggregateAssetSocial(model.ParseGrade(in.RawSocialGrade), allGrades)

	category := policy.DeriveLegalCategory(in.RawLegalGrade, in.Violations)
	profile := policy.ResolveStatusProfile(category, socialGrade)
	matrix := policy.ResolveMatrixPosition(in.RawMatrix, in.RawLegalGrade, string(socialGrade))

	resolved := make([]model.ResolvedDetection, 0, len(in.Detections))
	for _, d := range in.Detections {
		text := evidence.Resolve(d.Tag, d.SubTag, d.DetectedText, d.Reason, d.DetectedTimecode, in.Findings)
		resolved = append(resolved, model.ResolvedDetection{
			Detection:  d,
			Expression: text.Expression,
			Timecode:   text.Timecode,
		})
	}

	return model.Result{
		Groups:        groups,
		TagGrades:     tagGrades,
		SocialGrade:   socialGrade,
		LegalCategory: category,
		Profile:       profile,
		Matrix:        matrix,
		Resolved:      resolved,
		BurnRisk:      BurnRisk(in.Detections, in.RiskLevels),
	}
}

// aggregateTagGrades folds every detection into its tag: a tag's grade is
// the max over its own record and all its sub-tag records.
func aggregateTagGrades(detections []model.Detection) map[string]model.Grade {
	grades := make(map[string]model.Grade)
	for _, d := range detections {
		if d.Tag == "" {
			continue
		}
		grades[d.Tag] = grade.Max([]model.Grade{grades[d.Tag], d.Grade})
	}
	return grades
}

// FlattenTags expands a raw assessment's nested tags into the flattened
// detection list the reconciler expects: one record for the main tag and
// one per sub-tag. Sub-tags inherit the parent's detected text and
// reason when their own are blank, the way the original burn-risk
// calculation did.
func FlattenTags(tags []model.RiskTag) []model.Detection {
	var out []model.Detection
	for _, t := range tags {
		out = append(out, model.Detection{
			Tag:              t.Name,
			Grade:            model.ParseGrade(t.Grade),
			DetectedText:     t.DetectedText,
			DetectedTimecode: t.DetectedTimecode,
			Reason:           t.Reason,
			Source:           model.Source(t.Source),
		})
		for _, s := range t.RelatedSubTags {
			out = append(out, model.Detection{
				Tag:              t.Name,
				SubTag:           s.Name,
				Grade:            model.ParseGrade(s.Grade),
				DetectedText:     firstNonEmpty(s.DetectedText, t.DetectedText),
				DetectedTimecode: firstNonEmpty(s.DetectedTimecode, t.DetectedTimecode),
				Reason:           firstNonEmpty(s.Reason, t.Reason),
				Source:           model.Source(firstNonEmpty(s.Source, t.Source)),
			})
		}
	}
	return out
}

// InputFromAssessment builds a reconciliation input from the raw risk
// section of a backend report. Social and legal findings are combined;
// both serve as fallback justification sources.
func InputFromAssessment(a *model.Assessment) Input {
	findings := make([]model.Finding, 0, len(a.Social.Findings)+len(a.Legal.Findings))
	findings = append(findings, a.Social.Findings...)
	findings = append(findings, a.Legal.Findings...)

	riskLevels := make(map[string]int)
	for _, t := range a.Tags {
		if t.RiskLevel > 0 {
			riskLevels[t.Name] = t.RiskLevel
		}
		for _, s := range t.RelatedSubTags {
			if s.RiskLevel > 0 {
				riskLevels[s.Name] = s.RiskLevel
			}
		}
	}

	return Input{
		Detections:     FlattenTags(a.Tags),
		Findings:       findings,
		Violations:     a.Legal.Violations,
		RawSocialGrade: a.Social.Grade,
		RawLegalGrade:  a.Legal.Grade,
		RawMatrix:      a.Matrix.Position,
		RiskLevels:     riskLevels,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
