package reconcile

import (
	"github.com/ykomori/riskfuse/internal/model"
	"github.com/ykomori/riskfuse/internal/policy"
)

// Consensus merges several independent runs of the risk pass over the
// same asset into one assessment, using the hybrid strategy of the
// original pipeline: the most severe social and legal evaluations win,
// tags survive only when reported by at least two runs (taking the most
// severe per-tag grade), and findings are deduplicated by detail text.
func Consensus(runs []*model.Assessment) *model.Assessment {
	if len(runs) == 0 {
		return &model.Assessment{Tags: []model.RiskTag{}}
	}
	if len(runs) == 1 {
		return runs[0]
	}

	selected := mostSevereRun(runs)

	merged := &model.Assessment{
		Social: selected.Social,
		Legal:  selected.Legal,
		Matrix: selected.Matrix,
		Tags:   consensusTags(runs),
	}
	merged.Social.Findings = dedupeFindings(collectFindings(runs, func(a *model.Assessment) []model.Finding {
		return a.Social.Findings
	}))
	merged.Legal.Findings = dedupeFindings(collectFindings(runs, func(a *model.Assessment) []model.Finding {
		return a.Legal.Findings
	}))
	return merged
}

// mostSevereRun picks the run carrying the worst social grade or the
// worst legal evaluation.
func mostSevereRun(runs []*model.Assessment) *model.Assessment {
	worstSocial := model.GradeNA
	worstLegal := model.LegalOK
	for _, r := range runs {
		if g := model.ParseGrade(r.Social.Grade); g.Score() > worstSocial.Score() {
			worstSocial = g
		}
		if c := policy.DeriveLegalCategory(r.Legal.Grade, r.Legal.Violations); legalRank(c) > legalRank(worstLegal) {
			worstLegal = c
		}
	}
	for _, r := range runs {
		if model.ParseGrade(r.Social.Grade) == worstSocial ||
			policy.DeriveLegalCategory(r.Legal.Grade, r.Legal.Violations) == worstLegal {
			return r
		}
	}
	return runs[0]
}

func legalRank(c model.LegalCategory) int {
	switch c {
	case model.LegalFix:
		return 2
	case model.LegalReview:
		return 1
	default:
		return 0
	}
}

// consensusTags keeps tags seen in two or more runs, selecting the most
// severe occurrence of each. First-seen order is preserved.
func consensusTags(runs []*model.Assessment) []model.RiskTag {
	var order []string
	occurrences := make(map[string][]model.RiskTag)
	for _, r := range runs {
		for _, t := range r.Tags {
			if t.Name == "" {
				continue
			}
			if _, ok := occurrences[t.Name]; !ok {
				order = append(order, t.Name)
			}
			occurrences[t.Name] = append(occurrences[t.Name], t)
		}
	}

	tags := []model.RiskTag{}
	for _, name := range order {
		list := occurrences[name]
		if len(list) < 2 {
			continue
		}
		best := list[0]
		for _, t := range list[1:] {
			if model.ParseGrade(t.Grade).Score() > model.ParseGrade(best.Grade).Score() {
				best = t
			}
		}
		tags = append(tags, best)
	}
	return tags
}

func collectFindings(runs []*model.Assessment, pick func(*model.Assessment) []model.Finding) []model.Finding {
	var all []model.Finding
	for _, r := range runs {
		all = append(all, pick(r)...)
	}
	return all
}

func dedupeFindings(findings []model.Finding) []model.Finding {
	seen := make(map[string]bool)
	out := make([]model.Finding, 0, len(findings))
	for _, f := range findings {
		if f.Detail == "" || seen[f.Detail] {
			continue
		}
		seen[f.Detail] = true
		out = append(out, f)
	}
	return out
}
