// Package cluster groups near-duplicate detections into evidence groups.
// The three analysis passes report the same occurrence independently with
// slightly different wording and offsets; clustering collapses those into
// one piece of evidence.
package cluster

import (
	"sort"
	"strings"

	"github.com/ykomori/riskfuse/internal/model"
	"github.com/ykomori/riskfuse/internal/textsim"
	"github.com/ykomori/riskfuse/internal/timecode"
)

// Clusterer performs greedy first-fit clustering of detections
type Clusterer struct {
	SimilarityThreshold float64 // 0-100, met or exceeded to merge
	ToleranceSeconds    float64 // max timecode distance to merge
}

// NewClusterer creates a clusterer with the default thresholds
func NewClusterer() *Clusterer {
	return &Clusterer{
		SimilarityThreshold: 70,
		ToleranceSeconds:    2,
	}
}

// Cluster processes detections in input order, joining each to the first
// existing group with both a similar text and a nearby timecode, or
// starting a new group otherwise.
//
// This is deliberately greedy, order-dependent, single-pass clustering,
// not transitive closure: two detections each close to a third can share
// a group without being close to each other, and reordering the input can
// change group boundaries. The goal is deduplicating near-identical
// reports of one occurrence, not globally optimal clustering.
func (c *Clusterer) Cluster(detections []model.Detection) []model.EvidenceGroup {
	groups := make([]*model.EvidenceGroup, 0, len(detections))

	for _, d := range detections {
		text := strings.TrimSpace(d.DetectedText)
		tc := strings.TrimSpace(d.DetectedTimecode)

		// Detections with no text and no timecode never merge; collapsing
		// unrelated "no evidence" records into one group would be wrong.
		if text == "" && tc == "" {
			groups = append(groups, newGroup(d, text, tc))
			continue
		}

		joined := false
		for _, g := range groups {
			if c.textMatches(g, text) && c.timecodeMatches(g, tc) {
				appendMember(g, d, text, tc)
				joined = true
				break
			}
		}
		if !joined {
			groups = append(groups, newGroup(d, text, tc))
		}
	}

	out := make([]model.EvidenceGroup, len(groups))
	for i, g := range groups {
		out[i] = *g
	}
	sortGroups(out)
	return out
}

// textMatches reports whether some text already in the group is close
// enough to t. Exact match short-circuits the similarity computation.
func (c *Clusterer) textMatches(g *model.EvidenceGroup, t string) bool {
	for _, existing := range g.AllTexts {
		if existing == t {
			return true
		}
		if textsim.Similarity(existing, t) >= c.SimilarityThreshold {
			return true
		}
	}
	return false
}

// timecodeMatches reports whether some timecode already in the group is
// within tolerance of tc.
func (c *Clusterer) timecodeMatches(g *model.EvidenceGroup, tc string) bool {
	for _, existing := range g.AllTimecodes {
		if timecode.Nearby(existing, tc, c.ToleranceSeconds) {
			return true
		}
	}
	return false
}

func newGroup(d model.Detection, text, tc string) *model.EvidenceGroup {
	g := &model.EvidenceGroup{
		Members: []model.Detection{d},
	}
	if text != "" {
		g.AllTexts = append(g.AllTexts, text)
		g.RepresentativeText = text
	}
	if tc != "" {
		g.AllTimecodes = append(g.AllTimecodes, tc)
		g.RepresentativeTimecode = tc
	}
	return g
}

// appendMember adds a detection to an existing group. Its text/timecode
// are recorded only when not already present; candidates already in the
// group are not re-checked for similarity on insertion.
func appendMember(g *model.EvidenceGroup, d model.Detection, text, tc string) {
	g.Members = append(g.Members, d)
	if text != "" && !contains(g.AllTexts, text) {
		g.AllTexts = append(g.AllTexts, text)
		if g.RepresentativeText == "" {
			g.RepresentativeText = text
		}
	}
	if tc != "" && !contains(g.AllTimecodes, tc) {
		g.AllTimecodes = append(g.AllTimecodes, tc)
		if g.RepresentativeTimecode == "" {
			g.RepresentativeTimecode = tc
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// sortGroups orders groups by parsed representative timecode ascending
// with unparsable timecodes last, breaking ties by the group's maximum
// member grade score descending.
func sortGroups(groups []model.EvidenceGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		ti, okI := timecode.Parse(groups[i].RepresentativeTimecode)
		tj, okJ := timecode.Parse(groups[j].RepresentativeTimecode)
		if okI != okJ {
			return okI
		}
		if okI && ti != tj {
			return ti < tj
		}
		return groups[i].MaxGradeScore() > groups[j].MaxGradeScore()
	})
}
