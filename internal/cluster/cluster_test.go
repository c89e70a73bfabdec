package cluster

import (
	"testing"

	"github.com/ykomori/riskfuse/internal/model"
)

func det(tag, text, tc string, grade model.Grade) model.Detection {
	return model.Detection{
		Tag:              tag,
		Grade:            grade,
		DetectedText:     text,
		DetectedTimecode: tc,
	}
}

func TestCluster_MergesNearDuplicates(t *testing.T) {
	c := NewClusterer()
	groups := c.Cluster([]model.Detection{
		det("A", "foo bar", "0:10", model.GradeD),
		det("A", "foo baz", "0:11", model.GradeE),
	})

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if len(g.Members) != 2 {
		t.Errorf("expected 2 members, got %d", len(g.Members))
	}
	if g.RepresentativeText != "foo bar" {
		t.Errorf("representative text = %q, want %q", g.RepresentativeText, "foo bar")
	}
	if g.RepresentativeTimecode != "0:10" {
		t.Errorf("representative timecode = %q, want %q", g.RepresentativeTimecode, "0:10")
	}
	if len(g.AllTexts) != 2 || len(g.AllTimecodes) != 2 {
		t.Errorf("expected both texts and timecodes recorded, got %v / %v", g.AllTexts, g.AllTimecodes)
	}
}

func TestCluster_IdenticalPairSameGroupEitherOrder(t *testing.T) {
	a := det("A", "same text", "1:00", model.GradeB)
	b := det("B", "same text", "1:00", model.GradeC)

	c := NewClusterer()
	for _, order := range [][]model.Detection{{a, b}, {b, a}} {
		groups := c.Cluster(order)
		if len(groups) != 1 {
			t.Errorf("identical text+timecode split into %d groups", len(groups))
		}
	}
}

func TestCluster_FarApartTimecodesStaySeparate(t *testing.T) {
	c := NewClusterer()
	groups := c.Cluster([]model.Detection{
		det("A", "foo bar", "0:10", model.GradeC),
		det("A", "foo bar", "2:00", model.GradeC),
	})
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups for distant timecodes, got %d", len(groups))
	}
}

func TestCluster_DissimilarTextStaysSeparate(t *testing.T) {
	c := NewClusterer()
	groups := c.Cluster([]model.Detection{
		det("A", "喫煙シーン", "0:10", model.GradeC),
		det("A", "暴力描写のある場面", "0:10", model.GradeC),
	})
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups for dissimilar text, got %d", len(groups))
	}
}

func TestCluster_NoEvidenceDetectionsNeverMerge(t *testing.T) {
	c := NewClusterer()
	groups := c.Cluster([]model.Detection{
		det("A", "", "", model.GradeA),
		det("B", "", "", model.GradeB),
		det("C", "", "", model.GradeC),
	})
	if len(groups) != 3 {
		t.Fatalf("expected 3 singleton groups, got %d", len(groups))
	}
	for _, g := range groups {
		if len(g.Members) != 1 {
			t.Errorf("no-evidence group has %d members, want 1", len(g.Members))
		}
	}
}

func TestCluster_TextOnlyNeverMerges(t *testing.T) {
	// Both text similarity and timecode proximity are required; a missing
	// timecode is never "nearby" anything.
	c := NewClusterer()
	groups := c.Cluster([]model.Detection{
		det("A", "foo bar", "", model.GradeC),
		det("A", "foo bar", "", model.GradeC),
	})
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups when timecodes are absent, got %d", len(groups))
	}
}

func TestCluster_FirstQualifyingGroupWins(t *testing.T) {
	// The third detection is close to both earlier ones; it must join the
	// group created first.
	c := NewClusterer()
	groups := c.Cluster([]model.Detection{
		det("A", "foo bar", "0:10", model.GradeC),
		det("B", "unrelated wording entirely", "0:30", model.GradeC),
		det("C", "foo bar", "0:11", model.GradeC),
	})
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	for _, g := range groups {
		if g.RepresentativeText == "foo bar" && len(g.Members) != 2 {
			t.Errorf("first group should hold 2 members, got %d", len(g.Members))
		}
	}
}

func TestCluster_OutputOrdering(t *testing.T) {
	c := NewClusterer()
	groups := c.Cluster([]model.Detection{
		det("A", "late scene", "5:00", model.GradeB),
		det("B", "early scene", "0:05", model.GradeC),
		det("C", "no timecode here", "", model.GradeE),
	})
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].RepresentativeText != "early scene" {
		t.Errorf("first group = %q, want earliest timecode", groups[0].RepresentativeText)
	}
	if groups[1].RepresentativeText != "late scene" {
		t.Errorf("second group = %q, want later timecode", groups[1].RepresentativeText)
	}
	if groups[2].RepresentativeText != "no timecode here" {
		t.Errorf("groups without timecodes must sort last, got %q", groups[2].RepresentativeText)
	}
}

func TestCluster_TieBreakByGrade(t *testing.T) {
	c := NewClusterer()
	groups := c.Cluster([]model.Detection{
		det("A", "", "", model.GradeA),
		det("B", "", "", model.GradeE),
	})
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Members[0].Grade != model.GradeE {
		t.Errorf("among untimed groups the more severe grade sorts first, got %v", groups[0].Members[0].Grade)
	}
}

func TestCluster_DuplicateTextRecordedOnce(t *testing.T) {
	c := NewClusterer()
	groups := c.Cluster([]model.Detection{
		det("A", "foo bar", "0:10", model.GradeC),
		det("B", "foo bar", "0:10", model.GradeC),
		det("C", "foo bar", "0:11", model.GradeC),
	})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if len(g.AllTexts) != 1 {
		t.Errorf("identical text recorded %d times, want 1", len(g.AllTexts))
	}
	if len(g.AllTimecodes) != 2 {
		t.Errorf("expected 2 distinct timecodes, got %v", g.AllTimecodes)
	}
	if len(g.Members) != 3 {
		t.Errorf("expected all 3 members kept, got %d", len(g.Members))
	}
}

func TestCluster_Empty(t *testing.T) {
	c := NewClusterer()
	if groups := c.Cluster(nil); len(groups) != 0 {
		t.Errorf("expected no groups for empty input, got %d", len(groups))
	}
}
