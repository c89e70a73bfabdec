package reconcile

import (
	"testing"

	"github.com/ykomori/riskfuse/internal/model"
)

func run(socialGrade, legalGrade string, tags ...model.RiskTag) *model.Assessment {
	return &model.Assessment{
		Social: model.SocialAssessment{Grade: socialGrade},
		Legal:  model.LegalAssessment{Grade: legalGrade},
		Tags:   tags,
	}
}

func TestConsensus_MostSevereRunSelected(t *testing.T) {
	runs := []*model.Assessment{
		run("B", "抵触していない"),
		run("D", "抵触していない"),
		run("C", "抵触していない"),
	}
	merged := Consensus(runs)
	if merged.Social.Grade != "D" {
		t.Errorf("social grade = %q, want the most severe run's D", merged.Social.Grade)
	}
}

func TestConsensus_MajorityVoteTags(t *testing.T) {
	tag := func(name, grade string) model.RiskTag {
		return model.RiskTag{Name: name, Grade: grade}
	}
	runs := []*model.Assessment{
		run("C", "抵触していない", tag("喫煙", "C"), tag("暴力", "B")),
		run("C", "抵触していない", tag("喫煙", "D")),
		run("C", "抵触していない", tag("飲酒", "B")),
	}

	merged := Consensus(runs)
	if len(merged.Tags) != 1 {
		t.Fatalf("expected only the twice-seen tag, got %d tags", len(merged.Tags))
	}
	if merged.Tags[0].Name != "喫煙" {
		t.Errorf("surviving tag = %q, want 喫煙", merged.Tags[0].Name)
	}
	// The most severe occurrence of the tag wins.
	if merged.Tags[0].Grade != "D" {
		t.Errorf("surviving tag grade = %q, want D", merged.Tags[0].Grade)
	}
}

func TestConsensus_FindingsDeduplicated(t *testing.T) {
	a := run("C", "抵触していない")
	a.Social.Findings = []model.Finding{
		{Timecode: "0:10", Detail: "重複する指摘"},
	}
	b := run("C", "抵触していない")
	b.Social.Findings = []model.Finding{
		{Timecode: "0:11", Detail: "重複する指摘"},
		{Timecode: "0:30", Detail: "別の指摘"},
	}

	merged := Consensus([]*model.Assessment{a, b})
	if len(merged.Social.Findings) != 2 {
		t.Fatalf("expected 2 deduplicated findings, got %d", len(merged.Social.Findings))
	}
	if merged.Social.Findings[0].Detail != "重複する指摘" || merged.Social.Findings[1].Detail != "別の指摘" {
		t.Errorf("findings = %v", merged.Social.Findings)
	}
}

func TestConsensus_SingleRunPassesThrough(t *testing.T) {
	only := run("B", "抵触している", model.RiskTag{Name: "単独", Grade: "B"})
	merged := Consensus([]*model.Assessment{only})
	if merged != only {
		t.Error("single run should pass through unchanged")
	}
}

func TestConsensus_Empty(t *testing.T) {
	merged := Consensus(nil)
	if merged == nil || len(merged.Tags) != 0 {
		t.Errorf("empty input should produce an empty assessment, got %+v", merged)
	}
}

func TestConsensus_LegalSeverityWins(t *testing.T) {
	runs := []*model.Assessment{
		run("C", "抵触していない"),
		run("A", "抵触している"),
	}
	merged := Consensus(runs)
	// The C run carries the worst social grade and appears first, so it
	// is selected; the strategy picks one run rather than mixing fields.
	if merged.Social.Grade != "C" {
		t.Errorf("selected run social grade = %q, want C", merged.Social.Grade)
	}
}

func TestBurnRisk(t *testing.T) {
	dets := []model.Detection{
		{Tag: "喫煙", Grade: model.GradeC, DetectedText: "タバコ"},
		{Tag: "喫煙", SubTag: "電子タバコ", Grade: model.GradeB},
		{Tag: "飲酒", Grade: model.GradeB},
	}
	levels := map[string]int{"喫煙": 1, "電子タバコ": 2, "飲酒": 4}

	p := BurnRisk(dets, levels)
	if p.Count != 3 {
		t.Fatalf("count = %d, want 3", p.Count)
	}
	// (1+2+4)/3 = 2.33 → grade D on the inverted scale.
	if p.Average != 2.33 {
		t.Errorf("average = %v, want 2.33", p.Average)
	}
	if p.Grade != model.GradeD {
		t.Errorf("grade = %v, want D", p.Grade)
	}
	if p.Min != 1 || p.Max != 4 {
		t.Errorf("min/max = %d/%d, want 1/4", p.Min, p.Max)
	}
	// Details sorted riskiest (lowest level) first.
	if p.Details[0].Name != "喫煙" || p.Details[0].Type != "tag" {
		t.Errorf("first detail = %+v, want 喫煙 tag", p.Details[0])
	}
	if p.Details[1].ParentTag != "喫煙" {
		t.Errorf("subtag parent = %q, want 喫煙", p.Details[1].ParentTag)
	}
}

func TestBurnRisk_SkipsUnknownLevels(t *testing.T) {
	dets := []model.Detection{
		{Tag: "既知", Grade: model.GradeC},
		{Tag: "未知", Grade: model.GradeC},
	}
	p := BurnRisk(dets, map[string]int{"既知": 3})
	if p.Count != 1 {
		t.Errorf("count = %d, want 1 (unknown level skipped)", p.Count)
	}
	if p.Grade != model.GradeC {
		t.Errorf("grade = %v, want C", p.Grade)
	}
}

func TestBurnRisk_Empty(t *testing.T) {
	p := BurnRisk(nil, nil)
	if p.Count != 0 || len(p.Details) != 0 {
		t.Errorf("empty input should yield empty profile, got %+v", p)
	}
}

func TestBurnRisk_DuplicateEntriesCountOnce(t *testing.T) {
	dets := []model.Detection{
		{Tag: "喫煙", Grade: model.GradeC},
		{Tag: "喫煙", Grade: model.GradeD},
	}
	p := BurnRisk(dets, map[string]int{"喫煙": 2})
	if p.Count != 1 {
		t.Errorf("duplicate tag counted %d times, want 1", p.Count)
	}
}
