package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ykomori/riskfuse/internal/model"
)

const runnerReport = `{
  "risk": {
    "social": {
      "grade": "C",
      "findings": [
        {"timecode": "0:30", "detail": "喫煙シーンの検出"}
      ]
    },
    "legal": {
      "grade": "抵触する可能性がある",
      "violations": [
        {"reference": "景表法", "expression": "最高の効果", "severity": "中", "timecode": "1:10"}
      ]
    },
    "matrix": {"position": [1, 2]},
    "tags": [
      {
        "name": "喫煙",
        "grade": "C",
        "detected_text": "タバコを吸う場面",
        "detected_timecode": "0:30",
        "risk_level": 3
      },
      {
        "name": "誇大表現",
        "grade": "D",
        "detected_text": "最高の効果",
        "detected_timecode": "1:10",
        "risk_level": 2
      }
    ]
  }
}`

func writeTempReport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write report: %v", err)
	}
	return path
}

func TestReconcileFile(t *testing.T) {
	runner := NewRunner(model.DefaultConfig())
	path := writeTempReport(t, runnerReport)

	result, err := runner.ReconcileFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ReconcileFile: %v", err)
	}

	if result.SocialGrade != model.GradeD {
		t.Errorf("social grade = %s, want D", result.SocialGrade)
	}
	if result.LegalCategory != model.LegalReview {
		t.Errorf("legal category = %s, want review", result.LegalCategory)
	}
	if len(result.Groups) != 2 {
		t.Errorf("got %d groups, want 2", len(result.Groups))
	}
	if got := result.TagGrades["喫煙"]; got != model.GradeC {
		t.Errorf("喫煙 grade = %s, want C", got)
	}
}

func TestReconcileFile_CacheHit(t *testing.T) {
	runner := NewRunner(model.DefaultConfig())
	path := writeTempReport(t, runnerReport)

	first, err := runner.ReconcileFile(context.Background(), path)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := runner.ReconcileFile(context.Background(), path)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first.SocialGrade != second.SocialGrade || len(first.Groups) != len(second.Groups) {
		t.Error("cached result differs from the first run")
	}
}

func TestReconcileFile_CacheDisabled(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	runner := NewRunner(cfg)
	path := writeTempReport(t, runnerReport)

	if _, err := runner.ReconcileFile(context.Background(), path); err != nil {
		t.Fatalf("ReconcileFile without cache: %v", err)
	}
}

func TestReconcileFile_MissingFile(t *testing.T) {
	runner := NewRunner(model.DefaultConfig())
	if _, err := runner.ReconcileFile(context.Background(), "/nonexistent/report.json"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReconcileFile_InvalidJSON(t *testing.T) {
	runner := NewRunner(model.DefaultConfig())
	path := writeTempReport(t, "{not json")
	if _, err := runner.ReconcileFile(context.Background(), path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestReconcileFileWithFeedback(t *testing.T) {
	runner := NewRunner(model.DefaultConfig())
	reportPath := writeTempReport(t, runnerReport)

	fbPath := filepath.Join(t.TempDir(), "feedback.json")
	fb := `[
  {"tag_name": "誇大表現", "action": "delete"},
  {"tag_name": "喫煙", "action": "modify", "corrected_grade": "E"}
]`
	if err := os.WriteFile(fbPath, []byte(fb), 0644); err != nil {
		t.Fatalf("write feedback: %v", err)
	}

	result, err := runner.ReconcileFileWithFeedback(context.Background(), reportPath, fbPath)
	if err != nil {
		t.Fatalf("ReconcileFileWithFeedback: %v", err)
	}

	if _, ok := result.TagGrades["誇大表現"]; ok {
		t.Error("deleted tag still present in result")
	}
	if got := result.TagGrades["喫煙"]; got != model.GradeE {
		t.Errorf("modified tag grade = %s, want E", got)
	}
	if result.SocialGrade != model.GradeE {
		t.Errorf("social grade = %s, want E after modification", result.SocialGrade)
	}
}

func TestReconcileFileWithFeedback_UnmatchedFeedback(t *testing.T) {
	runner := NewRunner(model.DefaultConfig())
	reportPath := writeTempReport(t, runnerReport)

	fbPath := filepath.Join(t.TempDir(), "feedback.json")
	fb := `[{"tag_name": "存在しないタグ", "action": "delete"}]`
	if err := os.WriteFile(fbPath, []byte(fb), 0644); err != nil {
		t.Fatalf("write feedback: %v", err)
	}

	if _, err := runner.ReconcileFileWithFeedback(context.Background(), reportPath, fbPath); err == nil {
		t.Error("expected error for feedback on a missing tag")
	}
}

func TestReconcileRuns(t *testing.T) {
	runner := NewRunner(model.DefaultConfig())

	mild := &model.Assessment{
		Social: model.SocialAssessment{Grade: "B"},
		Legal:  model.LegalAssessment{Grade: "抵触していない"},
		Tags: []model.RiskTag{
			{Name: "喫煙", Grade: "B"},
		},
	}
	severe := &model.Assessment{
		Social: model.SocialAssessment{Grade: "D"},
		Legal:  model.LegalAssessment{Grade: "抵触していない"},
		Tags: []model.RiskTag{
			{Name: "喫煙", Grade: "D"},
		},
	}

	result := runner.ReconcileRuns([]*model.Assessment{mild, severe})
	if result.SocialGrade != model.GradeD {
		t.Errorf("social grade = %s, want D from the most severe run", result.SocialGrade)
	}
	if got := result.TagGrades["喫煙"]; got != model.GradeD {
		t.Errorf("喫煙 grade = %s, want D", got)
	}
}
