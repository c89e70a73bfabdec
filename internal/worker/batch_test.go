package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/ykomori/riskfuse/internal/model"
)

// fakeProcessor counts calls and fails on demand
type fakeProcessor struct {
	calls    int32
	failPath string
}

func (p *fakeProcessor) ReconcileFile(ctx context.Context, path string) (*model.Result, error) {
	atomic.AddInt32(&p.calls, 1)
	if path == p.failPath {
		return nil, fmt.Errorf("broken report: %s", path)
	}
	return &model.Result{SocialGrade: model.GradeB}, nil
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	p := &fakeProcessor{}
	b := NewBatchProcessor(p, 3)

	paths := []string{"a.json", "b.json", "c.json", "d.json"}
	results := b.ProcessPaths(context.Background(), paths)

	if len(results) != len(paths) {
		t.Fatalf("expected %d results, got %d", len(paths), len(results))
	}
	if atomic.LoadInt32(&p.calls) != int32(len(paths)) {
		t.Errorf("expected %d calls, got %d", len(paths), p.calls)
	}
	for _, r := range results {
		if r.GetError() != nil {
			t.Errorf("unexpected error for %s: %v", r.Path, r.Error)
		}
		if r.Result == nil || r.Result.SocialGrade != model.GradeB {
			t.Errorf("result missing for %s", r.Path)
		}
	}
}

func TestBatchProcessor_PartialFailure(t *testing.T) {
	p := &fakeProcessor{failPath: "bad.json"}
	b := NewBatchProcessor(p, 2)

	results := b.ProcessPaths(context.Background(), []string{"ok.json", "bad.json"})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	failed := 0
	for _, r := range results {
		if r.Error != nil {
			failed++
			if r.Path != "bad.json" {
				t.Errorf("wrong path failed: %s", r.Path)
			}
		}
	}
	if failed != 1 {
		t.Errorf("expected exactly 1 failure, got %d", failed)
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	b := NewBatchProcessor(&fakeProcessor{}, 2)
	if results := b.ProcessPaths(context.Background(), nil); len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestReadPathsFromFile(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "reports.txt")
	content := `# reconciliation batch
reports/a.json

reports/b.json
reports/a.json
reports/c.json
`
	if err := os.WriteFile(listPath, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"reports/a.json", "reports/b.json", "reports/c.json"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}

	if _, err := ReadPathsFromFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing list file")
	}
}
