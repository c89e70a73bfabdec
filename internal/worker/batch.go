package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ykomori/riskfuse/internal/model"
)

// Processor reconciles a single report file
type Processor interface {
	ReconcileFile(ctx context.Context, path string) (*model.Result, error)
}

// ReconcileJob reconciles one report file
type ReconcileJob struct {
	Path      string
	Processor Processor
}

// Execute runs the reconciliation
func (j *ReconcileJob) Execute(ctx context.Context) Result {
	result, err := j.Processor.ReconcileFile(ctx, j.Path)
	return &ReconcileResult{
		Path:   j.Path,
		Result: result,
		Error:  err,
	}
}

// ReconcileResult is the outcome of reconciling one report file
type ReconcileResult struct {
	Path   string
	Result *model.Result
	Error  error
}

// GetError returns the error from the reconciliation
func (r *ReconcileResult) GetError() error {
	return r.Error
}

// BatchProcessor reconciles multiple report files concurrently. Runs
// are independent, so the only coordination is the worker pool itself.
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessPaths reconciles the given report files concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*ReconcileResult {
	if len(paths) == 0 {
		return []*ReconcileResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&ReconcileJob{
			Path:      path,
			Processor: b.processor,
		})
	}

	results := pool.Wait()

	out := make([]*ReconcileResult, len(results))
	for i, result := range results {
		out[i] = result.(*ReconcileResult)
	}
	return out
}

// ProcessListFile reads report paths from a list file and reconciles
// them concurrently.
func (b *BatchProcessor) ProcessListFile(ctx context.Context, listPath string) ([]*ReconcileResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read path list: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads report paths from a file (one per line,
// blank lines and # comments skipped, duplicates dropped).
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
