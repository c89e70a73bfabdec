// Package pipeline orchestrates one reconciliation run: load or fetch
// the raw assessment, reconcile it, and hand the result back for
// rendering. The core stays pure; all I/O lives here.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ykomori/riskfuse/internal/cache"
	"github.com/ykomori/riskfuse/internal/feedback"
	"github.com/ykomori/riskfuse/internal/model"
	"github.com/ykomori/riskfuse/internal/reconcile"
	"github.com/ykomori/riskfuse/internal/report"
)

// Runner drives reconciliation over report files and backend projects
type Runner struct {
	reconciler *reconcile.Reconciler
	client     *report.Client
	cache      cache.Cache
	cacheTTL   model.CacheConfig
	config     *model.Config
}

// NewRunner creates a runner with the given configuration
func NewRunner(cfg *model.Config) *Runner {
	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}
	return &Runner{
		reconciler: reconcile.NewReconciler(cfg.Cluster),
		client:     report.NewClient(cfg.HTTP),
		cache:      c,
		cacheTTL:   cfg.Cache,
		config:     cfg,
	}
}

// ReconcileFile loads a report file and reconciles its risk section.
// Unchanged file content is served from the cache when enabled.
func (r *Runner) ReconcileFile(ctx context.Context, path string) (*model.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	key := cache.Key(data)
	if r.cache != nil {
		if cached, found := r.cache.Get(key); found {
			var result model.Result
			if err := json.Unmarshal(cached, &result); err == nil {
				return &result, nil
			}
			// Corrupt cache entry: drop it and recompute.
			_ = r.cache.Delete(key)
		}
	}

	assessment, err := report.Parse(data)
	if err != nil {
		return nil, err
	}

	result := r.reconciler.Reconcile(reconcile.InputFromAssessment(assessment))

	if r.cache != nil {
		if encoded, err := json.Marshal(&result); err == nil {
			_ = r.cache.Set(key, encoded, r.cacheTTL.TTL)
		}
	}

	return &result, nil
}

// ReconcileFileWithFeedback loads a report and an operator feedback
// file, applies the feedback to the flattened detections, and
// reconciles the revised set. Results are not cached because the
// feedback changes them independently of the report content.
func (r *Runner) ReconcileFileWithFeedback(ctx context.Context, reportPath, feedbackPath string) (*model.Result, error) {
	data, err := os.ReadFile(reportPath)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	assessment, err := report.Parse(data)
	if err != nil {
		return nil, err
	}

	fbData, err := os.ReadFile(feedbackPath)
	if err != nil {
		return nil, fmt.Errorf("read feedback: %w", err)
	}
	var feedbacks []feedback.TagFeedback
	if err := json.Unmarshal(fbData, &feedbacks); err != nil {
		return nil, fmt.Errorf("parse feedback: %w", err)
	}

	in := reconcile.InputFromAssessment(assessment)
	revised, err := feedback.Apply(in.Detections, feedbacks)
	if err != nil {
		return nil, fmt.Errorf("apply feedback: %w", err)
	}
	in.Detections = revised

	result := r.reconciler.Reconcile(in)
	return &result, nil
}

// ReconcileProject fetches a project's report from the backend and
// reconciles it.
func (r *Runner) ReconcileProject(ctx context.Context, projectID string) (*model.Result, error) {
	assessment, err := r.client.FetchAssessment(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetch assessment: %w", err)
	}
	result := r.reconciler.Reconcile(reconcile.InputFromAssessment(assessment))
	return &result, nil
}

// ReconcileRuns merges several assessment runs by consensus and
// reconciles the merged assessment.
func (r *Runner) ReconcileRuns(runs []*model.Assessment) *model.Result {
	merged := reconcile.Consensus(runs)
	result := r.reconciler.Reconcile(reconcile.InputFromAssessment(merged))
	return &result
}
