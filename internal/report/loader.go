// Package report moves assessment data in and out of the reconciler:
// loading the backend's final report JSON, fetching it over HTTP, and
// writing reconciliation results.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ykomori/riskfuse/internal/model"
)

// finalReport is the envelope the backend writes as final_report.json;
// only the risk section matters here.
type finalReport struct {
	Risk *model.Assessment `json:"risk"`
}

// Load reads an assessment from a report file. The file may be either a
// full final report (with a "risk" envelope) or a bare risk assessment.
func Load(path string) (*model.Assessment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	return Parse(data)
}

// Parse decodes assessment JSON, accepting both envelope forms
func Parse(data []byte) (*model.Assessment, error) {
	var envelope finalReport
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Risk != nil {
		return envelope.Risk, nil
	}

	var assessment model.Assessment
	if err := json.Unmarshal(data, &assessment); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &assessment, nil
}
