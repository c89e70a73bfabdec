// Package feedback applies operator corrections to a detection list.
// The revised list is re-run through the same reconciler before
// submission, so the operator sees exactly what the report will show.
package feedback

import (
	"fmt"
	"strings"

	"github.com/ykomori/riskfuse/internal/model"
)

// Action is the operation an operator requested for one tag entry
type Action string

const (
	ActionKeep   Action = "keep"
	ActionModify Action = "modify"
	ActionDelete Action = "delete"
	ActionAdd    Action = "add"
)

// TagFeedback is one operator correction. For modify, only the
// Corrected* fields that are set are applied; for add, they describe the
// new detection.
type TagFeedback struct {
	TagName           string `json:"tag_name"`
	SubTagName        string `json:"sub_tag_name,omitempty"`
	Action            Action `json:"action"`
	CorrectedGrade    string `json:"corrected_grade,omitempty"`
	CorrectedTimecode string `json:"corrected_timecode,omitempty"`
	CorrectedReason   string `json:"corrected_reason,omitempty"`
	CorrectedText     string `json:"corrected_text,omitempty"`
}

// Apply produces the revised detection list: deletions removed,
// modifications applied in place, additions appended with the manual
// source. Unmatched keep/modify/delete feedback is an error; it means
// the operator is correcting a detection that no longer exists.
func Apply(detections []model.Detection, feedbacks []TagFeedback) ([]model.Detection, error) {
	out := make([]model.Detection, len(detections))
	copy(out, detections)

	for _, fb := range feedbacks {
		switch fb.Action {
		case ActionKeep:
			if findDetection(out, fb) < 0 {
				return nil, fmt.Errorf("keep: no detection for tag %q sub-tag %q", fb.TagName, fb.SubTagName)
			}
		case ActionModify:
			i := findDetection(out, fb)
			if i < 0 {
				return nil, fmt.Errorf("modify: no detection for tag %q sub-tag %q", fb.TagName, fb.SubTagName)
			}
			out[i] = modify(out[i], fb)
		case ActionDelete:
			i := findDetection(out, fb)
			if i < 0 {
				return nil, fmt.Errorf("delete: no detection for tag %q sub-tag %q", fb.TagName, fb.SubTagName)
			}
			out = append(out[:i], out[i+1:]...)
		case ActionAdd:
			if strings.TrimSpace(fb.TagName) == "" {
				return nil, fmt.Errorf("add: tag name is required")
			}
			out = append(out, model.Detection{
				Tag:              fb.TagName,
				SubTag:           fb.SubTagName,
				Grade:            model.ParseGrade(fb.CorrectedGrade),
				DetectedText:     fb.CorrectedText,
				DetectedTimecode: fb.CorrectedTimecode,
				Reason:           fb.CorrectedReason,
				Source:           model.SourceManual,
			})
		default:
			return nil, fmt.Errorf("unknown feedback action %q", fb.Action)
		}
	}

	return out, nil
}

func findDetection(detections []model.Detection, fb TagFeedback) int {
	for i, d := range detections {
		if d.Tag == fb.TagName && d.SubTag == fb.SubTagName {
			return i
		}
	}
	return -1
}

func modify(d model.Detection, fb TagFeedback) model.Detection {
	if fb.CorrectedGrade != "" {
		d.Grade = model.ParseGrade(fb.CorrectedGrade)
	}
	if fb.CorrectedTimecode != "" {
		d.DetectedTimecode = fb.CorrectedTimecode
	}
	if fb.CorrectedReason != "" {
		d.Reason = fb.CorrectedReason
	}
	if fb.CorrectedText != "" {
		d.DetectedText = fb.CorrectedText
	}
	d.Source = model.SourceManual
	return d
}
