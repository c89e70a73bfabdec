package reconcile

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ykomori/riskfuse/internal/model"
)

// BurnRisk summarizes the taxonomy risk levels (1..5, 1 riskiest) of the
// detected tags and sub-tags into a single profile. A tag or sub-tag
// contributes once; entries without a known risk level are skipped.
func BurnRisk(detections []model.Detection, riskLevels map[string]int) model.BurnProfile {
	if len(detections) == 0 {
		return model.BurnProfile{Details: []model.BurnEntry{}}
	}

	var entries []model.BurnEntry
	seen := make(map[string]bool)

	for i, d := range detections {
		entryType := "tag"
		name := d.Tag
		parent := ""
		if d.SubTag != "" {
			entryType = "subtag"
			name = d.SubTag
			parent = d.Tag
		}

		risk, ok := riskLevels[name]
		if !ok || risk < 1 || risk > 5 {
			continue
		}

		display := strings.TrimSpace(name)
		if display == "" {
			display = fmt.Sprintf("%s_%d", strings.ToUpper(entryType), i+1)
		}
		key := entryType + ":" + display
		if seen[key] {
			continue
		}
		seen[key] = true

		entries = append(entries, model.BurnEntry{
			Name:         display,
			Risk:         risk,
			Label:        riskLabel(float64(risk)),
			Type:         entryType,
			DetectedText: strings.TrimSpace(d.DetectedText),
			Reason:       strings.TrimSpace(d.Reason),
			ParentTag:    parent,
		})
	}

	if len(entries) == 0 {
		return model.BurnProfile{Details: []model.BurnEntry{}}
	}

	sum, min, max := 0, entries[0].Risk, entries[0].Risk
	for _, e := range entries {
		sum += e.Risk
		if e.Risk < min {
			min = e.Risk
		}
		if e.Risk > max {
			max = e.Risk
		}
	}
	avg := float64(sum) / float64(len(entries))

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Risk < entries[j].Risk
	})

	return model.BurnProfile{
		Count:   len(entries),
		Average: math.Round(avg*100) / 100,
		Grade:   riskGrade(avg),
		Label:   riskLabel(avg),
		Min:     min,
		Max:     max,
		Details: entries,
	}
}

// riskGrade maps an average taxonomy risk to a grade. The taxonomy scale
// is inverted: 1 is the riskiest, so low averages grade worst.
func riskGrade(v float64) model.Grade {
	switch {
	case v <= 1.5:
		return model.GradeE
	case v <= 2.5:
		return model.GradeD
	case v <= 3.5:
		return model.GradeC
	case v <= 4.5:
		return model.GradeB
	default:
		return model.GradeA
	}
}

func riskLabel(v float64) string {
	switch {
	case v <= 1.5:
		return "炎上リスク 極めて高い"
	case v <= 2.5:
		return "炎上リスク 高い"
	case v <= 3.5:
		return "炎上リスク 中程度"
	case v <= 4.5:
		return "炎上リスク やや低い"
	default:
		return "炎上リスク 非常に低い"
	}
}
