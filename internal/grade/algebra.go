// Package grade implements max-aggregation over the ordinal risk grades.
package grade

import "github.com/ykomori/riskfuse/internal/model"

// Max returns the grade with the highest score in the list, N/A when the
// list is empty.
func Max(grades []model.Grade) model.Grade {
	max := model.GradeNA
	for _, g := range grades {
		if g.Score() > max.Score() {
			max = g
		}
	}
	return max
}

// AggregateTag combines a tag's own grade with the grades of all its
// sub-tags. A tag is exactly as severe as its worst component.
func AggregateTag(tagGrade model.Grade, subTagGrades []model.Grade) model.Grade {
	all := make([]model.Grade, 0, len(subTagGrades)+1)
	all = append(all, tagGrade)
	all = append(all, subTagGrades...)
	return Max(all)
}

// AggregateAssetSocial combines the raw holistic social grade with every
// tag and sub-tag grade. The displayed social grade can never be lower
// than the worst individual tag, even when the holistic assessment
// scored the asset lower.
func AggregateAssetSocial(rawSocial model.Grade, tagAndSubTagGrades []model.Grade) model.Grade {
	all := make([]model.Grade, 0, len(tagAndSubTagGrades)+1)
	all = append(all, rawSocial)
	all = append(all, tagAndSubTagGrades...)
	return Max(all)
}
