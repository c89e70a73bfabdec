package policy

import "github.com/ykomori/riskfuse/internal/model"

// profileKey indexes the policy table
type profileKey struct {
	category model.LegalCategory
	grade    model.Grade
}

// defaultProfile is returned for any (category, grade) pair the table
// does not cover. Several cells are intentionally unpopulated in the
// source policy, so callers must not assume total coverage.
var defaultProfile = model.PolicyProfile{
	Badge:       "要確認",
	Description: "法務・社会的リスクの組み合わせが判定表にないため、担当者による確認が必要です。",
	BadgeStyle:  "badge-amber",
	MatrixStyle: "matrix-amber",
}

// profileTable maps (legal category, social grade) to action guidance.
// Only combinations with an agreed policy are listed.
var profileTable = map[profileKey]model.PolicyProfile{
	{model.LegalOK, model.GradeA}: {
		Badge:       "使用可能",
		Description: "セーフゾーン。法務・社会的リスクともに問題は検出されていません。",
		BadgeStyle:  "badge-green",
		MatrixStyle: "matrix-green",
	},
	{model.LegalOK, model.GradeB}: {
		Badge:       "使用可能",
		Description: "軽微な社会的リスクがありますが、そのまま使用できます。",
		BadgeStyle:  "badge-green",
		MatrixStyle: "matrix-green",
	},
	{model.LegalOK, model.GradeC}: {
		Badge:       "注意して使用",
		Description: "法的な問題はありませんが、社会的感度が中程度のため表現の再確認を推奨します。",
		BadgeStyle:  "badge-amber",
		MatrixStyle: "matrix-amber",
	},
	{model.LegalReview, model.GradeC}: {
		Badge:       "法務確認",
		Description: "法令に抵触する可能性があります。法務部門の確認を経てから使用してください。",
		BadgeStyle:  "badge-amber",
		MatrixStyle: "matrix-amber",
	},
	{model.LegalReview, model.GradeD}: {
		Badge:       "法務確認・修正検討",
		Description: "法務確認に加え、社会的リスクの高い表現の修正を検討してください。",
		BadgeStyle:  "badge-orange",
		MatrixStyle: "matrix-orange",
	},
	{model.LegalFix, model.GradeD}: {
		Badge:       "修正必須",
		Description: "法令に抵触する表現が含まれます。該当箇所を修正するまで使用できません。",
		BadgeStyle:  "badge-red",
		MatrixStyle: "matrix-red",
	},
	{model.LegalFix, model.GradeE}: {
		Badge:       "使用不可",
		Description: "法令抵触かつ社会的リスクが最高レベルです。この素材は使用できません。",
		BadgeStyle:  "badge-red",
		MatrixStyle: "matrix-red",
	},
}

// ResolveStatusProfile looks up the action status for a legal category
// and social grade, returning the amber default for unlisted pairs.
func ResolveStatusProfile(category model.LegalCategory, socialGrade model.Grade) model.PolicyProfile {
	if p, ok := profileTable[profileKey{category, socialGrade}]; ok {
		return p
	}
	return defaultProfile
}

// DefaultProfile exposes the fallback profile for callers that need to
// distinguish it (tests, rendering).
func DefaultProfile() model.PolicyProfile {
	return defaultProfile
}
