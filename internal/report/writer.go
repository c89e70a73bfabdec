package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ykomori/riskfuse/internal/model"
)

// Writer renders reconciliation results to files
type Writer struct {
	pretty        bool
	includeFooter bool
}

// NewWriter creates a writer with the given output options
func NewWriter(pretty, includeFooter bool) *Writer {
	return &Writer{pretty: pretty, includeFooter: includeFooter}
}

// WriteJSON writes the result as JSON
func (w *Writer) WriteJSON(result *model.Result, path string) error {
	var (
		data []byte
		err  error
	)
	if w.pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// WriteSummary writes a compact human-readable summary
func (w *Writer) WriteSummary(result *model.Result, path string) error {
	return os.WriteFile(path, []byte(w.Summary(result)), 0644)
}

// Summary renders the result as reviewer-facing text: overall grades,
// badge, per-tag grades, evidence groups in timeline order, and the
// burn-risk profile when present.
func (w *Writer) Summary(result *model.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## 総合評価\n")
	fmt.Fprintf(&b, "- 社会的感度: %s\n", result.SocialGrade)
	fmt.Fprintf(&b, "- 法務評価: %s\n", legalCategoryLabel(result.LegalCategory))
	fmt.Fprintf(&b, "- 判定: %s (%s)\n", result.Profile.Badge, result.Profile.Description)
	fmt.Fprintf(&b, "- マトリクス位置: [%d, %d]\n", result.Matrix[0], result.Matrix[1])

	if len(result.TagGrades) > 0 {
		fmt.Fprintf(&b, "\n## タグ別評価\n")
		names := make([]string, 0, len(result.TagGrades))
		for name := range result.TagGrades {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "- %s: %s\n", name, result.TagGrades[name])
		}
	}

	if len(result.Groups) > 0 {
		fmt.Fprintf(&b, "\n## 検出エビデンス (%d件)\n", len(result.Groups))
		for i, g := range result.Groups {
			tc := g.RepresentativeTimecode
			if tc == "" {
				tc = "N/A"
			}
			text := g.RepresentativeText
			if text == "" {
				text = "(検出テキストなし)"
			}
			fmt.Fprintf(&b, "%d. [%s] %s (%d件の検出)\n", i+1, tc, text, len(g.Members))
		}
	}

	if result.BurnRisk.Count > 0 {
		fmt.Fprintf(&b, "\n## 炎上リスク\n")
		fmt.Fprintf(&b, "- %s (%s) 平均リスク %.2f / %d件\n",
			result.BurnRisk.Grade, result.BurnRisk.Label, result.BurnRisk.Average, result.BurnRisk.Count)
	}

	if w.includeFooter {
		fmt.Fprintf(&b, "\n---\n本分析結果は参考用途のみを目的としており、社会的・法的リスクの不存在を保証するものではありません。\n")
	}

	return b.String()
}

func legalCategoryLabel(c model.LegalCategory) string {
	switch c {
	case model.LegalReview:
		return "抵触する可能性がある"
	case model.LegalFix:
		return "抵触している"
	default:
		return "抵触していない"
	}
}
