// Package evidence selects the best human-readable justification for a
// detection under a fixed priority order.
package evidence

import (
	"strings"

	"github.com/ykomori/riskfuse/internal/model"
)

// Placeholder shown when no justification text exists anywhere
const Placeholder = "検出情報なし"

// Text is a resolved justification with the timecode it pairs with
type Text struct {
	Expression string
	Timecode   string
}

// Resolve picks the justification for one detection, in strict priority:
//
//  1. A non-empty detected excerpt, paired with the caller's timecode
//     only; a timecode scraped from findings must never be attached to
//     unrelated text.
//  2. The first finding whose detail mentions the tag, sub-tag, or
//     detected text (case-insensitive substring), with its own timecode.
//  3. A non-empty reason, paired with the caller's timecode.
//  4. The placeholder, paired with the caller's timecode.
func Resolve(tagName, subTagName, detectedText, reason, detectedTimecode string, findings []model.Finding) Text {
	if text := strings.TrimSpace(detectedText); text != "" {
		return Text{Expression: text, Timecode: detectedTimecode}
	}

	if f, ok := matchFinding(findings, tagName, subTagName, detectedText); ok {
		return Text{Expression: f.Detail, Timecode: f.Timecode}
	}

	if r := strings.TrimSpace(reason); r != "" {
		return Text{Expression: r, Timecode: detectedTimecode}
	}

	return Text{Expression: Placeholder, Timecode: detectedTimecode}
}

// matchFinding returns the first finding whose detail contains any of
// the candidate strings, ignoring case and empty candidates.
func matchFinding(findings []model.Finding, candidates ...string) (model.Finding, bool) {
	for _, f := range findings {
		detail := strings.ToLower(f.Detail)
		for _, c := range candidates {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			if strings.Contains(detail, strings.ToLower(c)) {
				return f, true
			}
		}
	}
	return model.Finding{}, false
}
