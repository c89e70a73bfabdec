// Package timecode normalizes the heterogeneous timecode strings the
// analysis passes emit: "83", "1:23.5", "01:02:03", or sentinels meaning
// no timecode is applicable.
package timecode

import (
	"math"
	"strconv"
	"strings"
)

// Sentinels the passes use for "no timecode": still images and
// not-applicable markers.
var sentinels = map[string]bool{
	"静止画": true,
	"n/a": true,
	"-":   true,
}

// Parse converts a timecode string to seconds. The second return value
// is false for empty input, the known sentinels, unparsable fields, or
// more than three colon-separated fields. Supported forms are seconds,
// mm:ss and hh:mm:ss, with fractional seconds allowed.
func Parse(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || sentinels[strings.ToLower(s)] {
		return 0, false
	}

	fields := strings.Split(s, ":")
	if len(fields) > 3 {
		return 0, false
	}

	var seconds float64
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil || v < 0 {
			return 0, false
		}
		seconds = seconds*60 + v
	}

	return seconds, true
}

// Nearby reports whether two timecodes are within tolerance seconds of
// each other. Unknown timecodes are never considered nearby; merging on
// "unknown equals unknown" would collapse unrelated detections.
func Nearby(a, b string, toleranceSeconds float64) bool {
	sa, ok := Parse(a)
	if !ok {
		return false
	}
	sb, ok := Parse(b)
	if !ok {
		return false
	}
	return math.Abs(sa-sb) <= toleranceSeconds
}
