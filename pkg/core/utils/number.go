package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var floatPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseFloatPrefix reads the longest leading decimal number of s after
// trimming whitespace, so "100M" is 100 and "5%" is 5. It reports false when
// s does not start with a number.
func ParseFloatPrefix(s string) (float64, bool) {
	m := floatPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
