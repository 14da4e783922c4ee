package pathmeta

import (
	"strconv"
	"strings"
)

// VerifyNumber parses s as a decimal integer and checks it against the
// inclusive range [min, max].
//
// Surrounding whitespace is ignored. The boolean is false when s is not a
// number or the value falls outside the range; callers then store the
// numeric sentinel 0.
func VerifyNumber(s string, min, max int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	if n < min || n > max {
		return 0, false
	}
	return n, true
}

// FindVerifiedNumber returns the index of the first digit run of exactly
// length digits whose value lies in [min, max].
//
// A run that fails validation is skipped and the scan resumes after it, so
// a catalog number such as "0042" does not hide a later "1979".
func FindVerifiedNumber(s string, min, max, length int) (int, bool) {
	start := 0
	for start < len(s) {
		pos, ok := FindNumericRun(s, start, length)
		if !ok {
			return 0, false
		}
		if _, valid := VerifyNumber(between(s, pos, pos+length), min, max); valid {
			return pos, true
		}
		start = pos + length
	}
	return 0, false
}
