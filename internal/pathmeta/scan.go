package pathmeta

// FindFirst returns the index of the first occurrence of ch in s.
//
// The boolean reports whether ch was found at all; an index of 0 with
// found == true means the character is the first byte of s.
func FindFirst(s string, ch byte) (int, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == ch {
			return i, true
		}
	}
	return 0, false
}

// FindLast returns the index of the last occurrence of ch in s.
func FindLast(s string, ch byte) (int, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ch {
			return i, true
		}
	}
	return 0, false
}

// CountOccurrences returns how many times ch appears in s.
func CountOccurrences(s string, ch byte) int {
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ch {
			count++
		}
	}
	return count
}

// FindNumericRun scans s from start and returns the index where the first
// run of ASCII digits of exactly length begins.
//
// Runs are maximal: "19790" holds a single five digit run and never
// satisfies length 4. A run is only accepted once a non-digit ends it, so a
// run that reaches the end of s never matches.
//
// Example:
//
//	FindNumericRun("Disc 12345 - 1979 - Live", 0, 4) // 13, true
//	FindNumericRun("Track 123", 0, 2)                // 0, false
//	FindNumericRun("Greatest Hits 1999", 0, 4)       // 0, false
func FindNumericRun(s string, start, length int) (int, bool) {
	if length <= 0 {
		return 0, false
	}
	if start < 0 {
		start = 0
	}

	runStart, runLen := 0, 0
	for i := start; i < len(s); i++ {
		if isDigit(s[i]) {
			if runLen == 0 {
				runStart = i
			}
			runLen++
			continue
		}
		if runLen == length {
			return runStart, true
		}
		runLen = 0
	}
	return 0, false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// left returns s[:i], clamped to the bounds of s.
func left(s string, i int) string {
	return s[:clamp(i, len(s))]
}

// right returns s[i:], clamped to the bounds of s.
func right(s string, i int) string {
	return s[clamp(i, len(s)):]
}

// between returns s[i:j], clamped to the bounds of s. An inverted range
// yields the empty string.
func between(s string, i, j int) string {
	i, j = clamp(i, len(s)), clamp(j, len(s))
	if i >= j {
		return ""
	}
	return s[i:j]
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
