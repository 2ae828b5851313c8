package lifecycle

import (
	"strconv"
	"strings"
	"unicode"
)

// leadingInt reads an optionally signed integer at the start of s, after any
// leading whitespace. "20 kg" is 20, "-3" is -3, "about 5" is 0.
func leadingInt(s string) int64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
