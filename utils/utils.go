package utils

import (
	"strings"
	"unicode/utf8"
)

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// SplitAndTrim splits a comma-separated list and drops empty entries.
func SplitAndTrim(list string) []string {
	out := make([]string, 0)
	for _, v := range strings.Split(list, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
