package util

import "unicode/utf8"

const mask = "***"

// MaskSecret keeps the first visiblePrefix characters of s and masks the
// rest. Secrets no longer than twice visiblePrefix are fully masked so
// that short tokens never show more than half of themselves.
func MaskSecret(s string, visiblePrefix int) string {
	n := utf8.RuneCountInString(s)
	if visiblePrefix <= 0 || n <= 2*visiblePrefix {
		return mask
	}
	i := 0
	for pos := range s {
		if i == visiblePrefix {
			return s[:pos] + mask
		}
		i++
	}
	return mask
}
