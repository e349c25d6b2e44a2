package common

import (
	"strconv"
	"strings"
)

// ParsePositiveInt parses a positive integer query value. Empty input
// returns the fallback; malformed or non-positive input returns ok=false.
func ParsePositiveInt(value string, fallback int) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, true
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

// ParseIntOrDefault parses an integer query value, falling back on empty
// or unparsable input. Zero and negative values pass through untouched;
// callers that bound the range clamp downstream.
func ParseIntOrDefault(value string, fallback int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
