// Package utils parses loosely formatted form values.
package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	rxKeepNums   = regexp.MustCompile(`[^\d.\-]`)
	numberSpaces = strings.NewReplacer(" ", "", "\u00A0", "", "\u202F", "", "\u2009", "", "\t", "", ",", ".")
)

// ParseNumber accepts "60", " 0,45 ", "1 600" and similar hand-typed numbers.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = rxKeepNums.ReplaceAllString(numberSpaces.Replace(s), "")
	if s == "" || s == "-" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// IntOr rounds a parsed number to the nearest int, or returns def.
func IntOr(s string, def int) int {
	f, ok := ParseNumber(s)
	if !ok {
		return def
	}
	return int(math.Round(f))
}

func FloatOr(s string, def float64) float64 {
	f, ok := ParseNumber(s)
	if !ok {
		return def
	}
	return f
}

func BoolOr(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
