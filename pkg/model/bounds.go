package model

import (
	"math"
	"strconv"
	"strings"
)

// ParseMaxBound converts a `max` attribute into an integer bound. Fractional
// values are floored so `length > bound` keeps the numeric meaning of the
// attribute. Empty or malformed attributes yield nil.
func ParseMaxBound(attr string) *int {
	return parseBound(attr, math.Floor)
}

// ParseMinBound converts a `min` attribute into an integer bound. Fractional
// values are ceiled so `length < bound` keeps the numeric meaning of the
// attribute. Empty or malformed attributes yield nil.
func ParseMinBound(attr string) *int {
	return parseBound(attr, math.Ceil)
}

// Bound is a small helper for building descriptors by hand.
func Bound(v int) *int {
	return &v
}

func parseBound(attr string, round func(float64) float64) *int {
	trimmed := strings.TrimSpace(attr)
	if trimmed == "" {
		return nil
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	rounded := round(f)
	if rounded > math.MaxInt32 || rounded < math.MinInt32 {
		return nil
	}
	n := int(rounded)
	return &n
}
