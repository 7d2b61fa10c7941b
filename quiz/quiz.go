// Package quiz models the true/false question blocks and lays them
// out as paginated tables with a repeating header bar.
package quiz

import (
	"fmt"
	"strings"
)

// Item is one true/false statement.
type Item struct {
	Text   string
	IsTrue bool
}

// Filter selects which items a booklet includes.
type Filter int

const (
	FilterAll Filter = iota
	FilterTrue
	FilterFalse
)

// ParseFilter maps the CLI spelling to a Filter.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(s) {
	case "", "all":
		return FilterAll, nil
	case "true", "true_only":
		return FilterTrue, nil
	case "false", "false_only":
		return FilterFalse, nil
	}
	return FilterAll, fmt.Errorf("quiz: unknown filter %q", s)
}

// Apply returns the items the filter keeps, preserving order.
func Apply(items []Item, f Filter) []Item {
	if f == FilterAll {
		return items
	}
	var out []Item
	for _, it := range items {
		if (f == FilterTrue) == it.IsTrue {
			out = append(out, it)
		}
	}
	return out
}

// DeriveTruth infers the truth flag from answer text that ends in the
// V/F convention ("... V" is true, "... F" is false). ok is false
// when the text carries no marker.
func DeriveTruth(answer string) (isTrue, ok bool) {
	t := strings.TrimSpace(answer)
	switch {
	case strings.HasSuffix(t, " V"), t == "V":
		return true, true
	case strings.HasSuffix(t, " F"), t == "F":
		return false, true
	}
	return false, false
}

// StripTruth removes a trailing V/F marker from answer text.
func StripTruth(answer string) string {
	t := strings.TrimSpace(answer)
	if t == "V" || t == "F" {
		return ""
	}
	if strings.HasSuffix(t, " V") || strings.HasSuffix(t, " F") {
		return strings.TrimSpace(t[:len(t)-2])
	}
	return t
}
