// Package intent turns free-form user queries into structured ranking or
// analytics requests. A fast regex pass handles the common phrasings; an
// optional chat model resolves anything the patterns miss.
package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// Operation names what the caller wants done.
type Operation string

const (
	// OpRank asks for a ranked catalog selection.
	OpRank Operation = "rank"
	// OpAnalytics asks for an aggregated event report.
	OpAnalytics Operation = "analytics"
)

// Intent is the structured form of a user query.
type Intent struct {
	Operation Operation
	Filters   map[string][]string
	Budget    *float64
	Limit     int
}

var (
	budgetPattern    = regexp.MustCompile(`(?i)\b(?:under|below|less than|at most|max)\s*\$?(\d+(?:\.\d+)?)`)
	limitPattern     = regexp.MustCompile(`(?i)\btop\s+(\d+)\b`)
	analyticsPattern = regexp.MustCompile(`(?i)\b(?:analytics|report|trend|trending|popular|stats|statistics)\b`)
	filterPattern    = regexp.MustCompile(`(?i)\b([a-z][a-z0-9_]*)\s*:\s*([^,;]+(?:,\s*[^,;:]+)*)`)
)

// Route parses a query with the regex patterns alone. ok is false when the
// query yields nothing structured and needs the chat fallback.
func Route(query string) (Intent, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Intent{}, false
	}

	out := Intent{Operation: OpRank, Filters: map[string][]string{}}

	if analyticsPattern.MatchString(query) {
		out.Operation = OpAnalytics
	}

	if m := budgetPattern.FindStringSubmatch(query); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			out.Budget = &v
		}
	}
	if m := limitPattern.FindStringSubmatch(query); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			out.Limit = n
		}
	}

	for _, m := range filterPattern.FindAllStringSubmatch(query, -1) {
		key := strings.ToLower(m[1])
		for _, value := range strings.Split(m[2], ",") {
			value = strings.TrimSpace(value)
			// The budget phrasing can wander into a value capture.
			value = budgetPattern.ReplaceAllString(value, "")
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			out.Filters[key] = append(out.Filters[key], value)
		}
	}

	resolved := out.Operation == OpAnalytics ||
		len(out.Filters) > 0 || out.Budget != nil || out.Limit > 0
	return out, resolved
}
