package docgen

import (
	"strconv"
	"strings"
)

// AggregateKind identifies a column reduction.
type AggregateKind string

const (
	AggregateSum           AggregateKind = "SUM"
	AggregateAvg           AggregateKind = "AVG"
	AggregateMin           AggregateKind = "MIN"
	AggregateMax           AggregateKind = "MAX"
	AggregateCount         AggregateKind = "COUNT"
	AggregateCountDistinct AggregateKind = "COUNT_DISTINCT"
	AggregateList          AggregateKind = "LIST"
	AggregateListDistinct  AggregateKind = "LIST_DISTINCT"
)

// ParseAggregateKind resolves a token modifier to an aggregate kind.
func ParseAggregateKind(s string) (AggregateKind, bool) {
	switch AggregateKind(strings.ToUpper(s)) {
	case AggregateSum:
		return AggregateSum, true
	case AggregateAvg:
		return AggregateAvg, true
	case AggregateMin:
		return AggregateMin, true
	case AggregateMax:
		return AggregateMax, true
	case AggregateCount:
		return AggregateCount, true
	case AggregateCountDistinct:
		return AggregateCountDistinct, true
	case AggregateList:
		return AggregateList, true
	case AggregateListDistinct:
		return AggregateListDistinct, true
	}
	return "", false
}

// Aggregate reduces a column of raw cell values to one summary string.
// Empty input yields "0" for numeric kinds and "" for list kinds.
func Aggregate(kind AggregateKind, values []any) string {
	switch kind {
	case AggregateSum:
		return formatNumber(sumValues(values))
	case AggregateAvg:
		if len(values) == 0 {
			return "0"
		}
		return formatNumber(sumValues(values) / float64(len(values)))
	case AggregateMin:
		return minMax(values, true)
	case AggregateMax:
		return minMax(values, false)
	case AggregateCount:
		return strconv.Itoa(len(values))
	case AggregateCountDistinct:
		return strconv.Itoa(len(distinctNonEmpty(values)))
	case AggregateList:
		return joinList(values, false)
	case AggregateListDistinct:
		return joinList(values, true)
	}
	return ""
}

func parseNumeric(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(stringify(value)), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func sumValues(values []any) float64 {
	var total float64
	for _, v := range values {
		// Non-numeric cells coerce to 0.
		n, _ := parseNumeric(v)
		total += n
	}
	return total
}

// minMax keeps the source system's comparison rules: a column with no
// numeric cell at all compares lexicographically, while a mixed column
// coerces its non-numeric cells to 0.
func minMax(values []any, min bool) string {
	if len(values) == 0 {
		return "0"
	}

	anyNumeric := false
	for _, v := range values {
		if _, ok := parseNumeric(v); ok {
			anyNumeric = true
			break
		}
	}

	if !anyNumeric {
		best := stringify(values[0])
		for _, v := range values[1:] {
			s := stringify(v)
			if (min && s < best) || (!min && s > best) {
				best = s
			}
		}
		return best
	}

	best, _ := parseNumeric(values[0])
	for _, v := range values[1:] {
		n, _ := parseNumeric(v)
		if (min && n < best) || (!min && n > best) {
			best = n
		}
	}
	return formatNumber(best)
}

func distinctNonEmpty(values []any) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range values {
		s := stringify(v)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func joinList(values []any, distinct bool) string {
	seen := make(map[string]bool)
	var parts []string
	for _, v := range values {
		s := normalizeListValue(stringify(v))
		if s == "" {
			continue
		}
		if distinct {
			if seen[s] {
				continue
			}
			seen[s] = true
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "_")
}

// normalizeListValue case-folds, trims, and strips inner spaces.
func normalizeListValue(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(strings.ToLower(s)), " ", "")
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
