package schema

// typeProbe is one step of the sampled-data type ladder.
type typeProbe struct {
	Result Type
	Match  func(values []any, distinct int) bool
}

// typeLadder is tried in order; the first probe that matches decides the type.
var typeLadder = []typeProbe{
	{Result: TypeNumeric, Match: func(v []any, _ int) bool { return allValues(v, isNumber) }},
	{Result: TypeDatetime, Match: func(v []any, _ int) bool { return allValues(v, isTime) }},
	{Result: TypeBoolean, Match: func(v []any, _ int) bool { return allValues(v, isBoolToken) }},
	{Result: TypeCategorical, Match: func(v []any, distinct int) bool { return float64(distinct) < 0.5*float64(len(v)) }},
	{Result: TypeEmail, Match: func(v []any, _ int) bool { return anySample(v, MatchesEmail) }},
	{Result: TypePhone, Match: func(v []any, _ int) bool { return anySample(v, MatchesPhone) }},
	{Result: TypeIdentifier, Match: func(v []any, _ int) bool { return anySample(v, MatchesIdentifier) }},
}

const patternSampleSize = 10

// InferValueType infers the type of a column from its non-null values.
func InferValueType(values []any) Type {
	if len(values) == 0 {
		return TypeEmpty
	}
	distinct := countDistinct(values, ValueKey)
	for _, p := range typeLadder {
		if p.Match(values, distinct) {
			return p.Result
		}
	}
	return TypeText
}

func isNumber(v any) bool { _, ok := ToNumber(v); return ok }

func isTime(v any) bool { _, ok := ToTime(v); return ok }

func isBoolToken(v any) bool { _, ok := ToBool(v); return ok }

func allValues(values []any, pred func(any) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}

// anySample reports whether any of the first ten values matches.
func anySample(values []any, match func(string) bool) bool {
	n := min(len(values), patternSampleSize)
	for _, v := range values[:n] {
		if match(ValueKey(v)) {
			return true
		}
	}
	return false
}

func countDistinct(values []any, key func(any) string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[key(v)] = struct{}{}
	}
	return len(seen)
}

// distinctValues returns the distinct values in first-seen order.
func distinctValues(values []any, key func(any) string) []any {
	seen := make(map[string]struct{}, len(values))
	var out []any
	for _, v := range values {
		k := key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}
