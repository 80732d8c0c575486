package quality

import (
	"math"
	"slices"

	"ndmo-quality/internal/schema"
)

// MetricSet holds a per-column fraction and its mean across columns.
type MetricSet struct {
	Columns map[string]float64 `json:"columns" yaml:"columns"`
	Overall float64            `json:"overall" yaml:"overall"`
}

// Metrics are the data-level quality fractions of a frame.
type Metrics struct {
	Completeness MetricSet `json:"completeness" yaml:"completeness"`
	Uniqueness   MetricSet `json:"uniqueness" yaml:"uniqueness"`
	Validity     MetricSet `json:"validity" yaml:"validity"`
	OverallScore float64   `json:"overall_score" yaml:"overall_score"`
}

// ComputeMetrics measures completeness (present / rows), uniqueness
// (distinct / rows) and validity per column. Text validity excludes empty
// strings, numeric validity excludes infinities, other kinds are fully
// valid. Every fraction on an empty frame is 0.
func ComputeMetrics(f *Frame) Metrics {
	m := Metrics{
		Completeness: MetricSet{Columns: map[string]float64{}},
		Uniqueness:   MetricSet{Columns: map[string]float64{}},
		Validity:     MetricSet{Columns: map[string]float64{}},
	}
	if f.Rows() == 0 || len(f.Columns) == 0 {
		for _, s := range f.Columns {
			m.Completeness.Columns[s.Name] = 0
			m.Uniqueness.Columns[s.Name] = 0
			m.Validity.Columns[s.Name] = 0
		}
		return m
	}

	total := float64(f.Rows())
	for _, s := range f.Columns {
		m.Completeness.Columns[s.Name] = float64(len(s.nonNull())) / total
		m.Uniqueness.Columns[s.Name] = float64(s.distinct()) / total
		m.Validity.Columns[s.Name] = validity(s)
	}
	m.Completeness.Overall = mean(m.Completeness.Columns)
	m.Uniqueness.Overall = mean(m.Uniqueness.Columns)
	m.Validity.Overall = mean(m.Validity.Columns)
	m.OverallScore = (m.Completeness.Overall + m.Uniqueness.Overall + m.Validity.Overall) / 3
	return m
}

func validity(s *Series) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	invalid := 0
	switch s.Kind {
	case KindText:
		for _, v := range s.Values {
			if str, ok := v.(string); ok && str == "" {
				invalid++
			}
		}
	case KindNumeric:
		for _, v := range s.Values {
			if f, ok := v.(float64); ok && math.IsInf(f, 0) {
				invalid++
			}
		}
	}
	return float64(len(s.Values)-invalid) / float64(len(s.Values))
}

func mean(values map[string]float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// median of the finite numbers in values; ok is false when there are none.
func median(values []any) (float64, bool) {
	var nums []float64
	for _, v := range values {
		if f, ok := v.(float64); ok && !math.IsInf(f, 0) && !math.IsNaN(f) {
			nums = append(nums, f)
		}
	}
	if len(nums) == 0 {
		return 0, false
	}
	slices.Sort(nums)
	mid := len(nums) / 2
	if len(nums)%2 == 0 {
		return (nums[mid-1] + nums[mid]) / 2, true
	}
	return nums[mid], true
}

// mode returns the most frequent present value. Ties go to the value with
// the smallest key.
func mode(values []any) (any, bool) {
	counts := map[string]int{}
	first := map[string]any{}
	for _, v := range values {
		if v == nil {
			continue
		}
		k := schema.ValueKey(v)
		if _, ok := first[k]; !ok {
			first[k] = v
		}
		counts[k]++
	}
	if len(counts) == 0 {
		return nil, false
	}
	best, bestCount := "", -1
	for k, n := range counts {
		if n > bestCount || (n == bestCount && k < best) {
			best, bestCount = k, n
		}
	}
	return first[best], true
}
