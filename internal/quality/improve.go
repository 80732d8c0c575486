package quality

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	improveThreshold = 0.95
	categoricalLimit = 50
)

// improveCompleteness fills missing values of incomplete columns with the
// mode (text) or median (numeric).
func improveCompleteness(f *Frame, m Metrics, r *run) {
	for _, s := range f.Columns {
		if m.Completeness.Columns[s.Name] >= improveThreshold {
			continue
		}
		missing := s.nullCount()
		if missing == 0 {
			continue
		}
		switch s.Kind {
		case KindText:
			value, ok := mode(s.Values)
			if !ok {
				value = "Unknown"
			}
			fill(s, value)
		case KindNumeric:
			value, ok := median(s.Values)
			if !ok {
				continue
			}
			fill(s, value)
		default:
			continue
		}
		r.logf("Improved completeness for %s: filled %d missing values", s.Name, missing)
	}
}

// improveValidity replaces empty text with "N/A" and infinities with the
// median of the finite values. Key columns are left alone.
func improveValidity(f *Frame, m Metrics, keys map[string]bool, r *run) {
	for _, s := range f.Columns {
		if keys[s.Name] || m.Validity.Columns[s.Name] >= improveThreshold {
			continue
		}
		switch s.Kind {
		case KindText:
			changed := false
			for i, v := range s.Values {
				if str, ok := v.(string); ok && str == "" {
					s.Values[i] = "N/A"
					changed = true
				}
			}
			if changed {
				r.logf("Improved validity for %s: replaced empty strings", s.Name)
			}
		case KindNumeric:
			med, ok := median(s.Values)
			if !ok {
				continue
			}
			changed := false
			for i, v := range s.Values {
				if x, isNum := v.(float64); isNum && math.IsInf(x, 0) {
					s.Values[i] = med
					changed = true
				}
			}
			if changed {
				r.logf("Improved validity for %s: replaced infinite values", s.Name)
			}
		}
	}
}

// improveConsistency trims text values and title-cases columns that look
// categorical. Key columns are left alone.
func improveConsistency(f *Frame, keys map[string]bool, r *run) {
	title := cases.Title(language.Und)
	for _, s := range f.Columns {
		if s.Kind != KindText || keys[s.Name] {
			continue
		}
		categorical := s.distinct() < categoricalLimit
		changed := false
		for i, v := range s.Values {
			str, ok := v.(string)
			if !ok {
				continue
			}
			out := strings.TrimSpace(str)
			if categorical {
				out = title.String(out)
			}
			if out != str {
				s.Values[i] = out
				changed = true
			}
		}
		if changed {
			r.logf("Improved consistency for %s: standardized text values", s.Name)
		}
	}
}
