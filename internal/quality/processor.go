// Package quality applies a schema model to a data table: it coerces
// values, enforces constraints, de-duplicates primary keys, measures quality
// before and after an improvement pass, and assesses compliance.
package quality

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"ndmo-quality/internal/schema"
	"ndmo-quality/internal/standards"
)

const (
	schemaCompliantScore = 0.8
	datetimeProbeRows    = 10
)

// SchemaCompliance compares the types a model expects with the observed ones.
type SchemaCompliance struct {
	Status          standards.Status `json:"status" yaml:"status"`
	Score           float64          `json:"score" yaml:"score"`
	ChecksPerformed int              `json:"checks_performed" yaml:"checks_performed"`
}

// DataSummary describes a frame at one stage of processing.
type DataSummary struct {
	Rows           int     `json:"rows" yaml:"rows"`
	Columns        int     `json:"columns" yaml:"columns"`
	QualityMetrics Metrics `json:"quality_metrics" yaml:"quality_metrics"`
}

// Result is the outcome of one Process call.
type Result struct {
	OriginalData        DataSummary       `json:"original_data" yaml:"original_data"`
	ProcessedData       DataSummary       `json:"processed_data" yaml:"processed_data"`
	ImprovementsApplied []string          `json:"improvements_applied" yaml:"improvements_applied"`
	SchemaCompliance    SchemaCompliance  `json:"schema_compliance" yaml:"schema_compliance"`
	NDMOCompliance      *standards.Result `json:"ndmo_compliance" yaml:"ndmo_compliance"`

	// Data is the processed frame.
	Data *Frame `json:"-" yaml:"-"`
}

// Processor scores processed data against a catalog. It holds no per-call
// state and may be shared.
type Processor struct {
	catalog *standards.Catalog
}

func NewProcessor(c *standards.Catalog) *Processor {
	return &Processor{catalog: c}
}

// run carries the improvement log of a single Process call.
type run struct {
	log []string
}

func (r *run) logf(format string, args ...any) {
	r.log = append(r.log, fmt.Sprintf(format, args...))
}

// Process applies m to data. With a nil model the table only gets basic
// cleaning and schema compliance is not applicable. The input table is not
// modified.
func (p *Processor) Process(m *schema.Model, data *schema.Table) *Result {
	f := NewFrame(data)
	r := &run{log: []string{}}
	res := &Result{OriginalData: DataSummary{Rows: f.Rows(), Columns: len(f.Columns)}}

	keys := map[string]bool{}
	if m == nil {
		basicClean(f)
	} else {
		for _, c := range m.Columns {
			s := f.Column(c.Name)
			if s == nil {
				continue
			}
			applyColumn(s, c)
			if c.PrimaryKey {
				keys[c.Name] = true
			}
		}
	}

	before := ComputeMetrics(f)
	res.OriginalData.QualityMetrics = before

	improveCompleteness(f, before, r)
	improveValidity(f, before, keys, r)
	improveConsistency(f, keys, r)

	res.ProcessedData = DataSummary{Rows: f.Rows(), Columns: len(f.Columns), QualityMetrics: ComputeMetrics(f)}
	res.ImprovementsApplied = r.log
	res.SchemaCompliance = assessSchema(f, m)
	res.NDMOCompliance = p.catalog.Score(Measure(f))
	res.Data = f
	return res
}

func applyColumn(s *Series, c schema.Column) {
	if c.Type != schema.TypeUnknown {
		coerce(s, c.Type)
	}
	applyConstraints(s, c.Constraints)
	if c.PrimaryKey {
		ensureUnique(s)
	}
}

// coerce converts a series to the storage kind of a schema type. Values
// that do not parse become missing.
func coerce(s *Series, t schema.Type) {
	switch t {
	case schema.TypeNumeric:
		s.Kind = KindNumeric
		for i, v := range s.Values {
			s.Values[i] = nil
			if f, ok := schema.ToNumber(v); ok && !math.IsNaN(f) {
				s.Values[i] = f
			}
		}
	case schema.TypeDatetime:
		s.Kind = KindDatetime
		for i, v := range s.Values {
			s.Values[i] = nil
			if tm, ok := schema.ToTime(v); ok {
				s.Values[i] = tm
			}
		}
	case schema.TypeBoolean:
		s.Kind = KindBoolean
		for i, v := range s.Values {
			s.Values[i] = nil
			if b, ok := schema.ToBool(v); ok {
				s.Values[i] = b
			}
		}
	case schema.TypeText:
		s.Kind = KindText
		for i, v := range s.Values {
			if v != nil {
				s.Values[i] = schema.ValueKey(v)
			}
		}
	}
}

func applyConstraints(s *Series, c schema.Constraints) {
	if c.Required {
		switch s.Kind {
		case KindText:
			fill(s, "N/A")
		case KindNumeric:
			fill(s, 0.0)
		}
	}

	if c.MaxLength != nil && s.Kind == KindText {
		limit := *c.MaxLength
		for i, v := range s.Values {
			if str, ok := v.(string); ok && len([]rune(str)) > limit {
				s.Values[i] = string([]rune(str)[:max(limit, 0)])
			}
		}
	}

	if (c.MinValue != nil || c.MaxValue != nil) && s.Kind == KindNumeric {
		for i, v := range s.Values {
			f, ok := v.(float64)
			if !ok {
				continue
			}
			if c.MinValue != nil && f < *c.MinValue {
				f = *c.MinValue
			}
			if c.MaxValue != nil && f > *c.MaxValue {
				f = *c.MaxValue
			}
			s.Values[i] = f
		}
	}

	if len(c.AllowedValues) > 0 {
		allowed := make(map[string]bool, len(c.AllowedValues))
		for _, a := range c.AllowedValues {
			allowed[schema.ValueKey(a)] = true
		}
		for i, v := range s.Values {
			if v != nil && !allowed[schema.ValueKey(v)] {
				s.Values[i] = nil
			}
		}
	}
}

func fill(s *Series, value any) int {
	n := 0
	for i, v := range s.Values {
		if v == nil {
			s.Values[i] = value
			n++
		}
	}
	return n
}

// ensureUnique rewrites a primary key series so every value is present and
// distinct. Missing cells become "N/A"; every value that occurs more than
// once gets a running "_<n>" suffix, skipping suffixes already taken.
func ensureUnique(s *Series) {
	counts := map[string]int{}
	missing := false
	for _, v := range s.Values {
		if v == nil {
			missing = true
			counts["N/A"]++
			continue
		}
		counts[schema.ValueKey(v)]++
	}

	duplicated := false
	for _, n := range counts {
		if n > 1 {
			duplicated = true
			break
		}
	}
	if !missing && !duplicated {
		return
	}

	keys := make([]string, len(s.Values))
	taken := make(map[string]bool, len(s.Values))
	for i, v := range s.Values {
		keys[i] = "N/A"
		if v != nil {
			keys[i] = schema.ValueKey(v)
		}
		if counts[keys[i]] == 1 {
			taken[keys[i]] = true
		}
	}

	counter := 1
	for i, k := range keys {
		if counts[k] > 1 {
			candidate := fmt.Sprintf("%s_%d", k, counter)
			for taken[candidate] {
				counter++
				candidate = fmt.Sprintf("%s_%d", k, counter)
			}
			keys[i] = candidate
			counter++
		}
		taken[keys[i]] = true
	}

	s.Kind = KindText
	for i, k := range keys {
		s.Values[i] = k
	}
}

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanColumnName strips punctuation, joins words with underscores and
// lowercases the result.
func CleanColumnName(name string) string {
	cleaned := nonWordRe.ReplaceAllString(name, "")
	cleaned = whitespaceRe.ReplaceAllString(cleaned, "_")
	return strings.ToLower(cleaned)
}

// basicClean is the schemaless path: clean names, fill text with "N/A" and
// numbers with 0, and drop rows with no values at all.
func basicClean(f *Frame) {
	for _, s := range f.Columns {
		s.Name = CleanColumnName(s.Name)
		switch s.Kind {
		case KindText:
			fill(s, "N/A")
		case KindNumeric:
			fill(s, 0.0)
		}
	}
	f.dropRows(func(r int) bool {
		for _, s := range f.Columns {
			if s.Values[r] != nil {
				return false
			}
		}
		return true
	})
}

// observedType maps a series to the schema type it looks like.
func observedType(s *Series) schema.Type {
	switch s.Kind {
	case KindNumeric:
		return schema.TypeNumeric
	case KindBoolean:
		return schema.TypeBoolean
	case KindDatetime:
		return schema.TypeDatetime
	}
	for _, v := range s.Values[:min(len(s.Values), datetimeProbeRows)] {
		if v == nil {
			continue
		}
		if _, ok := schema.ToTime(v); !ok {
			return schema.TypeText
		}
	}
	return schema.TypeDatetime
}

func assessSchema(f *Frame, m *schema.Model) SchemaCompliance {
	if m == nil {
		return SchemaCompliance{Status: standards.NotApplicable}
	}
	var matches, checks int
	for _, c := range m.Columns {
		s := f.Column(c.Name)
		if s == nil {
			continue
		}
		checks++
		if c.Type == schema.TypeUnknown || c.Type == observedType(s) {
			matches++
		}
	}

	sc := SchemaCompliance{Status: standards.NonCompliant, ChecksPerformed: checks}
	if checks > 0 {
		sc.Score = float64(matches) / float64(checks)
	}
	if sc.Score >= schemaCompliantScore {
		sc.Status = standards.Compliant
	}
	return sc
}

// Measure derives catalog measurements from processed data: DQ001 is the
// table-wide present fraction, DG001 is 1 when some column is fully
// distinct, DQ005 is the mean column validity.
func Measure(f *Frame) map[string]float64 {
	scores := map[string]float64{"DQ001": 0, "DG001": 0, "DQ005": 0}
	if f.Rows() == 0 || len(f.Columns) == 0 {
		return scores
	}

	present := 0
	validSum := 0.0
	for _, s := range f.Columns {
		present += len(s.nonNull())
		if s.distinct() == f.Rows() {
			scores["DG001"] = 1
		}
		validSum += validity(s)
	}
	scores["DQ001"] = float64(present) / float64(f.Rows()*len(f.Columns))
	scores["DQ005"] = validSum / float64(len(f.Columns))
	return scores
}
