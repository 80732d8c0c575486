package schema

// ComputeSchemaMetrics scores the structure of a model. Each metric is the
// fraction of columns satisfying it; a model without columns scores 0.
func ComputeSchemaMetrics(m *Model) QualityMetrics {
	var q QualityMetrics
	n := len(m.Columns)
	if n == 0 {
		return q
	}

	var typed, snake, unique, constrained int
	for _, c := range m.Columns {
		if c.Type != TypeUnknown {
			typed++
		}
		if IsSnakeCase(c.Name) {
			snake++
		}
		if c.Unique || c.PrimaryKey {
			unique++
		}
		if !c.Constraints.IsEmpty() {
			constrained++
		}
	}

	total := float64(n)
	q.Completeness = float64(typed) / total
	q.Consistency = float64(snake) / total
	q.Uniqueness = float64(unique) / total
	q.Validity = float64(constrained) / total
	q.OverallScore = (q.Completeness + q.Consistency + q.Uniqueness + q.Validity) / 4
	return q
}
