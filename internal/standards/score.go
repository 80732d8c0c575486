package standards

import "fmt"

// Status is the compliance verdict of a scored measurement set.
type Status string

const (
	Compliant          Status = "compliant"
	PartiallyCompliant Status = "partially_compliant"
	NonCompliant       Status = "non_compliant"
	NotApplicable      Status = "not_applicable"
)

const (
	compliantScore = 0.95
	partialScore   = 0.8
)

// Result is the outcome of scoring measurements against a catalog.
type Result struct {
	OverallScore     float64              `json:"overall_score" yaml:"overall_score"`
	Status           Status               `json:"status" yaml:"status"`
	CriticalFailures []string             `json:"critical_failures" yaml:"critical_failures"`
	CategoryScores   map[Category]float64 `json:"category_scores" yaml:"category_scores"`
	Recommendations  []string             `json:"recommendations" yaml:"recommendations"`
}

// Score evaluates a map of standard id to measured score. Ids absent from the
// catalog are ignored. The overall score is normalised over the weights of the
// measured standards only, while each category score is divided by the weight
// of every standard declared in that category, so unmeasured standards pull
// their category down.
func (c *Catalog) Score(measured map[string]float64) *Result {
	res := &Result{
		CriticalFailures: []string{},
		CategoryScores:   make(map[Category]float64, len(c.categories)),
		Recommendations:  []string{},
	}

	var weighted, totalWeight float64
	for _, s := range c.standards {
		score, ok := measured[s.ID]
		if !ok {
			continue
		}
		weighted += score * s.Weight
		totalWeight += s.Weight

		if score < s.Threshold {
			if s.Critical {
				res.CriticalFailures = append(res.CriticalFailures, s.ID)
			}
			res.Recommendations = append(res.Recommendations, fmt.Sprintf(
				"Improve %s: Current score %.1f%%, required %.1f%%. %s",
				s.Name, score*100, s.Threshold*100, s.Requirement))
		}
	}
	if totalWeight > 0 {
		res.OverallScore = weighted / totalWeight
	}

	for _, cat := range c.categories {
		var catScore, catWeight float64
		for _, s := range c.ByCategory(cat) {
			catWeight += s.Weight
			if score, ok := measured[s.ID]; ok {
				catScore += score * s.Weight
			}
		}
		if catWeight > 0 {
			res.CategoryScores[cat] = catScore / catWeight
		} else {
			res.CategoryScores[cat] = 0
		}
	}

	res.Status = statusFor(res.OverallScore, len(res.CriticalFailures) > 0)
	return res
}

func statusFor(overall float64, criticalFailed bool) Status {
	switch {
	case criticalFailed:
		return NonCompliant
	case overall >= compliantScore:
		return Compliant
	case overall >= partialScore:
		return PartiallyCompliant
	default:
		return NonCompliant
	}
}
