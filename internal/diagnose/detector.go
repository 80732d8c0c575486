// Package diagnose turns a schema model into severity-classified problems and
// a correction plan.
package diagnose

import (
	"slices"

	"ndmo-quality/internal/schema"
)

// Problem is one failed rule check.
type Problem struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Impact      string   `json:"impact" yaml:"impact"`
	Solution    string   `json:"solution" yaml:"solution"`
	Example     string   `json:"example" yaml:"example"`
}

// Action is one plan step derived from a problem.
type Action struct {
	ProblemID string `json:"problem_id" yaml:"problem_id"`
	Action    string `json:"action" yaml:"action"`
	Example   string `json:"example" yaml:"example"`
	Effort    string `json:"effort" yaml:"effort"`
	Priority  string `json:"priority" yaml:"priority"`
}

// Effort is the estimated work in hours per bucket.
type Effort struct {
	Immediate float64 `json:"immediate" yaml:"immediate"`
	ShortTerm float64 `json:"short_term" yaml:"short_term"`
	LongTerm  float64 `json:"long_term" yaml:"long_term"`
	Total     float64 `json:"total" yaml:"total"`
}

// Plan buckets actions by severity: critical problems are immediate, major
// short term and minor long term.
type Plan struct {
	ImmediateActions []Action `json:"immediate_actions" yaml:"immediate_actions"`
	ShortTermActions []Action `json:"short_term_actions" yaml:"short_term_actions"`
	LongTermActions  []Action `json:"long_term_actions" yaml:"long_term_actions"`
	EstimatedEffort  Effort   `json:"estimated_effort" yaml:"estimated_effort"`
	ResourcesNeeded  []string `json:"resources_needed" yaml:"resources_needed"`
}

// PriorityAction is a problem in severity-rank order.
type PriorityAction struct {
	ProblemID string   `json:"problem_id" yaml:"problem_id"`
	Name      string   `json:"name" yaml:"name"`
	Priority  int      `json:"priority" yaml:"priority"`
	Impact    Severity `json:"impact" yaml:"impact"`
	Effort    string   `json:"effort" yaml:"effort"`
	Action    string   `json:"action" yaml:"action"`
}

// Report is the full diagnosis of a model.
type Report struct {
	CriticalProblems []Problem        `json:"critical_problems" yaml:"critical_problems"`
	MajorProblems    []Problem        `json:"major_problems" yaml:"major_problems"`
	MinorProblems    []Problem        `json:"minor_problems" yaml:"minor_problems"`
	CorrectionPlan   Plan             `json:"correction_plan" yaml:"correction_plan"`
	PriorityActions  []PriorityAction `json:"priority_actions" yaml:"priority_actions"`
}

// Problems returns every problem, critical first.
func (r *Report) Problems() []Problem {
	out := make([]Problem, 0, len(r.CriticalProblems)+len(r.MajorProblems)+len(r.MinorProblems))
	out = append(out, r.CriticalProblems...)
	out = append(out, r.MajorProblems...)
	return append(out, r.MinorProblems...)
}

type bucketSpec struct {
	effort   string
	priority string
	hours    float64
}

var buckets = map[Severity]bucketSpec{
	Critical: {effort: "High", priority: "Critical", hours: 2},
	Major:    {effort: "Medium", priority: "High", hours: 1},
	Minor:    {effort: "Low", priority: "Medium", hours: 0.5},
}

var resources = []string{
	"Database Administrator",
	"Data Analyst",
	"Business Analyst",
	"Security Specialist",
}

// Detect runs every rule against the model.
func Detect(m *schema.Model) *Report {
	r := &Report{
		CriticalProblems: []Problem{},
		MajorProblems:    []Problem{},
		MinorProblems:    []Problem{},
		PriorityActions:  []PriorityAction{},
	}

	var found []Problem
	for _, rule := range rules {
		desc, failed := rule.Check(m)
		if !failed {
			continue
		}
		p := Problem{
			ID:          rule.ID,
			Name:        rule.Name,
			Description: desc,
			Severity:    rule.Severity,
			Impact:      rule.Impact,
			Solution:    rule.Solution,
			Example:     rule.Example,
		}
		found = append(found, p)
		switch p.Severity {
		case Critical:
			r.CriticalProblems = append(r.CriticalProblems, p)
		case Major:
			r.MajorProblems = append(r.MajorProblems, p)
		default:
			r.MinorProblems = append(r.MinorProblems, p)
		}
	}

	r.CorrectionPlan = plan(r)
	r.PriorityActions = prioritize(found)
	return r
}

func plan(r *Report) Plan {
	toActions := func(problems []Problem) []Action {
		actions := make([]Action, 0, len(problems))
		for _, p := range problems {
			b := buckets[p.Severity]
			actions = append(actions, Action{
				ProblemID: p.ID,
				Action:    p.Solution,
				Example:   p.Example,
				Effort:    b.effort,
				Priority:  b.priority,
			})
		}
		return actions
	}

	p := Plan{
		ImmediateActions: toActions(r.CriticalProblems),
		ShortTermActions: toActions(r.MajorProblems),
		LongTermActions:  toActions(r.MinorProblems),
		ResourcesNeeded:  append([]string(nil), resources...),
	}
	p.EstimatedEffort = Effort{
		Immediate: float64(len(p.ImmediateActions)) * buckets[Critical].hours,
		ShortTerm: float64(len(p.ShortTermActions)) * buckets[Major].hours,
		LongTerm:  float64(len(p.LongTermActions)) * buckets[Minor].hours,
	}
	p.EstimatedEffort.Total = p.EstimatedEffort.Immediate + p.EstimatedEffort.ShortTerm + p.EstimatedEffort.LongTerm
	return p
}

func prioritize(problems []Problem) []PriorityAction {
	actions := make([]PriorityAction, 0, len(problems))
	for _, p := range problems {
		actions = append(actions, PriorityAction{
			ProblemID: p.ID,
			Name:      p.Name,
			Priority:  p.Severity.rank(),
			Impact:    p.Severity,
			Effort:    buckets[p.Severity].effort,
			Action:    p.Solution,
		})
	}
	slices.SortStableFunc(actions, func(a, b PriorityAction) int { return a.Priority - b.Priority })
	return actions
}
