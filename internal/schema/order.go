package schema

import "strings"

// dependencies returns the names of other models this model references via
// its relationships, matched case-insensitively on table name.
func dependencies(m *Model, byName map[string]*Model) []string {
	var deps []string
	seen := map[string]bool{}
	for _, r := range m.Relationships {
		parent, ok := byName[strings.ToUpper(r.ParentTable)]
		if !ok || parent == m || seen[parent.TableName] {
			continue
		}
		seen[parent.TableName] = true
		deps = append(deps, parent.TableName)
	}
	return deps
}

// OrderModels sorts models so referenced tables come before the tables that
// point at them. Cycles are broken with a score that prefers the table with
// the fewest unresolved references, boosted when it sits on a two-way cycle.
func OrderModels(models []*Model) []*Model {
	byName := make(map[string]*Model, len(models))
	for _, m := range models {
		byName[strings.ToUpper(m.TableName)] = m
	}
	deps := make(map[*Model][]string, len(models))
	for _, m := range models {
		deps[m] = dependencies(m, byName)
	}

	var sorted []*Model
	processed := make(map[string]bool)

	for len(sorted) < len(models) {
		added := false

		for _, m := range models {
			if processed[m.TableName] {
				continue
			}
			ready := true
			for _, d := range deps[m] {
				if !processed[d] {
					ready = false
					break
				}
			}
			if ready {
				sorted = append(sorted, m)
				processed[m.TableName] = true
				added = true
			}
		}
		if added {
			continue
		}

		var best *Model
		bestScore := 0
		for _, m := range models {
			if processed[m.TableName] {
				continue
			}
			score := 0
			circular := false
			for _, d := range deps[m] {
				if processed[d] {
					continue
				}
				score -= 100
				for _, back := range deps[byName[strings.ToUpper(d)]] {
					if back == m.TableName {
						circular = true
					}
				}
			}
			if circular {
				score += 500
			}
			if best == nil || score > bestScore || (score == bestScore && m.TableName > best.TableName) {
				best, bestScore = m, score
			}
		}
		if best == nil {
			break
		}
		sorted = append(sorted, best)
		processed[best.TableName] = true
	}
	return sorted
}
