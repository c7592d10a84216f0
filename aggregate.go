package main

import "sort"

// GroupedCounts is the result of a one-dimension grouping: distinct
// patients per category value, plus how many rows were excluded because a
// required field was missing.
type GroupedCounts struct {
	Groups       map[string]map[string]struct{}
	ExcludedRows int
}

// Counts returns the distinct-patient count per group value. Counts are
// set sizes, never row counts.
func (g GroupedCounts) Counts() map[string]int {
	counts := make(map[string]int, len(g.Groups))
	for value, patients := range g.Groups {
		counts[value] = len(patients)
	}
	return counts
}

// groupByField folds records into distinct patients per value of one
// categorical field. Rows missing the field or the patient are excluded
// entirely and counted.
func groupByField(records []Record, field string, entityField string) GroupedCounts {
	result := GroupedCounts{Groups: map[string]map[string]struct{}{}}
	for _, rec := range records {
		value, ok := fieldValue(rec, field)
		if !ok {
			result.ExcludedRows++
			continue
		}
		entity, ok := fieldValue(rec, entityField)
		if !ok {
			result.ExcludedRows++
			continue
		}
		patients, exists := result.Groups[value]
		if !exists {
			patients = map[string]struct{}{}
			result.Groups[value] = patients
		}
		patients[entity] = struct{}{}
	}
	return result
}

// NestedCounts is a two-dimension grouping: outer value -> inner value ->
// distinct patients.
type NestedCounts struct {
	Groups       map[string]map[string]map[string]struct{}
	ExcludedRows int
}

// OuterTotal sums the inner set sizes for one outer value. A patient seen
// under two inner values counts twice here; callers must not assume a
// patient appears under only one inner key.
func (n NestedCounts) OuterTotal(outer string) int {
	total := 0
	for _, patients := range n.Groups[outer] {
		total += len(patients)
	}
	return total
}

// InnerValues returns every inner value observed across all outer groups,
// sorted alphabetically.
func (n NestedCounts) InnerValues() []string {
	seen := map[string]struct{}{}
	for _, inner := range n.Groups {
		for value := range inner {
			seen[value] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// groupByTwoFields folds records into distinct patients per (outer, inner)
// pair. A row missing any of the three fields is excluded entirely; there
// is no partial-key grouping.
func groupByTwoFields(records []Record, outerField string, innerField string, entityField string) NestedCounts {
	result := NestedCounts{Groups: map[string]map[string]map[string]struct{}{}}
	for _, rec := range records {
		outer, ok := fieldValue(rec, outerField)
		if !ok {
			result.ExcludedRows++
			continue
		}
		inner, ok := fieldValue(rec, innerField)
		if !ok {
			result.ExcludedRows++
			continue
		}
		entity, ok := fieldValue(rec, entityField)
		if !ok {
			result.ExcludedRows++
			continue
		}
		innerGroups, exists := result.Groups[outer]
		if !exists {
			innerGroups = map[string]map[string]struct{}{}
			result.Groups[outer] = innerGroups
		}
		patients, exists := innerGroups[inner]
		if !exists {
			patients = map[string]struct{}{}
			innerGroups[inner] = patients
		}
		patients[entity] = struct{}{}
	}
	return result
}

// filterEntities returns the sorted distinct patients whose rows satisfy
// every predicate. Predicate values match case-insensitively after
// trimming; patient identity stays case-sensitive.
func filterEntities(records []Record, predicates map[string]string, entityField string) []string {
	matched := map[string]struct{}{}
	for _, rec := range records {
		entity, ok := fieldValue(rec, entityField)
		if !ok {
			continue
		}
		satisfies := true
		for field, target := range predicates {
			if !fieldMatches(rec, field, target) {
				satisfies = false
				break
			}
		}
		if satisfies {
			matched[entity] = struct{}{}
		}
	}
	return sortedKeys(matched)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
