package main

// Completeness cross-tabulates the presence of two fields across every
// row. The four row counts always sum to TotalRows; the entity sets and
// per-value breakdowns cover only the two partial partitions.
type Completeness struct {
	FirstField  string
	SecondField string

	TotalRows      int
	BothRows       int
	FirstOnlyRows  int
	SecondOnlyRows int
	NeitherRows    int

	FirstOnlyPatients  map[string]struct{}
	SecondOnlyPatients map[string]struct{}

	// Breakdown of the partial partitions by the value of the field that
	// is present: field value -> distinct patients.
	FirstOnlyByValue  map[string]map[string]struct{}
	SecondOnlyByValue map[string]map[string]struct{}
}

// analyzeCompleteness classifies every record into exactly one of four
// partitions based on presence of the two fields. Patients are collected
// for the two partial partitions when the entity field is present.
func analyzeCompleteness(records []Record, firstField string, secondField string, entityField string) Completeness {
	result := Completeness{
		FirstField:         firstField,
		SecondField:        secondField,
		TotalRows:          len(records),
		FirstOnlyPatients:  map[string]struct{}{},
		SecondOnlyPatients: map[string]struct{}{},
		FirstOnlyByValue:   map[string]map[string]struct{}{},
		SecondOnlyByValue:  map[string]map[string]struct{}{},
	}

	for _, rec := range records {
		first, hasFirst := fieldValue(rec, firstField)
		second, hasSecond := fieldValue(rec, secondField)
		entity, hasEntity := fieldValue(rec, entityField)

		switch {
		case hasFirst && hasSecond:
			result.BothRows++
		case hasFirst:
			result.FirstOnlyRows++
			if hasEntity {
				result.FirstOnlyPatients[entity] = struct{}{}
				addToValueSet(result.FirstOnlyByValue, first, entity)
			}
		case hasSecond:
			result.SecondOnlyRows++
			if hasEntity {
				result.SecondOnlyPatients[entity] = struct{}{}
				addToValueSet(result.SecondOnlyByValue, second, entity)
			}
		default:
			result.NeitherRows++
		}
	}
	return result
}

func addToValueSet(byValue map[string]map[string]struct{}, value string, entity string) {
	set, exists := byValue[value]
	if !exists {
		set = map[string]struct{}{}
		byValue[value] = set
	}
	set[entity] = struct{}{}
}

// Percent converts a partition count into a percentage of all rows.
// An empty input yields 0 for every partition.
func (c Completeness) Percent(count int) float64 {
	return percent(count, c.TotalRows)
}

func percent(part int, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
