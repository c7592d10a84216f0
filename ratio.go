package main

import "strings"

// Usage tiers for the ratio report. Boundaries are fixed: 75.0% is high,
// 25.0% is medium, anything above zero but below 25 is low.
const (
	tierHigh   = "high"
	tierMedium = "medium"
	tierLow    = "low"
	tierNone   = "none"
)

// RatioStat tracks one patient's matching-to-total visit ratio within the
// scoped location, plus the payors and services observed on those visits.
type RatioStat struct {
	TotalVisits    int
	MatchingVisits int
	Percentage     float64
	Tier           string
	Payors         map[string]struct{}
	Services       map[string]struct{}
}

// classifyRatios computes per-patient ratio stats over the rows at
// scopeValue (case-insensitive match on scopeField). A visit matches when
// the service description contains keyword, case-insensitively. Patients
// appear only when at least one in-scope row references them.
func classifyRatios(records []Record, scopeField string, scopeValue string, keyword string) map[string]*RatioStat {
	stats := map[string]*RatioStat{}
	lowerKeyword := strings.ToLower(keyword)

	for _, rec := range records {
		if !fieldMatches(rec, scopeField, scopeValue) {
			continue
		}
		patient, ok := fieldValue(rec, colPatient)
		if !ok {
			continue
		}

		stat, exists := stats[patient]
		if !exists {
			stat = &RatioStat{
				Payors:   map[string]struct{}{},
				Services: map[string]struct{}{},
			}
			stats[patient] = stat
		}
		stat.TotalVisits++

		service, hasService := fieldValue(rec, colService)
		if hasService {
			stat.Services[service] = struct{}{}
			if strings.Contains(strings.ToLower(service), lowerKeyword) {
				stat.MatchingVisits++
			}
		}
		if payor, hasPayor := fieldValue(rec, colPayor); hasPayor {
			stat.Payors[payor] = struct{}{}
		}
	}

	for _, stat := range stats {
		if stat.TotalVisits > 0 {
			stat.Percentage = float64(stat.MatchingVisits) / float64(stat.TotalVisits) * 100
		}
		stat.Tier = ratioTier(stat.Percentage)
	}
	return stats
}

func ratioTier(percentage float64) string {
	switch {
	case percentage >= 75:
		return tierHigh
	case percentage >= 25:
		return tierMedium
	case percentage > 0:
		return tierLow
	default:
		return tierNone
	}
}

// PatientUsage tracks one patient's keyword-matching visits across all
// locations, for the unscoped usage survey.
type PatientUsage struct {
	Count     int
	Locations map[string]struct{}
	Payors    map[string]struct{}
}

// KeywordUsage is the unscoped survey of keyword-matching rows: total
// matching rows, per-patient detail, and matching-row counts by location
// and payor. The location and payor counts are row counts, not distinct
// patients.
type KeywordUsage struct {
	TotalMatches int
	Patients     map[string]*PatientUsage
	ByLocation   map[string]int
	ByPayor      map[string]int
}

// surveyKeywordUsage scans every row for a case-insensitive keyword match
// in the service description. Rows without a patient still count toward
// the total and the location/payor summaries.
func surveyKeywordUsage(records []Record, keyword string) KeywordUsage {
	usage := KeywordUsage{
		Patients:   map[string]*PatientUsage{},
		ByLocation: map[string]int{},
		ByPayor:    map[string]int{},
	}
	lowerKeyword := strings.ToLower(keyword)

	for _, rec := range records {
		service, ok := fieldValue(rec, colService)
		if !ok || !strings.Contains(strings.ToLower(service), lowerKeyword) {
			continue
		}
		usage.TotalMatches++

		location, hasLocation := fieldValue(rec, colLocation)
		payor, hasPayor := fieldValue(rec, colPayor)

		if patient, hasPatient := fieldValue(rec, colPatient); hasPatient {
			detail, exists := usage.Patients[patient]
			if !exists {
				detail = &PatientUsage{
					Locations: map[string]struct{}{},
					Payors:    map[string]struct{}{},
				}
				usage.Patients[patient] = detail
			}
			detail.Count++
			if hasLocation {
				detail.Locations[location] = struct{}{}
			}
			if hasPayor {
				detail.Payors[payor] = struct{}{}
			}
		}

		if hasLocation {
			usage.ByLocation[location]++
		}
		if hasPayor {
			usage.ByPayor[payor]++
		}
	}
	return usage
}
