package solunar

import (
	"sort"
	"time"
)

const (
	majorHalfWidth = time.Hour
	minorWidth     = time.Hour
)

// buildPeriods turns the day's optional astronomical events into ordered
// major and minor activity windows. Absent events simply contribute no
// period; overlapping windows are kept as-is, never merged.
func buildPeriods(upper, lower, moonrise, moonset *time.Time) (majors, minors []Period) {
	if upper != nil {
		majors = append(majors, majorPeriod(PeriodUpperTransit, *upper))
	}
	if lower != nil {
		majors = append(majors, majorPeriod(PeriodLowerTransit, *lower))
	}
	if moonrise != nil {
		minors = append(minors, minorPeriod(PeriodMoonrise, *moonrise))
	}
	if moonset != nil {
		minors = append(minors, minorPeriod(PeriodMoonset, *moonset))
	}
	sortPeriods(majors)
	sortPeriods(minors)
	return majors, minors
}

// majorPeriod is a 2-hour window centered on the raw transit instant.
func majorPeriod(kind PeriodKind, transit time.Time) Period {
	return Period{
		Kind:   kind,
		Start:  transit.Add(-majorHalfWidth),
		End:    transit.Add(majorHalfWidth),
		Center: transit,
	}
}

// minorPeriod is a 1-hour window starting at the event instant.
func minorPeriod(kind PeriodKind, event time.Time) Period {
	return Period{
		Kind:   kind,
		Start:  event,
		End:    event.Add(minorWidth),
		Center: event.Add(minorWidth / 2),
	}
}

func sortPeriods(periods []Period) {
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Start.Before(periods[j].Start)
	})
}
