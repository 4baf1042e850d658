package almanac

import (
	"time"

	"github.com/spencer-p/tidetable/pkg/timetricks"
)

// WeekDays is the number of days in a WeekReport.
const WeekDays = 7

// BuildWeekReport extracts the tides of the seven days starting at startDateKey
// ("YYYY-MM-DD") from a raw tide table document of location p. raw is the
// table of the year of startDateKey; days of the following year come out
// empty, use YearDocuments to fill them. sourceLabel is copied into the report
// untouched.
//
// Missing months, unreadable lines and truncated documents all show up as days
// without extrema; the report always has seven days. The only error is an
// invalid startDateKey.
func BuildWeekReport(raw []byte, startDateKey, sourceLabel string, p Profile) (WeekReport, error) {
	start, err := timetricks.ParseDateKey(startDateKey)
	if err != nil {
		return WeekReport{}, err
	}
	doc := NewDocument(raw, p.MaxBytes())
	return doc.Week(start, sourceLabel, p), nil
}

// Week assembles the report for the seven calendar days starting on the date
// of start, reading d as the table of the year of start.
func (d *Document) Week(start time.Time, sourceLabel string, p Profile) WeekReport {
	return YearDocuments{start.Year(): d}.Week(start, sourceLabel, p)
}

// YearDocuments holds the tide table of each year, by year.
type YearDocuments map[int]*Document

// WeekYears lists the years touched by the week starting on the date of start,
// in order.
func WeekYears(start time.Time) []int {
	years := []int{start.Year()}
	if last := start.AddDate(0, 0, WeekDays-1).Year(); last != start.Year() {
		years = append(years, last)
	}
	return years
}

// Week assembles the report for the seven calendar days starting on the date
// of start. Only the date of start is used. Each day is read from the document
// of its own year; days of a year without a document have no extrema.
func (ds YearDocuments) Week(start time.Time, sourceLabel string, p Profile) WeekReport {
	loc := p.Location()
	y, m, day := start.Date()
	first := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)

	report := WeekReport{
		Source:       p.Source,
		SourceName:   p.SourceName,
		SourceLabel:  sourceLabel,
		Location:     p.Name,
		UTCOffset:    loc.String(),
		StartDateKey: timetricks.DateKey(first),
		Days:         make([]DayReport, 0, WeekDays),
		FlatExtremes: []Extremum{},
	}

	type yearMonth struct {
		year  int
		month time.Month
	}

	// Each month is segmented at most once, however many days fall into it.
	months := make(map[yearMonth]DayObservations)
	for i := 0; i < WeekDays; i++ {
		date := first.AddDate(0, 0, i)
		ym := yearMonth{date.Year(), date.Month()}
		obs, ok := months[ym]
		if !ok {
			if d := ds[ym.year]; d != nil {
				obs = d.monthObservations(ym.month, p.MonthNames)
			}
			months[ym] = obs
		}

		pairs := obs[date.Day()]
		readings := make([]Reading, len(pairs))
		for j, o := range pairs {
			readings[j] = Reading{Time: o.At(date, loc), Height: o.Height}
		}
		extremes := Classify(readings)

		report.Days = append(report.Days, DayReport{
			DateKey:  timetricks.DateKey(date),
			Extremes: extremes,
		})
		report.FlatExtremes = append(report.FlatExtremes, extremes...)
	}
	return report
}

// monthObservations returns the day observations of month m, or nil when the
// month is not in the document.
func (d *Document) monthObservations(m time.Month, names MonthNames) DayObservations {
	span, ok := d.Month(m, names)
	if !ok {
		return nil
	}
	return DayPairs(span.Of(d.Text))
}

// EmptyDays counts the days of r without any extremum.
func (r WeekReport) EmptyDays() int {
	n := 0
	for _, d := range r.Days {
		if len(d.Extremes) == 0 {
			n++
		}
	}
	return n
}
