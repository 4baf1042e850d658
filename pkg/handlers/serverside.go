package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/spencer-p/tidetable/pkg/almanac"
	"github.com/spencer-p/tidetable/pkg/meta"
	"github.com/spencer-p/tidetable/pkg/sunset"
	"github.com/spencer-p/tidetable/pkg/timetricks"
	"github.com/spencer-p/tidetable/pkg/visualize"
)

type TemplateInput struct {
	Name        string
	Source      string
	SourceLabel string
	UTCOffset   string
	BuildID     string

	PresentationElements []PresentationElement
	NextStart            string
	PrevStart            string
}

type PresentationElement struct {
	Date      string
	DateKey   string
	Extremes  []almanac.Extremum
	GoodTimes []meta.GoodTime
	TideImage template.HTML
}

// serveIndex serves a week of tides fully rendered on the server.
func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	p, err := s.profile(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	key, date, err := dateParam(r, "start", p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	report, err := s.week(r.Context(), p, key, 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// Compute sun events, goodtimes, and set up tide images.
	sunEvents := sunset.GetSunEvents(date, forecastLength, sunset.PlaceOf(p))
	goodTimes := meta.GoodTimes(meta.Conditions{Tides: report.FlatExtremes, SunEvents: sunEvents}, s.lowTideThresh)
	tideImages := visualize.NewTidal(report.FlatExtremes, sunEvents)

	nextStart, _ := timetricks.AddDays(key, almanac.WeekDays)
	prevStart, _ := timetricks.AddDays(key, -almanac.WeekDays)
	tinput := TemplateInput{
		Name:                 report.Location,
		Source:               report.SourceName,
		SourceLabel:          report.SourceLabel,
		UTCOffset:            report.UTCOffset,
		BuildID:              s.buildID,
		PresentationElements: s.presentationElements(report, date, tideImages, goodTimes),
		NextStart:            nextStart,
		PrevStart:            prevStart,
	}

	var buf bytes.Buffer
	if err := s.index.Execute(&buf, tinput); err != nil {
		s.writeError(w, r, fmt.Errorf("failed to execute template: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// presentationElements lays out one element per day of the report, each with
// the good times that fall on it.
func (s *Server) presentationElements(report almanac.WeekReport, first time.Time, tideImages *visualize.Tidal, goodTimes []meta.GoodTime) []PresentationElement {
	result := make([]PresentationElement, 0, len(report.Days))
	for i, d := range report.Days {
		date := first.AddDate(0, 0, i)
		elem := PresentationElement{
			Date:      timetricks.Day(date),
			DateKey:   d.DateKey,
			Extremes:  d.Extremes,
			TideImage: template.HTML(s.imgToString(tideImages, date)),
		}
		for _, gt := range goodTimes {
			if timetricks.SameDay(gt.Time.In(date.Location()), date) {
				gt.UpdatePrettyTime()
				elem.GoodTimes = append(elem.GoodTimes, gt)
			}
		}
		result = append(result, elem)
	}
	return result
}

func (s *Server) imgToString(img *visualize.Tidal, t time.Time) string {
	img.SetDate(t)
	var b bytes.Buffer
	if _, err := img.Encode(&b); err != nil {
		s.logger.Warn("failed to draw tides", "date", timetricks.DateKey(t), "error", err)
		return ""
	}
	return b.String()
}

// serveDaySVG draws the tides of a single day.
func (s *Server) serveDaySVG(w http.ResponseWriter, r *http.Request) {
	p, err := s.profile(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	key, date, err := dateParam(r, "date", p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// Start a day early so the curve enters the picture from the left.
	prevKey, err := timetricks.AddDays(key, -1)
	if err != nil {
		s.writeError(w, r, withStatus(http.StatusBadRequest, err))
		return
	}
	report, err := s.week(r.Context(), p, prevKey, date.Year())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sunEvents := sunset.GetSunEvents(date, 2*day, sunset.PlaceOf(p))
	img := visualize.NewTidal(report.FlatExtremes, sunEvents)
	img.SetDate(date)

	var buf bytes.Buffer
	if _, err := img.Encode(&buf); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
