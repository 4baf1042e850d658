// Package handlers serves tide tables over HTTP.
package handlers

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/spencer-p/tidetable/pkg/almanac"
	"github.com/spencer-p/tidetable/pkg/almanac/splines"
	"github.com/spencer-p/tidetable/pkg/meta"
	"github.com/spencer-p/tidetable/pkg/metrics"
	"github.com/spencer-p/tidetable/pkg/sunset"
	"github.com/spencer-p/tidetable/pkg/timetricks"
)

const (
	day            = 24 * time.Hour
	forecastLength = almanac.WeekDays * day

	defaultStep = time.Hour
	minStep     = time.Minute
)

//go:embed static
var content embed.FS

// DocumentSource yields the raw tide table of a station for a year, along
// with a label saying where it came from.
type DocumentSource interface {
	Document(ctx context.Context, p almanac.Profile, year int) ([]byte, string, error)
}

// Options configures the handlers.
type Options struct {
	Profiles      []almanac.Profile
	Documents     DocumentSource
	Logger        *slog.Logger
	BuildID       string
	LowTideThresh float64
}

// Server holds what the handlers share.
type Server struct {
	profiles      map[string]almanac.Profile
	docs          DocumentSource
	logger        *slog.Logger
	buildID       string
	lowTideThresh float64
	index         *template.Template
}

// Register installs the tide table routes on r.
func Register(r *mux.Router, opts Options) *Server {
	s := &Server{
		profiles:      make(map[string]almanac.Profile, len(opts.Profiles)),
		docs:          opts.Documents,
		logger:        opts.Logger,
		buildID:       opts.BuildID,
		lowTideThresh: opts.LowTideThresh,
		index:         template.Must(template.ParseFS(content, "static/index.template.html")),
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	for _, p := range opts.Profiles {
		s.profiles[p.Slug] = p
	}

	handle := func(path string, h http.HandlerFunc) {
		r.Handle(path, metrics.LatencyHandler(path, h)).Methods(http.MethodGet)
	}
	handle("/health", s.serveHealth)
	handle("/dhn/{station}/week", s.serveWeek)
	handle("/dhn/{station}/goodtimes", s.serveGoodTimes)
	handle("/dhn/{station}/hourly", s.serveHourly)
	handle("/dhn/{station}/day.svg", s.serveDaySVG)
	handle("/dhn/{station}/", s.serveIndex)
	return s
}

func (s *Server) serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "ok %s", s.buildID)
}

func (s *Server) serveWeek(w http.ResponseWriter, r *http.Request) {
	p, err := s.profile(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	key, _, err := dateParam(r, "start", p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	report, err := s.week(r.Context(), p, key, 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, report)
}

func (s *Server) serveGoodTimes(w http.ResponseWriter, r *http.Request) {
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
	sunEvents := sunset.GetSunEvents(date, forecastLength, sunset.PlaceOf(p))
	goodTimes := meta.GoodTimes(meta.Conditions{Tides: report.FlatExtremes, SunEvents: sunEvents}, s.lowTideThresh)

	if r.FormValue("o") == "json" {
		s.writeJSON(w, goodTimes)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	for i, gt := range goodTimes {
		fmt.Fprintf(w, "%s", gt.String())
		if i+1 < len(goodTimes) {
			fmt.Fprintf(w, "\n")
		}
	}
}

type hourlyResponse struct {
	Station string           `json:"station"`
	Start   string           `json:"startDateKey"`
	Step    string           `json:"step"`
	Samples []splines.Sample `json:"samples"`
}

func (s *Server) serveHourly(w http.ResponseWriter, r *http.Request) {
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
	step := defaultStep
	if v := r.FormValue("step"); v != "" {
		step, err = time.ParseDuration(v)
		if err != nil || step < minStep || step > day {
			s.writeError(w, r, withStatus(http.StatusBadRequest,
				fmt.Errorf("invalid step %q: want a duration between %s and %s", v, minStep, day)))
			return
		}
	}

	report, err := s.week(r.Context(), p, key, 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	spline := splines.CurvesBetween(report.FlatExtremes)
	samples := spline.Every(date, date.Add(forecastLength-time.Nanosecond), step)
	if samples == nil {
		samples = []splines.Sample{}
	}
	s.writeJSON(w, hourlyResponse{
		Station: p.Slug,
		Start:   key,
		Step:    step.String(),
		Samples: samples,
	})
}

// week builds the report of the week starting at key, reading every day from
// the document of its own year. Failing to fetch the document of required, or
// of key's year when required is 0, fails the request; other years only leave
// their days empty.
func (s *Server) week(ctx context.Context, p almanac.Profile, key string, required int) (almanac.WeekReport, error) {
	start, err := timetricks.ParseDateKey(key)
	if err != nil {
		return almanac.WeekReport{}, withStatus(http.StatusBadRequest, err)
	}
	if required == 0 {
		required = start.Year()
	}

	docs := make(almanac.YearDocuments)
	var labels []string
	for _, year := range almanac.WeekYears(start) {
		raw, label, err := s.docs.Document(ctx, p, year)
		if err != nil {
			if year == required {
				return almanac.WeekReport{}, withStatus(http.StatusBadGateway,
					fmt.Errorf("failed to fetch tide table: %w", err))
			}
			s.logger.Warn("failed to fetch tide table",
				"station", p.Slug,
				"year", year,
				"error", err)
			continue
		}
		// A source without a year serves one table for all of them.
		if slices.Contains(labels, label) {
			continue
		}
		docs[year] = almanac.NewDocument(raw, p.MaxBytes())
		labels = append(labels, label)
	}

	report := docs.Week(start, strings.Join(labels, ", "), p)
	if empty := report.EmptyDays(); empty > 0 {
		metrics.ObserveEmptyDays(p.Slug, empty)
		s.logger.Debug("week has days without tides",
			"station", p.Slug,
			"start", key,
			"empty_days", empty)
	}
	return report, nil
}

// profile finds the station named in the request path.
func (s *Server) profile(r *http.Request) (almanac.Profile, error) {
	slug := strings.ToLower(mux.Vars(r)["station"])
	p, ok := s.profiles[slug]
	if !ok {
		return almanac.Profile{}, withStatus(http.StatusNotFound, fmt.Errorf("unknown station %q", slug))
	}
	return p, nil
}

// dateParam reads a date key from the query, defaulting to today at the
// station. It also returns the midnight starting that date at the station.
func dateParam(r *http.Request, name string, p almanac.Profile) (string, time.Time, error) {
	loc := p.Location()
	key := r.FormValue(name)
	if key == "" {
		key = timetricks.TodayKey(loc)
	}
	t, err := timetricks.ParseDateKey(key)
	if err != nil {
		return "", time.Time{}, withStatus(http.StatusBadRequest, err)
	}
	y, m, d := t.Date()
	return timetricks.DateKey(t), time.Date(y, m, d, 0, 0, 0, 0, loc), nil
}

// statusError carries the HTTP status an error should be reported with.
type statusError struct {
	code int
	err  error
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

func withStatus(code int, err error) error {
	return &statusError{code: code, err: err}
}

type errorResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	BuildID string `json:"buildId"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	var se *statusError
	if errors.As(err, &se) {
		code = se.code
	}

	level := slog.LevelInfo
	if code >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.Log(r.Context(), level, "request failed",
		"method", r.Method,
		"url", r.URL.String(),
		"status", code,
		"error", err)

	s.writeJSONStatus(w, code, errorResponse{
		OK:      false,
		Error:   err.Error(),
		BuildID: s.buildID,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	s.writeJSONStatus(w, http.StatusOK, v)
}

func (s *Server) writeJSONStatus(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}
