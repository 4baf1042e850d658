package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/spencer-p/tidetable/pkg/almanac"
	"github.com/spencer-p/tidetable/pkg/dhn"
	"github.com/spencer-p/tidetable/pkg/timetricks"
)

const fetchTimeout = 30 * time.Second

// NewRootCmd creates the root command for tides.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tides",
		Short: "Read tide table documents",
		Long: `tides extracts the high and low tides of a week from a tide table
document, such as the yearly tables published by the Brazilian Navy.

The document is a local file or a URL; {station} and {year} in it are
replaced by the station slug and the year of the start date.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("document", "d", "", "Tide table file or URL")
	cmd.PersistentFlags().StringP("station", "s", almanac.Ilheus.Slug, "Station slug")
	cmd.PersistentFlags().String("profiles", "", "YAML file of station profiles")
	cmd.PersistentFlags().String("start", "", "First day, YYYY-MM-DD (default today at the station)")

	cmd.AddCommand(NewWeekCmd())
	cmd.AddCommand(NewGoodTimesCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// week reads the document named by the flags and builds the requested week.
func week(ctx context.Context, cmd *cobra.Command) (almanac.WeekReport, almanac.Profile, error) {
	p, err := profileFromFlags(cmd)
	if err != nil {
		return almanac.WeekReport{}, p, err
	}

	key, _ := cmd.Flags().GetString("start")
	if key == "" {
		key = timetricks.TodayKey(p.Location())
	}
	start, err := timetricks.ParseDateKey(key)
	if err != nil {
		return almanac.WeekReport{}, p, err
	}

	document, _ := cmd.Flags().GetString("document")
	if document == "" {
		return almanac.WeekReport{}, p, fmt.Errorf("--document is required")
	}
	remote := strings.HasPrefix(document, "http://") || strings.HasPrefix(document, "https://")

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	// Days of the following year are read from that year's document, when
	// the document names a year at all.
	docs := make(almanac.YearDocuments)
	var sources []string
	for _, year := range almanac.WeekYears(start) {
		q := dhn.DocumentQuery{Station: p.Slug, Year: year}
		if remote {
			q.URL = document
		} else {
			q.Path = document
		}
		if slices.Contains(sources, q.Source()) {
			continue
		}

		doc, err := dhn.GetDocument(ctx, &http.Client{}, q, p.MaxBytes())
		if err != nil {
			if year == start.Year() {
				return almanac.WeekReport{}, p, err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: no tides for %d: %v\n", year, err)
			continue
		}
		docs[year] = almanac.NewDocument(doc, p.MaxBytes())
		sources = append(sources, q.Source())
	}

	return docs.Week(start, strings.Join(sources, ", "), p), p, nil
}

func profileFromFlags(cmd *cobra.Command) (almanac.Profile, error) {
	slug, _ := cmd.Flags().GetString("station")
	path, _ := cmd.Flags().GetString("profiles")

	profiles := []almanac.Profile{almanac.Ilheus}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return almanac.Profile{}, err
		}
		defer f.Close()
		if profiles, err = almanac.LoadProfiles(f); err != nil {
			return almanac.Profile{}, err
		}
	}

	for _, p := range profiles {
		if p.Slug == slug {
			return p, nil
		}
	}
	return almanac.Profile{}, fmt.Errorf("unknown station %q", slug)
}
