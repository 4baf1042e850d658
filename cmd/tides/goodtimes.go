package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spencer-p/tidetable/pkg/almanac"
	"github.com/spencer-p/tidetable/pkg/meta"
	"github.com/spencer-p/tidetable/pkg/sunset"
)

// NewGoodTimesCmd creates the goodtimes command.
func NewGoodTimesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goodtimes",
		Short: "List the low tides of the week worth going out for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			thresh, _ := cmd.Flags().GetFloat64("threshold")
			output, _ := cmd.Flags().GetString("output")
			if output != "text" && output != "json" {
				return fmt.Errorf("unknown output %q: want text or json", output)
			}

			report, p, err := week(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			first := report.Days[0].DateKey
			start, err := time.ParseInLocation(time.DateOnly, first, p.Location())
			if err != nil {
				return err
			}
			sunEvents := sunset.GetSunEvents(start, almanac.WeekDays*24*time.Hour, sunset.PlaceOf(p))
			goodTimes := meta.GoodTimes(meta.Conditions{Tides: report.FlatExtremes, SunEvents: sunEvents}, thresh)

			if output == "json" {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(goodTimes)
			}
			for _, gt := range goodTimes {
				fmt.Fprintln(cmd.OutOrStdout(), gt.String())
			}
			return nil
		},
	}

	cmd.Flags().Float64P("threshold", "t", meta.DefaultLowTideThresh, "Highest low tide worth going out for, in metres")
	cmd.Flags().StringP("output", "o", "text", "Output format: text or json")
	return cmd
}
