// Command hourly prints the interpolated water height of Ilhéus every two
// hours for a week, read from the tide table document given as argument.
//
//	hourly tabua-2026.txt [2026-01-30]
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spencer-p/tidetable/pkg/almanac"
	"github.com/spencer-p/tidetable/pkg/almanac/splines"
	"github.com/spencer-p/tidetable/pkg/timetricks"
)

func main() {
	step := 2 * time.Hour
	p := almanac.Ilheus

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s DOCUMENT [YYYY-MM-DD]\n", os.Args[0])
		os.Exit(2)
	}
	start := timetricks.TodayKey(p.Location())
	if len(os.Args) > 2 {
		start = os.Args[2]
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("failed to read tide table: %v\n", err)
		os.Exit(1)
	}
	report, err := almanac.BuildWeekReport(raw, start, os.Args[1], p)
	if err != nil {
		fmt.Printf("failed to build week: %v\n", err)
		os.Exit(1)
	}
	if len(report.FlatExtremes) < 2 {
		fmt.Printf("not enough tides in the week of %s\n", start)
		os.Exit(1)
	}

	tstart := report.FlatExtremes[0].Time
	tend := report.FlatExtremes[len(report.FlatExtremes)-1].Time
	spl := splines.CurvesBetween(report.FlatExtremes)
	for _, s := range spl.Every(tstart, tend, step) {
		fmt.Printf("%.2f ", s.Height)
	}
	fmt.Println()
}
