package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spencer-p/tidetable/pkg/almanac"
)

const tideTable = "JANEIRO\n" +
	"30 SEX 0512 1.9 1123 0.3 1736 1.8 2349 0.6\n" +
	"31 SAB 0603 1.8 1214 0.4 1830 1.7\n" +
	"FEVEREIRO\n" +
	"01 DOM 0035 0.7 0701 1.7 1312 0.5 1931 1.6\n"

func writeTable(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ilheus-2026.txt")
	require.NoError(t, os.WriteFile(path, []byte(tideTable), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()
	assert.Equal(t, "tides", cmd.Use)
	assert.NotEmpty(t, cmd.Version)
	for _, name := range []string{"document", "station", "profiles", "start"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing flag %s", name)
	}

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"week", "goodtimes", "version"}, names)
}

func TestWeekCmd(t *testing.T) {
	path := writeTable(t)
	stdout, stderr, err := run(t, "week", "--document", path, "--start", "2026-01-30")
	require.NoError(t, err)

	var report almanac.WeekReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "2026-01-30", report.StartDateKey)
	assert.Equal(t, path, report.SourceLabel)
	require.Len(t, report.Days, 7)
	assert.Len(t, report.Days[0].Extremes, 4)
	assert.Len(t, report.Days[2].Extremes, 4)
	assert.Contains(t, stderr, "4 of 7 days have no tides")
}

func TestWeekCmdTemplate(t *testing.T) {
	path := writeTable(t)
	template := filepath.Join(filepath.Dir(path), "{station}-{year}.txt")
	_, _, err := run(t, "week", "-d", template, "--start", "2026-01-30")
	require.NoError(t, err)
}

func TestWeekCmdAcrossNewYear(t *testing.T) {
	dir := t.TempDir()
	write := func(name, table string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(table), 0o644))
	}
	write("ilheus-2026.txt", "JANEIRO\n"+
		"01 QUI 0137 0.3 0744 1.9 1350 0.4 2002 2.0\n"+
		"DEZEMBRO\n"+
		"31 QUI 0350 0.3 1000 2.0 1610 0.4 2220 1.9\n")
	template := filepath.Join(dir, "{station}-{year}.txt")

	// Without the 2027 table January stays empty.
	stdout, stderr, err := run(t, "week", "-d", template, "--start", "2026-12-31")
	require.NoError(t, err)
	var report almanac.WeekReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Len(t, report.Days[0].Extremes, 4)
	assert.Empty(t, report.Days[1].Extremes)
	assert.Contains(t, stderr, "warning: no tides for 2027")

	write("ilheus-2027.txt", "JANEIRO\n"+
		"01 SEX 0440 0.4 1050 1.9 1700 0.5\n")
	stdout, _, err = run(t, "week", "-d", template, "--start", "2026-12-31")
	require.NoError(t, err)
	report = almanac.WeekReport{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, filepath.Join(dir, "ilheus-2026.txt")+", "+filepath.Join(dir, "ilheus-2027.txt"), report.SourceLabel)
	require.Len(t, report.Days[1].Extremes, 3)
	assert.Equal(t, "2027-01-01", report.Days[1].DateKey)
	assert.Equal(t, "04:40", report.Days[1].Extremes[0].LocalTime)
}

func TestWeekCmdErrors(t *testing.T) {
	path := writeTable(t)

	table := []struct {
		name string
		args []string
		msg  string
	}{
		{"no document", []string{"week", "--start", "2026-01-30"}, "--document is required"},
		{"bad start", []string{"week", "-d", path, "--start", "tomorrow"}, "invalid date key"},
		{"unknown station", []string{"week", "-d", path, "-s", "santos"}, `unknown station "santos"`},
		{"missing file", []string{"week", "-d", path + ".gone", "--start", "2026-01-30"}, "not found"},
	}

	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := run(t, test.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.msg)
		})
	}
}

func TestGoodTimesCmd(t *testing.T) {
	path := writeTable(t)

	stdout, _, err := run(t, "goodtimes", "-d", path, "--start", "2026-01-30", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"time":"2026-01-30T11:23:00-03:00"`)
	assert.Contains(t, stdout, "tide is low at 0.30 m")

	stdout, _, err = run(t, "goodtimes", "-d", path, "--start", "2026-01-30", "--threshold", "0.1")
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(stdout))

	_, _, err = run(t, "goodtimes", "-d", path, "-o", "yaml")
	require.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "tides version")
	assert.Contains(t, stdout, "commit:")
}
