// Package main provides the tides CLI, which reads a tide table document and
// prints a week of tides or the good times to go out.
//
// Usage:
//
//	tides week --document tabua-2026.txt --start 2026-01-30
//	tides goodtimes --document 'https://example.com/{station}-{year}.txt'
//
// See --help for all available options.
package main

func main() {
	Execute()
}
