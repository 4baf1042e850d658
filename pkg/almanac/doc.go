// Package almanac extracts tide extrema from printed tide tables.  A tide table
// document (see Normalize) is scanned for the block of text belonging to one
// month (see Document.Month), each day line in that block is broken into
// (clock time, height) pairs (see DayPairs), and the pairs of a day are labelled
// high or low by comparing each height with its neighbours (see Classify).
// BuildWeekReport runs the whole pipeline for seven consecutive days.
//
// Documents carry no explicit high/low markers, so the classification is purely
// relative. Nothing in this package performs I/O or keeps state between calls.
package almanac
