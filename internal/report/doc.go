// Package report
// Author: momentics <momentics@gmail.com>
//
// Turns filled slots into latency samples, decile tables and a median, and
// writes the per-record and statistics CSV files.
package report
