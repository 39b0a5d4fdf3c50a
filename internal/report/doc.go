// Package report accumulates classified test results and renders them to the
// console and to CSV.
package report
