// Package ui shows the progress of a conformance run, either as a progress
// bar or as a full-screen bubbletea TUI.
package ui
