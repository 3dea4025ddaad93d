// Package ui renders kopi's terminal output: tagged status lines, tables,
// and the startup banner. Status lines use fatih/color for the tag
// coloring; structured output (tables, spinners) goes through pterm.
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

var (
	errorTag   = color.New(color.FgRed, color.Bold).SprintFunc()
	successTag = color.New(color.FgGreen, color.Bold).SprintFunc()
	infoTag    = color.New(color.FgBlue, color.Bold).SprintFunc()
	warnTag    = color.New(color.FgYellow, color.Bold).SprintFunc()
	fetchTag   = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// Error prints a tagged error line to stderr.
func Error(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorTag("[ERROR]"), fmt.Sprintf(format, args...))
}

// Success prints a tagged success line to stdout.
func Success(format string, args ...any) {
	fmt.Printf("%s %s\n", successTag("[SUCCESS]"), fmt.Sprintf(format, args...))
}

// Info prints a tagged info line to stdout.
func Info(format string, args ...any) {
	fmt.Printf("%s %s\n", infoTag("[INFO]"), fmt.Sprintf(format, args...))
}

// Warn prints a tagged warning line to stdout.
func Warn(format string, args ...any) {
	fmt.Printf("%s %s\n", warnTag("[WARN]"), fmt.Sprintf(format, args...))
}

// Fetch prints a tagged line for remote metadata/download activity.
func Fetch(format string, args ...any) {
	fmt.Printf("%s %s\n", fetchTag("[FETCH]"), fmt.Sprintf(format, args...))
}

// Fatal prints a tagged error line and exits with status 1.
func Fatal(format string, args ...any) {
	Error(format, args...)
	os.Exit(1)
}

// Table renders rows under a header using pterm's default table style.
// Each row and the header must have the same column count.
func Table(header []string, rows [][]string) error {
	data := make(pterm.TableData, 0, len(rows)+1)
	data = append(data, header)
	data = append(data, rows...)
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// Spinner starts a pterm spinner with the given message, returning a
// function that stops it with a final success or failure line.
func Spinner(message string) (done func(success bool, final string)) {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return func(success bool, final string) {
		if success {
			spinner.Success(final)
		} else {
			spinner.Fail(final)
		}
	}
}
