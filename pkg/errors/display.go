// Package errors provides error formatting and display functions.
// Renders ReportErrors with color coding for TTY output.
package errors

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m" // Error type/code
	colorYellow = "\033[33m" // Context information
	colorCyan   = "\033[36m" // Suggestions
	colorDim    = "\033[90m" // Secondary/cause info
)

// Formatter handles error display with optional color support.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	// When false, output is plain text suitable for logs.
	UseColor bool

	// Writer is the output destination. Defaults to os.Stderr.
	Writer io.Writer

	// Indent is the prefix for context and suggestion lines.
	Indent string
}

// DefaultFormatter returns a Formatter configured for standard error output.
// Color is enabled if stderr is a TTY.
func DefaultFormatter() *Formatter {
	return &Formatter{
		UseColor: IsTTY(os.Stderr),
		Writer:   os.Stderr,
		Indent:   "  ",
	}
}

// IsTTY returns true if the given file is a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// Format renders a ReportError with color coding and structured display.
// Returns a formatted string suitable for display to users.
func Format(err error) string {
	return DefaultFormatter().Format(err)
}

// Format renders an error with color coding based on formatter settings.
// For ReportError, displays code, message, context, cause, and suggestions.
// For standard errors, displays a simple error message.
func (f *Formatter) Format(err error) string {
	if err == nil {
		return ""
	}

	re, ok := AsReportError(err)
	if !ok {
		if f.UseColor {
			return fmt.Sprintf("%sError:%s %v", colorRed, colorReset, err)
		}
		return fmt.Sprintf("Error: %v", err)
	}

	var sb strings.Builder

	// Header: [CODE] message
	if f.UseColor {
		sb.WriteString(fmt.Sprintf("%s[%s]%s %s", colorRed, re.Code, colorReset, re.Message))
	} else {
		sb.WriteString(fmt.Sprintf("[%s] %s", re.Code, re.Message))
	}

	// Context lines, sorted for deterministic output
	if re.HasContext() {
		keys := make([]string, 0, len(re.Context))
		for k := range re.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString("\n")
			if f.UseColor {
				sb.WriteString(fmt.Sprintf("%s%s%s: %s%s", f.Indent, colorYellow, k, re.Context[k], colorReset))
			} else {
				sb.WriteString(fmt.Sprintf("%s%s: %s", f.Indent, k, re.Context[k]))
			}
		}
	}

	// Cause chain
	if re.Cause != nil {
		sb.WriteString("\n")
		if f.UseColor {
			sb.WriteString(fmt.Sprintf("%s%scaused by: %v%s", f.Indent, colorDim, re.Cause, colorReset))
		} else {
			sb.WriteString(fmt.Sprintf("%scaused by: %v", f.Indent, re.Cause))
		}
	}

	// Suggestions
	for _, s := range re.Suggestions {
		sb.WriteString("\n")
		if f.UseColor {
			sb.WriteString(fmt.Sprintf("%s%s• %s%s", f.Indent, colorCyan, s, colorReset))
		} else {
			sb.WriteString(fmt.Sprintf("%s• %s", f.Indent, s))
		}
	}

	return sb.String()
}

// Print writes the formatted error to the formatter's writer.
func (f *Formatter) Print(err error) {
	if err == nil {
		return
	}
	w := f.Writer
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintln(w, f.Format(err))
}

// UserMessage returns a multi-line plain-text rendering of the error
// suitable for terminal display without color support.
func UserMessage(err error) string {
	f := &Formatter{UseColor: false, Indent: "  "}
	return f.Format(err)
}
