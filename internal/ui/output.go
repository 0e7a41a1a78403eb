package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Output handles styled terminal output.
type Output struct {
	noColor bool
}

// NewOutput creates a new Output instance. Color is disabled when stdout is
// not a terminal.
func NewOutput() *Output {
	fd := os.Stdout.Fd()
	return &Output{
		noColor: !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd),
	}
}

// SetNoColor disables colored output.
func (o *Output) SetNoColor(v bool) {
	o.noColor = v
}

// Success prints a success message with a green checkmark.
func (o *Output) Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if o.noColor {
		fmt.Fprintf(os.Stdout, "OK %s\n", msg)
	} else {
		fmt.Fprintf(os.Stdout, "\033[32m✓\033[0m %s\n", msg)
	}
}

// Error prints an error message with a red X.
func (o *Output) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if o.noColor {
		fmt.Fprintf(os.Stderr, "FAIL %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", msg)
	}
}

// Warning prints a warning message with a yellow exclamation.
func (o *Output) Warning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if o.noColor {
		fmt.Fprintf(os.Stderr, "WARN %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "\033[33m!\033[0m %s\n", msg)
	}
}

// Info prints an informational message.
func (o *Output) Info(format string, args ...any) {
	fmt.Fprintf(os.Stdout, format+"\n", args...)
}

// Println prints a line to stdout.
func (o *Output) Println(format string, args ...any) {
	fmt.Fprintf(os.Stdout, format+"\n", args...)
}

// Debug prints a debug message to stderr.
func (o *Output) Debug(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if o.noColor {
		fmt.Fprintf(os.Stderr, "DEBUG %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "\033[36m[debug]\033[0m %s\n", msg)
	}
}

// Bold paints a string bold.
func (o *Output) Bold(s string) string { return o.paint("1", s) }

// Dim paints a string faint.
func (o *Output) Dim(s string) string { return o.paint("2", s) }

// Red paints a string red.
func (o *Output) Red(s string) string { return o.paint("31", s) }

// Green paints a string green.
func (o *Output) Green(s string) string { return o.paint("32", s) }

// Yellow paints a string yellow.
func (o *Output) Yellow(s string) string { return o.paint("33", s) }

// Blue paints a string blue.
func (o *Output) Blue(s string) string { return o.paint("34", s) }

// Cyan paints a string cyan.
func (o *Output) Cyan(s string) string { return o.paint("36", s) }

func (o *Output) paint(code, s string) string {
	if o.noColor {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

// Table prints a simple aligned table. Cells may carry ANSI color codes;
// widths are computed from the visible text.
func (o *Output) Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	for i, h := range headers {
		fmt.Fprintf(os.Stdout, "%s  ", pad(h, widths[i]))
	}
	fmt.Fprintln(os.Stdout)

	for i, w := range widths {
		fmt.Fprint(os.Stdout, strings.Repeat("-", w))
		if i < len(widths)-1 {
			fmt.Fprint(os.Stdout, "  ")
		}
	}
	fmt.Fprintln(os.Stdout)

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				fmt.Fprintf(os.Stdout, "%s  ", pad(cell, widths[i]))
			}
		}
		fmt.Fprintln(os.Stdout)
	}
}

// pad right-fills to the target visible width, ANSI codes excluded.
func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
