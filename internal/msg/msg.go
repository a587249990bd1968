package msg

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Output is where messages go unless a writer is passed explicitly. Tests swap it for a buffer.
var Output io.Writer = os.Stdout

func prefixed(w io.Writer, prefix, format string, a ...any) {
	fmt.Fprint(w, prefix)
	fmt.Fprint(w, ": ")
	fmt.Fprintf(w, format, a...)
	fmt.Fprint(w, "\n")
}

func Error(format string, a ...any) {
	prefixed(Output, color.HiRedString("error"), format, a...)
}

func Warn(format string, a ...any) {
	Fwarn(Output, format, a...)
}

// Fwarn is Warn writing to w instead of Output
func Fwarn(w io.Writer, format string, a ...any) {
	prefixed(w, color.YellowString("warn"), format, a...)
}

func Fatal(format string, a ...any) {
	prefixed(Output, color.RedString("fatal"), format, a...)
	os.Exit(1)
}

func Info(format string, a ...any) {
	prefixed(Output, color.HiGreenString("info"), format, a...)
}

// Created reports a file written to disk
func Created(w io.Writer, name string) {
	fmt.Fprintf(w, "%s %s\n", color.HiGreenString("Created"), name)
}

// Status prints a right-aligned colored verb followed by a message, e.g. "   stale tucttxDevDebug.xcconfig"
func Status(w io.Writer, verb string, c *color.Color, format string, a ...any) {
	fmt.Fprintf(w, "%s %s\n", c.Sprintf("%8s", verb), fmt.Sprintf(format, a...))
}

type IndentWriter struct {
	Indent    string
	W         io.Writer
	didIndent bool
}

func (w *IndentWriter) Write(p []byte) (n int, err error) {
	for _, c := range p {
		if !w.didIndent {
			if _, err := w.W.Write([]byte(w.Indent)); err != nil {
				return n, err
			}
			w.didIndent = true
		}
		if _, err := w.W.Write([]byte{c}); err != nil { // FIXME-perf: buffer this
			return n, err
		}
		n++
		if c == '\n' || c == '\r' {
			w.didIndent = false
		}
	}
	return n, nil
}
