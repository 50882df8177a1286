package engine

import (
	"fmt"
	"io"

	"github.com/gookit/color"
)

// Reporter handles progress reporting during a run
type Reporter interface {
	Printf(format string, args ...interface{})
}

// SilentReporter does not output any progress
type SilentReporter struct{}

func (r *SilentReporter) Printf(format string, args ...interface{}) {}

// ColorReporter outputs colorized progress to a writer (typically stderr)
type ColorReporter struct {
	Writer io.Writer
}

func (r *ColorReporter) Printf(format string, args ...interface{}) {
	fmt.Fprint(r.Writer, color.Cyan.Sprintf(format, args...))
}
