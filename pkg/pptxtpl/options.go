// Package pptxtpl fills PowerPoint templates: it substitutes labels such as
// "{name}" in slide text, removes what was left unfilled, rebinds chart
// data and copies slides.
package pptxtpl

import (
	"go.uber.org/zap"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/label"
)

// Options configures template behavior.
type Options struct {
	// LabelFormat is the printf-style layout of a label, holding one %s.
	// Empty means label.DefaultFormat ("{%s}").
	LabelFormat string
	// Logger receives debug and warning events. Nil disables logging.
	Logger *zap.Logger
}

// DefaultOptions returns default template options.
func DefaultOptions() Options {
	return Options{
		LabelFormat: label.DefaultFormat,
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o Options) format() (*label.Format, error) {
	if o.LabelFormat == "" {
		return label.Default(), nil
	}
	return label.ParseFormat(o.LabelFormat)
}
