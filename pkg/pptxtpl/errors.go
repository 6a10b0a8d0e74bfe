package pptxtpl

import (
	"errors"
	"fmt"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/chart"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/opc"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid pptx package.
var ErrInvalidFormat = errors.New("invalid pptx format")

// ErrEncrypted indicates a password-protected presentation.
var ErrEncrypted = errors.New("presentation is encrypted")

// ErrSlideIndex indicates a slide index outside the deck.
var ErrSlideIndex = errors.New("slide index out of range")

// ErrSeriesLength indicates chart data whose series do not have one value
// per category.
var ErrSeriesLength = errors.New("series length does not match category count")

// ErrNoTable indicates a slide without a table.
var ErrNoTable = errors.New("slide has no table")

// ErrUnknownOp indicates a job step with an unknown operation.
var ErrUnknownOp = errors.New("unknown operation")

// ErrUnsupportedChart indicates a chart whose data cannot be replaced.
var ErrUnsupportedChart = chart.ErrUnsupportedChart

// ErrMalformedPart indicates a part whose XML is unreadable or lacks a
// required element.
var ErrMalformedPart = opc.ErrMalformedPart

// SlideError represents an error while operating on one slide.
type SlideError struct {
	Slide int
	Op    string // "bind", "prune", "chart", "table", "move", "delete", ...
	Err   error
}

func (e *SlideError) Error() string {
	return fmt.Sprintf("%s slide %d: %v", e.Op, e.Slide, e.Err)
}

func (e *SlideError) Unwrap() error {
	return e.Err
}

// NewSlideError creates a new SlideError.
func NewSlideError(slide int, op string, err error) *SlideError {
	return &SlideError{
		Slide: slide,
		Op:    op,
		Err:   err,
	}
}

// CloneError represents a failed slide clone. Stage is the last stage the
// clone completed before failing; the document is left as it was before
// the call.
type CloneError struct {
	Source int
	Target int
	Stage  CloneStage
	Err    error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("clone slide %d to %d (after %s): %v", e.Source, e.Target, e.Stage, e.Err)
}

func (e *CloneError) Unwrap() error {
	return e.Err
}
