package models

import "math"

// EMU conversions. DrawingML measures lengths in English Metric Units.
const (
	EMUPerInch  = 914400
	EMUPerCm    = 360000
	EMUPerPoint = 12700
)

// Inches converts inches to EMU.
func Inches(v float64) int64 { return int64(math.Round(v * EMUPerInch)) }

// Cm converts centimetres to EMU.
func Cm(v float64) int64 { return int64(math.Round(v * EMUPerCm)) }

// Pt converts points to EMU.
func Pt(v float64) int64 { return int64(math.Round(v * EMUPerPoint)) }

// PositionSize carries the geometry to apply to a shape. Nil fields are
// left unchanged.
type PositionSize struct {
	Left   *int64 `json:"left,omitempty" yaml:"left,omitempty"`
	Top    *int64 `json:"top,omitempty" yaml:"top,omitempty"`
	Width  *int64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height *int64 `json:"height,omitempty" yaml:"height,omitempty"`
}

// EMU returns a pointer to v, for building PositionSize literals.
func EMU(v int64) *int64 { return &v }
