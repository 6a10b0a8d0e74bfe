package models

// CellFont resets table cells to one run with the given font. Size is in
// points; zero keeps the size of the template.
type CellFont struct {
	Name string  `json:"name" yaml:"name"`
	Size float64 `json:"size,omitempty" yaml:"size,omitempty"`
}
