package models

// Shape represents shape metadata including position, size and text.
type Shape struct {
	// ID is the shape id within the slide.
	ID int `json:"id"`
	// Name is the shape name shown in the selection pane.
	Name string `json:"name,omitempty"`
	// Kind is the shape variant: text, table, chart, picture, group or other.
	Kind string `json:"kind"`
	// Type is the preset geometry label (e.g. AutoShape-Rectangle).
	Type string `json:"type,omitempty"`
	// Text is the visible text content of the shape.
	Text string `json:"text,omitempty"`
	// Labels lists the labels present in the text.
	Labels []string `json:"labels,omitempty"`
	// L is the left offset in pixels.
	L int `json:"l"`
	// T is the top offset in pixels.
	T int `json:"t"`
	// W is the shape width in pixels.
	W int `json:"w"`
	// H is the shape height in pixels.
	H int `json:"h"`
	// Rotation is the rotation angle in degrees.
	Rotation *float64 `json:"rotation,omitempty"`
	// Children holds the shapes of a group.
	Children []Shape `json:"children,omitempty"`
}
