package models

// SlideData represents structured data for a single slide.
type SlideData struct {
	// Index is the position of the slide in the deck (0-based).
	Index int `json:"index"`
	// SlideID is the value of the slide marker ({slide_id=...}), if any.
	SlideID string `json:"slide_id,omitempty"`
	// Part is the package part holding the slide.
	Part string `json:"part"`
	// Shapes contains the shapes of the slide in z-order.
	Shapes []Shape `json:"shapes,omitempty"`
	// Charts contains the charts of the slide.
	Charts []Chart `json:"charts,omitempty"`
	// Labels lists every label left on the slide.
	Labels []string `json:"labels,omitempty"`
	// Notes is the text of the notes slide.
	Notes string `json:"notes,omitempty"`
}
