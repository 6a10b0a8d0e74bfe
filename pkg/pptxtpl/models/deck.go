package models

// DeckData represents a presentation with per-slide data.
type DeckData struct {
	// Name is the deck file name (no path).
	Name string `json:"name"`
	// Slides lists the slides in presentation order.
	Slides []SlideData `json:"slides"`
}
