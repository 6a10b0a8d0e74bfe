// Package output serializes inspection results.
package output

import (
	"encoding/json"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/models"
)

// ToJSON serializes v to JSON, indented when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// DeckToJSON serializes a deck summary.
func DeckToJSON(deck *models.DeckData, pretty bool) ([]byte, error) {
	return ToJSON(deck, pretty)
}

// SlideIndex is the slide listing printed by the slides command.
type SlideIndex struct {
	Count int              `json:"count"`
	IDs   map[string][]int `json:"ids"`
}
