package output

import (
	"testing"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/models"
)

func TestToJSON(t *testing.T) {
	deck := &models.DeckData{Name: "a.pptx"}

	compact, err := DeckToJSON(deck, false)
	if err != nil {
		t.Fatalf("DeckToJSON() error = %v", err)
	}
	if got, want := string(compact), `{"name":"a.pptx","slides":null}`; got != want {
		t.Errorf("compact = %s, want %s", got, want)
	}

	pretty, err := ToJSON(SlideIndex{Count: 2, IDs: map[string][]int{"intro": {0}}}, true)
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	want := "{\n  \"count\": 2,\n  \"ids\": {\n    \"intro\": [\n      0\n    ]\n  }\n}"
	if string(pretty) != want {
		t.Errorf("pretty = %s, want %s", pretty, want)
	}
}
