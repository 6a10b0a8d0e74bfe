// Package label recognizes replacement labels such as "{name}" in slide
// text and repairs labels that an editor split across text runs.
package label

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultFormat is the label format used when none is configured.
const DefaultFormat = "{%s}"

const slideIDKey = "slide_id="

// Format describes the delimiters around a label name.
type Format struct {
	// Open is the text before the label name, e.g. "{".
	Open string
	// Close is the text after the label name, e.g. "}".
	Close string

	token   *regexp.Regexp
	slideID *regexp.Regexp
}

// ParseFormat builds a Format from a printf-style layout holding exactly
// one %s verb, e.g. "{%s}" or "{{%s}}".
func ParseFormat(layout string) (*Format, error) {
	if strings.Count(layout, "%s") != 1 {
		return nil, fmt.Errorf("label format %q must contain exactly one %%s", layout)
	}
	i := strings.Index(layout, "%s")
	open, close := layout[:i], layout[i+2:]
	if open == "" || close == "" {
		return nil, fmt.Errorf("label format %q needs delimiters on both sides", layout)
	}
	return newFormat(open, close), nil
}

// MustParseFormat is like ParseFormat but panics on error.
func MustParseFormat(layout string) *Format {
	f, err := ParseFormat(layout)
	if err != nil {
		panic(err)
	}
	return f
}

// Default returns the "{%s}" format.
func Default() *Format {
	return newFormat("{", "}")
}

func newFormat(open, close string) *Format {
	o, c := regexp.QuoteMeta(open), regexp.QuoteMeta(close)
	return &Format{
		Open:    open,
		Close:   close,
		token:   regexp.MustCompile(o + `\S+?` + c),
		slideID: regexp.MustCompile(`^` + o + regexp.QuoteMeta(slideIDKey) + `(\S+?)` + c + `$`),
	}
}

// Label wraps name in the delimiters: Label("name") == "{name}".
func (f *Format) Label(name string) string {
	return f.Open + name + f.Close
}

// Contains reports whether text holds at least one label.
func (f *Format) Contains(text string) bool {
	return f.token.MatchString(text)
}

// Find returns every label in text, in order of appearance.
func (f *Format) Find(text string) []string {
	return f.token.FindAllString(text, -1)
}

// Replace substitutes every label of text found in values. Labels without
// a value are left untouched. It reports whether text changed.
func (f *Format) Replace(text string, values map[string]string) (string, bool) {
	changed := false
	out := f.token.ReplaceAllStringFunc(text, func(tok string) string {
		if v, ok := values[tok]; ok {
			changed = true
			return v
		}
		return tok
	})
	return out, changed
}

// SlideID extracts the identifier of a slide marker such as
// "{slide_id=chapter1}". The whole (trimmed) text must be the marker.
func (f *Format) SlideID(text string) (string, bool) {
	m := f.slideID.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SlideMarker returns the marker text tagging a slide with id.
func (f *Format) SlideMarker(id string) string {
	return f.Label(slideIDKey + id)
}
