package models

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// ChartSeries is one named value sequence of a chart data block.
type ChartSeries struct {
	// Name is the series display name.
	Name string `json:"name" yaml:"name"`
	// Values holds one value per category, in category order. NaN marks a
	// missing point.
	Values []float64 `json:"values" yaml:"values"`
}

// ChartData is the payload written into a category chart.
type ChartData struct {
	// Categories are the category labels, in display order.
	Categories []string `json:"categories" yaml:"categories"`
	// Series are the series in display order.
	Series []ChartSeries `json:"series" yaml:"series"`
	// NumberFormat is the format code of the values (default "General").
	NumberFormat string `json:"number_format,omitempty" yaml:"number_format,omitempty"`
}

// Validate checks that every series has exactly one value per category.
func (d ChartData) Validate() error {
	for _, s := range d.Series {
		if len(s.Values) != len(d.Categories) {
			return fmt.Errorf("series %q has %d values for %d categories", s.Name, len(s.Values), len(d.Categories))
		}
	}
	return nil
}

// Clone returns a deep copy of d.
func (d ChartData) Clone() (ChartData, error) {
	var out ChartData
	if err := deepcopy.Copy(&out, &d); err != nil {
		return ChartData{}, err
	}
	return out, nil
}

// Chart represents chart metadata found on a slide.
type Chart struct {
	// Name is the chart shape name.
	Name string `json:"name"`
	// ChartType is the chart type (e.g., Bar, Line).
	ChartType string `json:"chart_type"`
	// Title is the chart title.
	Title string `json:"title,omitempty"`
	// Labels lists the labels still present in the title.
	Labels []string `json:"labels,omitempty"`
	// Series is the list of series names included in the chart.
	Series []string `json:"series"`
	// Categories is the number of categories of the first series.
	Categories int `json:"categories"`
	// L is the left offset in pixels.
	L int `json:"l"`
	// T is the top offset in pixels.
	T int `json:"t"`
	// W is the chart width in pixels.
	W int `json:"w"`
	// H is the chart height in pixels.
	H int `json:"h"`
}
