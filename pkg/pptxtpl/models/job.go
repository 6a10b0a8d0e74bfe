package models

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Op names a job step.
type Op string

const (
	// OpBind substitutes Data into the labels of Slide.
	OpBind Op = "bind"
	// OpPrune removes unresolved labels from Slide, or from every slide when
	// All is set.
	OpPrune Op = "prune"
	// OpTable fills the last table of Slide with Rows.
	OpTable Op = "table"
	// OpChart rebinds the charts of Slide whose title is a key of Charts.
	OpChart Op = "chart"
	// OpClone copies slide Source to position Target.
	OpClone Op = "clone"
	// OpMove moves slide Source to position Target.
	OpMove Op = "move"
	// OpDelete deletes Slides.
	OpDelete Op = "delete"
	// OpReposition applies Positions to the group shapes of Slide.
	OpReposition Op = "reposition"
	// OpFill colours the text shapes of Slide whose text is a Palette key.
	OpFill Op = "fill"
)

// Job is an ordered list of template operations.
type Job struct {
	// Output is the path the rendered deck is saved to, if not given
	// elsewhere.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
	// Steps run in order.
	Steps []Step `json:"steps" yaml:"steps"`
}

// Step is one operation of a Job. Only the fields relevant to Op are read.
type Step struct {
	Op        Op                   `json:"op" yaml:"op"`
	Slide     int                  `json:"slide,omitempty" yaml:"slide,omitempty"`
	Slides    []int                `json:"slides,omitempty" yaml:"slides,omitempty"`
	All       bool                 `json:"all,omitempty" yaml:"all,omitempty"`
	Data      Bindings             `json:"data,omitempty" yaml:"data,omitempty"`
	Rows      [][]any              `json:"rows,omitempty" yaml:"rows,omitempty"`
	Font      *CellFont            `json:"font,omitempty" yaml:"font,omitempty"`
	Charts    map[string]ChartData `json:"charts,omitempty" yaml:"charts,omitempty"`
	Titles    map[string]string    `json:"titles,omitempty" yaml:"titles,omitempty"`
	Source    int                  `json:"source,omitempty" yaml:"source,omitempty"`
	Target    int                  `json:"target,omitempty" yaml:"target,omitempty"`
	Positions []PositionSize       `json:"positions,omitempty" yaml:"positions,omitempty"`
	Palette   map[string]string    `json:"palette,omitempty" yaml:"palette,omitempty"`
}

// ParseJob decodes a job from YAML or JSON. Unknown fields are rejected.
func ParseJob(data []byte) (Job, error) {
	var job Job
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&job); err != nil {
		if errors.Is(err, io.EOF) {
			return Job{}, nil
		}
		return Job{}, fmt.Errorf("decode job: %w", err)
	}
	for k, s := range job.Steps {
		if !s.Op.Valid() {
			return Job{}, fmt.Errorf("decode job: step %d: unknown op %q", k, s.Op)
		}
	}
	return job, nil
}

// Valid reports whether o is a known operation.
func (o Op) Valid() bool {
	switch o {
	case OpBind, OpPrune, OpTable, OpChart, OpClone, OpMove, OpDelete, OpReposition, OpFill:
		return true
	}
	return false
}
