package pptxtpl

import (
	"go.uber.org/zap"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/drawing"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/opc"
)

// PruneReport describes what Prune removed.
type PruneReport struct {
	// Shapes are the names of the removed top-level shapes.
	Shapes []string `json:"shapes,omitempty"`
	// Rows is the number of table rows removed.
	Rows int `json:"rows"`
	// Labels are the unresolved labels that caused the removals.
	Labels []string `json:"labels,omitempty"`
}

// Empty reports whether nothing was removed.
func (r PruneReport) Empty() bool {
	return len(r.Shapes) == 0 && r.Rows == 0
}

func (r *PruneReport) merge(o PruneReport) {
	r.Shapes = append(r.Shapes, o.Shapes...)
	r.Rows += o.Rows
	seen := make(map[string]bool, len(r.Labels))
	for _, l := range r.Labels {
		seen[l] = true
	}
	for _, l := range o.Labels {
		if !seen[l] {
			seen[l] = true
			r.Labels = append(r.Labels, l)
		}
	}
}

// Prune removes from slide i everything still holding a label: text
// shapes, charts whose title holds one, whole groups with a labelled shape
// at any depth and table rows with a labelled cell (the table itself when
// no row is left).
func (t *Template) Prune(i int) (PruneReport, error) {
	s, err := t.slide(i)
	if err != nil {
		return PruneReport{}, NewSlideError(i, "prune", err)
	}
	report := t.prune(s)
	if !report.Empty() {
		t.log.Warn("pruned unresolved labels",
			zap.Int("slide", i),
			zap.Strings("labels", report.Labels),
			zap.Strings("shapes", report.Shapes),
			zap.Int("rows", report.Rows))
	}
	return report, nil
}

// PruneAll prunes every slide.
func (t *Template) PruneAll() (PruneReport, error) {
	var total PruneReport
	for i := 0; i < t.SlideCount(); i++ {
		r, err := t.Prune(i)
		if err != nil {
			return total, err
		}
		total.merge(r)
	}
	return total, nil
}

func (t *Template) prune(s *slide) PruneReport {
	var report PruneReport
	seen := make(map[string]bool)
	note := func(labels []string) {
		for _, l := range labels {
			if !seen[l] {
				seen[l] = true
				report.Labels = append(report.Labels, l)
			}
		}
	}

	for _, sh := range s.shapes() {
		switch v := sh.(type) {
		case *drawing.TableShape:
			tbl := v.Table()
			removed := 0
			for _, row := range tbl.Rows() {
				if labels := t.rowLabels(row); len(labels) > 0 {
					note(labels)
					tbl.RemoveRow(row)
					removed++
				}
			}
			report.Rows += removed
			if removed > 0 && len(tbl.Rows()) == 0 {
				drawing.RemoveShape(v)
				report.Shapes = append(report.Shapes, v.Name())
			}
		case *drawing.TextShape, *drawing.ChartShape, *drawing.GroupShape:
			if labels := t.shapeLabels(s, v); len(labels) > 0 {
				note(labels)
				drawing.RemoveShape(v)
				report.Shapes = append(report.Shapes, v.Name())
			}
		case *drawing.PictureShape, *drawing.OtherShape:
		}
	}

	if len(report.Shapes) > 0 {
		dropUnreferenced(s, opc.RelTypeChart, opc.RelTypeImage)
	}
	return report
}

// dropUnreferenced removes relationships of the given types that no
// element of the slide points at any more, so their parts are not saved.
func dropUnreferenced(s *slide, relTypes ...string) {
	used := make(map[string]bool)
	for _, a := range drawing.RelAttrs(s.doc.Root()) {
		used[a.Value] = true
	}
	rels := s.part.Rels()
	for _, relType := range relTypes {
		for _, rel := range rels.OfType(relType) {
			if !used[rel.ID] {
				rels.Remove(rel.ID)
			}
		}
	}
}
