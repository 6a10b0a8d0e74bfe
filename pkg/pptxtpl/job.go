package pptxtpl

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
	"go.uber.org/zap"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/drawing"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/models"
)

// StepError reports the job step that failed.
type StepError struct {
	Step int
	Op   models.Op
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Step, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Run executes the steps of job in order and stops at the first failure.
// Steps already applied stay applied. Every step is copied before it runs,
// so one job may be run against several templates.
func (t *Template) Run(job models.Job) error {
	for k, step := range job.Steps {
		var s models.Step
		if err := deepcopy.Copy(&s, &step); err != nil {
			return &StepError{Step: k, Op: step.Op, Err: err}
		}
		if err := t.runStep(s); err != nil {
			return &StepError{Step: k, Op: s.Op, Err: err}
		}
		t.log.Debug("ran step", zap.Int("step", k), zap.String("op", string(s.Op)))
	}
	return nil
}

func (t *Template) runStep(s models.Step) error {
	switch s.Op {
	case models.OpBind:
		if s.All {
			return t.BindAll(s.Data)
		}
		return t.Bind(s.Slide, s.Data)
	case models.OpPrune:
		if s.All {
			_, err := t.PruneAll()
			return err
		}
		_, err := t.Prune(s.Slide)
		return err
	case models.OpTable:
		return t.AddTableData(s.Slide, s.Rows, s.Font)
	case models.OpChart:
		if len(s.Charts) == 0 {
			return t.SetChartTitle(s.Slide, s.Titles)
		}
		return t.RebindChart(s.Slide, s.Charts, s.Titles)
	case models.OpClone:
		return t.CloneSlide(s.Source, s.Target)
	case models.OpMove:
		return t.MoveSlide(s.Source, s.Target)
	case models.OpDelete:
		if len(s.Slides) == 0 {
			return t.DeleteSlide(s.Slide)
		}
		return t.DeleteSlides(s.Slides)
	case models.OpReposition:
		groups, err := t.GroupShapes(s.Slide)
		if err != nil {
			return err
		}
		shapes := make([]drawing.Shape, len(groups))
		for k, g := range groups {
			shapes[k] = g
		}
		t.RepositionShapes(shapes, s.Positions)
		return nil
	case models.OpFill:
		_, err := t.ApplyFillColors(s.Slide, s.Palette)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, s.Op)
	}
}
