package pptxtpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzhzhao/pptxtpl/internal/testdeck"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/models"
)

const renderJob = `
output: out.pptx
steps:
  - op: clone
    source: 0
    target: 1
  - op: bind
    slide: 0
    data:
      "{name0}": zzz
      "{age0}": 90
  - op: bind
    slide: 1
    data:
      "{name0}": yyy
  - op: table
    slide: 2
    rows:
      - [Ann, 31]
    font:
      name: Arial
      size: 12
  - op: chart
    slide: 2
    charts:
      "{sales}":
        categories: [Jan, Feb]
        series:
          - name: Revenue
            values: [1, 2]
    titles:
      "{sales}": Revenue
  - op: fill
    slide: 2
  - op: prune
    all: true
  - op: move
    source: 2
    target: 0
`

func jobDeck(t *testing.T) *Template {
	b := testdeck.New(t)
	b.Slide().Runs("person", "{name0} is ", "{age0}")
	b.Slide().
		Table("people", [][]string{{"Name", "Age"}, {"", ""}, {"", ""}}).
		Chart(testdeck.Chart{Name: "sales", Title: "{sales}", Data: salesData}).
		Shape("flag", "rect", "red")
	return openDeck(t, b)
}

func TestRunJob(t *testing.T) {
	job, err := models.ParseJob([]byte(renderJob))
	require.NoError(t, err)
	assert.Equal(t, "out.pptx", job.Output)
	require.Len(t, job.Steps, 8)

	tpl := jobDeck(t)
	require.NoError(t, tpl.Run(job))

	out := roundTrip(t, tpl)
	require.Equal(t, 3, out.SlideCount())
	assert.Equal(t, []string{"zzz is 90"}, texts(t, out, 1))
	assert.Empty(t, texts(t, out, 2), "partly bound clone is pruned")

	table := tableOf(t, out, 0)
	require.NotNil(t, table)
	assert.Len(t, table.Table().Rows(), 2)
	assert.Equal(t, "Ann", table.Table().Rows()[1].Cells()[0].Text())

	cs, _ := charts(t, out, 0)
	require.Len(t, cs, 1)
	assert.Equal(t, "Revenue", cs[0].Title())
	assert.Equal(t, []string{"Revenue"}, cs[0].SeriesNames())
}

func TestRunJobStopsAtFailure(t *testing.T) {
	tpl := jobDeck(t)
	err := tpl.Run(models.Job{Steps: []models.Step{
		{Op: models.OpBind, Slide: 0, Data: models.Bindings{"{name0}": "a"}},
		{Op: models.OpDelete, Slides: []int{7}},
		{Op: models.OpBind, Slide: 0, Data: models.Bindings{"{age0}": 1}},
	}})

	var se *StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.Step)
	assert.Equal(t, models.OpDelete, se.Op)
	assert.ErrorIs(t, err, ErrSlideIndex)
	assert.Equal(t, []string{"a is {age0}"}, texts(t, tpl, 0))
}

func TestRunJobUnknownOp(t *testing.T) {
	tpl := jobDeck(t)
	err := tpl.Run(models.Job{Steps: []models.Step{{Op: "explode"}}})
	assert.ErrorIs(t, err, ErrUnknownOp)
}

func TestRunDoesNotAlterJob(t *testing.T) {
	rows := [][]any{{"Ann", 31}}
	job := models.Job{Steps: []models.Step{{Op: models.OpTable, Slide: 1, Rows: rows}}}

	require.NoError(t, jobDeck(t).Run(job))
	require.NoError(t, jobDeck(t).Run(job))
	assert.Equal(t, [][]any{{"Ann", 31}}, job.Steps[0].Rows)
}
