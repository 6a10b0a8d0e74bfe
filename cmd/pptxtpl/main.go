// Package main provides the CLI entry point for pptxtpl.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/models"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/output"
)

type cli struct {
	v      *viper.Viper
	logger *zap.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	c := &cli{v: viper.New()}
	c.v.SetEnvPrefix("PPTXTPL")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "pptxtpl",
		Short: "Fill PowerPoint templates",
		Long: `pptxtpl fills labels such as {name} in PowerPoint templates, removes
what was left unfilled, rebinds chart data and copies slides.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if c.v.GetBool("verbose") {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().String("label-format", "", `Label layout with one %s (default "{%s}")`)
	_ = c.v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = c.v.BindPFlag("label-format", rootCmd.PersistentFlags().Lookup("label-format"))

	rootCmd.AddCommand(c.newRenderCommand())
	rootCmd.AddCommand(c.newInspectCommand())
	rootCmd.AddCommand(c.newSlidesCommand())
	rootCmd.AddCommand(c.newChartDataCommand())
	return rootCmd
}

func (c *cli) open(path string) (*pptxtpl.Template, error) {
	opts := pptxtpl.DefaultOptions()
	if f := c.v.GetString("label-format"); f != "" {
		opts.LabelFormat = f
	}
	opts.Logger = c.logger
	return pptxtpl.Open(path, opts)
}

func (c *cli) newRenderCommand() *cobra.Command {
	var (
		jobPath    string
		outputPath string
		sets       []string
		slide      int
		prune      bool
	)
	cmd := &cobra.Command{
		Use:   "render TEMPLATE",
		Short: "Run a job against a template and save the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var job models.Job
			if jobPath != "" {
				data, err := os.ReadFile(jobPath)
				if err != nil {
					return fmt.Errorf("failed to read job: %w", err)
				}
				if job, err = models.ParseJob(data); err != nil {
					return err
				}
			}
			if len(sets) > 0 {
				bindings, err := parseSets(sets)
				if err != nil {
					return err
				}
				overrideJobBindings(&job, bindings, slide)
				step := models.Step{Op: models.OpBind, Data: bindings, Slide: slide, All: slide < 0}
				job.Steps = append(job.Steps, step)
			}
			if prune {
				job.Steps = append(job.Steps, models.Step{Op: models.OpPrune, All: true})
			}
			if outputPath == "" {
				outputPath = job.Output
			}
			if outputPath == "" {
				return fmt.Errorf("no output path: pass -o or set output in the job")
			}

			tpl, err := c.open(args[0])
			if err != nil {
				return err
			}
			if err := tpl.Run(job); err != nil {
				return err
			}
			if err := tpl.Save(outputPath); err != nil {
				return err
			}
			c.logger.Info("rendered template",
				zap.String("template", args[0]),
				zap.String("output", outputPath),
				zap.Int("steps", len(job.Steps)))
			return nil
		},
	}
	cmd.Flags().StringVar(&jobPath, "job", "", "Job file (YAML or JSON)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: output of the job)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, `Binding "{label}=value", repeatable`)
	cmd.Flags().IntVar(&slide, "slide", -1, "Slide the --set bindings apply to (default: every slide)")
	cmd.Flags().BoolVar(&prune, "prune", false, "Prune unresolved labels from every slide after the job")
	return cmd
}

// parseSets turns "{label}=value" pairs into bindings. Numeric values
// become numbers.
func parseSets(sets []string) (models.Bindings, error) {
	out := make(models.Bindings, len(sets))
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want {label}=value", s)
		}
		out[key] = models.ParseValue(value)
	}
	return out, nil
}

// overrideJobBindings replaces, in the bind steps of job aimed at slide
// (every bind step when slide is negative), the labels also given on the
// command line.
func overrideJobBindings(job *models.Job, sets models.Bindings, slide int) {
	for i, step := range job.Steps {
		if step.Op != models.OpBind || (slide >= 0 && (step.All || step.Slide != slide)) {
			continue
		}
		overrides := make(models.Bindings)
		for key := range step.Data {
			if v, ok := sets[key]; ok {
				overrides[key] = v
			}
		}
		if len(overrides) > 0 {
			job.Steps[i].Data = step.Data.Merge(overrides)
		}
	}
}

func (c *cli) newInspectCommand() *cobra.Command {
	var (
		outputPath string
		pretty     bool
	)
	cmd := &cobra.Command{
		Use:   "inspect TEMPLATE",
		Short: "Describe the slides, shapes and charts of a deck as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := c.open(args[0])
			if err != nil {
				return err
			}
			deck, err := tpl.Inspect()
			if err != nil {
				return fmt.Errorf("inspection failed: %w", err)
			}
			jsonData, err := output.DeckToJSON(deck, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			if outputPath != "" {
				if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func (c *cli) newSlidesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "slides TEMPLATE",
		Short: "List the slide count and the slide_id markers of a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := c.open(args[0])
			if err != nil {
				return err
			}
			ids, err := tpl.SlideIDIndex()
			if err != nil {
				return err
			}
			jsonData, err := output.ToJSON(output.SlideIndex{Count: tpl.SlideCount(), IDs: ids}, false)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			return nil
		},
	}
}

func (c *cli) newChartDataCommand() *cobra.Command {
	var (
		slide  int
		pretty bool
	)
	cmd := &cobra.Command{
		Use:   "chart-data TEMPLATE",
		Short: "Print the embedded data of the charts of a slide, keyed by title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := c.open(args[0])
			if err != nil {
				return err
			}
			data, err := tpl.ChartData(slide)
			if err != nil {
				return err
			}
			jsonData, err := output.ToJSON(data, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			return nil
		},
	}
	cmd.Flags().IntVar(&slide, "slide", 0, "Slide to read")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}
