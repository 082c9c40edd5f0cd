package commands

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/meenmo/curvelib/curve"
)

var (
	plotInput     string
	plotName      string
	plotCurveDate string
	plotOutPath   string
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render the zero and instantaneous forward curves as a PNG chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		crv, set, err := buildConfiguredCurve(cmd.Context(), plotInput, plotName, plotCurveDate)
		if err != nil {
			return err
		}

		if err := writeCurvePNG(plotOutPath, set.Name, crv); err != nil {
			return err
		}
		logger.Info().Str("path", plotOutPath).Str("curve", set.Name).Msg("wrote curve chart")
		return nil
	},
}

func init() {
	plotCmd.Flags().StringVar(&plotInput, "input", "", "Quote set JSON file (takes precedence over --name)")
	plotCmd.Flags().StringVar(&plotName, "name", "", "Stored curve name")
	plotCmd.Flags().StringVar(&plotCurveDate, "curve-date", "", "Stored curve date (YYYY-MM-DD)")
	plotCmd.Flags().StringVar(&plotOutPath, "out", "curve.png", "Output PNG path")
}

// writeCurvePNG samples both curves on the configured step out to the last
// pillar and renders them in percent.
func writeCurvePNG(path, name string, crv *curve.ZeroCurve) error {
	times := crv.Times()
	horizon := times[len(times)-1]
	step := cfg.Plot.SampleStep

	var xs, zeros, forwards []float64
	for t := step; t <= horizon+step/2.0; t += step {
		xs = append(xs, t)
		zeros = append(zeros, crv.ZeroRate(t, curve.Continuous)*100.0)
		forwards = append(forwards, crv.InstantaneousForward(t)*100.0)
	}
	if len(xs) < 2 {
		return errors.New("curve horizon too short for plot.sample_step; lower the step")
	}

	rateFormatter := func(v interface{}) string {
		if f, ok := v.(float64); ok {
			return strconv.FormatFloat(f, 'f', 2, 64) + "%"
		}
		return ""
	}

	graph := chart.Chart{
		Title:  name,
		Width:  cfg.Plot.Width,
		Height: cfg.Plot.Height,
		XAxis: chart.XAxis{
			Name: "Years",
		},
		YAxis: chart.YAxis{
			Name:           "Rate",
			ValueFormatter: rateFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "Zero (continuous)", XValues: xs, YValues: zeros},
			chart.ContinuousSeries{Name: "Instantaneous forward", XValues: xs, YValues: forwards},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := ensureDir(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
