// cmd/digestplot/quantiles.go
package digestplot

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Spirent/openperf-sub000/model"
	"github.com/Spirent/openperf-sub000/summary"
	"github.com/Spirent/openperf-sub000/tdigest"
	"github.com/Spirent/openperf-sub000/utils"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// quantilesCmd prints summaries and report quantiles instead of writing images.
var quantilesCmd = &cobra.Command{
	Use:   "quantiles <base-url> <analyzer-results|rx-flows>",
	Short: "Print report quantiles of SUT t-digests",
	Long: `The 'quantiles' subcommand fetches the same results as the root command and prints, for every
recognized digest, the summary annotation and the 1st to 99th percentile values.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(args[0], args[1])
		if err != nil {
			return err
		}
		return s.run(cmd.Context(), &quantileReport{out: cmd.OutOrStdout()})
	},
}

func init() {
	rootCmd.AddCommand(quantilesCmd)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(8)
)

type quantileReport struct {
	out io.Writer
}

func (r *quantileReport) Plot(ctx context.Context, record model.DigestRecord, digest *tdigest.Digest) error {
	annotation, err := summary.Lines(record.Summary, record.FrameCount)
	if err != nil {
		return err
	}
	values, err := digest.Quantiles(tdigest.ReportQuantiles)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s %s (%s)", record.ResultID, record.Tag.Name(), record.Units)))
	b.WriteString("\n")
	for _, line := range annotation {
		b.WriteString("  " + line + "\n")
	}
	table := model.NewQuantileTable(values)
	for _, p := range tdigest.ReportQuantiles {
		v, ok := table.GetQuantileValue(p)
		if !ok {
			continue
		}
		label := labelStyle.Render(fmt.Sprintf("p%v", utils.FormatFloat(v.Quantile*100, 3)))
		b.WriteString(fmt.Sprintf("  %s %v\n", label, utils.FormatFloat(v.Value, 3)))
	}

	_, err = io.WriteString(r.out, b.String())
	return err
}
