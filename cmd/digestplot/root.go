// cmd/digestplot/root.go
package digestplot

import (
	"context"
	"fmt"
	"os"

	"github.com/Spirent/openperf-sub000/common"
	"github.com/Spirent/openperf-sub000/config"
	"github.com/Spirent/openperf-sub000/ingest"
	"github.com/Spirent/openperf-sub000/plot"
	"github.com/Spirent/openperf-sub000/utils"
	"github.com/hyp3rd/ewrap"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var resultID string

// rootCmd fetches results from the SUT and plots every recognized digest.
var rootCmd = &cobra.Command{
	Use:   "digestplot <base-url> <analyzer-results|rx-flows>",
	Short: "Plot CDF and quantile curves of SUT t-digests",
	Long: `digestplot fetches packet analyzer results or rx flows from the REST API at <base-url> and,
for every interarrival, latency and jitter digest found, writes <id>-<tag>-cdf and <id>-<tag>-pdf
images to the output directory.`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlot(cmd.Context(), args[0], args[1])
	},
}

// Execute runs the root command and exits with a non-zero status on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP(config.KeyConfig, "c", "", "config file (default $"+config.ConfigFileEnv+")")
	flags.StringVar(&resultID, "id", "", "only process the result with this id")
	flags.String("output-dir", ".", "directory the plots are written to")
	flags.String(config.KeyFormat, string(plot.PNG), "image format, png or svg")
	flags.Int(config.KeyWidth, plot.DefaultWidth, "image width in pixels")
	flags.Int(config.KeyHeight, plot.DefaultHeight, "image height in pixels")
	flags.Duration(config.KeyTimeout, 0, "REST request timeout (default 30s)")
	flags.String("log-level", "info", "log level: debug, info, warn or error")

	bindFlag(config.KeyConfig, config.KeyConfig)
	bindFlag(config.KeyOutputDir, "output-dir")
	bindFlag(config.KeyFormat, config.KeyFormat)
	bindFlag(config.KeyWidth, config.KeyWidth)
	bindFlag(config.KeyHeight, config.KeyHeight)
	bindFlag(config.KeyTimeout, config.KeyTimeout)
	bindFlag(config.KeyLogLevel, "log-level")
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// session is the validated state shared by every command.
type session struct {
	cfg    *config.Config
	source ingest.Source
	client *ingest.Client
}

func newSession(baseURL, sourceName string) (*session, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if err := utils.InitLogger(cfg.LogLevel); err != nil {
		return nil, err
	}

	source, err := ingest.ParseSource(sourceName)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:    cfg,
		source: source,
		client: ingest.NewClient(baseURL, cfg.Timeout),
	}, nil
}

func (s *session) run(ctx context.Context, sink ingest.Sink) error {
	records, err := s.client.Fetch(ctx, s.source, resultID)
	if err != nil {
		return err
	}
	return ingest.Process(ctx, records, sink)
}

func runPlot(ctx context.Context, baseURL, sourceName string) error {
	s, err := newSession(baseURL, sourceName)
	if err != nil {
		return err
	}

	format, err := plot.ParseFormat(s.cfg.Format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		return ewrap.Wrapf(common.ErrorIOFailure, "create %s: %v", s.cfg.OutputDir, err)
	}

	driver := plot.NewDriver(s.cfg.OutputDir, format, s.cfg.Width, s.cfg.Height)
	return s.run(ctx, driver)
}
