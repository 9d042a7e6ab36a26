package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/bibbank/bib/services/realcare-service/internal/application/usecase"
	"github.com/bibbank/bib/services/realcare-service/internal/infrastructure/messaging"
	"github.com/bibbank/bib/services/realcare-service/internal/infrastructure/metrics"
	"github.com/bibbank/bib/services/realcare-service/internal/infrastructure/regulation"
	"github.com/bibbank/bib/services/realcare-service/pkg/observability"
)

// app holds what every subcommand needs once the persistent flags are parsed.
type app struct {
	logger   *slog.Logger
	services *usecase.Services
	version  string

	regulationsPath string
	logLevel        string
	output          string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "realcarectl",
		Short: "Evaluate home-purchase feasibility offline",
		Long: `realcarectl runs the RealCare feasibility engine against request files.

Requests are read from YAML or JSON files (use "-" for stdin). Results are
written to stdout; logs go to stderr.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.regulationsPath, "regulations", os.Getenv("REGULATION_TABLE_PATH"), "regulation override file (default: embedded table)")
	f.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	f.StringVarP(&a.output, "output", "o", "json", "output format: json or text")

	root.AddCommand(
		newAssessCmd(a),
		newDSRCmd(a),
		newTaxesCmd(a),
		newCompareCmd(a),
		newScheduleCmd(a),
		newRegionCmd(a),
		newEventsCmd(a),
		newCertsCmd(),
	)
	return root
}

func (a *app) init(stderr io.Writer) error {
	a.logger = observability.InitLogger(observability.LogConfig{
		Output: stderr,
		Level:  a.logLevel,
		Format: "text",
	})

	if a.output != "json" && a.output != "text" {
		return fmt.Errorf("unknown output format %q", a.output)
	}

	registry, err := regulation.Load(a.regulationsPath)
	if err != nil {
		return fmt.Errorf("load regulations: %w", err)
	}
	a.version = registry.Version()

	recorder, err := metrics.NewRecorder(noop.NewMeterProvider())
	if err != nil {
		return fmt.Errorf("create metrics recorder: %w", err)
	}

	a.services = usecase.NewServices(usecase.Dependencies{
		Registry:         registry,
		Publisher:        messaging.NewLogEventPublisher(a.logger, slog.LevelDebug),
		Metrics:          recorder,
		Logger:           a.logger,
		BatchConcurrency: 8,
	})
	return nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
