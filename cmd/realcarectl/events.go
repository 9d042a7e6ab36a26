package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bibbank/bib/services/realcare-service/pkg/kafka"
)

func newEventsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect published domain events",
	}

	var (
		cfg     kafka.Config
		brokers string
		topic   string
		eventTy string
	)
	tail := &cobra.Command{
		Use:   "tail",
		Short: "Print domain events from Kafka as they arrive",
		Long: `Print domain events from Kafka as they arrive, one JSON document per line.

Without --group the topic is read from the latest offset and nothing is
committed.`,
		Example: `  realcarectl events tail --brokers kafka:9092
  realcarectl events tail --type realcare.feasibility.assessed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg.Brokers = kafka.ParseBrokers(brokers)
			consumer, err := kafka.NewConsumer(cfg, topic, printEvent(cmd.OutOrStdout(), eventTy), a.logger)
			if err != nil {
				return err
			}
			defer consumer.Close()

			return consumer.Start(ctx)
		},
	}

	f := tail.Flags()
	f.StringVar(&brokers, "brokers", envOr("KAFKA_BROKERS", "localhost:9092"), "comma-separated broker list")
	f.StringVar(&topic, "topic", envOr("KAFKA_TOPIC", "realcare.assessments"), "topic to read")
	f.StringVar(&cfg.ConsumerGroup, "group", "", "consumer group (commits offsets when set)")
	f.StringVar(&eventTy, "type", "", "only print events of this type")
	f.BoolVar(&cfg.TLS, "tls", false, "connect with TLS")
	f.BoolVar(&cfg.SASLEnabled, "sasl", false, "authenticate with SASL")
	f.StringVar(&cfg.SASLMechanism, "sasl-mechanism", "PLAIN", "PLAIN, SCRAM-SHA-256 or SCRAM-SHA-512")
	f.StringVar(&cfg.SASLUsername, "sasl-username", os.Getenv("KAFKA_SASL_USERNAME"), "SASL username")
	f.StringVar(&cfg.SASLPassword, "sasl-password", os.Getenv("KAFKA_SASL_PASSWORD"), "SASL password")

	cmd.AddCommand(tail)
	return cmd
}

// printEvent writes each message value on its own line, optionally filtered
// by the event_type header.
func printEvent(w io.Writer, eventType string) kafka.Handler {
	var mu sync.Mutex
	return func(_ context.Context, msg kafka.Message) error {
		if eventType != "" && msg.Headers["event_type"] != eventType {
			return nil
		}
		mu.Lock()
		defer mu.Unlock()
		if _, err := fmt.Fprintf(w, "%s\n", msg.Value); err != nil {
			return fmt.Errorf("write event: %w", err)
		}
		return nil
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
