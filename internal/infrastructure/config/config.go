package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bibbank/bib/services/realcare-service/pkg/kafka"
)

type KafkaConfig struct {
	Brokers       []string
	Topic         string
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	TLS           bool
	SASLEnabled   bool
}

// Enabled reports whether events should go to Kafka rather than the log.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

// ClientConfig converts to the shared Kafka client configuration.
func (k KafkaConfig) ClientConfig() kafka.Config {
	return kafka.Config{
		Brokers:       k.Brokers,
		TLS:           k.TLS,
		SASLEnabled:   k.SASLEnabled,
		SASLMechanism: k.SASLMechanism,
		SASLUsername:  k.SASLUsername,
		SASLPassword:  k.SASLPassword,
	}
}

type TracingConfig struct {
	Endpoint    string
	SampleRatio float64
	Enabled     bool
	Insecure    bool
}

// GRPCTLSConfig points at the server certificate and key. Both or neither
// must be set.
type GRPCTLSConfig struct {
	CertFile string
	KeyFile  string
}

// Enabled reports whether the gRPC listener should serve TLS.
func (g GRPCTLSConfig) Enabled() bool { return g.CertFile != "" && g.KeyFile != "" }

type LogConfig struct {
	Level  string
	Format string
}

type Config struct {
	Kafka               KafkaConfig
	Tracing             TracingConfig
	Log                 LogConfig
	GRPCTLS             GRPCTLSConfig
	ServiceName         string
	RegulationTablePath string
	GRPCPort            int
	HTTPPort            int
	BatchConcurrency    int
}

// Validate reports configuration that would prevent the service from starting.
func (c Config) Validate() error {
	var problems []string
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		problems = append(problems, fmt.Sprintf("GRPC_PORT %d out of range", c.GRPCPort))
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("HTTP_PORT %d out of range", c.HTTPPort))
	}
	if c.GRPCPort == c.HTTPPort {
		problems = append(problems, "GRPC_PORT and HTTP_PORT must differ")
	}
	if c.BatchConcurrency < 1 {
		problems = append(problems, "BATCH_CONCURRENCY must be at least 1")
	}
	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		problems = append(problems, "KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	if c.Kafka.SASLEnabled && c.Kafka.SASLUsername == "" {
		problems = append(problems, "KAFKA_SASL_USERNAME is required when KAFKA_SASL_ENABLED is set")
	}
	if (c.GRPCTLS.CertFile == "") != (c.GRPCTLS.KeyFile == "") {
		problems = append(problems, "GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together")
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		problems = append(problems, "OTEL_EXPORTER_OTLP_ENDPOINT is required when TRACING_ENABLED is set")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func Load() Config {
	return Config{
		GRPCPort:            getEnvInt("GRPC_PORT", 9091),
		HTTPPort:            getEnvInt("HTTP_PORT", 8091),
		BatchConcurrency:    getEnvInt("BATCH_CONCURRENCY", 8),
		RegulationTablePath: getEnv("REGULATION_TABLE_PATH", ""),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Kafka: KafkaConfig{
			Brokers:       kafka.ParseBrokers(getEnv("KAFKA_BROKERS", "")),
			Topic:         getEnv("KAFKA_TOPIC", "realcare.assessments"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		GRPCTLS: GRPCTLSConfig{
			CertFile: getEnv("GRPC_TLS_CERT_FILE", ""),
			KeyFile:  getEnv("GRPC_TLS_KEY_FILE", ""),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvBool("TRACING_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:    getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			SampleRatio: getEnvFloat("OTEL_TRACES_SAMPLER_ARG", 1),
		},
		ServiceName: "realcare-service",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
