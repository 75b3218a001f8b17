package configs

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v9"

	"edi-orders/internal/edifact"
)

type Config struct {
	KafkaBrokers  string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaTopic    string `env:"KAFKA_TOPIC" envDefault:"orders"`
	KafkaDLQTopic string `env:"KAFKA_DLQ_TOPIC" envDefault:"orders-dlq"`
	KafkaGroupID  string `env:"KAFKA_GROUP_ID" envDefault:"edi-orders-svc"`

	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8081"`

	CacheShards int `env:"CACHE_SHARDS" envDefault:"0"`

	OrderSamplePath string `env:"ORDER_SAMPLE_PATH" envDefault:"web/order.json"`
	OutputDir       string `env:"EDI_OUTPUT_DIR" envDefault:""`

	EdiSenderID    string `env:"EDI_SENDER_ID" envDefault:"EDIORDERS"`
	EdiReceiverID  string `env:"EDI_RECEIVER_ID" envDefault:"PARTNER"`
	EdiDateFormat  string `env:"EDI_DATE_FORMAT" envDefault:"102"`
	EdiRounding    string `env:"EDI_ROUNDING" envDefault:"0.01"`
	EdiCRLF        bool   `env:"EDI_CRLF" envDefault:"false"`
	EdiEnvelope    bool   `env:"EDI_ENVELOPE" envDefault:"true"`
	EdiMaxSegment  int    `env:"EDI_MAX_SEGMENT" envDefault:"240"`
	EdiMaxField    int    `env:"EDI_MAX_FIELD" envDefault:"70"`
	EdiQualifiers  string `env:"EDI_QUALIFIERS" envDefault:""`

	PostgresHost    string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort    string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser    string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPass    string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB      string `env:"POSTGRES_DB" envDefault:"interchanges"`
	PostgresSSLMode string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
}

func LoadConfig() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("config parse: %w", err)
	}
	return c, nil
}

func (c Config) KafkaBrokersSlice() []string {
	parts := strings.Split(c.KafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c Config) EdiQualifiersSlice() []string {
	if strings.TrimSpace(c.EdiQualifiers) == "" {
		return nil
	}
	parts := strings.Split(c.EdiQualifiers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// EdifactConfig builds the validated interchange config from the
// environment settings.
func (c Config) EdifactConfig() (edifact.Config, error) {
	lineEnding := "\n"
	if c.EdiCRLF {
		lineEnding = "\r\n"
	}
	return edifact.NewConfig(edifact.Config{
		SenderID:          c.EdiSenderID,
		ReceiverID:        c.EdiReceiverID,
		DateFormat:        c.EdiDateFormat,
		DecimalRounding:   c.EdiRounding,
		LineEnding:        lineEnding,
		Envelope:          c.EdiEnvelope,
		MaxSegmentLength:  c.EdiMaxSegment,
		MaxFieldLength:    c.EdiMaxField,
		AllowedQualifiers: c.EdiQualifiersSlice(),
	})
}
