package edifact

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	// UNA service string advice matching the separators used by the
	// segment builders.
	defaultUNA = "UNA:+.? '"

	// MessageTypeOrders is the only message type this engine emits.
	MessageTypeOrders = "ORDERS"
)

// dateFormats maps EDIFACT DTM format codes to Go reference layouts.
var dateFormats = map[string]string{
	"101": "060102",
	"102": "20060102",
	"203": "200601021504",
	"204": "20060102150405",
}

// defaultQualifiers is the NAD role whitelist used when a config does
// not bring its own: buyer, supplier, delivery party, invoicee, ship-to.
var defaultQualifiers = []string{"BY", "SU", "DP", "IV", "ST"}

// Config carries the interchange options for one generator instance.
// Build it through NewConfig: validity is checked at construction, not
// at use, and the qualifier whitelist default is resolved into a copy
// owned by this instance.
type Config struct {
	UNASegment        string `validate:"required"`
	MessageType       string `validate:"required"`
	Version           string `validate:"required"`
	Release           string `validate:"required"`
	ControllingAgency string `validate:"required"`
	DateFormat        string `validate:"oneof=101 102 203 204"`
	DecimalRounding   string `validate:"required"`
	LineEnding        string `validate:"required"`
	SenderID          string `validate:"required"`
	ReceiverID        string `validate:"required"`

	// Envelope controls UNA/UNB/UNZ emission. Message-only output is
	// for partners that re-envelope on their side.
	Envelope bool

	MaxSegmentLength  int      `validate:"gte=10"`
	MaxFieldLength    int      `validate:"gt=0"`
	AllowedQualifiers []string `validate:"required,min=1,dive,len=2"`

	// decimal places derived from DecimalRounding.
	places int32
}

var structValidator = validator.New()

// NewConfig fills zero-valued fields with defaults, resolves the
// qualifier whitelist into an owned copy and validates the result.
func NewConfig(c Config) (Config, error) {
	if c.UNASegment == "" {
		c.UNASegment = defaultUNA
	}
	if c.MessageType == "" {
		c.MessageType = MessageTypeOrders
	}
	if c.Version == "" {
		c.Version = "D"
	}
	if c.Release == "" {
		c.Release = "96A"
	}
	if c.ControllingAgency == "" {
		c.ControllingAgency = "UN"
	}
	if c.DateFormat == "" {
		c.DateFormat = "102"
	}
	if c.DecimalRounding == "" {
		c.DecimalRounding = "0.01"
	}
	if c.LineEnding == "" {
		c.LineEnding = "\n"
	}
	if c.SenderID == "" {
		c.SenderID = "EDIORDERS"
	}
	if c.ReceiverID == "" {
		c.ReceiverID = "PARTNER"
	}
	if c.MaxSegmentLength == 0 {
		c.MaxSegmentLength = 240
	}
	if c.MaxFieldLength == 0 {
		c.MaxFieldLength = 70
	}
	if c.AllowedQualifiers == nil {
		c.AllowedQualifiers = append([]string(nil), defaultQualifiers...)
	} else {
		c.AllowedQualifiers = append([]string(nil), c.AllowedQualifiers...)
	}

	if err := structValidator.Struct(c); err != nil {
		return Config{}, fmt.Errorf("edifact config: %w", err)
	}

	rounding, err := decimal.NewFromString(c.DecimalRounding)
	if err != nil {
		return Config{}, fmt.Errorf("edifact config: decimal rounding %q: %w", c.DecimalRounding, err)
	}
	c.places = -rounding.Exponent()
	if c.places < 0 {
		c.places = 0
	}

	return c, nil
}

// DefaultConfig returns a fully resolved config with the envelope
// enabled. The zero Config passes NewConfig by construction.
func DefaultConfig() Config {
	c, err := NewConfig(Config{Envelope: true})
	if err != nil {
		panic(err)
	}
	return c
}

func (c Config) qualifierAllowed(q string) bool {
	for _, allowed := range c.AllowedQualifiers {
		if q == allowed {
			return true
		}
	}
	return false
}
