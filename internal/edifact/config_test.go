package edifact_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"edi-orders/internal/edifact"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := edifact.NewConfig(edifact.Config{})
	require.NoError(t, err)

	require.Equal(t, "ORDERS", cfg.MessageType)
	require.Equal(t, "D", cfg.Version)
	require.Equal(t, "96A", cfg.Release)
	require.Equal(t, "UN", cfg.ControllingAgency)
	require.Equal(t, "102", cfg.DateFormat)
	require.Equal(t, "0.01", cfg.DecimalRounding)
	require.Equal(t, "\n", cfg.LineEnding)
	require.Equal(t, 240, cfg.MaxSegmentLength)
	require.Equal(t, 70, cfg.MaxFieldLength)
	require.Equal(t, []string{"BY", "SU", "DP", "IV", "ST"}, cfg.AllowedQualifiers)
}

func TestNewConfig_QualifierDefaultIsOwnedCopy(t *testing.T) {
	first, err := edifact.NewConfig(edifact.Config{})
	require.NoError(t, err)
	second, err := edifact.NewConfig(edifact.Config{})
	require.NoError(t, err)

	first.AllowedQualifiers[0] = "XX"
	require.Equal(t, "BY", second.AllowedQualifiers[0])

	third, err := edifact.NewConfig(edifact.Config{})
	require.NoError(t, err)
	require.Equal(t, "BY", third.AllowedQualifiers[0])
}

func TestNewConfig_CopiesCallerQualifiers(t *testing.T) {
	mine := []string{"BY", "SU"}
	cfg, err := edifact.NewConfig(edifact.Config{AllowedQualifiers: mine})
	require.NoError(t, err)

	mine[0] = "XX"
	require.Equal(t, "BY", cfg.AllowedQualifiers[0])
}

func TestNewConfig_Invalid(t *testing.T) {
	cases := []struct {
		name string
		cfg  edifact.Config
	}{
		{"qualifier wrong length", edifact.Config{AllowedQualifiers: []string{"XYZ"}}},
		{"empty qualifier set", edifact.Config{AllowedQualifiers: []string{}}},
		{"segment length below floor", edifact.Config{MaxSegmentLength: 5}},
		{"unknown date format", edifact.Config{DateFormat: "999"}},
		{"garbage rounding", edifact.Config{DecimalRounding: "abc"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := edifact.NewConfig(tc.cfg)
			require.Error(t, err)
		})
	}
}

func TestDefaultConfig_EnvelopeOn(t *testing.T) {
	require.True(t, edifact.DefaultConfig().Envelope)
}
