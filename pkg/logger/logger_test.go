package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoggerIncludesServiceName(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "bakery-pos", Level: ParseLevel("debug"), Output: buf})

	log.Info().Str("order_id", "ORD-1").Msg("order committed")

	assert.Contains(t, buf.String(), `"service":"bakery-pos"`)
	assert.Contains(t, buf.String(), `"order_id":"ORD-1"`)
}

func TestLoggerRespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: ParseLevel("warn"), Output: buf})

	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevelDefaults(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("invalid"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
}
