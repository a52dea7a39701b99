package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_RoutesByLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	log := New(Options{Level: "debug", Format: "json", Stdout: &stdout, Stderr: &stderr})

	log.Info().Str("identifier", "ca").Msg("served")
	log.Error().Msg("boom")

	assert.Contains(t, stdout.String(), `"identifier":"ca"`)
	assert.NotContains(t, stdout.String(), "boom")
	assert.Contains(t, stderr.String(), "boom")
	assert.NotContains(t, stderr.String(), "served")
}

func TestNew_LevelFilter(t *testing.T) {
	var stdout bytes.Buffer
	log := New(Options{Level: "warn", Format: "json", Stdout: &stdout, Stderr: &bytes.Buffer{}})

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "shown")
}

func TestNew_Console(t *testing.T) {
	var stdout bytes.Buffer
	log := New(Options{Level: "info", Format: "console", Stdout: &stdout, Stderr: &bytes.Buffer{}})

	log.Info().Msg("listening")

	assert.Contains(t, stdout.String(), "listening")
	assert.NotContains(t, stdout.String(), `"message"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}
