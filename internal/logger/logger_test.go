package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	defer Set("info")

	Set("DEBUG")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	Set("warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	Set("loud")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestConfigure(t *testing.T) {
	defer CliNoColorLogger()
	defer Set("info")

	for _, format := range []string{"", "console", "Color", "json"} {
		require.NoError(t, Configure(format, "warn"), format)
		assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	}

	err := Configure("yaml", "debug")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"yaml"`)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestSetWriter(t *testing.T) {
	defer CliNoColorLogger()

	var buf bytes.Buffer
	require.NoError(t, Configure(FormatJSON, "info"))
	SetWriter(&buf)

	log.Debug().Msg("hidden")
	log.Info().Str("vector", "AV:N").Msg("scored")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"vector":"AV:N"`)
	assert.Contains(t, out, `"message":"scored"`)
}

func TestRetryAdapter(t *testing.T) {
	Set("debug")
	defer Set("info")

	var buf bytes.Buffer
	a := NewRetryAdapter(zerolog.New(&buf))
	a.Error("request failed", "url", "https://example.com", "attempt", 2)

	out := buf.String()
	assert.Contains(t, out, `"level":"debug"`)
	assert.Contains(t, out, `"url":"https://example.com"`)
	assert.Contains(t, out, `"attempt":2`)
	assert.Contains(t, out, `"message":"request failed"`)
}

func TestRetryAdapterQuietAtInfo(t *testing.T) {
	Set("info")

	var buf bytes.Buffer
	NewRetryAdapter(zerolog.New(&buf)).Warn("retrying")
	assert.Empty(t, buf.String())
}

func TestConvertToFields(t *testing.T) {
	assert.Equal(t, map[string]interface{}{"a": 1}, convertToFields("a", 1, 2, "b", "dangling"))
	assert.Empty(t, convertToFields())
}
