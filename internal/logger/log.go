package logger

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Log formats accepted by Configure.
const (
	FormatConsole = "console"
	FormatColor   = "color"
	FormatJSON    = "json"
)

func init() {
	Set("info")
	CliNoColorLogger()
}

// SetWriter configures a log writer for the global logger
func SetWriter(w io.Writer) {
	log.Logger = log.Output(w)
}

// UseJSONLogging writes structured logs to stderr, for CI pipelines that
// collect them.
func UseJSONLogging() {
	SetWriter(os.Stderr)
}

func CliLogger() {
	SetWriter(zerolog.ConsoleWriter{Out: os.Stderr})
}

func CliNoColorLogger() {
	SetWriter(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true})
}

// Configure selects the global log format and level. An empty format is
// the plain console format.
func Configure(format, level string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatConsole, "":
		CliNoColorLogger()
	case FormatColor:
		CliLogger()
	case FormatJSON:
		UseJSONLogging()
	default:
		return errors.Newf("unknown log format %q, want %s, %s or %s", format, FormatConsole, FormatColor, FormatJSON)
	}
	Set(level)
	return nil
}

// Set sets the global log level. Unknown levels fall back to info.
func Set(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// InitTestEnv sets all log configurations for a test environment
func InitTestEnv() {
	Set("debug")
	CliLogger()
}
