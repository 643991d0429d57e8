package ods

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the package-wide operational logger. It is grounded on the
// teacher's direct use of `github.com/rs/zerolog/log` in reader.go,
// consolidated into a single configurable instance rather than the
// ad-hoc color-coded `awareLogger` wrapper misc.go built over the
// standard library's `log.Logger`. Its only call site is a Container
// failing to read its memory-mapped file; opening, saving, compressor
// selection and edits do not log.
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

// applyLogLevel sets Logger's minimum level from a Config.LogLevel
// string, mirroring misc.go's GetConfig -> SetLoggingLevel dispatch.
func applyLogLevel(level string) {
	switch level {
	case "debug":
		Logger = Logger.Level(zerolog.DebugLevel)
	case "info":
		Logger = Logger.Level(zerolog.InfoLevel)
	case "warn":
		Logger = Logger.Level(zerolog.WarnLevel)
	case "error":
		Logger = Logger.Level(zerolog.ErrorLevel)
	case "disabled", "none":
		Logger = Logger.Level(zerolog.Disabled)
	default:
		Logger = Logger.Level(zerolog.InfoLevel)
	}
}
