package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// level tags for the console writer, colored with basic ANSI codes
var levelColors = map[string]int{
	"trace": 35, // magenta
	"debug": 33, // yellow
	"info":  32, // green
	"warn":  31, // red
	"error": 31,
	"fatal": 31,
	"panic": 31,
}

func colorize(s string, c int) string {
	return fmt.Sprintf("\x1b[%dm%s\x1b[0m", c, s)
}

// New creates a logger based on the ENV environment variable.
// Development gets a colored console writer, anything else JSON.
func New() zerolog.Logger {
	switch os.Getenv("ENV") {
	case "", "dev", "development":
		return NewConsole(os.Stderr)
	default:
		return NewJSON(os.Stderr)
	}
}

// NewConsole creates a logger with human-readable console output
func NewConsole(out io.Writer) zerolog.Logger {
	w := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05",
		FormatLevel: func(i interface{}) string {
			ll, ok := i.(string)
			if !ok {
				return strings.ToUpper(fmt.Sprintf("%s", i))
			}
			tag := strings.ToUpper(ll)
			if len(tag) > 3 {
				tag = tag[:3]
			}
			if c, ok := levelColors[ll]; ok {
				return colorize(tag, c)
			}
			return tag
		},
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// NewJSON creates a logger with JSON output and UNIX timestamps
func NewJSON(out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(out).With().Timestamp().Logger()
}
