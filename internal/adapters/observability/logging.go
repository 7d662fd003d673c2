package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger: JSON to stdout in production, a
// human-readable console writer when APP_ENV marks a dev environment.
func NewLogger(env string) zerolog.Logger {
	var out io.Writer = os.Stdout
	switch env {
	case "dev", "development":
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).With().Timestamp().Logger()
}
