// Package logging wires up the process-wide structured logger. The teacher
// repo logs with bare fmt.Printf; this engine instead follows the
// structured-logging idiom used elsewhere in the example corpus.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var base zerolog.Logger

func init() {
	base = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Init configures the global logger. Pretty console output in development,
// compact JSON otherwise (the shape a batch CLI run or a log aggregator
// wants).
func Init(development bool, level zerolog.Level) {
	var out io.Writer = os.Stderr
	if development {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	base = zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// For returns a child logger tagged with the given component name, so
// every log line from the DEM cache, the acquire worker, etc. is easy to
// filter by "component".
func For(component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}

// Global returns the base logger without a component tag.
func Global() zerolog.Logger {
	return base
}
