package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup creates the process logger writing to stderr. In dev mode it logs at
// debug level through a console writer.
func Setup(dev bool) zerolog.Logger {
	return New(os.Stderr, dev)
}

func New(w io.Writer, dev bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if dev {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()

	if dev {
		logger = logger.Output(zerolog.ConsoleWriter{Out: w, NoColor: w != os.Stderr, FormatTimestamp: func(i any) string {
			return time.Now().Format(time.RFC3339)
		}}).Level(level).With().Logger()
	}

	return logger
}

// Install makes logger the default for contexts that carry none, so code
// logging through zerolog.Ctx picks it up.
func Install(logger zerolog.Logger) {
	zerolog.DefaultContextLogger = &logger
}
