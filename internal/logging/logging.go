package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ultima-todo-api/internal/config"
)

// Init configures the global zerolog logger. Local runs get a human-readable
// console writer; everything else stays JSON.
func Init(env string) {
	zerolog.TimestampFieldName = "timestamp"

	switch env {
	case config.EnvLocal:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = os.Stdout
		log.Logger = zerolog.New(consoleWriter).With().Timestamp().Logger()
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
