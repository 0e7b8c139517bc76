package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"ultima-todo-api/internal/ai"
	"ultima-todo-api/internal/config"
	"ultima-todo-api/internal/database"
	"ultima-todo-api/internal/handlers"
	"ultima-todo-api/internal/logging"
	"ultima-todo-api/internal/realtime"
	"ultima-todo-api/internal/routes"
	"ultima-todo-api/internal/tracker"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "ultima-api",
		Short:   "Ultima - task management API",
		Version: Version,
	}

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; real env vars win either way
			_ = godotenv.Load()

			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("reading config: %w", err)
			}
			config.SetGlobal(cfg)
			logging.Init(cfg.Env)

			database.InitDB(cfg.DBPath)

			// One recurrence pass per process start
			if advanced, err := tracker.AdvanceOverdue(time.Now()); err != nil {
				log.Error().Err(err).Msg("recurrence pass failed")
			} else {
				log.Info().Int("advanced", advanced).Msg("recurrence pass done")
			}

			handlers.SetAIClient(ai.NewClient(cfg.OpenAI))

			timer := tracker.Get()
			timer.SetNotify(func(userID, event string, payload map[string]any) {
				realtime.Publish(userID, event, payload)
			})
			timer.Start()
			defer timer.Stop()

			ginRoutes := routes.SetupRoutes()

			if addr == "" {
				addr = cfg.Addr
			}
			log.Info().Str("addr", addr).Msg("server starting")
			return ginRoutes.Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides ULTIMA_ADDR)")
	return cmd
}
