package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/manjumh021/flow-manager/internal/config"
	"github.com/manjumh021/flow-manager/internal/engine"
	"github.com/manjumh021/flow-manager/internal/server"
	"github.com/manjumh021/flow-manager/internal/task"
	"github.com/manjumh021/flow-manager/internal/tasks"
	"github.com/manjumh021/flow-manager/internal/telemetry"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Flow Manager HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}

		logger := telemetry.NewLogger(cfg.LogLevel, cfg.LogFormat)

		registry := task.NewRegistry()
		if err := tasks.Register(registry, tasks.Options{
			SourceURL:   cfg.FetchSourceURL,
			FailureRate: cfg.FetchFailureRate,
		}); err != nil {
			return fmt.Errorf("failed to register sample tasks: %w", err)
		}

		store := engine.NewStore()
		orchestrator := engine.NewOrchestrator(logger, registry, store, engine.Options{
			MaxSteps:    cfg.MaxSteps,
			StepTimeout: cfg.StepTimeout(),
		})

		gin.SetMode(gin.ReleaseMode)
		router := server.New(logger, orchestrator, store).Router()

		logger.Info("starting Flow Manager",
			"addr", cfg.Addr,
			"registered_tasks", registry.Names())

		return router.Run(cfg.Addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides FLOW_MANAGER_ADDR)")
}
