package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/datadynamo/dynamo/internal/blob"
	"github.com/datadynamo/dynamo/internal/config"
	"github.com/datadynamo/dynamo/internal/db"
	"github.com/datadynamo/dynamo/internal/server"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "dynamo.yaml", "path to config file")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := blob.NewS3Store(ctx, cfg.S3)
	if err != nil {
		return err
	}

	return server.Start(ctx, server.StartOpts{
		DB:      gormDB,
		Blob:    store,
		Port:    cfg.Server.Port,
		Origins: cfg.Server.Origins,
		Out:     cmd.OutOrStdout(),
	})
}
