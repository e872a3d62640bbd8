// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/mindful-sync/internal/client"
	"github.com/MKhiriev/mindful-sync/internal/config"
	"github.com/MKhiriev/mindful-sync/internal/logger"
	"github.com/MKhiriev/mindful-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// cli carries the state shared by all subcommands.
type cli struct {
	flags *config.Flags
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "mindful",
		Short:         "Offline-first sync client for journals, moods and habits",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.flags = config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		c.runCmd(),
		c.syncCmd(),
		c.statusCmd(),
		c.loginCmd(),
		c.logoutCmd(),
		c.resetWatermarkCmd(),
		c.versionCmd(),
	)
	return root
}

// openApp loads the client configuration and builds the application graph.
// The caller closes the returned app.
func (c *cli) openApp(cmd *cobra.Command) (*client.App, error) {
	cfg, err := config.GetClientConfig(c.flags)
	if err != nil {
		return nil, fmt.Errorf("error getting configs: %w", err)
	}

	log := logger.NewClientLogger("mindful-"+cmd.Name(), cfg.App.LogFile, cfg.App.LogLevel)
	log.Debug().Any("config", cfg).Msg("received configs")

	app, err := client.NewApp(cmd.Context(), cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init client app: %w", err)
	}
	return app, nil
}

func appBuildInfo() models.AppBuildInfo {
	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
