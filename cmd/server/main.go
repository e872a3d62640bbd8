// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command server runs the in-memory development remote used to try the
// sync client locally. It is not meant for production data.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/MKhiriev/mindful-sync/internal/config"
	"github.com/MKhiriev/mindful-sync/internal/devserver"
	"github.com/MKhiriev/mindful-sync/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	flags := config.BindFlags(pflag.CommandLine)
	pflag.Parse()

	log := logger.NewLogger("mindful-devserver")
	cfg, err := config.GetDevServerConfig(flags)
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = devserver.NewServer(*cfg, log).Run(ctx); err != nil {
		log.Error().Err(err).Msg("dev server stopped with error")
		stop()
		os.Exit(1)
	}
	log.Info().Msg("dev server stopped")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
