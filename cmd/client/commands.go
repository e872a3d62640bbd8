// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/mindful-sync/internal/tui"
	"github.com/MKhiriev/mindful-sync/models"
)

func (c *cli) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Keep syncing in the background until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "syncing, press ctrl+c to stop")
			return app.Run(cmd.Context())
		},
	}
}

func (c *cli) syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run one sync cycle and print its report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			report, err := app.SyncOnce(cmd.Context())
			if report.StartedAt.IsZero() {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderReport(report))
			return err
		},
	}
}

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show pending changes and last sync time per collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			statuses, err := app.Services().StatusService.Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("read status: %w", err)
			}
			app.Services().Connectivity.Check(cmd.Context())

			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderStatus(statuses, app.Services().Connectivity.Online()))
			return nil
		},
	}
}

func (c *cli) loginCmd() *cobra.Command {
	var creds models.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			session, err := app.Services().AuthService.Login(cmd.Context(), creds)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", session.UserID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&creds.Login, "login", "l", "", "Account login")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("login")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session; local records are kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			if err = app.Services().AuthService.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func (c *cli) resetWatermarkCmd() *cobra.Command {
	validArgs := make([]string, 0, len(models.Collections))
	for _, col := range models.Collections {
		validArgs = append(validArgs, col.String())
	}

	return &cobra.Command{
		Use:       "reset-watermark <collection>",
		Short:     "Forget the last sync time so the next pull fetches everything",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: validArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, err := models.ParseCollection(args[0])
			if err != nil {
				return err
			}

			app, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			if err = app.Services().StatusService.ResetWatermark(cmd.Context(), collection); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "watermark of %s reset, next sync pulls everything\n", collection)
			return nil
		},
	}
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderBuildInfo(appBuildInfo()))
		},
	}
}
