package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/younsl/ebsreaper/internal/app"
	awsclient "github.com/younsl/ebsreaper/pkg/aws"
)

func newRunCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one lifecycle invocation against the current account",
		Long: `run performs exactly what a scheduled invocation does: it counts down the TTL
tags, opens or updates the cleanup ticket and deletes expired volumes on the
deletion day. The outcome is printed as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(v, false)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg, log)
			if err != nil {
				return err
			}
			tracker, err := a.Tracker(ctx)
			if err != nil {
				return err
			}
			account, err := awsclient.CallerAccount(ctx, a.AWS)
			if err != nil {
				return err
			}

			result, err := tracker.Run(ctx, account)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}
