package main

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/younsl/ebsreaper/internal/app"
	"github.com/younsl/ebsreaper/pkg/formatter"
	"github.com/younsl/ebsreaper/pkg/pricing"
)

// startResourceSpinner creates and starts a spinner with a message
func startResourceSpinner(message string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond)
	s.Suffix = " " + message
	s.Start()
	return s
}

func newStatusCmd(v *viper.Viper) *cobra.Command {
	var withCost bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the open cleanup cycle and the available volumes without changing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(v, false)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			a, err := app.New(ctx, cfg, log)
			if err != nil {
				return err
			}

			scanStartTime := time.Now()
			s := startResourceSpinner(fmt.Sprintf("Analyzing EBS volumes in %s ...", a.AWS.Region))

			volumes, err := a.Volumes.ListAvailableVolumes(ctx)
			if err != nil {
				s.Stop()
				return err
			}
			state, err := a.StateStore().Load(ctx)
			if err != nil {
				s.Stop()
				return err
			}

			rows := make([]formatter.VolumeRow, 0, len(volumes))
			for _, volume := range volumes {
				row := formatter.VolumeRow{VolumeRecord: volume.VolumeRecord, TTLTag: volume.Tags[cfg.TTLTagKey]}
				if withCost || cfg.EstimateCost {
					row.EstimatedMonthlyCost, row.PricingSource = pricing.CalculateEBSMonthlyCostWithSource(row.VolumeType, row.Size, row.Region)
				}
				rows = append(rows, row)
			}

			scanDuration := time.Since(scanStartTime)
			s.FinalMSG = fmt.Sprintf("✓ [%d volumes found] EBS resources analyzed - Completed in %.2f seconds\n",
				len(rows), scanDuration.Seconds())
			s.Stop()

			formatter.PrintTrackingState(out, state, formatter.CycleOffsets{
				FirstNotice:  cfg.FirstNotificationDays,
				SecondNotice: cfg.SecondNotificationDays,
				Deletion:     cfg.DeletionAfterDays,
			}, scanStartTime)
			fmt.Fprintln(out)
			formatter.PrintVolumesTable(out, rows, scanStartTime)
			formatter.PrintPricingAPIStats(out)
			formatter.PrintScanFooter(out, scanStartTime, scanDuration)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withCost, "cost", false, "Estimate the monthly cost of each volume through the AWS Pricing API")
	return cmd
}
