package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func reconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile-slots",
		Short: "Repair doctor booked slots against active appointments",
		Long: "Adds slots held by active appointments but missing from the doctor, and removes\n" +
			"slots no active appointment holds. A slot is only removed when it is still\n" +
			"unheld on a later pass, so bookings in flight are left alone.",
		RunE: func(cmd *cobra.Command, args []string) error {
			passes, _ := cmd.Flags().GetInt("passes")
			interval, _ := cmd.Flags().GetDuration("interval")
			if passes < 1 {
				return fmt.Errorf("passes must be at least 1")
			}

			ctx := cmd.Context()
			app, err := newApplication(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			reconciler := app.slotReconciler()
			for pass := 1; pass <= passes; pass++ {
				if pass > 1 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					case <-time.After(interval):
					}
				}
				report, err := reconciler.Run(ctx)
				if err != nil {
					return fmt.Errorf("pass %d failed: %w", pass, err)
				}
				fmt.Printf("pass %d: doctors=%d added=%d removed=%d pending=%d\n",
					pass, report.Doctors, report.Added, report.Removed, report.Pending)
			}
			return nil
		},
	}
	cmd.Flags().Int("passes", 2, "Number of reconciliation passes")
	cmd.Flags().Duration("interval", 30*time.Second, "Delay between passes")
	return cmd
}
