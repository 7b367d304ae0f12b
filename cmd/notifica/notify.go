package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notifica-ued/notifica/internal/cli"
	"github.com/notifica-ued/notifica/internal/delivery"
)

func notifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Run the external WhatsApp send process",
		Long: `Run the configured send script against the current history.

The script needs a debug-instance of the browser; one is started first
unless a matching instance is already running. The script writes its own
notification dates and statuses into the history store, which are picked
up on the next load. Its output is shown verbatim.`,
		RunE: runNotify,
	}

	cmd.Flags().Bool("skip-browser", false, "do not check or start the debug browser")

	return cmd
}

func runNotify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	slog.Info(cli.FormatTitle("Sending notifications"))

	if skip, _ := cmd.Flags().GetBool("skip-browser"); !skip {
		supervisor := delivery.NewBrowserSupervisor(
			viper.GetString("browser.marker"),
			viper.GetString("browser.command"),
		)
		started, err := supervisor.EnsureRunning(ctx)
		if err != nil {
			return fmt.Errorf("failed to ensure debug browser: %w", err)
		}
		if started {
			slog.Info(cli.FormatInfo("Debug browser started"))
		}
	}

	runner, err := delivery.NewRunner(viper.GetString("delivery.command"))
	if err != nil {
		return err
	}

	slog.Info("Running send process, do not close the browser...")

	output, err := runner.Run(ctx)
	if output != "" {
		fmt.Println(cli.RenderBox("Send Process Output", output))
	}
	if err != nil {
		// The error already carries the script's output verbatim.
		return err
	}

	slog.Info(cli.FormatSuccess("Send process finished"))

	return nil
}
