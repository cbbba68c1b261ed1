package main

import (
	"fmt"

	"github.com/BerylCAtieno/vakeel-gateway/internal/verdict"

	"github.com/spf13/cobra"
)

var verdictRetries int

var verdictCmd = &cobra.Command{
	Use:   "verdict <negotiation-id>",
	Short: "Wait for the mediator's verdict",
	Long: `Poll a negotiation every POLL_INTERVAL until the mediator publishes its
verdict, giving up after POLL_MAX_TICKS polls. --retries starts the polling
over that many more times if no verdict arrived.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerdict,
}

func init() {
	verdictCmd.Flags().IntVar(&verdictRetries, "retries", 0, "extra polling rounds when no verdict arrives")
}

func runVerdict(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	poller := verdict.NewPoller(newClient(), args[0], verdict.Options{
		Interval: cfg.PollInterval,
		MaxTicks: cfg.PollMaxTicks,
	}, logger)

	onUpdate := func(s verdict.Snapshot) {
		if s.View == verdict.Loading {
			fmt.Fprintf(out, "[%3d%%] %s\n", s.Progress, s.Stage)
		}
	}

	snap, err := poller.Run(cmd.Context(), onUpdate)
	for round := 0; err == nil && snap.View != verdict.Ready && round < verdictRetries; round++ {
		fmt.Fprintln(out, "No verdict yet, trying again...")
		snap, err = poller.Retry(cmd.Context(), onUpdate)
	}
	if err != nil {
		return err
	}

	return printVerdict(out, snap)
}
