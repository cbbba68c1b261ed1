package main

import (
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List negotiations started on this machine",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := openNegotiations()
	if err != nil {
		return err
	}
	defer closeDB()

	history, err := svc.History(cmd.Context())
	if err != nil {
		return err
	}

	printHistory(cmd.OutOrStdout(), history)
	return nil
}
