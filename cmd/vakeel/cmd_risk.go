package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var riskCmd = &cobra.Command{
	Use:   "risk <contract>",
	Short: "Find risky clauses in a contract",
	Args:  cobra.ExactArgs(1),
	RunE:  runRisk,
}

func runRisk(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	analysis, err := newClient().DetectRisk(cmd.Context(), filepath.Base(path), data)
	if err != nil {
		return err
	}

	printRiskAnalysis(cmd.OutOrStdout(), analysis)
	return nil
}
