package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BerylCAtieno/vakeel-gateway/internal/extractor"
	"github.com/BerylCAtieno/vakeel-gateway/internal/uploader"

	"github.com/spf13/cobra"
)

var (
	analyzeJSON  bool
	analyzeForce bool
)

// analyzeCmd runs the compliance analyzer upload flow
var analyzeCmd = &cobra.Command{
	Use:   "analyze <contract.pdf>",
	Short: "Check a contract PDF for legal compliance",
	Long: `Upload a contract PDF to the compliance analyzer.

The upload is tried up to UPLOAD_ATTEMPTS times under a single
UPLOAD_TIMEOUT. Files that are not PDFs are refused unless --force is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the raw report as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeForce, "force", false, "skip the PDF type check")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	file := uploader.File{Name: filepath.Base(path), Data: data}

	flow := uploader.New(newClient(), uploader.Options{
		Timeout:  cfg.UploadTimeout,
		Attempts: cfg.UploadAttempts,
	}, logger)

	// --force behaves like the file picker, which has no type check.
	if analyzeForce {
		err = flow.Select(file)
	} else {
		err = flow.Drop(file)
	}
	if err != nil {
		return err
	}

	extractor.Check(file.Name, file.Data, logger)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Analyzing %s...\n", file.Name)

	report, err := flow.Submit(cmd.Context())
	if err != nil {
		return err
	}

	if analyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printComplianceReport(out, report)
	return nil
}
