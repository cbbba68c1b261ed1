package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BerylCAtieno/vakeel-gateway/internal/models"

	"github.com/spf13/cobra"
)

var (
	generateReq    models.GenerateRequest
	generateOutput string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft a contract from a few details",
	Example: `  vakeel generate --type "Rental Agreement" --party-a "Asha Rao" \
    --party-b "Ravi Kumar" --duration "11 months" --jurisdiction Karnataka`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&generateReq.ContractType, "type", "", "contract type, e.g. \"Employment Contract\"")
	f.StringVar(&generateReq.PartyA, "party-a", "", "first party")
	f.StringVar(&generateReq.PartyB, "party-b", "", "second party")
	f.StringVar(&generateReq.Duration, "duration", "", "contract duration")
	f.StringVar(&generateReq.ClauseQuery, "clauses", "", "clauses to include")
	f.StringVar(&generateReq.Jurisdiction, "jurisdiction", "", "governing jurisdiction")
	f.StringVarP(&generateOutput, "output", "o", "", "write the contract to this file")

	generateCmd.MarkFlagRequired("type")
	generateCmd.MarkFlagRequired("party-a")
	generateCmd.MarkFlagRequired("party-b")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	generated, err := newClient().GenerateContract(cmd.Context(), &generateReq)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	text := generated.Body()

	if generateOutput != "" {
		if err := os.WriteFile(generateOutput, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", generateOutput, err)
		}
		fmt.Fprintf(out, "Contract written to %s\n", generateOutput)
	} else {
		fmt.Fprintln(out, strings.TrimSpace(text))
	}

	if generated.PDFURL != "" {
		fmt.Fprintf(out, "\nPDF: %s\n", generated.PDFURL)
	}
	return nil
}
