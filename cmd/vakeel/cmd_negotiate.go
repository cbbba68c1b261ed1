package main

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/vakeel-gateway/internal/db"
	"github.com/BerylCAtieno/vakeel-gateway/internal/repository"
	"github.com/BerylCAtieno/vakeel-gateway/internal/services"

	"github.com/spf13/cobra"
)

var negotiateCmd = &cobra.Command{
	Use:   "negotiate",
	Short: "Run an AI-mediated negotiation",
	Long: `Start and continue negotiations between two parties.

Subcommands:
  start  - Open a negotiation with user1's first message
  send   - Add a message as whichever party speaks next
  show   - Print the conversation so far
  forget - Remove a negotiation from local history`,
}

var negotiateStartCmd = &cobra.Command{
	Use:   "start <message>",
	Short: "Open a negotiation",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNegotiateStart,
}

var negotiateSendCmd = &cobra.Command{
	Use:   "send <negotiation-id> <message>",
	Short: "Send the next message",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runNegotiateSend,
}

var negotiateShowCmd = &cobra.Command{
	Use:   "show <negotiation-id>",
	Short: "Print a negotiation",
	Args:  cobra.ExactArgs(1),
	RunE:  runNegotiateShow,
}

var negotiateForgetCmd = &cobra.Command{
	Use:   "forget <negotiation-id>",
	Short: "Remove a negotiation from local history",
	Args:  cobra.ExactArgs(1),
	RunE:  runNegotiateForget,
}

func init() {
	negotiateCmd.AddCommand(negotiateStartCmd, negotiateSendCmd, negotiateShowCmd, negotiateForgetCmd)
}

// openNegotiations wires the negotiation service to the local history
// database. The returned func closes the database.
func openNegotiations() (services.NegotiationService, func(), error) {
	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history database: %w", err)
	}
	svc := services.NewNegotiationService(newClient(), repository.NewNegotiationRepository(database), logger)
	return svc, func() { database.Close() }, nil
}

func runNegotiateStart(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := openNegotiations()
	if err != nil {
		return err
	}
	defer closeDB()

	resp, err := svc.Start(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Negotiation started: %s\n", resp.NegotiationID)
	fmt.Fprintf(out, "Continue with: vakeel negotiate send %s <message>\n", resp.NegotiationID)
	return nil
}

func runNegotiateSend(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := openNegotiations()
	if err != nil {
		return err
	}
	defer closeDB()

	id := args[0]
	resp, err := svc.Send(cmd.Context(), id, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Message sent (status: %s)\n", resp.Status)
	if resp.Status == "completed" {
		fmt.Fprintf(out, "Negotiation complete. Get the verdict with: vakeel verdict %s\n", id)
	}
	return nil
}

func runNegotiateShow(cmd *cobra.Command, args []string) error {
	negotiation, err := newClient().GetNegotiation(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	printNegotiation(cmd.OutOrStdout(), negotiation)
	return nil
}

func runNegotiateForget(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := openNegotiations()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := svc.Forget(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from history\n", args[0])
	return nil
}
