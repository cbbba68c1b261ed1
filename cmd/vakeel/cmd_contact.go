package main

import (
	"fmt"

	"github.com/BerylCAtieno/vakeel-gateway/internal/mailer"
	"github.com/BerylCAtieno/vakeel-gateway/internal/models"

	"github.com/spf13/cobra"
)

var contactMsg models.ContactMessage

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a message to the Vakeel.ai team",
	RunE:  runContact,
}

func init() {
	f := contactCmd.Flags()
	f.StringVar(&contactMsg.Name, "name", "", "your name")
	f.StringVar(&contactMsg.Email, "email", "", "your email address")
	f.StringVar(&contactMsg.Subject, "subject", "", "subject (optional)")
	f.StringVarP(&contactMsg.Message, "message", "m", "", "your message")
}

func runContact(cmd *cobra.Command, args []string) error {
	m := mailer.NewEmailJS("", mailer.Credentials{
		ServiceID:  cfg.EmailJSServiceID,
		TemplateID: cfg.EmailJSTemplateID,
		PublicKey:  cfg.EmailJSPublicKey,
	}, nil, logger)

	if err := m.Send(cmd.Context(), &contactMsg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Thank you %s, your message has been sent!\n", contactMsg.Name)
	return nil
}
