// Command vakeel is the command line front end for the Vakeel.ai legal
// assistant: compliance and risk analysis, contract generation, and
// mediated negotiations.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BerylCAtieno/vakeel-gateway/internal/client"
	"github.com/BerylCAtieno/vakeel-gateway/internal/config"
	"github.com/BerylCAtieno/vakeel-gateway/internal/utils"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	logLevel   string
	quiet      bool

	// Set by loadConfig before any command runs
	cfg    *config.Config
	logger *utils.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vakeel",
	Short: "Vakeel.ai legal assistant",
	Long: `Analyze contracts for legal compliance and risk, generate contracts,
and run AI-mediated negotiations.

Compliance analysis and contract generation go through the gateway
(GATEWAY_URL). Risk detection calls BACKEND_URL directly and negotiations
call NEGOTIATION_URL.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (env vars still take precedence)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default from LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "disable logging")

	rootCmd.AddCommand(
		analyzeCmd,
		riskCmd,
		generateCmd,
		negotiateCmd,
		verdictCmd,
		historyCmd,
		contactCmd,
	)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	switch {
	case quiet:
		logger = utils.NewNopLogger()
	case logLevel != "":
		logger = utils.NewLoggerWithWriter(os.Stderr, logLevel)
	default:
		logger = utils.NewLoggerWithWriter(os.Stderr, cfg.LogLevel)
	}
	return nil
}

func newClient() *client.Client {
	return client.New(client.Endpoints{
		Gateway:     cfg.GatewayURL,
		Backend:     cfg.BackendURL,
		Negotiation: cfg.NegotiationURL,
	}, nil, logger)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
