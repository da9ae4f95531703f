package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/proptoken/chaincore/internal/config"
	"github.com/proptoken/chaincore/internal/service"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/proptoken/chaincore/cmd.Version=1.2.3" .
var Version = "1.0.0"

var (
	cfgPath string
	verbose bool
	jsonOut bool

	cfg *config.Config
	svc *service.Service
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "chainctl",
	Short: "Property-token chain operations",
	Long: `chainctl — operate the property-token contracts from the terminal.

  Validate token contracts, read metadata and balances, mint and transfer
  tokens from the platform account, inspect receipts and watch events.

Configuration comes from a JSON file (--config) with environment overrides
(CHAIN_RPC_URL, CHAIN_SIGNING_KEY, CHAIN_ID, ...). The RPC endpoint and
signing key are required.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger().
			Level(zerolog.WarnLevel)
		if verbose {
			log = log.Level(zerolog.DebugLevel)
		}

		svc, err = service.New(cfg, log)
		if err != nil {
			return fmt.Errorf("initializing chain service: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// printResult renders v as indented JSON when --json is set, otherwise via
// the plain renderer.
func printResult(v interface{}, plain func()) {
	if jsonOut {
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		fmt.Println(string(out))
		return
	}
	plain()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", os.Getenv("CHAIN_CONFIG"), "path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "JSON output")

	rootCmd.AddCommand(
		validateCmd,
		tokenCmd,
		txCmd,
		gasCmd,
		blockCmd,
		deploymentsCmd,
		watchCmd,
	)
}
