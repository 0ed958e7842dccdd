// Package cli implements walletctl, the storefront-side tool that plays
// scripted wallet checkouts against a running checkout backend.
package cli

import (
	"fmt"
	"os"

	"wallet-checkout/config"
	"wallet-checkout/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const serviceName = "walletctl"

type rootOptions struct {
	configPath string
	logLevel   string
	version    string
}

// NewRootCmd builds the walletctl command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{version: version}

	rootCmd := &cobra.Command{
		Use:   "walletctl",
		Short: "walletctl - drive wallet checkouts against the checkout backend",
		Long: `walletctl plays the storefront side of a wallet checkout.

It starts a session on a simulated wallet sheet, validates the merchant
through the checkout backend, collects a device session from the risk
service and submits the payment token for authorization.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override log.level (debug, info, warn, error)")

	rootCmd.AddCommand(simulateCmd(opts))
	rootCmd.AddCommand(checkConfigCmd())
	return rootCmd
}

// Execute runs walletctl and reports the error on stderr.
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg, nil
}

// Logs go to stderr so stdout stays parseable.
func (o *rootOptions) logger(cmd *cobra.Command, cfg *config.Config) zerolog.Logger {
	if cfg.Log.Pretty {
		return logger.NewWithWriter(serviceName, cfg.Log.Level, zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()})
	}
	return logger.NewWithWriter(serviceName, cfg.Log.Level, cmd.ErrOrStderr())
}
