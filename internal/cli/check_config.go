package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"wallet-checkout/internal/core/domain"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type checkConfigOutput struct {
	Session        domain.SessionConfig  `json:"session"`
	PaymentRequest domain.PaymentRequest `json:"paymentRequest"`
	MinorAmount    int64                 `json:"minorAmount"`
}

func checkConfigCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "check-config",
		Short: "Validate a session config and print what the wallet sheet would show",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading session config: %w", err)
			}

			dec := yaml.NewDecoder(bytes.NewReader(raw))
			dec.KnownFields(true)
			var cfg domain.SessionConfig
			if err := dec.Decode(&cfg); err != nil {
				return fmt.Errorf("decoding session config: %w", err)
			}

			normalized, err := cfg.Normalize()
			if err != nil {
				return fmt.Errorf("invalid session config: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(checkConfigOutput{
				Session:        normalized,
				PaymentRequest: normalized.PaymentRequest(),
				MinorAmount:    normalized.MinorAmount(),
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Session config file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
