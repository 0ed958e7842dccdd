package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"wallet-checkout/config"
	"wallet-checkout/internal/adapter/gateway"
	"wallet-checkout/internal/adapter/wallet"
	"wallet-checkout/internal/orchestrator"
	"wallet-checkout/internal/scenario"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func simulateCmd(opts *rootOptions) *cobra.Command {
	var (
		file   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a scripted checkout against the backend",
		Long: `Play a scripted checkout described in a YAML scenario file.

The command exits non-zero when the outcome does not match the
scenario's expect field.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, opts, file, asJSON)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Scenario file (required)")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runSimulate(cmd *cobra.Command, opts *rootOptions, file string, asJSON bool) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateClient(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	sc, err := scenario.Load(file)
	if err != nil {
		return err
	}

	log := opts.logger(cmd, cfg)
	platform := wallet.NewPlatform(true, log)
	orch := newOrchestrator(cfg, platform, opts.version, log)

	log.Info().Str("scenario", sc.Name).Str("backend", cfg.Client.BackendURL).Msg("running scenario")
	res, err := scenario.Run(cmd.Context(), orch, platform, *sc)
	if err != nil {
		return fmt.Errorf("running scenario: %w", err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		printResult(out, sc, res)
	}
	return sc.Check(res.Outcome)
}

func newOrchestrator(cfg *config.Config, platform *wallet.Platform, version string, log zerolog.Logger) *orchestrator.Orchestrator {
	risk := gateway.NewRiskClient(cfg.Risk.BaseURL, cfg.Risk.Timeout, deviceInfo(version), log)
	backend := gateway.NewBackendClient(gateway.BackendConfig{
		BaseURL:           cfg.Client.BackendURL,
		ValidationPath:    cfg.Client.ValidationPath,
		AuthorizationPath: cfg.Client.AuthorizationPath,
		Timeout:           cfg.Client.AuthorizationTimeout,
	}, log)

	return orchestrator.New(platform, risk, backend, backend, orchestrator.Options{
		RiskPublicKey:        cfg.Risk.PublicKey,
		RiskTimeout:          cfg.Risk.Timeout,
		ValidationTimeout:    cfg.Client.ValidationTimeout,
		AuthorizationTimeout: cfg.Client.AuthorizationTimeout,
		WalletVersion:        cfg.Client.WalletVersion,
		WalletType:           cfg.Client.WalletType,
	}, log)
}

func deviceInfo(version string) gateway.DeviceInfo {
	zone, _ := time.Now().Zone()
	locale := os.Getenv("LANG")
	if locale == "" {
		locale = "en_US"
	}
	return gateway.DeviceInfo{
		UserAgent: serviceName + "/" + version,
		Platform:  runtime.GOOS,
		Timezone:  zone,
		Locale:    locale,
	}
}

func printResult(w io.Writer, sc *scenario.Scenario, res *scenario.Result) {
	o := res.Outcome
	if sc.Name != "" {
		fmt.Fprintf(w, "Scenario: %s\n", sc.Name)
	}
	fmt.Fprintf(w, "Attempt:  %s\n", o.AttemptID)
	fmt.Fprintf(w, "Outcome:  %s\n", o.Kind)
	if o.PaymentID != "" {
		fmt.Fprintf(w, "Payment:  %s\n", o.PaymentID)
	}
	if o.Failure != nil {
		fmt.Fprintf(w, "Failure:  %s (%s)\n", o.Failure.Kind, o.Failure.Reason)
	}

	fmt.Fprintln(w, "\nWallet calls:")
	for _, c := range res.Calls {
		if c.Status != "" {
			fmt.Fprintf(w, "  %s %s\n", c.Method, c.Status)
			continue
		}
		fmt.Fprintf(w, "  %s\n", c.Method)
	}
}
