// Package scenario describes a scripted wallet checkout and plays it
// against an orchestrator with the simulated wallet platform.
package scenario

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"wallet-checkout/internal/adapter/wallet"
	"wallet-checkout/internal/core/domain"
	"wallet-checkout/internal/orchestrator"

	"gopkg.in/yaml.v3"
)

// Points at which a scenario dismisses the payment sheet.
const (
	CancelNever            = ""
	CancelBeforeValidation = "before_validation"
	CancelDuringValidation = "during_validation"
	CancelBeforePayment    = "before_payment"
)

// DefaultTimeout bounds a whole scenario run.
const DefaultTimeout = time.Minute

// Scenario is one scripted checkout.
type Scenario struct {
	Name          string               `yaml:"name"`
	Session       domain.SessionConfig `yaml:"session"`
	ValidationURL string               `yaml:"validationURL"`
	Token         Token                `yaml:"token"`
	CancelAt      string               `yaml:"cancelAt"`
	Timeout       time.Duration        `yaml:"timeout"`
	Expect        domain.OutcomeKind   `yaml:"expect"`
}

// Token is the payment token the simulated wallet hands over. Empty fields
// are filled with random test values.
type Token struct {
	Version            string `yaml:"version"`
	Data               string `yaml:"data"`
	Signature          string `yaml:"signature"`
	EphemeralPublicKey string `yaml:"ephemeralPublicKey"`
	PublicKeyHash      string `yaml:"publicKeyHash"`
	TransactionID      string `yaml:"transactionId"`
}

// Load reads a scenario file. Unknown keys are rejected.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a YAML scenario and checks its script fields. The session
// config itself is validated when the attempt starts.
func Parse(raw []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	switch sc.CancelAt {
	case CancelNever, CancelBeforeValidation, CancelDuringValidation, CancelBeforePayment:
	default:
		return nil, fmt.Errorf("unknown cancelAt %q", sc.CancelAt)
	}
	switch sc.Expect {
	case "", domain.OutcomeApproved, domain.OutcomeDeclined, domain.OutcomeFailed, domain.OutcomeCancelled:
	default:
		return nil, fmt.Errorf("unknown expect %q", sc.Expect)
	}
	if sc.ValidationURL == "" && sc.CancelAt != CancelBeforeValidation {
		return nil, errors.New("validationURL is required")
	}
	if sc.Timeout <= 0 {
		sc.Timeout = DefaultTimeout
	}
	return &sc, nil
}

// PaymentToken returns the token with random values for empty fields.
func (t Token) PaymentToken() domain.PaymentToken {
	fill := func(v string, n int, enc func([]byte) string) string {
		if v != "" {
			return v
		}
		return enc(randomBytes(n))
	}
	version := t.Version
	if version == "" {
		version = "EC_v1"
	}
	return domain.PaymentToken{
		Version:   version,
		Data:      fill(t.Data, 96, base64.StdEncoding.EncodeToString),
		Signature: fill(t.Signature, 64, base64.StdEncoding.EncodeToString),
		Header: domain.PaymentTokenHeader{
			EphemeralPublicKey: fill(t.EphemeralPublicKey, 65, base64.StdEncoding.EncodeToString),
			PublicKeyHash:      fill(t.PublicKeyHash, 32, base64.StdEncoding.EncodeToString),
			TransactionID:      fill(t.TransactionID, 32, hex.EncodeToString),
		},
	}
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return b
}

// Result is the outcome of a run plus what the simulated wallet saw.
type Result struct {
	Outcome domain.SessionOutcome `json:"outcome"`
	Calls   []wallet.Call         `json:"calls"`
}

// Run plays sc: it starts an attempt, drives the sheet through validation
// and payment, and returns the attempt's outcome.
func Run(ctx context.Context, orch *orchestrator.Orchestrator, platform *wallet.Platform, sc Scenario) (*Result, error) {
	timeout := sc.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	attempt, err := orch.Start(ctx, sc.Session)
	if err != nil {
		return nil, err
	}
	session := platform.LastSession()
	if session == nil {
		return nil, errors.New("platform created no session")
	}

	finish := func() (*Result, error) {
		outcome, err := attempt.Wait(ctx)
		if err != nil {
			return nil, fmt.Errorf("waiting for outcome: %w", err)
		}
		return &Result{Outcome: outcome, Calls: session.Calls()}, nil
	}
	dismiss := func() (*Result, error) {
		if err := session.Cancel(); err != nil {
			return nil, err
		}
		return finish()
	}

	if sc.CancelAt == CancelBeforeValidation {
		return dismiss()
	}
	if err := session.RequestValidation(sc.ValidationURL); err != nil {
		return nil, err
	}
	if sc.CancelAt == CancelDuringValidation {
		return dismiss()
	}

	// Validation either completes on the sheet or ends the attempt.
	waitCtx, stopWait := context.WithCancel(ctx)
	go func() {
		select {
		case <-attempt.Done():
			stopWait()
		case <-waitCtx.Done():
		}
	}()
	_, err = session.WaitFor(waitCtx, wallet.MethodCompleteMerchantValidation)
	stopWait()
	if err != nil {
		if _, done := attempt.Outcome(); done {
			return finish()
		}
		return nil, err
	}

	if sc.CancelAt == CancelBeforePayment {
		return dismiss()
	}
	if err := session.AuthorizePayment(sc.Token.PaymentToken()); err != nil {
		return nil, err
	}
	return finish()
}

// Check compares the outcome with the expectation, if any.
func (sc Scenario) Check(outcome domain.SessionOutcome) error {
	if sc.Expect == "" || sc.Expect == outcome.Kind {
		return nil
	}
	reason := ""
	if outcome.Failure != nil {
		reason = ": " + outcome.Failure.Reason
	}
	return fmt.Errorf("expected %s, got %s%s", sc.Expect, outcome.Kind, reason)
}
