package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
	Security  SecurityConfig  `mapstructure:"security"`
	Wallet    WalletConfig    `mapstructure:"wallet"`
	Processor ProcessorConfig `mapstructure:"processor"`
	Risk      RiskConfig      `mapstructure:"risk"`
	Client    ClientConfig    `mapstructure:"client"`
	Notify    NotifyConfig    `mapstructure:"notify"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// SecurityConfig holds the master key the AES, HMAC and session-token keys
// are derived from.
type SecurityConfig struct {
	MasterKey   string        `mapstructure:"master_key"` // 32-byte hex
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
	TokenIssuer string        `mapstructure:"token_issuer"`
}

// WalletConfig describes the merchant's identity with the wallet operator.
type WalletConfig struct {
	MerchantIdentifier     string        `mapstructure:"merchant_identifier"`
	DisplayName            string        `mapstructure:"display_name"`
	InitiativeContext      string        `mapstructure:"initiative_context"`
	CertFile               string        `mapstructure:"cert_file"`
	KeyFile                string        `mapstructure:"key_file"`
	AllowedValidationHosts []string      `mapstructure:"allowed_validation_hosts"`
	ValidationTimeout      time.Duration `mapstructure:"validation_timeout"`
	DomainAssociationFile  string        `mapstructure:"domain_association_file"`
	AllowedOrigins         []string      `mapstructure:"allowed_origins"`
}

// ProcessorConfig points at the payment processor that decrypts wallet tokens.
type ProcessorConfig struct {
	BaseURL             string        `mapstructure:"base_url"`
	SecretKey           string        `mapstructure:"secret_key"`
	ProcessingChannelID string        `mapstructure:"processing_channel_id"`
	Timeout             time.Duration `mapstructure:"timeout"`
	ResultTTL           time.Duration `mapstructure:"result_ttl"` // replay window for a finished authorization
	ClaimTTL            time.Duration `mapstructure:"claim_ttl"`  // in-flight guard for a token
}

// RiskConfig configures the device telemetry collector.
type RiskConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	PublicKey string        `mapstructure:"public_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// ClientConfig is used by walletctl to drive a checkout against the backend.
type ClientConfig struct {
	BackendURL           string        `mapstructure:"backend_url"`
	ValidationPath       string        `mapstructure:"validation_path"`
	AuthorizationPath    string        `mapstructure:"authorization_path"`
	WalletVersion        int           `mapstructure:"wallet_version"`
	WalletType           string        `mapstructure:"wallet_type"`
	ValidationTimeout    time.Duration `mapstructure:"validation_timeout"`
	AuthorizationTimeout time.Duration `mapstructure:"authorization_timeout"`
}

// NotifyConfig configures outcome notifications. An empty URL disables them.
type NotifyConfig struct {
	URL            string          `mapstructure:"url"`
	Timeout        time.Duration   `mapstructure:"timeout"`
	RetryIntervals []time.Duration `mapstructure:"retry_intervals"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: WCO_ (Wallet Checkout).
// Nested keys use underscore: WCO_PROCESSOR_SECRET_KEY, WCO_RISK_PUBLIC_KEY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "wallet_checkout")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("security.master_key", "")
	v.SetDefault("security.token_expiry", "15m")
	v.SetDefault("security.token_issuer", "wallet-checkout")
	v.SetDefault("wallet.merchant_identifier", "merchant.com.example.sandbox")
	v.SetDefault("wallet.display_name", "Wallet Checkout")
	v.SetDefault("wallet.initiative_context", "localhost")
	v.SetDefault("wallet.cert_file", "certs/merchant_id.pem")
	v.SetDefault("wallet.key_file", "certs/merchant_id.key")
	v.SetDefault("wallet.allowed_validation_hosts", []string{
		"apple-pay-gateway.apple.com",
		"apple-pay-gateway-cert.apple.com",
		"cn-apple-pay-gateway.apple.com",
		"apple-pay-gateway-nc-pod1.apple.com",
		"apple-pay-gateway-pr-pod1.apple.com",
	})
	v.SetDefault("wallet.validation_timeout", "10s")
	v.SetDefault("wallet.domain_association_file", ".well-known/apple-developer-merchantid-domain-association.txt")
	v.SetDefault("wallet.allowed_origins", []string{})
	v.SetDefault("processor.base_url", "https://api.sandbox.checkout.com")
	v.SetDefault("processor.secret_key", "")
	v.SetDefault("processor.processing_channel_id", "")
	v.SetDefault("processor.timeout", "15s")
	v.SetDefault("processor.result_ttl", "24h")
	v.SetDefault("processor.claim_ttl", "2m")
	v.SetDefault("risk.base_url", "https://risk.sandbox.checkout.com")
	v.SetDefault("risk.public_key", "")
	v.SetDefault("risk.timeout", "5s")
	v.SetDefault("client.backend_url", "http://localhost:8080")
	v.SetDefault("client.validation_path", "/api/v1/merchant-validation")
	v.SetDefault("client.authorization_path", "/api/v1/authorize-payment")
	v.SetDefault("client.wallet_version", 3)
	v.SetDefault("client.wallet_type", "applepay")
	v.SetDefault("client.validation_timeout", "20s")
	v.SetDefault("client.authorization_timeout", "30s")
	v.SetDefault("notify.url", "")
	v.SetDefault("notify.timeout", "10s")
	v.SetDefault("notify.retry_intervals", []string{"15s", "1m", "2m", "5m", "10m"})

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: WCO_RISK_PUBLIC_KEY -> risk.public_key
	v.SetEnvPrefix("WCO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// ValidateServer checks the settings the backend cannot start without.
func (c *Config) ValidateServer() error {
	if len(c.Security.MasterKey) != 64 {
		return fmt.Errorf("security.master_key must be 64 hex characters")
	}
	if c.Processor.SecretKey == "" {
		return fmt.Errorf("processor.secret_key is required")
	}
	if c.Wallet.MerchantIdentifier == "" {
		return fmt.Errorf("wallet.merchant_identifier is required")
	}
	if len(c.Wallet.AllowedValidationHosts) == 0 {
		return fmt.Errorf("wallet.allowed_validation_hosts must not be empty")
	}
	return nil
}

// ValidateClient checks the settings walletctl needs to drive a checkout.
func (c *Config) ValidateClient() error {
	if c.Client.BackendURL == "" {
		return fmt.Errorf("client.backend_url is required")
	}
	if c.Risk.PublicKey == "" {
		return fmt.Errorf("risk.public_key is required")
	}
	return nil
}
