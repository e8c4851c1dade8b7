package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/RaghavSood/bridgeswap/addrcheck"
	"github.com/RaghavSood/bridgeswap/fees"
	"github.com/RaghavSood/bridgeswap/registry"
	"github.com/RaghavSood/bridgeswap/swaps"
)

const envPrefix = "BRIDGESWAP"

// ProviderConfig overrides the simulated fee model of one quote provider.
// Zero values keep the provider's defaults.
type ProviderConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	RateFactor string        `mapstructure:"rate_factor"`
	GasFeeUSD  string        `mapstructure:"gas_fee_usd"`
	Latency    time.Duration `mapstructure:"latency"`
	ETAMinutes int           `mapstructure:"eta_minutes"`

	// APIKey enables providers backed by a real API.
	APIKey string `mapstructure:"api_key"`

	// BaseURL overrides the API endpoint of providers backed by a real API.
	BaseURL string `mapstructure:"base_url"`
}

type SettlementConfig struct {
	BroadcastDelay time.Duration `mapstructure:"broadcast_delay"`
	ConfirmDelay   time.Duration `mapstructure:"confirm_delay"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type Config struct {
	// Fee collector address per wallet standard; standards without one are never charged
	FeeCollectors map[string]string `mapstructure:"fee_collectors"`

	// Service fee in basis points, applied where a collector is configured
	ServiceFeeBPS int `mapstructure:"service_fee_bps"`

	// Delay between the last intent edit and the quote fetch
	Debounce time.Duration `mapstructure:"debounce"`

	// Bound on a single provider quote call; 0 disables
	ProviderTimeout time.Duration `mapstructure:"provider_timeout"`

	Providers map[string]ProviderConfig `mapstructure:"providers"`

	Settlement SettlementConfig `mapstructure:"settlement"`

	// Path to SQLite database
	DatabasePath string `mapstructure:"database_path"`

	// HTTP server port (default 8080)
	Port int `mapstructure:"port"`

	LogLevel    string `mapstructure:"log_level"`
	Development bool   `mapstructure:"development"`

	// RPC endpoints keyed by registry chain ID ("ethereum", "solana", ...)
	RPCEndpoints map[string]string `mapstructure:"rpc_endpoints"`

	// Telegram bot token from @BotFather; empty disables the bot
	TelegramToken string `mapstructure:"telegram_token"`

	// BIP39 mnemonic backing the bot's EVM wallet; empty disables /connect
	Mnemonic string `mapstructure:"mnemonic"`

	// Balance cache lifetime
	BalanceTTL time.Duration `mapstructure:"balance_ttl"`

	// Bot chat sessions untouched for this long are closed; 0 keeps them forever
	BotIdleTimeout time.Duration `mapstructure:"bot_idle_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("fee_collectors", map[string]string{
		string(registry.StandardEVM):    "0x34a52862569c6230419357418a02a90503023a1b",
		string(registry.StandardSolana): "FEESarL3iGjWbEa1d2t6jWau1EXNf6C1j5aPjKk2zQz",
	})
	v.SetDefault("service_fee_bps", 50)
	v.SetDefault("debounce", "500ms")
	v.SetDefault("provider_timeout", "10s")
	for _, name := range []string{"stargate", "hop", "celer"} {
		v.SetDefault("providers."+name+".enabled", true)
	}
	v.SetDefault("providers.nearintents.enabled", false)
	v.SetDefault("providers.nearintents.api_key", "")
	v.SetDefault("providers.thorchain.enabled", false)
	v.SetDefault("providers.thorchain.base_url", "")
	v.SetDefault("settlement.broadcast_delay", "2s")
	v.SetDefault("settlement.confirm_delay", "3s")
	v.SetDefault("settlement.poll_interval", "500ms")
	v.SetDefault("settlement.timeout", "2m")
	v.SetDefault("database_path", "bridgeswap.db")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("development", false)
	v.SetDefault("rpc_endpoints", map[string]string{})
	v.SetDefault("telegram_token", "")
	v.SetDefault("mnemonic", "")
	v.SetDefault("balance_ttl", "30s")
	v.SetDefault("bot_idle_timeout", "24h")
}

// Load reads configuration from path (optional, any format viper supports),
// a .env file in the working directory (optional) and BRIDGESWAP_* environment
// variables, in increasing order of precedence.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate fills unset values with defaults and rejects invalid ones.
func (c *Config) Validate() error {
	for std, addr := range c.FeeCollectors {
		ws, err := registry.ParseStandard(std)
		if err != nil {
			return fmt.Errorf("fee_collectors: %w", err)
		}
		if addr == "" {
			continue
		}
		if err := addrcheck.Validate(addr, ws); err != nil {
			return fmt.Errorf("fee_collectors.%s: %w", std, err)
		}
	}
	if c.ServiceFeeBPS < 0 || c.ServiceFeeBPS > fees.MaxBPS {
		return fmt.Errorf("service_fee_bps must be between 0 and %d", fees.MaxBPS)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative")
	}
	if c.ProviderTimeout < 0 {
		return fmt.Errorf("provider_timeout must not be negative")
	}
	if c.BotIdleTimeout < 0 {
		return fmt.Errorf("bot_idle_timeout must not be negative")
	}
	for name, p := range c.Providers {
		for key, val := range map[string]string{"rate_factor": p.RateFactor, "gas_fee_usd": p.GasFeeUSD} {
			if val == "" {
				continue
			}
			d, err := decimal.NewFromString(val)
			if err != nil || d.IsNegative() {
				return fmt.Errorf("providers.%s.%s: invalid value %q", name, key, val)
			}
		}
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "bridgeswap.db"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	return nil
}

// FeePolicy builds the fee policy from fee_collectors and service_fee_bps.
func (c *Config) FeePolicy() (fees.Policy, error) {
	collectors := make(map[registry.WalletStandard]string, len(c.FeeCollectors))
	for std, addr := range c.FeeCollectors {
		ws, err := registry.ParseStandard(std)
		if err != nil {
			return fees.Policy{}, err
		}
		collectors[ws] = addr
	}
	return fees.NewPolicy(collectors, c.ServiceFeeBPS)
}

// ProviderEnabled reports whether the named provider should be registered.
func (c *Config) ProviderEnabled(name string) bool {
	p, ok := c.Providers[name]
	return ok && p.Enabled
}

// Model applies the overrides configured for the named provider to def.
func (c *Config) Model(name string, def swaps.Model) swaps.Model {
	p, ok := c.Providers[name]
	if !ok {
		return def
	}
	if p.RateFactor != "" {
		def.RateFactor = decimal.RequireFromString(p.RateFactor)
	}
	if p.GasFeeUSD != "" {
		def.GasFeeUSD = decimal.RequireFromString(p.GasFeeUSD)
	}
	if p.Latency > 0 {
		def.Latency = p.Latency
	}
	if p.ETAMinutes > 0 {
		def.EstimatedMinutes = p.ETAMinutes
	}
	return def
}
