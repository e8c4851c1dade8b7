package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaghavSood/bridgeswap/hop"
	"github.com/RaghavSood/bridgeswap/registry"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.ServiceFeeBPS)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce)
	assert.Equal(t, 10*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 24*time.Hour, cfg.BotIdleTimeout)
	assert.Equal(t, 2*time.Second, cfg.Settlement.BroadcastDelay)
	assert.Equal(t, 3*time.Second, cfg.Settlement.ConfirmDelay)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "bridgeswap.db", cfg.DatabasePath)
	assert.True(t, cfg.ProviderEnabled("stargate"))
	assert.True(t, cfg.ProviderEnabled("hop"))
	assert.True(t, cfg.ProviderEnabled("celer"))
	assert.False(t, cfg.ProviderEnabled("nearintents"))

	policy, err := cfg.FeePolicy()
	require.NoError(t, err)
	assert.True(t, policy.Configured(registry.StandardEVM))
	assert.True(t, policy.Configured(registry.StandardSolana))
	assert.False(t, policy.Configured(registry.StandardTron))
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, `{
		"service_fee_bps": 25,
		"debounce": "250ms",
		"port": 9090,
		"providers": {
			"hop": {"enabled": true, "rate_factor": "0.9995", "eta_minutes": 3},
			"celer": {"enabled": false}
		},
		"rpc_endpoints": {"ethereum": "https://eth.example"}
	}`)
	t.Setenv("BRIDGESWAP_PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.ServiceFeeBPS)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "https://eth.example", cfg.RPCEndpoints["ethereum"])
	assert.False(t, cfg.ProviderEnabled("celer"))

	model := cfg.Model("hop", hop.DefaultModel())
	assert.Equal(t, "0.9995", model.RateFactor.String())
	assert.Equal(t, 3, model.EstimatedMinutes)
	assert.Equal(t, hop.DefaultModel().GasFeeUSD, model.GasFeeUSD)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			FeeCollectors: map[string]string{"evm": "0x34a52862569c6230419357418a02a90503023a1b"},
			ServiceFeeBPS: 50,
			LogLevel:      "info",
		}
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "bridgeswap.db", cfg.DatabasePath)

	cfg = valid()
	cfg.FeeCollectors["bitcoin"] = "bc1q"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.FeeCollectors["evm"] = "0x1234"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.ServiceFeeBPS = 10001
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Providers = map[string]ProviderConfig{"hop": {RateFactor: "abc"}}
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.FeeCollectors["tron"] = ""
	require.NoError(t, cfg.Validate())
	policy, err := cfg.FeePolicy()
	require.NoError(t, err)
	assert.False(t, policy.Configured(registry.StandardTron))
}
