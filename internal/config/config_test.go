package config_test

import (
	"testing"
	"time"

	"disperse_back/internal/config"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetDefaults()
}

func TestLoadDefaults(t *testing.T) {
	setup(t)
	t.Setenv("RPC_URL", "http://127.0.0.1:8545")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8545", cfg.Chain.RPCURL)
	assert.Equal(t, int64(config.DefaultChainID), cfg.Chain.ChainID)
	assert.Equal(t, common.HexToAddress(config.DefaultContract), cfg.Chain.Contract)
	assert.Equal(t, uint64(1), cfg.Chain.Confirmations)
	assert.Equal(t, 2*time.Second, cfg.Chain.PollInterval)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.False(t, cfg.DB.Enabled)
}

func TestLoadRequiresRPCURL(t *testing.T) {
	setup(t)
	t.Setenv("RPC_URL", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadReadsSecretsFromEnv(t *testing.T) {
	setup(t)
	t.Setenv("RPC_URL", "http://node")
	t.Setenv("PRIVATE_KEY", " abc ")
	t.Setenv("PRIVATE_KEYS_COLLECT", "k1,k2")
	t.Setenv("PORT", "8080")
	t.Setenv("API_KEY", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.Keys.Disperse)
	assert.Equal(t, "k1,k2", cfg.Keys.Collect)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Server.APIKey)
}

func TestLoadRejectsBadContract(t *testing.T) {
	setup(t)
	t.Setenv("RPC_URL", "http://node")
	viper.Set("chain.contract", "0x1234")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadZeroConfirmationsMeansOne(t *testing.T) {
	setup(t)
	t.Setenv("RPC_URL", "http://node")
	viper.Set("chain.confirmations", 0)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), cfg.Chain.Confirmations)
}
