package config

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Sepolia, the network the disperse contract was deployed to.
const DefaultChainID = 11155111

const DefaultContract = "0x760961dCCDE54efbA8a4399C7A202C96b6E8a693"

type Config struct {
	Server ServerConfig
	Chain  ChainConfig
	Keys   KeysConfig
	DB     DBConfig
}

type ServerConfig struct {
	Port         string
	APIKey       string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins []string
}

type ChainConfig struct {
	RPCURL         string
	ChainID        int64
	Contract       common.Address
	Confirmations  uint64
	PollInterval   time.Duration
	ConfirmTimeout time.Duration
	GasMarginPct   uint64
}

// KeysConfig holds the raw hex keys. Parsing happens in internal/wallet.
type KeysConfig struct {
	Disperse string
	Collect  string
}

type DBConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
	SSLMode  string
}

// SetDefaults registers defaults and binds the secrets that only come from the environment.
func SetDefaults() {
	viper.SetDefault("server.port", "3000")
	viper.SetDefault("server.read_timeout", 5*time.Minute)
	viper.SetDefault("server.write_timeout", 5*time.Minute)
	viper.SetDefault("server.allow_origins", []string{"*"})

	viper.SetDefault("chain.id", DefaultChainID)
	viper.SetDefault("chain.contract", DefaultContract)
	viper.SetDefault("chain.confirmations", 1)
	viper.SetDefault("chain.poll_interval", 2*time.Second)
	viper.SetDefault("chain.confirm_timeout", time.Duration(0))
	viper.SetDefault("chain.gas_margin_pct", 20)

	viper.SetDefault("db.enabled", false)
	viper.SetDefault("db.sslmode", "disable")

	_ = viper.BindEnv("chain.rpc_url", "RPC_URL")
	_ = viper.BindEnv("keys.disperse", "PRIVATE_KEY")
	_ = viper.BindEnv("keys.collect", "PRIVATE_KEYS_COLLECT")
	_ = viper.BindEnv("server.port", "PORT")
	_ = viper.BindEnv("server.api_key", "API_KEY")
	_ = viper.BindEnv("db.password", "DB_PASSWORD")
}

// Load reads the configuration from viper and validates the parts the service cannot run without.
func Load() (Config, error) {
	var cfg Config

	cfg.Server = ServerConfig{
		Port:         viper.GetString("server.port"),
		APIKey:       viper.GetString("server.api_key"),
		ReadTimeout:  viper.GetDuration("server.read_timeout"),
		WriteTimeout: viper.GetDuration("server.write_timeout"),
		AllowOrigins: viper.GetStringSlice("server.allow_origins"),
	}

	cfg.Chain = ChainConfig{
		RPCURL:         strings.TrimSpace(viper.GetString("chain.rpc_url")),
		ChainID:        viper.GetInt64("chain.id"),
		Confirmations:  viper.GetUint64("chain.confirmations"),
		PollInterval:   viper.GetDuration("chain.poll_interval"),
		ConfirmTimeout: viper.GetDuration("chain.confirm_timeout"),
		GasMarginPct:   viper.GetUint64("chain.gas_margin_pct"),
	}
	if cfg.Chain.RPCURL == "" {
		return cfg, errors.New("RPC_URL must be set")
	}
	if cfg.Chain.ChainID < 0 {
		return cfg, errors.Errorf("invalid chain id %d", cfg.Chain.ChainID)
	}
	if cfg.Chain.Confirmations == 0 {
		cfg.Chain.Confirmations = 1
	}
	if cfg.Chain.PollInterval <= 0 {
		return cfg, errors.Errorf("invalid chain.poll_interval %s", cfg.Chain.PollInterval)
	}

	contract := viper.GetString("chain.contract")
	if !common.IsHexAddress(contract) {
		return cfg, errors.Errorf("invalid contract address %q", contract)
	}
	cfg.Chain.Contract = common.HexToAddress(contract)

	cfg.Keys = KeysConfig{
		Disperse: strings.TrimSpace(viper.GetString("keys.disperse")),
		Collect:  strings.TrimSpace(viper.GetString("keys.collect")),
	}

	cfg.DB = DBConfig{
		Enabled:  viper.GetBool("db.enabled"),
		Host:     viper.GetString("db.host"),
		Port:     viper.GetString("db.port"),
		Username: viper.GetString("db.username"),
		Password: viper.GetString("db.password"),
		DBName:   viper.GetString("db.dbname"),
		SSLMode:  viper.GetString("db.sslmode"),
	}

	return cfg, nil
}
