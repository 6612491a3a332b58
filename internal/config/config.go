package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/modemobile/todo-rewards/internal/domain"
)

const envPrefix = "TODO_REWARDS"

// OwnershipSource selects where the API reads Transfer history from
type OwnershipSource string

const (
	// OwnershipSourceChain queries Transfer logs from the RPC node on every request
	OwnershipSourceChain OwnershipSource = "chain"
	// OwnershipSourceStore reads the transfer_events table filled by the transfer emitter
	OwnershipSourceStore OwnershipSource = "store"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug       bool   `mapstructure:"debug"`
	SentryDSN   string `mapstructure:"sentry_dsn"`
	Environment string `mapstructure:"environment"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// EthereumConfig holds chain access configuration
type EthereumConfig struct {
	RPCURL               string          `mapstructure:"rpc_url"`
	WebSocketURL         string          `mapstructure:"websocket_url"`
	ChainID              domain.ChainID  `mapstructure:"chain_id"`
	NFTContract          string          `mapstructure:"nft_contract"`   // overrides the known deployment
	ERC20Contract        string          `mapstructure:"erc20_contract"` // overrides the known deployment
	StartBlock           uint64          `mapstructure:"start_block"`
	BlockHeadTTL         time.Duration   `mapstructure:"block_head_ttl"`
	BlockHeadStaleWindow time.Duration   `mapstructure:"block_head_stale_window"`
	LogRangeSize         uint64          `mapstructure:"log_range_size"`
	LogConcurrency       int             `mapstructure:"log_concurrency"`
	MaxRetries           uint64          `mapstructure:"max_retries"` // per log range on transient RPC errors
	RetryInterval        time.Duration   `mapstructure:"retry_interval"`
	OwnershipSource      OwnershipSource `mapstructure:"ownership_source"`
}

// Contracts resolves the reward contracts, honouring configured overrides
func (c *EthereumConfig) Contracts() (domain.Contracts, error) {
	contracts, err := domain.ContractAddresses(c.ChainID)
	if err != nil && (c.NFTContract == "" || c.ERC20Contract == "") {
		return domain.Contracts{}, err
	}

	if c.NFTContract != "" {
		if contracts.NFT, err = domain.ParseAddress(c.NFTContract); err != nil {
			return domain.Contracts{}, fmt.Errorf("ethereum.nft_contract: %w", err)
		}
	}
	if c.ERC20Contract != "" {
		if contracts.ERC20, err = domain.ParseAddress(c.ERC20Contract); err != nil {
			return domain.Contracts{}, fmt.Errorf("ethereum.erc20_contract: %w", err)
		}
	}

	return contracts, nil
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	ReadTimeout    int      `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout   int      `mapstructure:"write_timeout"` // in seconds
	IdleTimeout    int      `mapstructure:"idle_timeout"`  // in seconds
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig holds Sign-In with Ethereum and session configuration
type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	NonceTTL   time.Duration `mapstructure:"nonce_ttl"`
	MaxNonces  int           `mapstructure:"max_nonces"`
	Domain     string        `mapstructure:"domain"`
	Statement  string        `mapstructure:"statement"`
}

// RateLimitConfig holds the per-client request budget
type RateLimitConfig struct {
	Window      time.Duration `mapstructure:"window"`
	MaxRequests int           `mapstructure:"max_requests"`
	MaxClients  int           `mapstructure:"max_clients"`
}

// TodoConfig holds todo listing and caching configuration
type TodoConfig struct {
	ListLimit int           `mapstructure:"list_limit"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
	CacheSize int           `mapstructure:"cache_size"`
}

// CursorConfig controls how often the transfer emitter persists its position
type CursorConfig struct {
	SaveEveryBlocks uint64        `mapstructure:"save_every_blocks"`
	SaveInterval    time.Duration `mapstructure:"save_interval"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig    `mapstructure:"server"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Ethereum   EthereumConfig  `mapstructure:"ethereum"`
	Auth       AuthConfig      `mapstructure:"auth"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	Todo       TodoConfig      `mapstructure:"todo"`
}

// TransferEmitterConfig holds configuration for transfer-emitter
type TransferEmitterConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
	Cursor     CursorConfig   `mapstructure:"cursor"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("server.allowed_origins", []string{"*"})
	setDatabaseDefaults(v)
	setEthereumDefaults(v)
	v.SetDefault("auth.session_ttl", "24h")
	v.SetDefault("auth.nonce_ttl", "10m")
	v.SetDefault("auth.max_nonces", 10000)
	v.SetDefault("auth.statement", "Sign in to manage your tasks and mint rewards.")
	v.SetDefault("rate_limit.window", "15m")
	v.SetDefault("rate_limit.max_requests", 100)
	v.SetDefault("rate_limit.max_clients", 10000)
	v.SetDefault("todo.list_limit", 20)
	v.SetDefault("todo.cache_ttl", "60s")
	v.SetDefault("todo.cache_size", 1024)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is required")
	}
	if err := validateEthereum(&cfg.Ethereum); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadTransferEmitterConfig loads configuration for transfer-emitter
func LoadTransferEmitterConfig(configFile string, envPath string) (*TransferEmitterConfig, error) {
	v := configureViper("transfer-emitter", configFile, envPath)

	setDatabaseDefaults(v)
	setEthereumDefaults(v)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "TODO_REWARDS")
	v.SetDefault("nats.connection_name", "transfer-emitter")
	v.SetDefault("cursor.save_every_blocks", 100)
	v.SetDefault("cursor.save_interval", "30s")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg TransferEmitterConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Ethereum.WebSocketURL == "" {
		return nil, errors.New("ethereum.websocket_url is required")
	}
	if err := validateEthereum(&cfg.Ethereum); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
}

func setEthereumDefaults(v *viper.Viper) {
	v.SetDefault("ethereum.rpc_url", "https://polygon-amoy-bor-rpc.publicnode.com")
	v.SetDefault("ethereum.chain_id", int64(domain.ChainPolygonAmoy))
	v.SetDefault("ethereum.start_block", 11811663)
	v.SetDefault("ethereum.block_head_ttl", "2s")
	v.SetDefault("ethereum.block_head_stale_window", "1m")
	v.SetDefault("ethereum.log_range_size", 50000)
	v.SetDefault("ethereum.log_concurrency", 4)
	v.SetDefault("ethereum.max_retries", 3)
	v.SetDefault("ethereum.retry_interval", "500ms")
	v.SetDefault("ethereum.ownership_source", string(OwnershipSourceChain))
}

func validateEthereum(cfg *EthereumConfig) error {
	if _, err := domain.NewChainID(cfg.ChainID.Int64()); err != nil {
		return fmt.Errorf("ethereum.chain_id: %w", err)
	}
	if _, err := cfg.Contracts(); err != nil {
		return fmt.Errorf("ethereum contracts: %w", err)
	}
	switch cfg.OwnershipSource {
	case OwnershipSourceChain, OwnershipSourceStore:
	default:
		return fmt.Errorf("ethereum.ownership_source must be %q or %q", OwnershipSourceChain, OwnershipSourceStore)
	}
	return nil
}

// readConfig reads the config file; a missing file falls back to environment variables
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"environment",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.websocket_url",
		"ethereum.chain_id",
		"ethereum.nft_contract",
		"ethereum.erc20_contract",
		"ethereum.start_block",
		"ethereum.block_head_ttl",
		"ethereum.block_head_stale_window",
		"ethereum.log_range_size",
		"ethereum.log_concurrency",
		"ethereum.max_retries",
		"ethereum.retry_interval",
		"ethereum.ownership_source",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.allowed_origins",
		// Auth
		"auth.jwt_secret",
		"auth.session_ttl",
		"auth.nonce_ttl",
		"auth.max_nonces",
		"auth.domain",
		"auth.statement",
		// Rate limit
		"rate_limit.window",
		"rate_limit.max_requests",
		"rate_limit.max_clients",
		// Todo
		"todo.list_limit",
		"todo.cache_ttl",
		"todo.cache_size",
		// Transfer emitter
		"cursor.save_every_blocks",
		"cursor.save_interval",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Shared base first, then local, then the optional per-service local file
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile))
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
