package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// Environment variables read by ApplyEnv.
const (
	EnvNetwork     = "FXN_NETWORK"
	EnvRPCAddr     = "FXN_RPC_URL"
	EnvWSAddr      = "FXN_WS_URL"
	EnvProgramID   = "FXN_PROGRAM_ID"
	EnvPrivateKey  = "FXN_PRIVATE_KEY"
	EnvKeypairPath = "FXN_KEYPAIR"
	EnvCommitment  = "FXN_COMMITMENT"
	EnvTimeout     = "FXN_TIMEOUT"
	EnvDebug       = "FXN_DEBUG"
	EnvEVMRPCAddr  = "FXN_EVM_RPC_URL"
	EnvEVMKey      = "FXN_EVM_PRIVATE_KEY"
)

// Load reads a YAML configuration file. The result is not validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// FromEnv loads the given dotenv files (".env" when none are given) and
// builds a Config from FXN_* variables. Missing dotenv files are ignored.
func FromEnv(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
		zap.L().Debug(".env file not found, using process environment")
	}
	cfg := &Config{}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays non-empty FXN_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvNetwork); v != "" {
		n, err := NetworkByName(v)
		if err != nil {
			return err
		}
		c.Network = n
	}
	setString(&c.RPCAddr, EnvRPCAddr)
	setString(&c.WSAddr, EnvWSAddr)
	setString(&c.ProgramID, EnvProgramID)
	setString(&c.PrivateKey, EnvPrivateKey)
	setString(&c.KeypairPath, EnvKeypairPath)
	setString(&c.Commitment, EnvCommitment)
	setString(&c.EVM.RPCAddr, EnvEVMRPCAddr)
	setString(&c.EVM.PrivateKey, EnvEVMKey)

	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.Timeouts.ChainSubmit = d
	}
	if v := os.Getenv(EnvDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvDebug, err)
		}
		c.Debug = b
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
