// Package config loads the application configuration from config.toml,
// .env and OOR_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the application configuration.
type AppConfig struct {
	Server    ServerConfig    `toml:"server"`
	Data      DataConfig      `toml:"data"`
	Reference ReferenceConfig `toml:"reference"`
	Business  BusinessConfig  `toml:"business"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig configures where uploads, exports and the run database live.
type DataConfig struct {
	DataDir string `toml:"data_dir"`
	DBFile  string `toml:"db_file"`
}

// ReferenceConfig points at the reference data a run loads.
type ReferenceConfig struct {
	MappingPath   string `toml:"mapping_path"`
	InventoryPath string `toml:"inventory_path"`
}

// BusinessConfig carries the labeling rules' tunables.
type BusinessConfig struct {
	// Timezone anchors the run clock and all date comparisons.
	Timezone      string `toml:"timezone"`
	PrimaryVendor string `toml:"primary_vendor"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    8080,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
			DBFile:  "oor.db",
		},
		Reference: ReferenceConfig{
			MappingPath:   "data/customer_mapping.xlsx",
			InventoryPath: "data/robot_stock.csv",
		},
		Business: BusinessConfig{
			Timezone:      "Australia/Sydney",
			PrimaryVendor: "PNW",
		},
	}
}

// Load reads config.toml from the working directory (when present), then
// applies .env and OOR_* environment overrides on top of the defaults.
func Load() (*AppConfig, error) {
	return LoadFile("config.toml")
}

// LoadFile loads configuration from an explicit toml path.
func LoadFile(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file, defaults plus environment apply.
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	// .env is optional and never overrides variables already exported.
	godotenv.Load()
	applyEnv(cfg)

	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Business.Timezone, err)
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("OOR_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("OOR_DATA_DIR"); v != "" {
		cfg.Data.DataDir = v
	}
	if v := os.Getenv("OOR_MAPPING_PATH"); v != "" {
		cfg.Reference.MappingPath = v
	}
	if v := os.Getenv("OOR_INVENTORY_PATH"); v != "" {
		cfg.Reference.InventoryPath = v
	}
	if v := os.Getenv("OOR_TIMEZONE"); v != "" {
		cfg.Business.Timezone = v
	}
	if v := os.Getenv("OOR_PRIMARY_VENDOR"); v != "" {
		cfg.Business.PrimaryVendor = v
	}
}

// Location resolves the configured timezone.
func (c *AppConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Business.Timezone)
}

// DBPath is the run database location inside the data directory.
func (c *AppConfig) DBPath() string {
	return filepath.Join(c.Data.DataDir, c.Data.DBFile)
}

// DataPath joins a subdirectory and filename under the data directory.
func (c *AppConfig) DataPath(subdir, filename string) string {
	return filepath.Join(c.Data.DataDir, subdir, filename)
}

// EnsureDataDir creates the data directory and its upload/export
// subdirectories.
func (c *AppConfig) EnsureDataDir() error {
	for _, dir := range []string{c.Data.DataDir, filepath.Join(c.Data.DataDir, "uploads"), filepath.Join(c.Data.DataDir, "exports")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}
