// Package config loads the server's YAML configuration, following
// udisondev-la2go's read-file-then-yaml.Unmarshal-with-defaults pattern.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Server holds all configuration for the combined game/web server.
type Server struct {
	Network  NetworkConfig  `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Game     GameConfig     `yaml:"game"`
	Data     DataConfig     `yaml:"data"`
	LogLevel string         `yaml:"log_level"`
}

// NetworkConfig holds listener addresses.
type NetworkConfig struct {
	BindAddress string `yaml:"ip"`
	GamePort    int    `yaml:"game_port"`
	WebPort     int    `yaml:"web_port"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.Username, d.Password, d.Host, d.Port, d.Database, d.SSLMode,
	)
}

// GameConfig holds gameplay-adjacent, non-content settings the server-list
// and global world need.
type GameConfig struct {
	ServerName           string `yaml:"server_name"`
	PVP                  bool   `yaml:"pvp"`
	TicketMaxAge         int    `yaml:"ticket_max_age_seconds"`
	UnauthenticatedGrace int    `yaml:"unauthenticated_grace_seconds"`
	PingInterval         int    `yaml:"ping_interval_seconds"`
	PongTimeout          int    `yaml:"pong_timeout_seconds"`
	IdleLocalWorldGrace  int    `yaml:"idle_local_world_grace_seconds"`
	MaxUsersPerAccount   int    `yaml:"max_users_per_account"`
}

// DataConfig holds paths to data files loaded at boot.
type DataConfig struct {
	Path string `yaml:"path"` // directory containing the opcode table
}

// Default returns sensible defaults for local development.
func Default() Server {
	return Server{
		Network: NetworkConfig{
			BindAddress: "0.0.0.0",
			GamePort:    10001,
			WebPort:     8080,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			Username: "la2go",
			Password: "la2go",
			Database: "la2go",
			SSLMode:  "disable",
		},
		Game: GameConfig{
			ServerName:           "Almetica",
			PVP:                  false,
			TicketMaxAge:         300,
			UnauthenticatedGrace: 5,
			PingInterval:         15,
			PongTimeout:          30,
			IdleLocalWorldGrace:  300,
			MaxUsersPerAccount:   20,
		},
		Data:     DataConfig{Path: "data/opcode.yaml"},
		LogLevel: "info",
	}
}

// Load reads server config from a YAML file, falling back to defaults for
// a missing file.
func Load(path string) (Server, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
