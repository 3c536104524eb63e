// Package config loads menuboard configuration from an optional TOML file
// with environment overrides. Command-line flags are applied on top by the
// caller.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the resolved runtime configuration.
type Config struct {
	Addr     string // HTTP listen address
	DataDir  string // root for uploaded images
	Debug    bool
	Zeroconf bool // advertise the board over mDNS

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string // bcrypt, preferred over AdminPassword
	JWTSecret         string
	TokenTTL          time.Duration
}

// MenuDir returns the directory the menu images live in.
func (c Config) MenuDir() string {
	return filepath.Join(c.DataDir, "uploads", "menus")
}

// Default returns the built-in defaults, mirroring the original deployment
// (admin/admin123 unless overridden; change these in production).
func Default() Config {
	return Config{
		Addr:          ":5000",
		DataDir:       "data",
		Zeroconf:      true,
		AdminUsername: "admin",
		AdminPassword: "admin123",
		TokenTTL:      24 * time.Hour,
	}
}

// fileConfig mirrors Config but uses strings for durations to keep the
// TOML friendly.
type fileConfig struct {
	Addr              string `toml:"addr"`
	DataDir           string `toml:"data_dir"`
	Debug             *bool  `toml:"debug"`
	Zeroconf          *bool  `toml:"zeroconf"`
	AdminUsername     string `toml:"admin_username"`
	AdminPassword     string `toml:"admin_password"`
	AdminPasswordHash string `toml:"admin_password_hash"`
	JWTSecret         string `toml:"jwt_secret"`
	TokenTTL          string `toml:"token_ttl"`
}

// Load resolves the configuration: defaults, then the TOML file at path
// (missing file is fine when the path is the default), then environment
// variables. explicit says the user named the path, making a missing file
// an error.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, err
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := toml.Unmarshal(b, &fc); err != nil {
		return err
	}

	setString(&cfg.Addr, fc.Addr)
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.AdminUsername, fc.AdminUsername)
	setString(&cfg.AdminPassword, fc.AdminPassword)
	setString(&cfg.AdminPasswordHash, fc.AdminPasswordHash)
	setString(&cfg.JWTSecret, fc.JWTSecret)
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}
	if fc.Zeroconf != nil {
		cfg.Zeroconf = *fc.Zeroconf
	}
	if fc.TokenTTL != "" {
		d, err := time.ParseDuration(fc.TokenTTL)
		if err != nil {
			return err
		}
		cfg.TokenTTL = d
	}
	return nil
}

// applyEnv honors the original deployment's .env variable names.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	setString(&cfg.AdminUsername, os.Getenv("ADMIN_USERNAME"))
	setString(&cfg.AdminPassword, os.Getenv("ADMIN_PASSWORD"))
	setString(&cfg.AdminPasswordHash, os.Getenv("ADMIN_PASSWORD_HASH"))
	setString(&cfg.JWTSecret, os.Getenv("JWT_SECRET"))
	setString(&cfg.DataDir, os.Getenv("MENUBOARD_DATA_DIR"))
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
