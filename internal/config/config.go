package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"choreboard/internal/domain"
)

type Config struct {
	DBPath    string `mapstructure:"db_path"`
	ThemeName string `mapstructure:"theme_name"`

	// http api
	ListenAddr      string        `mapstructure:"listen_addr"`
	JWTSecret       string        `mapstructure:"jwt_secret"`
	JWTExpiry       time.Duration `mapstructure:"jwt_expiry"`
	CORSOrigin      string        `mapstructure:"cors_origin"`
	UploadDir       string        `mapstructure:"upload_dir"`
	PublicUploadURL string        `mapstructure:"public_upload_url"`
	MaxUploadSize   int64         `mapstructure:"max_upload_size"`
	BcryptCost      int           `mapstructure:"bcrypt_cost"`

	// due date evaluation and reminders
	DueAnchor     string        `mapstructure:"due_anchor"`
	TimeZone      string        `mapstructure:"time_zone"`
	CheckInterval time.Duration `mapstructure:"check_interval"`

	// logging
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

const envPrefix = "CHOREBOARD"

var (
	configDir  string
	configFile string
)

func init() {
	// get home dir
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}

	configDir = filepath.Join(homeDir, ".choreboard")
	configFile = filepath.Join(configDir, "config.yaml")
}

func GetConfigDir() string {
	return configDir
}

func GetConfigFile() string {
	return configFile
}

// user palettes are read from *.yaml files here
func GetThemesDir() string {
	return filepath.Join(configDir, "themes")
}

func ConfigExists() bool {
	_, err := os.Stat(configFile)
	return err == nil
}

func EnsureConfigDir() error {
	return os.MkdirAll(configDir, 0755)
}

// builds a viper instance with defaults and CHOREBOARD_* env overrides
func newViper() *viper.Viper {
	v := viper.New()
	defaults := GetDefaultConfig()

	v.SetDefault("db_path", defaults.DBPath)
	v.SetDefault("theme_name", defaults.ThemeName)
	v.SetDefault("listen_addr", defaults.ListenAddr)
	v.SetDefault("jwt_secret", defaults.JWTSecret)
	v.SetDefault("jwt_expiry", defaults.JWTExpiry)
	v.SetDefault("cors_origin", defaults.CORSOrigin)
	v.SetDefault("upload_dir", defaults.UploadDir)
	v.SetDefault("public_upload_url", defaults.PublicUploadURL)
	v.SetDefault("max_upload_size", defaults.MaxUploadSize)
	v.SetDefault("bcrypt_cost", defaults.BcryptCost)
	v.SetDefault("due_anchor", defaults.DueAnchor)
	v.SetDefault("time_zone", defaults.TimeZone)
	v.SetDefault("check_interval", defaults.CheckInterval)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_file", defaults.LogFile)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// loads config from file, falling back to defaults
func LoadConfig() (*Config, error) {
	if err := EnsureConfigDir(); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper()

	if ConfigExists() {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(configDir, "choreboard.db")
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = filepath.Join(configDir, "uploads")
	}

	return &cfg, nil
}

// saves config to file
func SaveConfig(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("db_path", cfg.DBPath)
	v.Set("theme_name", cfg.ThemeName)
	v.Set("listen_addr", cfg.ListenAddr)
	v.Set("jwt_secret", cfg.JWTSecret)
	v.Set("jwt_expiry", cfg.JWTExpiry.String())
	v.Set("cors_origin", cfg.CORSOrigin)
	v.Set("upload_dir", cfg.UploadDir)
	v.Set("public_upload_url", cfg.PublicUploadURL)
	v.Set("max_upload_size", cfg.MaxUploadSize)
	v.Set("bcrypt_cost", cfg.BcryptCost)
	v.Set("due_anchor", cfg.DueAnchor)
	v.Set("time_zone", cfg.TimeZone)
	v.Set("check_interval", cfg.CheckInterval.String())
	v.Set("log_level", cfg.LogLevel)
	v.Set("log_file", cfg.LogFile)

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// returns default config
func GetDefaultConfig() *Config {
	return &Config{
		DBPath:          filepath.Join(configDir, "choreboard.db"),
		ThemeName:       "",
		ListenAddr:      ":5000",
		JWTExpiry:       7 * 24 * time.Hour,
		CORSOrigin:      "http://localhost:3000",
		UploadDir:       filepath.Join(configDir, "uploads"),
		PublicUploadURL: "/uploads",
		MaxUploadSize:   10 << 20,
		BcryptCost:      10,
		DueAnchor:       "now",
		CheckInterval:   time.Hour,
		LogLevel:        "info",
	}
}

// checks the settings the server cannot start without
func (c *Config) Validate() error {
	var errs []error

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt_secret is not set (use CHOREBOARD_JWT_SECRET)"))
	}
	if c.JWTExpiry <= 0 {
		errs = append(errs, errors.New("jwt_expiry must be positive"))
	}
	if c.CheckInterval <= 0 {
		errs = append(errs, errors.New("check_interval must be positive"))
	}
	if c.MaxUploadSize <= 0 {
		errs = append(errs, errors.New("max_upload_size must be positive"))
	}
	if _, err := domain.ParseAnchor(c.DueAnchor); err != nil {
		errs = append(errs, err)
	}
	if c.TimeZone != "" {
		if _, err := time.LoadLocation(c.TimeZone); err != nil {
			errs = append(errs, fmt.Errorf("invalid time_zone %q: %w", c.TimeZone, err))
		}
	}

	return errors.Join(errs...)
}

// the configured due date anchor; invalid values fall back to now
func (c *Config) Anchor() domain.Anchor {
	anchor, err := domain.ParseAnchor(c.DueAnchor)
	if err != nil {
		return domain.AnchorNow
	}
	return anchor
}

// the calendar due dates are counted in; empty or invalid means the server's zone
func (c *Config) Location() *time.Location {
	if c.TimeZone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

// updates theme in config file
func UpdateTheme(themeName string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.ThemeName = themeName
	return SaveConfig(cfg)
}
