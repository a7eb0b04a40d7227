package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// AppConfig is the full runtime configuration, read from an INI file.
type AppConfig struct {
	Server ServerConfig `mapstructure:"server"`
	Path   PathConfig   `mapstructure:"path"`
	Admin  AdminConfig  `mapstructure:"admin"`
	Logger LoggerConfig `mapstructure:"logger"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// DebounceMs drops repeated cart actions arriving within this window.
	DebounceMs int `mapstructure:"debounce_ms"`
	// SessionSecret signs the session cookie.
	SessionSecret string `mapstructure:"session_secret"`
}

// PathConfig names the three durable stores. All paths are relative to the
// working directory unless absolute.
type PathConfig struct {
	Product string `mapstructure:"product"`
	Image   string `mapstructure:"image"`
	Record  string `mapstructure:"record"`
}

type AdminConfig struct {
	Password string `mapstructure:"password"`
}

type LoggerConfig struct {
	Mode       string `mapstructure:"mode"`
	FileEnable bool   `mapstructure:"file_enable"`
	Filename   string `mapstructure:"filename"`
}

const defaultConfig = `[server]
host = 0.0.0.0
port = 8088
debounce_ms = 300
session_secret = minitill-secret

[path]
product = product.csv
image = images
record = record.csv

[admin]
password = Password!

[logger]
mode = development
file_enable = false
filename = minitill.log
`

// Load reads the INI config at path, creating it with defaults when missing.
// A file that exists but cannot be parsed is a startup error: the operator
// must fix or remove it.
func Load(path string) (*AppConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create config directory: %w", err)
			}
		}
		if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8088)
	v.SetDefault("server.debounce_ms", 300)
	v.SetDefault("server.session_secret", "minitill-secret")
	v.SetDefault("path.product", "product.csv")
	v.SetDefault("path.image", "images")
	v.SetDefault("path.record", "record.csv")
	v.SetDefault("admin.password", "Password!")
	v.SetDefault("logger.mode", "development")
	v.SetDefault("logger.file_enable", false)
	v.SetDefault("logger.filename", "minitill.log")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
