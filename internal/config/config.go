package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	Site    SiteConfig    `mapstructure:"site"`
	Content ContentConfig `mapstructure:"content"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Port string    `mapstructure:"port"`
	TLS  TLSConfig `mapstructure:"tls"`
}

// TLSConfig holds TLS-specific configuration.
type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"certFile"`
	KeyFile  string `mapstructure:"keyFile"`
}

// DBConfig holds database-specific configuration. Driver is "sqlite" or
// "mysql"; a mysql DSN must include parseTime=true so timestamps scan into
// time.Time.
type DBConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// SiteConfig holds the site-wide settings handed to every view render.
type SiteConfig struct {
	Name        string    `mapstructure:"name"`
	URL         string    `mapstructure:"url"`
	Description string    `mapstructure:"description"`
	Author      string    `mapstructure:"author"`
	Nav         []NavLink `mapstructure:"nav"`
}

// NavLink is one link in the site navigation bar.
type NavLink struct {
	Label string `mapstructure:"label"`
	Href  string `mapstructure:"href"`
}

// ContentConfig points at the Markdown content directory. When Dir is empty
// no import runs and entries come solely from the database.
type ContentConfig struct {
	Dir   string `mapstructure:"dir"`
	Watch bool   `mapstructure:"watch"`
}

// CacheConfig holds rendered-page cache configuration.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Path    string        `mapstructure:"path"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // e.g., "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // e.g., "json", "console"
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	// Set default values
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("db.driver", "sqlite")
	viper.SetDefault("db.dsn", "blog.db")
	viper.SetDefault("site.name", "My Blog")
	viper.SetDefault("site.url", "http://localhost:8080")
	viper.SetDefault("site.description", "Notes and essays")
	viper.SetDefault("site.author", "Anonymous")
	viper.SetDefault("content.dir", "")
	viper.SetDefault("content.watch", false)
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.path", "cache.db")
	viper.SetDefault("cache.ttl", "10m")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")

	// Set up viper to read from config file
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/go-blog-app/")
	viper.AddConfigPath("$HOME/.go-blog-app")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return nil, err
		}
		// Config file not found; proceed with defaults and env vars
	}

	// Set up viper to read from environment variables
	viper.SetEnvPrefix("BLOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Unmarshal the config into the Config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
