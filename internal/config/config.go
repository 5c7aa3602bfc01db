package config

import (
	"encoding/json"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port       string
	Env        string
	ConfigFile string // server directory JSON, see Servers
}

// serverDirectory is the on-disk shape of the server list file.
type serverDirectory struct {
	Servers []string `json:"servers"`
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	return &Config{
		Port:       getEnv("PORT", "8080"),
		Env:        getEnv("ENV", "development"),
		ConfigFile: getEnv("CONFIG_FILE", "config.json"),
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// DefaultServer is the fallback chat server address offered on the
// login page when the directory file is missing or empty.
func (c *Config) DefaultServer() string {
	return "http://localhost:" + c.Port
}

// Servers reads the server directory file. A missing file is created
// with the default entry; a broken file degrades to the default.
func (c *Config) Servers() []string {
	fallback := []string{c.DefaultServer()}

	data, err := os.ReadFile(c.ConfigFile)
	if os.IsNotExist(err) {
		if raw, merr := json.MarshalIndent(serverDirectory{Servers: fallback}, "", "  "); merr == nil {
			_ = os.WriteFile(c.ConfigFile, raw, 0644)
		}
		return fallback
	}
	if err != nil {
		return fallback
	}

	var dir serverDirectory
	if err := json.Unmarshal(data, &dir); err != nil || len(dir.Servers) == 0 {
		return fallback
	}
	return dir.Servers
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
