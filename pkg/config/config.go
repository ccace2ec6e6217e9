package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	GitHub GitHubConfig
	Paths  PathsConfig
}

type GitHubConfig struct {
	// Token is optional; when set, search requests are authenticated
	// with a static bearer token for higher rate limits.
	Token     string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

type PathsConfig struct {
	DataFile   string
	ChartFile  string
	DocsDir    string
	ReadmeFile string
	PagesFile  string
}

// Load loads configuration from .env file and environment variables.
// The returned value is treated as immutable and handed to services
// at construction time.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		GitHub: GitHubConfig{
			Token:     getEnv("GITHUB_TOKEN", ""),
			BaseURL:   getEnv("GITHUB_API_URL", ""),
			UserAgent: getEnv("GITHUB_USER_AGENT", "PR-Watcher"),
			Timeout:   time.Duration(getEnvAsInt("HTTP_TIMEOUT", 30)) * time.Second,
		},
		Paths: PathsConfig{
			DataFile:   getEnv("DATA_FILE", "data.csv"),
			ChartFile:  getEnv("CHART_FILE", "chart.png"),
			DocsDir:    getEnv("DOCS_DIR", "docs"),
			ReadmeFile: getEnv("README_FILE", "README.md"),
			PagesFile:  getEnv("PAGES_FILE", "docs/index.html"),
		},
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
