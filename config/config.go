package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment
// variables or a .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	TRADE_7102_FILE=./data/Diamonds(7102).xlsx
//	LAB_7104_FILE=./data/Lab Grown Diamonds-7104.xlsx
//	PRODUCTION_FILE=./data/Production of Diamonds - Updated.xlsx
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
type Config struct {
	Server    ServerConfig
	Workbooks WorkbookConfig
	Postgres  PostgresConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string // TCP port the HTTP server listens on (e.g., "8080")
}

// WorkbookConfig names the source workbook files. Each field may be set
// explicitly via environment; when empty, the well-known default filenames
// are probed in order (the source datasets ship under several names).
type WorkbookConfig struct {
	Trade7102File  string
	Lab7104File    string
	ProductionFile string
}

// PostgresConfig defines connection details for the optional archival
// database used by ingest mode.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// Default filename candidates, probed under DATA_DIR and then the working
// directory when no explicit path is configured.
var (
	trade7102Candidates = []string{
		"Diamonds(7102).xlsx",
	}
	lab7104Candidates = []string{
		"Lab Grown Diamonds-7104.xlsx",
		"Lab Grown Diamonds 7104.xlsx",
		"Lab Grown Diamonds(7104).xlsx",
	}
	productionCandidates = []string{
		"Production of Diamonds - Updated.xlsx",
		"Production of Diamonds - Updated.xls",
		"Production of Diamonds.xlsx",
	}
)

// AppConfig is the globally accessible configuration instance, populated
// once via LoadConfig().
var AppConfig Config

// LoadConfig initializes the global AppConfig from defaults, an optional
// .env file, and environment variables (highest precedence). Missing
// required values terminate the application.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DATA_DIR", "./data")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "hspulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	dataDir := viper.GetString("DATA_DIR")
	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Workbooks: WorkbookConfig{
			Trade7102File:  pickWorkbook(viper.GetString("TRADE_7102_FILE"), dataDir, trade7102Candidates),
			Lab7104File:    pickWorkbook(viper.GetString("LAB_7104_FILE"), dataDir, lab7104Candidates),
			ProductionFile: pickWorkbook(viper.GetString("PRODUCTION_FILE"), dataDir, productionCandidates),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// pickWorkbook returns the explicit path when set, otherwise the first
// existing candidate under dataDir, then under the working directory, then
// the first candidate as-is (errors surface when the file is opened).
func pickWorkbook(explicit, dataDir string, candidates []string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range candidates {
		p := filepath.Join(dataDir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, name := range candidates {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return filepath.Join(dataDir, candidates[0])
}

// validateConfig ensures required variables are present and terminates the
// application if they are missing.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Workbooks.Trade7102File == "" {
		missing = append(missing, "TRADE_7102_FILE")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}

	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}
