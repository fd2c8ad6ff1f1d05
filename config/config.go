// Package config loads service settings from .env, an optional YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"jurisnote/generation"
	"jurisnote/models"
	"jurisnote/repository"
	"jurisnote/storage"
)

// Config is the resolved service configuration. Secrets are not copied into
// it; they are read from the live viper instance on every use.
type Config struct {
	v *viper.Viper

	Port      string `yaml:"port"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Revision models.Revision `yaml:"revision"`

	LLMProvider   string `yaml:"llm_provider"`
	GeminiModel   string `yaml:"gemini_model"`
	OpenAIModel   string `yaml:"openai_model"`
	OpenAIBaseURL string `yaml:"openai_base_url"`

	StoreBackend          string `yaml:"store_backend"`
	SheetsSpreadsheetID   string `yaml:"sheets_spreadsheet_id"`
	SheetsSheetName       string `yaml:"sheets_sheet_name"`
	ServiceAccountFile    string `yaml:"gcp_service_account_file"`
	DatabaseURLConfigured bool   `yaml:"database_url_configured"`
	SQLitePath            string `yaml:"sqlite_path"`
	SQLTable              string `yaml:"sql_table"`

	Storage storage.StorageConfig `yaml:"-"`

	NATSURL     string `yaml:"nats_url"`
	NATSSubject string `yaml:"nats_subject"`

	AccessGate       bool          `yaml:"access_gate"`
	AnalyzePerMinute int           `yaml:"analyze_per_minute"`
	SessionTTL       time.Duration `yaml:"session_ttl"`
}

// LoadDotEnv loads .env from the working directory, then from the project
// root when run from cmd/<name>. Existing environment variables win.
func LoadDotEnv(logger *slog.Logger) {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			logger.Debug("no .env file found, using environment variables")
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("revision", string(models.RevisionCaseNumber))
	v.SetDefault("llm_provider", generation.ProviderGemini)
	v.SetDefault("gemini_model", generation.DefaultGeminiModel)
	v.SetDefault("openai_model", generation.DefaultOpenAIModel)
	v.SetDefault("store_backend", repository.BackendSheets)
	v.SetDefault("sqlite_path", "jurisnote.db")
	v.SetDefault("sql_table", repository.DefaultTable)
	v.SetDefault("storage_type", string(storage.StorageTypeLocal))
	v.SetDefault("storage_local_path", "./storage/exports")
	v.SetDefault("aws_region", "ap-northeast-2")
	v.SetDefault("analyze_per_minute", 10)
	v.SetDefault("session_ttl", "2h")
}

// keys lists every setting so AutomaticEnv lookups also work for keys that
// have no default and for Unmarshal-free reads.
var keys = []string{
	"port", "log_level", "log_format", "revision",
	"llm_provider", "gemini_api_key", "gemini_model", "openai_api_key", "openai_model", "openai_base_url",
	"store_backend", "sheets_spreadsheet_id", "sheets_sheet_name", "gcp_service_account_json", "gcp_service_account_file",
	"database_url", "sqlite_path", "sql_table",
	"storage_type", "storage_local_path", "aws_s3_bucket", "aws_region", "aws_s3_endpoint", "aws_access_key_id", "aws_secret_access_key",
	"nats_url", "nats_subject", "access_password_hash", "analyze_per_minute", "session_ttl",
}

// Load resolves configuration. configFile may be empty.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	rev, err := models.ParseRevision(v.GetString("revision"))
	if err != nil {
		return nil, err
	}

	backend := v.GetString("store_backend")
	switch backend {
	case repository.BackendSheets, repository.BackendPostgres, repository.BackendSQLite, repository.BackendMemory:
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}

	switch p := v.GetString("llm_provider"); p {
	case generation.ProviderGemini, generation.ProviderOpenAI:
	default:
		return nil, fmt.Errorf("unknown llm provider %q", p)
	}

	ttl := v.GetDuration("session_ttl")
	if ttl <= 0 {
		return nil, errors.New("session_ttl must be positive")
	}

	return &Config{
		v:                     v,
		Port:                  v.GetString("port"),
		LogLevel:              v.GetString("log_level"),
		LogFormat:             v.GetString("log_format"),
		Revision:              rev,
		LLMProvider:           v.GetString("llm_provider"),
		GeminiModel:           v.GetString("gemini_model"),
		OpenAIModel:           v.GetString("openai_model"),
		OpenAIBaseURL:         v.GetString("openai_base_url"),
		StoreBackend:          backend,
		SheetsSpreadsheetID:   v.GetString("sheets_spreadsheet_id"),
		SheetsSheetName:       v.GetString("sheets_sheet_name"),
		ServiceAccountFile:    v.GetString("gcp_service_account_file"),
		DatabaseURLConfigured: v.GetString("database_url") != "",
		SQLitePath:            v.GetString("sqlite_path"),
		SQLTable:              v.GetString("sql_table"),
		Storage: storage.StorageConfig{
			Type:         storage.StorageType(v.GetString("storage_type")),
			LocalPath:    v.GetString("storage_local_path"),
			S3Bucket:     v.GetString("aws_s3_bucket"),
			S3Region:     v.GetString("aws_region"),
			S3Endpoint:   v.GetString("aws_s3_endpoint"),
			AWSAccessKey: v.GetString("aws_access_key_id"),
			AWSSecretKey: v.GetString("aws_secret_access_key"),
		},
		NATSURL:          v.GetString("nats_url"),
		NATSSubject:      v.GetString("nats_subject"),
		AccessGate:       v.GetString("access_password_hash") != "",
		AnalyzePerMinute: v.GetInt("analyze_per_minute"),
		SessionTTL:       ttl,
	}, nil
}

// GeminiAPIKey reads the Gemini key at call time.
func (c *Config) GeminiAPIKey() string {
	return c.v.GetString("gemini_api_key")
}

// OpenAIAPIKey reads the OpenAI key at call time.
func (c *Config) OpenAIAPIKey() string {
	return c.v.GetString("openai_api_key")
}

// DatabaseURL returns the Postgres connection string.
func (c *Config) DatabaseURL() string {
	return c.v.GetString("database_url")
}

// AccessPasswordHash returns the bcrypt hash guarding the UI, or "".
func (c *Config) AccessPasswordHash() string {
	return c.v.GetString("access_password_hash")
}

// ServiceAccountJSON returns the service-account key, inline JSON first,
// then the key file.
func (c *Config) ServiceAccountJSON() ([]byte, error) {
	if raw := c.v.GetString("gcp_service_account_json"); raw != "" {
		return []byte(raw), nil
	}
	if c.ServiceAccountFile != "" {
		data, err := os.ReadFile(c.ServiceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	}
	return nil, errors.New("no service account configured")
}

// Generation returns the generator configuration with live key sources.
func (c *Config) Generation() generation.Config {
	return generation.Config{
		Provider:      c.LLMProvider,
		GeminiModel:   c.GeminiModel,
		GeminiKey:     c.GeminiAPIKey,
		OpenAIModel:   c.OpenAIModel,
		OpenAIBaseURL: c.OpenAIBaseURL,
		OpenAIKey:     c.OpenAIAPIKey,
	}
}

// ConfigFileUsed returns the config file path, if one was read.
func (c *Config) ConfigFileUsed() string {
	return c.v.ConfigFileUsed()
}

// Secrets reports which secrets are present without revealing them.
func (c *Config) Secrets() map[string]bool {
	return map[string]bool{
		"GEMINI_API_KEY":           c.GeminiAPIKey() != "",
		"OPENAI_API_KEY":           c.OpenAIAPIKey() != "",
		"GCP_SERVICE_ACCOUNT_JSON": c.v.GetString("gcp_service_account_json") != "",
		"DATABASE_URL":             c.DatabaseURLConfigured,
		"AWS_SECRET_ACCESS_KEY":    c.Storage.AWSSecretKey != "",
		"ACCESS_PASSWORD_HASH":     c.AccessGate,
	}
}
