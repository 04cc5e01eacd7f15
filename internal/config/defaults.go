package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/edubridge/internal/common"
	"github.com/Veraticus/edubridge/internal/llm"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultDatabasePath is where the catalog lives when database.path is unset.
const DefaultDatabasePath = "~/.local/share/edubridge/edubridge.db"

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("database.dsn", "")

	v.SetDefault("llm.provider", llm.ProviderGemini)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 1024)
	v.SetDefault("llm.cache_ttl", 10*time.Minute)
	v.SetDefault("llm.rate_limit", 30)
	v.SetDefault("llm.timeout", 60*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Database describes which persister to open.
type Database struct {
	Driver string
	Path   string
	DSN    string
}

// LoadDatabase reads the database.* keys. A relative or ~ path is expanded;
// postgres requires a DSN.
func LoadDatabase(v *viper.Viper) (Database, error) {
	db := Database{
		Driver: strings.ToLower(strings.TrimSpace(v.GetString("database.driver"))),
		Path:   ExpandPath(v.GetString("database.path")),
		DSN:    v.GetString("database.dsn"),
	}

	switch db.Driver {
	case DriverSQLite, "":
		db.Driver = DriverSQLite
		if db.Path == "" {
			db.Path = ExpandPath(DefaultDatabasePath)
		}
		if db.Path != ":memory:" {
			abs, err := filepath.Abs(db.Path)
			if err != nil {
				return db, fmt.Errorf("failed to resolve database path: %w", err)
			}
			db.Path = abs
		}
	case DriverPostgres:
		if db.DSN == "" {
			return db, fmt.Errorf("%w: database.dsn is required for postgres", common.ErrMissingConfig)
		}
	default:
		return db, fmt.Errorf("%w: database driver %q", common.ErrInvalidConfig, db.Driver)
	}

	return db, nil
}

// apiKeyEnv lists the conventional variables consulted after llm.<provider>_api_key.
var apiKeyEnv = map[string][]string{
	llm.ProviderGemini:    {"GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY"},
	llm.ProviderOpenAI:    {"OPENAI_API_KEY"},
	llm.ProviderAnthropic: {"ANTHROPIC_API_KEY"},
}

// LoadLLM reads the llm.* keys into a client configuration. The API key comes
// from llm.<provider>_api_key, falling back to the provider's usual
// environment variable.
func LoadLLM(v *viper.Viper) (llm.Config, error) {
	provider := strings.ToLower(strings.TrimSpace(v.GetString("llm.provider")))
	if provider == "" {
		provider = llm.ProviderGemini
	}

	envs, ok := apiKeyEnv[provider]
	if !ok {
		return llm.Config{}, fmt.Errorf("%w: llm provider %q", common.ErrInvalidConfig, provider)
	}

	key := v.GetString("llm." + provider + "_api_key")
	for _, env := range envs {
		if key != "" {
			break
		}
		key = os.Getenv(env)
	}
	if key == "" {
		return llm.Config{}, fmt.Errorf("%w: no API key for %s (set llm.%s_api_key or %s)",
			common.ErrMissingConfig, provider, provider, envs[0])
	}

	return llm.Config{
		Provider:    provider,
		APIKey:      key,
		Model:       v.GetString("llm.model"),
		BaseURL:     v.GetString("llm.base_url"),
		Temperature: v.GetFloat64("llm.temperature"),
		MaxTokens:   v.GetInt("llm.max_tokens"),
		CacheTTL:    v.GetDuration("llm.cache_ttl"),
		RateLimit:   v.GetInt("llm.rate_limit"),
		Timeout:     v.GetDuration("llm.timeout"),
	}, nil
}
