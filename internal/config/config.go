package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	AppName    = "Alpine Translate"
	AppVersion = "1.0.0"
)

// Store backends.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreSupabase = "supabase"
)

type Config struct {
	Addr      string
	LogLevel  string
	LogFormat string
	Locale    string
	StaticDir string
	NodeID    int64
	HTTPProxy string

	AIProvider        string
	AIAPIKey          string
	AIModel           string
	AIBaseURL         string
	AIRateLimit       int
	AIThinking        bool
	AIReasoningEffort string
	AIThinkingBudget  int

	Store       string
	DataDir     string
	DBPath      string
	DatabaseURL string
	SupabaseURL string
	SupabaseKey string
}

var (
	ErrMissingAPIKey   = errors.New("config: ALPINE_AI_API_KEY (or GEMINI_API_KEY) is required")
	ErrUnknownStore    = errors.New("config: unknown ALPINE_STORE")
	ErrSupabaseCreds   = errors.New("config: SUPABASE_URL and SUPABASE_KEY are required for the supabase store")
	ErrMissingDatabase = errors.New("config: DATABASE_URL is required for the postgres store")
)

// Load reads the environment, optionally seeded from a .env file in the
// working directory, and validates the result.
func Load() (Config, error) {
	// .env is optional; real environment variables always win.
	_ = godotenv.Load()

	addr := os.Getenv("ALPINE_ADDR")
	if addr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "4000"
		}
		addr = ":" + port
	}

	dataDir := envOr("ALPINE_DATA_DIR", "./data")
	dbPath := os.Getenv("ALPINE_DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "alpine.db")
	}
	staticDir := os.Getenv("ALPINE_STATIC_DIR")
	if staticDir == "" {
		staticDir = detectStaticDir()
	}

	apiKey := os.Getenv("ALPINE_AI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	rateLimit, err := envInt("ALPINE_AI_RATE_LIMIT", 10)
	if err != nil {
		return Config{}, err
	}
	nodeID, err := envInt("ALPINE_NODE_ID", 1)
	if err != nil {
		return Config{}, err
	}
	thinking, err := envBool("ALPINE_AI_THINKING", false)
	if err != nil {
		return Config{}, err
	}
	thinkingBudget, err := envInt("ALPINE_AI_THINKING_BUDGET", 0)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:              addr,
		LogLevel:          envOr("ALPINE_LOG_LEVEL", "info"),
		LogFormat:         envOr("ALPINE_LOG_FORMAT", "text"),
		Locale:            envOr("ALPINE_LOCALE", "es"),
		StaticDir:         filepath.Clean(staticDir),
		NodeID:            int64(nodeID),
		HTTPProxy:         os.Getenv("ALPINE_HTTP_PROXY"),
		AIProvider:        strings.ToLower(envOr("ALPINE_AI_PROVIDER", "gemini")),
		AIAPIKey:          apiKey,
		AIModel:           os.Getenv("ALPINE_AI_MODEL"),
		AIBaseURL:         os.Getenv("ALPINE_AI_BASE_URL"),
		AIRateLimit:       rateLimit,
		AIThinking:        thinking,
		AIReasoningEffort: strings.ToLower(os.Getenv("ALPINE_AI_REASONING_EFFORT")),
		AIThinkingBudget:  thinkingBudget,
		Store:             strings.ToLower(os.Getenv("ALPINE_STORE")),
		DataDir:           filepath.Clean(dataDir),
		DBPath:            filepath.Clean(dbPath),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		SupabaseURL:       strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseKey:       os.Getenv("SUPABASE_KEY"),
	}
	if cfg.Store == "" {
		cfg.Store = inferStore(cfg)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.AIAPIKey) == "" {
		return ErrMissingAPIKey
	}
	switch c.Store {
	case StoreSQLite:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return ErrMissingDatabase
		}
	case StoreSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return ErrSupabaseCreds
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStore, c.Store)
	}
	return nil
}

// inferStore picks the hosted store whose credentials are present, falling
// back to the local sqlite file.
func inferStore(c Config) string {
	switch {
	case c.SupabaseURL != "" && c.SupabaseKey != "":
		return StoreSupabase
	case c.DatabaseURL != "":
		return StorePostgres
	default:
		return StoreSQLite
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s has invalid integer %q: %w", key, v, err)
	}
	return n, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s has invalid boolean %q: %w", key, v, err)
	}
	return b, nil
}

func detectStaticDir() string {
	candidates := []string{
		"./frontend/dist",
		"../frontend/dist",
	}
	for _, candidate := range candidates {
		indexPath := filepath.Join(candidate, "index.html")
		if info, err := os.Stat(indexPath); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return "./frontend/dist"
}
