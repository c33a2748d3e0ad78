package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port          string
	DBPath        string
	MaxFields     int
	MaxDirs       int
	MaxResults    int
	MaxHistory    int
	ThresholdCSV  string
	ThresholdXLSX string
	ReferenceURL  string
	LLMEndpoint   string
	LLMAPIKey     string
	LLMModel      string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	getInt := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				return n
			}
		}
		return def
	}
	cfg := AppConfig{
		Port:          get("PORT", "8080"),
		DBPath:        get("DB_PATH", "cropwatch.db"),
		MaxFields:     getInt("MAX_FIELDS", 50),
		MaxDirs:       getInt("MAX_DIRECTORIES", 20),
		MaxResults:    getInt("MAX_ANALYSIS_RESULTS", 100),
		MaxHistory:    getInt("MAX_ANALYSIS_HISTORY", 100),
		ThresholdCSV:  get("THRESHOLD_CSV", ""),
		ThresholdXLSX: get("THRESHOLD_XLSX", ""),
		ReferenceURL:  get("REFERENCE_URL", ""),
		LLMEndpoint:   get("LLM_ENDPOINT", ""),
		LLMAPIKey:     get("LLM_API_KEY", ""),
		LLMModel:      get("LLM_MODEL", "gpt-4o-mini"),
	}
	log.Printf("[cfg] port=%s db=%s max_fields=%d max_dirs=%d", cfg.Port, cfg.DBPath, cfg.MaxFields, cfg.MaxDirs)
	return cfg
}
