package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// LLM backend selection
	LLMBackend string // "deepseek" or "gemini"

	// DeepSeek
	DeepSeekAPIKey string
	DeepSeekAPIURL string
	DeepSeekModel  string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Streaming responses from the chat backend
	LLMStream bool

	// Remote paragraph classification
	OracleEnabled bool

	// Classification thresholds
	H1BoldSizePt   float64
	H2BoldSizePt   float64
	H3BoldSizePt   float64
	TitleMinSizePt float64

	// Analysis context windows and pacing
	ContextBefore int
	ContextAfter  int
	AnalyzeDelay  time.Duration

	// Optional override for the built-in format rules
	FormatRulesFile string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("GWCHECK_API_KEY"),

		LLMBackend: envOr("LLM_BACKEND", "deepseek"),

		DeepSeekAPIKey: os.Getenv("DEEPSEEK_API_KEY"),
		DeepSeekAPIURL: envOr("DEEPSEEK_API_URL", "https://api.deepseek.com/v1/chat/completions"),
		DeepSeekModel:  envOr("DEEPSEEK_MODEL", "deepseek-chat"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", "gemini-2.0-flash"),

		LLMStream: envBool("LLM_STREAM", false),

		OracleEnabled: envBool("ORACLE_ENABLED", false),

		H1BoldSizePt:   envFloat("H1_BOLD_SIZE_PT", 16),
		H2BoldSizePt:   envFloat("H2_BOLD_SIZE_PT", 14),
		H3BoldSizePt:   envFloat("H3_BOLD_SIZE_PT", 12),
		TitleMinSizePt: envFloat("TITLE_MIN_SIZE_PT", 16),

		ContextBefore: envInt("CONTEXT_BEFORE", 3),
		ContextAfter:  envInt("CONTEXT_AFTER", 2),
		AnalyzeDelay:  envDuration("ANALYZE_DELAY", 1*time.Second),

		FormatRulesFile: os.Getenv("FORMAT_RULES_FILE"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.ContextBefore < 0 {
		cfg.ContextBefore = 3
	}
	if cfg.ContextAfter < 0 {
		cfg.ContextAfter = 2
	}
	if cfg.AnalyzeDelay < 0 {
		cfg.AnalyzeDelay = 1 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("GWCHECK_API_KEY is required")
	}
	switch c.LLMBackend {
	case "deepseek":
		if c.DeepSeekAPIKey == "" {
			return fmt.Errorf("DEEPSEEK_API_KEY is required when LLM_BACKEND=deepseek")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when LLM_BACKEND=gemini")
		}
	default:
		return fmt.Errorf("unknown LLM_BACKEND %q (want deepseek or gemini)", c.LLMBackend)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
