package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Keys    APIKeys
	Ai      AIConfig
	Session SessionConfig
	Tracing TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string // empty disables the audit publisher
	BodyLimit          int
}

// APIKeys are the environment defaults copied into every new session.
type APIKeys struct {
	Gemini    string
	OpenAI    string
	Anthropic string
}

type AIConfig struct {
	DefaultProvider string

	GeminiModel    string
	GeminiBaseURL  string
	OpenAIModel    string
	OpenAIBaseURL  string
	AnthropicModel string
	AnthropicURL   string

	Temperature        float64
	AnthropicMaxTokens int
	HTTPTimeout        time.Duration // 0 means no client timeout

	TokenizerModel string
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/co-brain.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			BodyLimit:          getEnvAsInt("BODY_LIMIT_BYTES", 10*1024*1024),
		},
		Keys: APIKeys{
			Gemini:    getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
			OpenAI:    getEnv("OPENAI_API_KEY", ""),
			Anthropic: getEnv("ANTHROPIC_API_KEY", ""),
		},
		Ai: AIConfig{
			DefaultProvider:    getEnv("LLM_PROVIDER", "gemini"),
			GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			GeminiBaseURL:      getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o"),
			OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			AnthropicModel:     getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
			AnthropicURL:       getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
			Temperature:        getEnvAsFloat("LLM_TEMPERATURE", 0.3),
			AnthropicMaxTokens: getEnvAsInt("ANTHROPIC_MAX_TOKENS", 1024),
			HTTPTimeout:        getEnvAsDuration("LLM_HTTP_TIMEOUT", 0),
			TokenizerModel:     getEnv("TOKENIZER_MODEL", "gpt-4o"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "co-brain-dev-secret"),
			TTL:    getEnvAsDuration("SESSION_TTL", time.Hour),
		},
		Tracing: TracingConfig{
			Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "co-brain-backend"),
		},
	}
}

// getEnv treats an empty value as unset so that GEMINI_API_KEY= still falls
// back to API_KEY.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
