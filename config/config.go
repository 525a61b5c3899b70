package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// MongoDB configuration
	MongoURI     string
	DatabaseName string

	// Gemini configuration
	GeminiAPIKey string
	GeminiModels []string
	AllowGemini  bool

	// Knowledge source configuration
	KnowledgeURL    string
	KnowledgeAPIKey string
	KnowledgeTTL    time.Duration

	// Chat behavior
	PrimaryLanguage string
	KeywordFile     string

	// Admin access
	AdminKeyHash string

	// Server configuration
	Port string
}

func LoadConfig() *Config {
	cfg := &Config{
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName:    getEnv("MONGO_DB_NAME", "novalink_bot"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModels:    splitList(getEnv("GEMINI_MODELS", "gemini-2.0-flash,gemini-1.5-flash")),
		AllowGemini:     getEnvBool("ALLOW_GEMINI", true),
		KnowledgeURL:    getEnv("KNOWLEDGE_URL", ""),
		KnowledgeAPIKey: getEnv("KNOWLEDGE_API_KEY", ""),
		KnowledgeTTL:    getEnvDuration("KNOWLEDGE_TTL", 5*time.Minute),
		PrimaryLanguage: getEnv("PRIMARY_LANGUAGE", "ar"),
		KeywordFile:     getEnv("KEYWORD_FILE", ""),
		AdminKeyHash:    getEnv("ADMIN_KEY_HASH", ""),
		Port:            getEnv("PORT", "8080"),
	}

	if cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY not set, generative replies disabled")
	}
	if cfg.KnowledgeURL == "" {
		slog.Warn("KNOWLEDGE_URL not set, knowledge matching runs on an empty list")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("Invalid boolean in environment", "key", key, "value", value)
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("Invalid duration in environment", "key", key, "value", value)
		return defaultValue
	}
	return parsed
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
