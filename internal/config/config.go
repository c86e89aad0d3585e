package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by ELEVIX_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("ELEVIX_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

func GroqAPIKey() string {
	return os.Getenv("GROQ_API_KEY")
}

func GeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

// OllamaBaseURL returns the base URL of a local Ollama server.
func OllamaBaseURL() string {
	u := os.Getenv("OLLAMA_BASE_URL")
	if u == "" {
		return "http://localhost:11434"
	}
	return u
}

// LLMProvider returns the configured LLM provider.
// Defaults to "groq" if not set.
// Valid values: groq, gemini, ollama, mock
func LLMProvider() string {
	p := os.Getenv("LLM_PROVIDER")
	if p == "" {
		return "groq"
	}
	return p
}

// LLMAPIKey returns the API key for the configured LLM provider.
func LLMAPIKey() string {
	switch LLMProvider() {
	case "gemini":
		return GeminiAPIKey()
	case "ollama", "mock":
		return ""
	default:
		return GroqAPIKey()
	}
}

// EmbeddingProvider returns the configured embedding provider.
// Defaults to "openai" if not set.
// Valid values: openai, mock
func EmbeddingProvider() string {
	p := os.Getenv("EMBEDDING_PROVIDER")
	if p == "" {
		return "openai"
	}
	return p
}

// EmbeddingAPIKey returns the API key for the configured embedding provider.
func EmbeddingAPIKey() string {
	switch EmbeddingProvider() {
	case "mock":
		return ""
	default:
		return OpenAIAPIKey()
	}
}

// IntentThreshold is the minimum classifier confidence before a turn is
// routed; anything below it asks for clarification instead. Tuning
// parameter, not a contract.
func IntentThreshold() float64 {
	t, err := strconv.ParseFloat(os.Getenv("INTENT_THRESHOLD"), 64)
	if err != nil || t <= 0 || t >= 1 {
		return 0.55
	}
	return t
}

// HistoryWindow returns how many recent turns the classifier and retrieval
// capability see. Defaults to 5.
func HistoryWindow() int {
	k, err := strconv.Atoi(os.Getenv("HISTORY_WINDOW"))
	if err != nil || k <= 0 {
		return 5
	}
	return k
}

// RetrievalTopK returns how many passages a retrieval query pulls from the
// vector index. Defaults to 5.
func RetrievalTopK() int {
	k, err := strconv.Atoi(os.Getenv("RETRIEVAL_TOP_K"))
	if err != nil || k <= 0 {
		return 5
	}
	return k
}

// SearchBaseURL returns the DuckDuckGo HTML endpoint base URL.
// Overridable for testing against a local stub.
func SearchBaseURL() string {
	u := os.Getenv("SEARCH_BASE_URL")
	if u == "" {
		return "https://html.duckduckgo.com"
	}
	return u
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}
