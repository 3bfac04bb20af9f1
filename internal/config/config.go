package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	LLM        LLMConfig
	Extraction ExtractionConfig
	Classifier ClassifierConfig
	Worker     WorkerConfig
	Redis      RedisConfig
	Qdrant     QdrantConfig
	CORS       CORSConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SQLitePath string
}

type LLMConfig struct {
	Provider        string
	OpenAIAPIKey    string
	GeminiAPIKey    string
	Model           string
	BaseURL         string
	MaxOutputTokens int
	Timeout         time.Duration
}

type ExtractionConfig struct {
	MaxFileSize   int64
	MinTextLength int
	OCRDPI        int
	OCRLang       string
	Pdftoppm      string
	Tesseract     string
	TempDir       string
}

type ClassifierConfig struct {
	ChunkSize        int
	ChunkConcurrency int
}

type WorkerConfig struct {
	Concurrency   int
	ImportTimeout time.Duration
}

type RedisConfig struct {
	URL string
	TTL time.Duration
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type CORSConfig struct {
	AllowOrigins string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI))

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", "postgres"),
			DBName:     getEnv("DB_NAME", "skillmap"),
			SQLitePath: getEnv("SQLITE_PATH", "./skillmap.db"),
		},
		LLM: LLMConfig{
			Provider:        provider,
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
			GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
			Model:           getEnv("LLM_MODEL", getEnv("OPENAI_MODEL", defaultModel(provider))),
			BaseURL:         getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			MaxOutputTokens: getEnvAsInt("LLM_MAX_OUTPUT_TOKENS", 800),
			Timeout:         getEnvAsDuration("LLM_TIMEOUT", "60s"),
		},
		Extraction: ExtractionConfig{
			MaxFileSize:   getEnvAsInt64("MAX_FILE_SIZE", 10485760),
			MinTextLength: getEnvAsInt("MIN_TEXT_LENGTH", 100),
			OCRDPI:        getEnvAsInt("OCR_DPI", 300),
			OCRLang:       getEnv("OCR_LANG", "eng"),
			Pdftoppm:      getEnv("PDFTOPPM_PATH", "pdftoppm"),
			Tesseract:     getEnv("TESSERACT_PATH", "tesseract"),
			TempDir:       getEnv("UPLOAD_TEMP_DIR", os.TempDir()),
		},
		Classifier: ClassifierConfig{
			ChunkSize:        getEnvAsInt("CHUNK_SIZE", 3000),
			ChunkConcurrency: getEnvAsInt("CHUNK_CONCURRENCY", 1),
		},
		Worker: WorkerConfig{
			Concurrency:   getEnvAsInt("WORKER_CONCURRENCY", 3),
			ImportTimeout: getEnvAsDuration("IMPORT_TIMEOUT", "2m"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
			TTL: getEnvAsDuration("CLASSIFICATION_CACHE_TTL", "24h"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", ""),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "portfolio_chunks"),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000"),
		},
	}
}

// Validate reports configuration that must stop the process at startup.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY not found in environment variables")
		}
	case ProviderGemini:
		if c.LLM.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY not found in environment variables")
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLM.Provider)
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if c.Extraction.MaxFileSize <= 0 {
		return errors.New("MAX_FILE_SIZE must be positive")
	}
	if c.Classifier.ChunkSize <= 0 {
		return errors.New("CHUNK_SIZE must be positive")
	}

	return nil
}

// IndexEnabled reports whether imported portfolios are embedded into Qdrant.
// Embeddings come from Gemini, so a Gemini key is needed whatever the
// completion provider is.
func (c *Config) IndexEnabled() bool {
	return c.Qdrant.URL != "" && c.LLM.GeminiAPIKey != ""
}

func (c *Config) GetDatabaseDSN() string {
	if c.Database.Driver == DriverSQLite {
		return c.Database.SQLitePath
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func defaultModel(provider string) string {
	if provider == ProviderGemini {
		return "gemini-2.5-flash"
	}
	return "gpt-4o-mini"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
