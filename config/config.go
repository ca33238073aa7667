package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LLMProvider names the completion backend
type LLMProvider string

const (
	LLMProviderOpenAI LLMProvider = "openai"
	LLMProviderGemini LLMProvider = "gemini"
)

const (
	BotName = "Практика.Суд"
	AppLink = "https://onelink.to/rsv8c3"
)

// WelcomeMessage is shown on the first contact with the bot
const WelcomeMessage = "Здравствуйте! Наш бесплатный бот найдет всю судебную практику по вашему спору, " +
	"подготовит апелляционную (кассационную) жалобу на решение суда, напишет отзыв на иск, " +
	"проверит документ на ошибки.\n\n" +
	"Для продолжения нажмите кнопку Start."

// AboutMessage is shown after the user starts the bot
const AboutMessage = "Уважаемый пользователь, благодарим Вас за пользование нашим ботом.\n\n" +
	"Попробуйте также наше мобильное приложение «Календарь Юриста»: " + AppLink + "\n\n" +
	"Контроль всех дел, сроков и заседаний — теперь прямо в телефоне:\n" +
	"✅ Напоминания о сроках\n" +
	"✅ Учёт дел, клиентов и задач\n" +
	"✅ Доступ к судебной информации\n" +
	"✅ Удобный интерфейс\n" +
	"✅ Работает на смартфоне и компьютере\n\n" +
	"Выберите нужную функцию:"

var defaultAdminIDs = []int64{1914567632, 892033994}

// Config is the immutable process configuration built once at startup
type Config struct {
	Port string

	LLMProvider  LLMProvider
	OpenAIAPIKey string
	OpenAIModel  string
	GeminiAPIKey string
	GeminiModel  string

	PerplexityAPIKey  string
	PerplexityBaseURL string

	DBDriver    string
	DatabaseURL string

	StorageType      string
	StorageLocalPath string
	S3Bucket         string
	S3Region         string
	AWSAccessKey     string
	AWSSecretKey     string

	MaxFileSizeMB int
	TTSVoice      string

	LogLevel string
	LogJSON  bool

	AdminKeyHash string
	adminIDs     map[int64]struct{}
}

// Load reads .env (if present) and the environment into a Config
func Load() (*Config, []string) {
	var warnings []string
	// Try current directory first, then project root relative to cmd/<name>/
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			warnings = append(warnings, "no .env file found, using environment variables")
		}
	}

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		LLMProvider:       LLMProvider(strings.ToLower(getEnv("LLM_PROVIDER", string(LLMProviderOpenAI)))),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		PerplexityAPIKey:  os.Getenv("PERPLEXITY_API_KEY"),
		PerplexityBaseURL: getEnv("PERPLEXITY_BASE_URL", "https://api.perplexity.ai"),
		DBDriver:          getEnv("DB_DRIVER", "sqlite"),
		DatabaseURL:       getEnv("DATABASE_URL", "bot_database.db"),
		StorageType:       getEnv("STORAGE_TYPE", "local"),
		StorageLocalPath:  getEnv("STORAGE_LOCAL_PATH", "./storage/files"),
		S3Bucket:          os.Getenv("AWS_S3_BUCKET"),
		S3Region:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKey:      os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:      os.Getenv("AWS_SECRET_ACCESS_KEY"),
		MaxFileSizeMB:     10,
		TTSVoice:          getEnv("TTS_VOICE", "alloy"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		AdminKeyHash:      os.Getenv("ADMIN_KEY_HASH"),
	}

	if v := os.Getenv("MAX_FILE_SIZE_MB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			warnings = append(warnings, fmt.Sprintf("invalid MAX_FILE_SIZE_MB %q, using %d", v, cfg.MaxFileSizeMB))
		} else {
			cfg.MaxFileSizeMB = n
		}
	}
	if v := os.Getenv("LOG_JSON"); v != "" {
		cfg.LogJSON, _ = strconv.ParseBool(v)
	}

	ids, err := parseAdminIDs(getEnv("ADMIN_IDS", ""))
	if err != nil {
		warnings = append(warnings, err.Error())
	}
	cfg.adminIDs = ids

	return cfg, warnings
}

// Validate checks that the selected completion provider has credentials
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case LLMProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY environment variable is required")
		}
	case LLMProviderGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY environment variable is required when LLM_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER: %s", c.LLMProvider)
	}
	return nil
}

// MaxFileSize returns the upload limit in bytes
func (c *Config) MaxFileSize() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}

// IsAdmin reports whether userID is in the static admin allow-list
func (c *Config) IsAdmin(userID int64) bool {
	_, ok := c.adminIDs[userID]
	return ok
}

// AdminIDs returns a copy of the admin allow-list
func (c *Config) AdminIDs() []int64 {
	ids := make([]int64, 0, len(c.adminIDs))
	for id := range c.adminIDs {
		ids = append(ids, id)
	}
	return ids
}

// WithAdminIDs returns a copy of the config with a different allow-list
func (c *Config) WithAdminIDs(ids ...int64) *Config {
	cp := *c
	cp.adminIDs = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		cp.adminIDs[id] = struct{}{}
	}
	return &cp
}

func parseAdminIDs(raw string) (map[int64]struct{}, error) {
	ids := make(map[int64]struct{})
	if strings.TrimSpace(raw) == "" {
		for _, id := range defaultAdminIDs {
			ids[id] = struct{}{}
		}
		return ids, nil
	}
	var bad []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			bad = append(bad, part)
			continue
		}
		ids[id] = struct{}{}
	}
	if len(bad) > 0 {
		return ids, fmt.Errorf("ignored invalid ADMIN_IDS entries: %s", strings.Join(bad, ", "))
	}
	return ids, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
