package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Redis      RedisConfig
	Logger     LoggerConfig
	OCR        OCRConfig
	Preprocess PreprocessConfig
	Quiz       QuizConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

// DBConfig holds the Oracle connection settings. Driver selects between the
// pure Go driver ("oracle") and the OCI based one ("godror").
type DBConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Address     string
	Password    string
	DB          int
	OCRCacheTTL time.Duration
}

type LoggerConfig struct {
	Env   string
	Level string
}

// OCRConfig selects the text recognition engine. Engine is one of
// "tesseract", "ollama" or "openai".
type OCRConfig struct {
	Engine    string
	Languages []string
	LLMServer string
	Model     string
	APIKey    string
	Timeout   time.Duration
}

type PreprocessConfig struct {
	BilateralDiameter int
	SigmaColor        float64
	SigmaSpace        float64
	BlockSize         int
	ThresholdC        float64
	ThresholdMethod   string
	KernelSize        int
}

type QuizConfig struct {
	MaxSentences     int
	MinSentenceWords int
	MinKeywordLength int
	DefaultQuestions int
	MaxQuestions     int
	MaxAttempts      int
	BlankMarker      string
	ResultTextLimit  int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.body_limit", 16*1024*1024)

	v.SetDefault("db.driver", "oracle")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 1521)
	v.SetDefault("db.user", "system")
	v.SetDefault("db.password", "oracle")
	v.SetDefault("db.name", "FREEPDB1")

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ocr_cache_ttl", 3600)

	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.level", "info")

	v.SetDefault("ocr.engine", "tesseract")
	v.SetDefault("ocr.languages", []string{"eng"})
	v.SetDefault("ocr.llm_server", "http://localhost:11434")
	v.SetDefault("ocr.model", "llava")
	v.SetDefault("ocr.api_key", "")
	v.SetDefault("ocr.timeout", 60)

	v.SetDefault("preprocess.bilateral_diameter", 9)
	v.SetDefault("preprocess.sigma_color", 75.0)
	v.SetDefault("preprocess.sigma_space", 75.0)
	v.SetDefault("preprocess.block_size", 11)
	v.SetDefault("preprocess.threshold_c", 2.0)
	v.SetDefault("preprocess.threshold_method", "mean")
	v.SetDefault("preprocess.kernel_size", 3)

	v.SetDefault("quiz.max_sentences", 20)
	v.SetDefault("quiz.min_sentence_words", 5)
	v.SetDefault("quiz.min_keyword_length", 3)
	v.SetDefault("quiz.default_questions", 5)
	v.SetDefault("quiz.max_questions", 50)
	v.SetDefault("quiz.max_attempts", 30)
	v.SetDefault("quiz.blank_marker", "_______")
	v.SetDefault("quiz.result_text_limit", 500)
}

// LoadConfig reads config.yaml when present and overlays APP_ prefixed
// environment variables, e.g. APP_DB_HOST or APP_OCR_ENGINE.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		DB: DBConfig{
			Driver:   v.GetString("db.driver"),
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
		},
		Redis: RedisConfig{
			Address:     v.GetString("redis.address"),
			Password:    v.GetString("redis.password"),
			DB:          v.GetInt("redis.db"),
			OCRCacheTTL: time.Duration(v.GetInt("redis.ocr_cache_ttl")) * time.Second,
		},
		Logger: LoggerConfig{
			Env:   v.GetString("logger.env"),
			Level: v.GetString("logger.level"),
		},
		OCR: OCRConfig{
			Engine:    strings.ToLower(v.GetString("ocr.engine")),
			Languages: v.GetStringSlice("ocr.languages"),
			LLMServer: v.GetString("ocr.llm_server"),
			Model:     v.GetString("ocr.model"),
			APIKey:    v.GetString("ocr.api_key"),
			Timeout:   time.Duration(v.GetInt("ocr.timeout")) * time.Second,
		},
		Preprocess: PreprocessConfig{
			BilateralDiameter: v.GetInt("preprocess.bilateral_diameter"),
			SigmaColor:        v.GetFloat64("preprocess.sigma_color"),
			SigmaSpace:        v.GetFloat64("preprocess.sigma_space"),
			BlockSize:         v.GetInt("preprocess.block_size"),
			ThresholdC:        v.GetFloat64("preprocess.threshold_c"),
			ThresholdMethod:   v.GetString("preprocess.threshold_method"),
			KernelSize:        v.GetInt("preprocess.kernel_size"),
		},
		Quiz: QuizConfig{
			MaxSentences:     v.GetInt("quiz.max_sentences"),
			MinSentenceWords: v.GetInt("quiz.min_sentence_words"),
			MinKeywordLength: v.GetInt("quiz.min_keyword_length"),
			DefaultQuestions: v.GetInt("quiz.default_questions"),
			MaxQuestions:     v.GetInt("quiz.max_questions"),
			MaxAttempts:      v.GetInt("quiz.max_attempts"),
			BlankMarker:      v.GetString("quiz.blank_marker"),
			ResultTextLimit:  v.GetInt("quiz.result_text_limit"),
		},
	}
}

// Validate checks the settings that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "oracle", "godror":
	default:
		return fmt.Errorf("unsupported db driver %q", c.DB.Driver)
	}
	switch c.OCR.Engine {
	case "tesseract", "ollama", "openai":
	default:
		return fmt.Errorf("unsupported ocr engine %q", c.OCR.Engine)
	}
	if c.Quiz.DefaultQuestions < 1 || c.Quiz.DefaultQuestions > c.Quiz.MaxQuestions {
		return fmt.Errorf("quiz.default_questions must be between 1 and %d", c.Quiz.MaxQuestions)
	}
	return nil
}

// GetDSN returns the connection string for the configured driver.
func (c *Config) GetDSN() string {
	if c.DB.Driver == "godror" {
		// godror uses the easy connect syntax: user/password@host:port/service
		return fmt.Sprintf(`user="%s" password="%s" connectString="%s:%d/%s"`,
			c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.DBName)
	}
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
	)
}
