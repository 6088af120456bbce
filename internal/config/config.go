package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store backends
const (
	BackendFile  = "file"
	BackendNeo4j = "neo4j"
	BackendRedis = "redis"
)

// Keyword match modes
const (
	MatchAll = "all"
	MatchAny = "any"
)

// Config contains runtime settings for the console and MCP binaries
type Config struct {
	LogLevel string `yaml:"log_level"`
	Host     string `yaml:"host"` // default 0.0.0.0
	Port     string `yaml:"port"` // default PORT env or 8080

	HH struct {
		BaseURL        string  `yaml:"base_url"`
		Area           int     `yaml:"area"`
		PerPage        int     `yaml:"per_page"`
		OnlyWithSalary bool    `yaml:"only_with_salary"`
		UserAgent      string  `yaml:"user_agent"`
		RatePerSecond  float64 `yaml:"rate_per_sec"`
	} `yaml:"hh"`

	Store struct {
		Backend string `yaml:"backend"`
		Path    string `yaml:"path"`
		Dedup   string `yaml:"dedup"`
	} `yaml:"store"`

	KeywordMatch string `yaml:"keyword_match"`

	Neo4j struct {
		URI      string `yaml:"uri"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
	} `yaml:"neo4j"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Key      string `yaml:"key"`
	} `yaml:"redis"`

	Sheets struct {
		CredentialsPath string `yaml:"credentials_path"`
		SpreadsheetID   string `yaml:"spreadsheet_id"`
		Tab             string `yaml:"tab"`
	} `yaml:"sheets"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	var cfg Config
	cfg.LogLevel = "info"
	cfg.Host = "0.0.0.0"
	cfg.Port = "8080"

	cfg.HH.BaseURL = "https://api.hh.ru"
	cfg.HH.Area = 113
	cfg.HH.PerPage = 100
	cfg.HH.OnlyWithSalary = true
	cfg.HH.UserAgent = "hh-vacancies/0.1"
	cfg.HH.RatePerSecond = 5

	cfg.Store.Backend = BackendFile
	cfg.Store.Path = "data/vacancies.json"
	cfg.Store.Dedup = "id"
	cfg.KeywordMatch = MatchAll

	cfg.Redis.Key = "vacancies"
	cfg.Sheets.Tab = "Vacancies"
	return cfg
}

// Load populates config from defaults, the optional YAML file named by
// VACANCIES_CONFIG, a .env file in the working directory and the environment
func Load() (Config, error) {
	return load(".env")
}

func load(dotenvPath string) (Config, error) {
	// godotenv never overrides variables already present in the environment
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load %s: %w", dotenvPath, err)
	}

	cfg := Default()

	if path := os.Getenv("VACANCIES_CONFIG"); path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.validate()
}

// loadYAML overlays the file onto cfg; a missing file leaves cfg untouched
func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.Host, "MCP_HOST")
	setString(&cfg.Port, "PORT")

	setString(&cfg.HH.BaseURL, "HH_BASE_URL")
	setString(&cfg.HH.UserAgent, "HH_USER_AGENT")

	setString(&cfg.Store.Backend, "STORE_BACKEND")
	setString(&cfg.Store.Path, "STORE_PATH")
	setString(&cfg.Store.Dedup, "STORE_DEDUP")
	setString(&cfg.KeywordMatch, "KEYWORD_MATCH")

	setString(&cfg.Neo4j.URI, "NEO4J_URI")
	setString(&cfg.Neo4j.Username, "NEO4J_USERNAME")
	setString(&cfg.Neo4j.Password, "NEO4J_PASSWORD")
	setString(&cfg.Neo4j.Database, "NEO4J_DATABASE")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Redis.Key, "REDIS_KEY")

	setString(&cfg.Sheets.CredentialsPath, "SHEETS_CREDENTIALS_PATH")
	setString(&cfg.Sheets.SpreadsheetID, "SHEETS_SPREADSHEET_ID")
	setString(&cfg.Sheets.Tab, "SHEETS_TAB")

	var errs []error
	errs = append(errs,
		setInt(&cfg.HH.Area, "HH_AREA"),
		setInt(&cfg.HH.PerPage, "HH_PER_PAGE"),
		setBool(&cfg.HH.OnlyWithSalary, "HH_ONLY_WITH_SALARY"),
		setFloat(&cfg.HH.RatePerSecond, "HH_RATE_PER_SEC"),
		setInt(&cfg.Redis.DB, "REDIS_DB"),
	)
	return errors.Join(errs...)
}

func (c Config) validate() error {
	var problems []string

	switch c.Store.Backend {
	case BackendFile:
		if c.Store.Path == "" {
			problems = append(problems, "STORE_PATH must not be empty")
		}
	case BackendNeo4j, BackendRedis:
	default:
		problems = append(problems, fmt.Sprintf("STORE_BACKEND %q is not one of file, neo4j, redis", c.Store.Backend))
	}

	switch c.KeywordMatch {
	case MatchAll, MatchAny:
	default:
		problems = append(problems, fmt.Sprintf("KEYWORD_MATCH %q is not one of all, any", c.KeywordMatch))
	}

	if c.HH.PerPage <= 0 {
		problems = append(problems, "HH_PER_PAGE must be positive")
	}

	var missingVars []string

	if c.Store.Backend == BackendNeo4j {
		if c.Neo4j.URI == "" {
			missingVars = append(missingVars, "NEO4J_URI")
		}
		if c.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}
		if c.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}
	}

	if c.Store.Backend == BackendRedis && c.Redis.Addr == "" {
		missingVars = append(missingVars, "REDIS_ADDR")
	}

	if c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsPath == "" {
		missingVars = append(missingVars, "SHEETS_CREDENTIALS_PATH")
	}

	if len(missingVars) > 0 {
		problems = append(problems, "missing required environment variables: "+strings.Join(missingVars, ", "))
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// MatchAny reports whether keywords are matched disjunctively
func (c Config) MatchAny() bool {
	return c.KeywordMatch == MatchAny
}

// SheetsEnabled reports whether ranked results are exported to Google Sheets
func (c Config) SheetsEnabled() bool {
	return c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsPath != ""
}

// Addr is the MCP listen address
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("config: %s must be a boolean: %w", key, err)
	}
	*dst = b
	return nil
}

func setFloat(dst *float64, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fmt.Errorf("config: %s must be a number: %w", key, err)
	}
	*dst = f
	return nil
}
