package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Auth      AuthConfig
	Sheets    SheetsConfig
	RAG       RAGConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
}

// AuthConfig holds settings for portal-issued session tokens.
// The portal is its own identity provider: it signs HS256 JWTs with
// JWTSecret and embeds the account's sheet role.
type AuthConfig struct {
	JWTSecret       string
	TokenTTLMinutes int
}

// SheetsConfig identifies the Google Sheets workbooks acting as the
// datastore plus the service-account credentials used to reach them.
type SheetsConfig struct {
	// CredentialsFile is the path to the GCP service-account JSON key.
	// CredentialsJSON takes precedence when set (e.g. from a secret).
	CredentialsFile string
	CredentialsJSON string
	// UsersSpreadsheetID is the workbook with the User and Admin worksheets
	UsersSpreadsheetID string
	// EventsSpreadsheetID is the workbook with the Project_Demos_List worksheet
	EventsSpreadsheetID string
	// TemplateSpreadsheetID is the workbook copied for each new event
	TemplateSpreadsheetID string
	// ProjectCacheTTL is how long the cross-event project aggregation is
	// served from cache (seconds)
	ProjectCacheTTL int
	// ProjectRefreshCron is the cron expression for the background cache
	// refresh job (seconds field supported)
	ProjectRefreshCron string
	// AggregationConcurrency bounds how many event workbooks are read in
	// parallel during aggregation
	AggregationConcurrency int
}

// RAGConfig holds settings for the report question-answering pipeline.
type RAGConfig struct {
	// GeminiAPIKey authenticates both the embedding and chat models
	GeminiAPIKey   string
	EmbeddingModel string
	ChatModel      string
	// ChunkSize/ChunkOverlap control document splitting (characters)
	ChunkSize    int
	ChunkOverlap int
	// TopK is how many chunks are retrieved as context for the prompt
	TopK int
	// DocumentCacheTTL is how long an embedded document is reused (seconds)
	DocumentCacheTTL int
	// FetchTimeout bounds the report download (seconds)
	FetchTimeout int
}

type LoggingConfig struct {
	Level  string
	Format string
	// FilePath, when set, mirrors log output to a file. The admin log
	// endpoint reads from this file.
	FilePath string
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	ContentSecurityPolicy string
	FrameOptions          string
	ContentTypeNosniff    bool
	ReferrerPolicy        string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled bool
	// RequestsPerMinute is the default rate limit for unauthenticated requests (per IP)
	RequestsPerMinute int
	// RequestsPerMinuteAuth is the rate limit for authenticated requests (per user)
	RequestsPerMinuteAuth int
	// WhitelistPaths is a list of paths that bypass rate limiting (e.g., /health)
	WhitelistPaths []string
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// TokenTTL returns the session token lifetime as duration
func (a *AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// ProjectCacheTTLDuration returns the project cache TTL as duration
func (s *SheetsConfig) ProjectCacheTTLDuration() time.Duration {
	return time.Duration(s.ProjectCacheTTL) * time.Second
}

// DocumentCacheTTLDuration returns the embedded-document cache TTL as duration
func (r *RAGConfig) DocumentCacheTTLDuration() time.Duration {
	return time.Duration(r.DocumentCacheTTL) * time.Second
}

// FetchTimeoutDuration returns the report fetch timeout as duration
func (r *RAGConfig) FetchTimeoutDuration() time.Duration {
	return time.Duration(r.FetchTimeout) * time.Second
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read from config file
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Secrets come from the environment when not present in the file
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = v.GetString("JWT_SECRET")
	}
	if cfg.RAG.GeminiAPIKey == "" {
		cfg.RAG.GeminiAPIKey = v.GetString("GEMINI_API_KEY")
	}
	if cfg.Sheets.CredentialsJSON == "" {
		cfg.Sheets.CredentialsJSON = v.GetString("GCP_CREDENTIALS_JSON")
	}
	if cfg.Sheets.CredentialsFile == "" {
		cfg.Sheets.CredentialsFile = v.GetString("GCP_CREDENTIALS_FILE")
	}

	return &cfg, nil
}

// Validate checks the settings the application cannot start without.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwtsecret (or JWT_SECRET) is required")
	}
	if c.Sheets.UsersSpreadsheetID == "" {
		return fmt.Errorf("sheets.usersspreadsheetid is required")
	}
	if c.Sheets.EventsSpreadsheetID == "" {
		return fmt.Errorf("sheets.eventsspreadsheetid is required")
	}
	if c.Sheets.CredentialsFile == "" && c.Sheets.CredentialsJSON == "" {
		return fmt.Errorf("sheets credentials are required (file or JSON)")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "demotrack-api")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	// Server
	v.SetDefault("server.readtimeout", 15)
	v.SetDefault("server.writetimeout", 30)
	v.SetDefault("server.requesttimeout", 60)

	// Auth
	v.SetDefault("auth.tokenttlminutes", 720)

	// Sheets
	v.SetDefault("sheets.credentialsfile", "gcp_creds.json")
	v.SetDefault("sheets.projectcachettl", 600)
	v.SetDefault("sheets.projectrefreshcron", "0 */10 * * * *")
	v.SetDefault("sheets.aggregationconcurrency", 4)

	// RAG
	v.SetDefault("rag.embeddingmodel", "gemini-embedding-001")
	v.SetDefault("rag.chatmodel", "gemini-2.0-flash")
	v.SetDefault("rag.chunksize", 1000)
	v.SetDefault("rag.chunkoverlap", 200)
	v.SetDefault("rag.topk", 4)
	v.SetDefault("rag.documentcachettl", 600)
	v.SetDefault("rag.fetchtimeout", 30)

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.filepath", "")

	// CORS
	v.SetDefault("cors.allowedmethods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedheaders", []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.exposedheaders", []string{"X-Request-ID"})
	v.SetDefault("cors.allowcredentials", true)
	v.SetDefault("cors.maxage", 300)

	// Security
	v.SetDefault("security.enablehsts", false)
	v.SetDefault("security.hstsmaxage", 31536000)
	v.SetDefault("security.frameoptions", "DENY")
	v.SetDefault("security.contenttypenosniff", true)
	v.SetDefault("security.referrerpolicy", "strict-origin-when-cross-origin")

	// Rate limiting
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requestsperminute", 60)
	v.SetDefault("ratelimit.requestsperminuteauth", 300)
	v.SetDefault("ratelimit.whitelistpaths", []string{"/health", "/health/sheets", "/health/ready"})
}
