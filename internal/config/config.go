package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/guillermoBallester/cyphercheck/internal/core/domain"
)

const (
	DefaultDatabase = "neo4j"
	DefaultQueryDir = "packages/neo4j-agent-memory/src/cypher"
)

// Report formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

type Config struct {
	// Database connection.
	URI      string
	User     string
	Password string
	Database string

	// Query templates.
	QueryDir   string
	ParamsFile string // optional YAML fixture overrides

	// Strictness toggles.
	StrictProperties       bool
	CheckMultiLabeledNodes bool

	// Logging.
	LogLevel  slog.Level
	LogFormat string

	// Observability.
	OTelEnabled bool

	// CLI-only fields (not settable via env vars).
	Format   string
	AuditLog string // path to NDJSON audit log file
}

// Overrides holds CLI flag values that override environment variables.
// Pointer fields distinguish "not set" from zero values.
type Overrides struct {
	URI                    *string
	User                   *string
	Password               *string
	Database               *string
	QueryDir               *string
	ParamsFile             *string
	StrictProperties       *bool
	CheckMultiLabeledNodes *bool
	LogLevel               *string
	LogFormat              *string
	OTelEnabled            bool
	Format                 string
	AuditLog               string
}

// Load builds a Config from environment variables, then applies CLI overrides,
// then validates the result.
func Load(overrides Overrides) (*Config, error) {
	cfg := defaults()

	if err := loadEnvVars(cfg); err != nil {
		return nil, err
	}
	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Database:  DefaultDatabase,
		QueryDir:  DefaultQueryDir,
		LogLevel:  slog.LevelInfo,
		LogFormat: LogFormatText,
		Format:    FormatConsole,
	}
}

func loadEnvVars(cfg *Config) error {
	cfg.URI = os.Getenv("NEO4J_URI")
	cfg.User = os.Getenv("NEO4J_USER")
	cfg.Password = os.Getenv("NEO4J_PASSWORD")

	if v := os.Getenv("NEO4J_DATABASE"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("CYPHER_DIR"); v != "" {
		cfg.QueryDir = v
	}
	cfg.ParamsFile = os.Getenv("PARAMS_FILE")

	cfg.StrictProperties = truthy(os.Getenv("CYVER_STRICT_PROPERTIES"))
	cfg.CheckMultiLabeledNodes = truthy(os.Getenv("CYVER_CHECK_MULTILABELED_NODES"))

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(v))
	}

	if v := os.Getenv("OTEL_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: invalid OTEL_ENABLED value %q: %w", domain.ErrConfiguration, v, err)
		}
		cfg.OTelEnabled = b
	}

	return nil
}

func applyOverrides(cfg *Config, o Overrides) error {
	if o.URI != nil {
		cfg.URI = *o.URI
	}
	if o.User != nil {
		cfg.User = *o.User
	}
	if o.Password != nil {
		cfg.Password = *o.Password
	}
	if o.Database != nil {
		cfg.Database = *o.Database
	}
	if o.QueryDir != nil {
		cfg.QueryDir = *o.QueryDir
	}
	if o.ParamsFile != nil {
		cfg.ParamsFile = *o.ParamsFile
	}
	if o.StrictProperties != nil {
		cfg.StrictProperties = *o.StrictProperties
	}
	if o.CheckMultiLabeledNodes != nil {
		cfg.CheckMultiLabeledNodes = *o.CheckMultiLabeledNodes
	}
	if o.LogLevel != nil {
		level, err := parseLogLevel(*o.LogLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}
	if o.LogFormat != nil {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(*o.LogFormat))
	}
	if o.Format != "" {
		cfg.Format = strings.ToLower(strings.TrimSpace(o.Format))
	}

	cfg.AuditLog = o.AuditLog
	cfg.OTelEnabled = cfg.OTelEnabled || o.OTelEnabled

	return nil
}

// validate checks cross-field constraints on the final config.
// Connection settings are checked before anything contacts the database.
func validate(cfg *Config) error {
	var missing []string
	if cfg.URI == "" {
		missing = append(missing, "NEO4J_URI")
	}
	if cfg.User == "" {
		missing = append(missing, "NEO4J_USER")
	}
	if cfg.Password == "" {
		missing = append(missing, "NEO4J_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: please set %s (env var or flag)", domain.ErrConfiguration, strings.Join(missing, ", "))
	}

	if cfg.Database == "" {
		return fmt.Errorf("%w: NEO4J_DATABASE must not be empty", domain.ErrConfiguration)
	}

	switch cfg.Format {
	case FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("%w: invalid --format value %q: must be \"console\" or \"json\"", domain.ErrConfiguration, cfg.Format)
	}

	switch cfg.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: invalid LOG_FORMAT value %q: must be \"text\" or \"json\"", domain.ErrConfiguration, cfg.LogFormat)
	}

	return nil
}

// truthy accepts 1, true and yes in any case. Anything else is false.
func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: invalid LOG_LEVEL value %q: must be debug, info, warn, or error", domain.ErrConfiguration, s)
	}
}
