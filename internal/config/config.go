package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/daily-problems/internal/common"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the app reads.
const EnvPrefix = "CODING"

// Auth modes for the mailbox.
const (
	AuthPassword    = "password"
	AuthOAuthBearer = "oauthbearer"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the complete process configuration. It is loaded once and
// handed to each component's constructor.
type Config struct {
	Mail     MailConfig
	LLM      LLMConfig
	Database DatabaseConfig
	Schedule ScheduleConfig
	Logging  LoggingConfig
}

// MailConfig describes the mailbox to scan.
type MailConfig struct {
	OAuth    OAuthConfig
	Host     string
	Username string
	Password string
	Mailbox  string
	Auth     string
	Timeout  time.Duration
	Port     int
}

// Addr returns host:port.
func (m MailConfig) Addr() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}

// OAuthConfig holds the refresh-token grant used for OAUTHBEARER logins.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	TokenURL     string
}

// LLMConfig selects and tunes the classification provider.
type LLMConfig struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
	MaxTokens   int
	RateLimit   int
}

// DatabaseConfig selects the record store.
type DatabaseConfig struct {
	Driver string
	Path   string
	URL    string
}

// ScheduleConfig is the daily trigger time for the scheduler.
type ScheduleConfig struct {
	Location *time.Location
	At       string
	Timezone string
	Hour     int
	Minute   int
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string
	Format string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("mail.host", "imap.mail.yahoo.com")
	v.SetDefault("mail.port", 993)
	v.SetDefault("mail.mailbox", "INBOX")
	v.SetDefault("mail.auth", AuthPassword)
	v.SetDefault("mail.timeout", time.Minute)

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.max_tokens", 4096)
	v.SetDefault("llm.timeout", 2*time.Minute)
	v.SetDefault("llm.rate_limit", 60)

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "$HOME/.local/share/problems/problems.db")

	v.SetDefault("schedule.at", "08:15")
	v.SetDefault("schedule.timezone", "UTC")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// BindEnv wires environment variables into v. Besides the automatic
// CODING_<SECTION>_<KEY> names, the variable names of the original
// deployment are accepted.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("mail.username", "CODING_MAIL_USERNAME", "CODING_EMAIL")
	_ = v.BindEnv("mail.password", "CODING_MAIL_PASSWORD", "CODING_EMAIL_PASSWORD")
	_ = v.BindEnv("llm.api_key", "CODING_LLM_API_KEY", "CODING_OPENAI_API_KEY")
	_ = v.BindEnv("database.url", "CODING_DATABASE_URL", "DATABASE_URL")
}

// Load builds a Config from v. It resolves defaults and parses values but
// does not require ingestion credentials; see ValidateIngestion.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Mail: MailConfig{
			Host:     v.GetString("mail.host"),
			Port:     v.GetInt("mail.port"),
			Username: v.GetString("mail.username"),
			Password: v.GetString("mail.password"),
			Mailbox:  v.GetString("mail.mailbox"),
			Auth:     strings.ToLower(v.GetString("mail.auth")),
			Timeout:  v.GetDuration("mail.timeout"),
			OAuth: OAuthConfig{
				ClientID:     v.GetString("mail.oauth.client_id"),
				ClientSecret: v.GetString("mail.oauth.client_secret"),
				RefreshToken: v.GetString("mail.oauth.refresh_token"),
				TokenURL:     v.GetString("mail.oauth.token_url"),
			},
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(v.GetString("llm.provider")),
			Model:       v.GetString("llm.model"),
			APIKey:      v.GetString("llm.api_key"),
			BaseURL:     v.GetString("llm.base_url"),
			Temperature: v.GetFloat64("llm.temperature"),
			MaxTokens:   v.GetInt("llm.max_tokens"),
			Timeout:     v.GetDuration("llm.timeout"),
			RateLimit:   v.GetInt("llm.rate_limit"),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("database.driver")),
			Path:   ExpandPath(v.GetString("database.path")),
			URL:    v.GetString("database.url"),
		},
		Schedule: ScheduleConfig{
			At:       v.GetString("schedule.at"),
			Timezone: v.GetString("schedule.timezone"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}

	switch cfg.Database.Driver {
	case DriverSQLite:
		if cfg.Database.Path == "" {
			return Config{}, fmt.Errorf("%w: database.path", common.ErrMissingConfig)
		}
	case DriverPostgres:
		if cfg.Database.URL == "" {
			return Config{}, fmt.Errorf("%w: database.url", common.ErrMissingConfig)
		}
	default:
		return Config{}, fmt.Errorf("%w: unsupported database driver %q", common.ErrInvalidConfig, cfg.Database.Driver)
	}

	hour, minute, err := ParseClock(cfg.Schedule.At)
	if err != nil {
		return Config{}, err
	}
	cfg.Schedule.Hour, cfg.Schedule.Minute = hour, minute

	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("%w: schedule.timezone: %v", common.ErrInvalidConfig, err)
	}
	cfg.Schedule.Location = loc

	return cfg, nil
}

// ValidateIngestion checks the settings an ingestion run cannot do without.
func (c Config) ValidateIngestion() error {
	var missing []string
	if c.Mail.Host == "" {
		missing = append(missing, "mail.host")
	}
	if c.Mail.Username == "" {
		missing = append(missing, "mail.username")
	}

	switch c.Mail.Auth {
	case AuthPassword:
		if c.Mail.Password == "" {
			missing = append(missing, "mail.password")
		}
	case AuthOAuthBearer:
		if c.Mail.OAuth.ClientID == "" {
			missing = append(missing, "mail.oauth.client_id")
		}
		if c.Mail.OAuth.RefreshToken == "" {
			missing = append(missing, "mail.oauth.refresh_token")
		}
	default:
		return fmt.Errorf("%w: unsupported mail.auth %q", common.ErrInvalidConfig, c.Mail.Auth)
	}

	if c.LLM.APIKey == "" {
		missing = append(missing, "llm.api_key")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, strings.Join(missing, ", "))
	}
	return nil
}

// ParseClock parses an "HH:MM" time of day.
func ParseClock(value string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: schedule time %q must be HH:MM", common.ErrInvalidConfig, value)
	}
	return t.Hour(), t.Minute(), nil
}
