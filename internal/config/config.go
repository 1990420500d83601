package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Studio        StudioConfig        `toml:"studio"`
	Pricing       PricingConfig       `toml:"pricing"`
	Notifications NotificationsConfig `toml:"notifications"`
	Admin         AdminConfig         `toml:"admin"`
	Jobs          JobsConfig          `toml:"jobs"`
}

type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	IdleTimeout     int      `toml:"idle_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	AllowedOrigins  []string `toml:"allowed_origins"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type StudioConfig struct {
	Slots                    []string `toml:"slots"`
	ClosedWeekday            string   `toml:"closed_weekday"`
	Timezone                 string   `toml:"timezone"`
	MalformedDurationSlots   int      `toml:"malformed_duration_fallback"`
	AdvanceBookingDays       int      `toml:"advance_booking_days"`
	PaymentWorkflow          bool     `toml:"payment_workflow"`
	PendingPaymentTTLMinutes int      `toml:"pending_payment_ttl_minutes"`
	LockTimeout              int      `toml:"lock_timeout"`
}

// PendingPaymentTTL время жизни неоплаченного бронирования
func (s StudioConfig) PendingPaymentTTL() time.Duration {
	return time.Duration(s.PendingPaymentTTLMinutes) * time.Minute
}

type PricingConfig struct {
	Currency   string           `toml:"currency"`
	HourlyRate int64            `toml:"hourly_rate"`
	Packages   map[string]int64 `toml:"packages"`
	Addons     map[string]int64 `toml:"addons"`
}

type NotificationsConfig struct {
	Enabled    bool           `toml:"enabled"`
	Timeout    int            `toml:"timeout"`
	AdminEmail string         `toml:"admin_email"`
	SendGrid   SendGridConfig `toml:"sendgrid"`
	Twilio     TwilioConfig   `toml:"twilio"`
}

type SendGridConfig struct {
	Enabled   bool   `toml:"enabled"`
	APIKey    string `toml:"api_key"`
	FromEmail string `toml:"from_email"`
	FromName  string `toml:"from_name"`
}

type TwilioConfig struct {
	Enabled    bool   `toml:"enabled"`
	AccountSID string `toml:"account_sid"`
	AuthToken  string `toml:"auth_token"`
	FromNumber string `toml:"from_number"`
}

type AdminConfig struct {
	Username     string `toml:"username"`
	PasswordHash string `toml:"password_hash"`
	JWTSecret    string `toml:"jwt_secret"`
	TokenTTL     int    `toml:"token_ttl_minutes"`
}

// TokenLifetime время жизни админского токена
func (a AdminConfig) TokenLifetime() time.Duration {
	return time.Duration(a.TokenTTL) * time.Minute
}

type JobsConfig struct {
	ExpirePendingEnabled bool   `toml:"expire_pending_enabled"`
	ExpirePendingSpec    string `toml:"expire_pending_spec"`
}

// Load читает TOML файл, подмешивает .env и переменные окружения
func Load(path string) (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidConfig, path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "studio-booking",
		},
		Studio: StudioConfig{
			Slots:                    append([]string(nil), domain.DefaultSlotLabels...),
			ClosedWeekday:            "sunday",
			Timezone:                 "UTC",
			MalformedDurationSlots:   domain.DefaultMalformedDurationSlots,
			AdvanceBookingDays:       domain.DefaultAdvanceBookingDays,
			PendingPaymentTTLMinutes: domain.DefaultPendingPaymentTTLMins,
			LockTimeout:              10,
		},
		Pricing: PricingConfig{Currency: domain.DefaultCurrency},
		Notifications: NotificationsConfig{
			Timeout: 10,
		},
		Admin: AdminConfig{TokenTTL: 720},
		Jobs: JobsConfig{
			ExpirePendingSpec: "@every 15m",
		},
	}
}

// applyEnv переопределяет секреты из окружения
func (c *Config) applyEnv() error {
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Admin.Username, "ADMIN_USERNAME")
	setString(&c.Admin.PasswordHash, "ADMIN_PASSWORD_HASH")
	setString(&c.Admin.JWTSecret, "JWT_SECRET")
	setString(&c.Notifications.SendGrid.APIKey, "SENDGRID_API_KEY")
	setString(&c.Notifications.Twilio.AccountSID, "TWILIO_ACCOUNT_SID")
	setString(&c.Notifications.Twilio.AuthToken, "TWILIO_AUTH_TOKEN")
	setString(&c.Notifications.AdminEmail, "STUDIO_ADMIN_EMAIL")

	if err := setInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	return setInt(&c.Server.HTTPPort, "HTTP_PORT")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	*dst = n
	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort))
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server timeouts must be positive"))
	}
	if c.Database.Port <= 0 {
		errs = append(errs, fmt.Errorf("database.port must be positive: %d", c.Database.Port))
	}
	if _, err := c.BuildSchedule(); err != nil {
		errs = append(errs, err)
	}
	if c.Studio.AdvanceBookingDays < 0 {
		errs = append(errs, errors.New("studio.advance_booking_days must not be negative"))
	}
	if c.Studio.PaymentWorkflow && c.Studio.PendingPaymentTTLMinutes <= 0 {
		errs = append(errs, errors.New("studio.pending_payment_ttl_minutes must be positive with payment workflow"))
	}
	if c.Pricing.HourlyRate < 0 {
		errs = append(errs, errors.New("pricing.hourly_rate must not be negative"))
	}
	for name, price := range c.Pricing.Packages {
		if price < 0 {
			errs = append(errs, fmt.Errorf("pricing.packages.%s must not be negative", name))
		}
	}
	for name, price := range c.Pricing.Addons {
		if price < 0 {
			errs = append(errs, fmt.Errorf("pricing.addons.%s must not be negative", name))
		}
	}
	if c.Notifications.SendGrid.Enabled && (c.Notifications.SendGrid.APIKey == "" || c.Notifications.SendGrid.FromEmail == "") {
		errs = append(errs, errors.New("notifications.sendgrid requires api_key and from_email"))
	}
	if c.Notifications.Twilio.Enabled && (c.Notifications.Twilio.AccountSID == "" || c.Notifications.Twilio.AuthToken == "" || c.Notifications.Twilio.FromNumber == "") {
		errs = append(errs, errors.New("notifications.twilio requires account_sid, auth_token and from_number"))
	}
	if c.Admin.TokenTTL <= 0 {
		errs = append(errs, errors.New("admin.token_ttl_minutes must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// BuildSchedule собирает неизменяемое расписание студии из секции [studio]
func (c *Config) BuildSchedule() (*domain.StudioSchedule, error) {
	catalog, err := domain.NewSlotCatalog(c.Studio.Slots)
	if err != nil {
		return nil, err
	}

	opts := []domain.ScheduleOption{
		domain.WithFallbackDuration(c.Studio.MalformedDurationSlots),
	}

	day, closed, err := domain.ParseWeekday(c.Studio.ClosedWeekday)
	if err != nil {
		return nil, err
	}
	if closed {
		opts = append(opts, domain.WithClosedWeekday(day))
	}

	if c.Studio.Timezone != "" {
		loc, err := time.LoadLocation(c.Studio.Timezone)
		if err != nil {
			return nil, fmt.Errorf("%w: timezone %q: %v", domain.ErrInvalidSchedule, c.Studio.Timezone, err)
		}
		opts = append(opts, domain.WithLocation(loc))
	}

	return domain.NewStudioSchedule(catalog, opts...)
}
