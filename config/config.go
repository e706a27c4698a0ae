package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Mail         MailConfig
	Booking      BookingConfig
	Cache        CacheConfig
	Verification VerificationConfig
}

type AppConfig struct {
	Port       string
	Env        string
	LogLevel   string
	CORSOrigin string
}

type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	PoolSize int
}

// JWTConfig holds the shared secret of the identity provider that issues
// access tokens. Beedical only verifies them.
type JWTConfig struct {
	Secret string
	Issuer string
}

type MailConfig struct {
	Enabled bool
	BaseURL string
	APIKey  string
	Sender  string
	Timeout time.Duration
}

type BookingConfig struct {
	AvailabilityFile string
	ConflictCheck    bool
}

type CacheConfig struct {
	TTL time.Duration
}

type VerificationConfig struct {
	CodeTTL time.Duration
}

func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// the .env file is optional, the environment alone is enough
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return &Config{
		App: AppConfig{
			Port:       viper.GetString("APP_PORT"),
			Env:        viper.GetString("APP_ENV"),
			LogLevel:   viper.GetString("LOG_LEVEL"),
			CORSOrigin: viper.GetString("CORS_ALLOWED_ORIGIN"),
		},
		DB: DBConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetString("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			TimeZone:        viper.GetString("DB_TIMEZONE"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: viper.GetDuration("DB_CONN_MAX_LIFETIME"),
			AutoMigrate:     viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			PoolSize: viper.GetInt("REDIS_POOL_SIZE"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
			Issuer: viper.GetString("JWT_ISSUER"),
		},
		Mail: MailConfig{
			Enabled: viper.GetBool("MAIL_ENABLED"),
			BaseURL: viper.GetString("MAIL_BASE_URL"),
			APIKey:  viper.GetString("MAIL_API_KEY"),
			Sender:  viper.GetString("MAIL_SENDER"),
			Timeout: viper.GetDuration("MAIL_TIMEOUT"),
		},
		Booking: BookingConfig{
			AvailabilityFile: viper.GetString("AVAILABILITY_FILE"),
			ConflictCheck:    viper.GetBool("BOOKING_CONFLICT_CHECK"),
		},
		Cache: CacheConfig{
			TTL: viper.GetDuration("CACHE_TTL"),
		},
		Verification: VerificationConfig{
			CodeTTL: viper.GetDuration("VERIFICATION_CODE_TTL"),
		},
	}, nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CORS_ALLOWED_ORIGIN", "*")

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Africa/Casablanca")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 100)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	viper.SetDefault("DB_AUTO_MIGRATE", false)

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_POOL_SIZE", 10)

	viper.SetDefault("MAIL_ENABLED", false)
	viper.SetDefault("MAIL_SENDER", "no-reply@beedical.ma")
	viper.SetDefault("MAIL_TIMEOUT", "10s")

	viper.SetDefault("AVAILABILITY_FILE", "data/indisponibilites.json")
	viper.SetDefault("BOOKING_CONFLICT_CHECK", false)
	viper.SetDefault("CACHE_TTL", "1h")
	viper.SetDefault("VERIFICATION_CODE_TTL", "10m")
}
