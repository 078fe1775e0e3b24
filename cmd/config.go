package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"orderdesk/internal/jobs"
)

const DefaultTokenTTL = 24 * time.Hour

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AuthSecret   string
	AuthTokenTTL time.Duration
	BcryptCost   int

	StatsCron string

	BootstrapAdminUsername string
	BootstrapAdminPassword string
}

// LoadConfig reads the configuration through getenv, normally os.Getenv after the
// optional .env file has been loaded.
func LoadConfig(getenv func(string) string) (Config, error) {
	config := Config{
		HTTPPort:               withDefault(getenv("HTTP_PORT"), "8080"),
		DBHost:                 getenv("DB_HOST"),
		DBPort:                 withDefault(getenv("DB_PORT"), "5432"),
		DBUser:                 getenv("DB_USER"),
		DBPassword:             getenv("DB_PASSWORD"),
		DBName:                 getenv("DB_NAME"),
		DBSslMode:              withDefault(getenv("DB_SSLMODE"), "disable"),
		AuthSecret:             getenv("AUTH_SECRET"),
		AuthTokenTTL:           DefaultTokenTTL,
		StatsCron:              withDefault(getenv("STATS_CRON"), jobs.DefaultStatusDistributionSchedule),
		BootstrapAdminUsername: getenv("BOOTSTRAP_ADMIN_USERNAME"),
		BootstrapAdminPassword: getenv("BOOTSTRAP_ADMIN_PASSWORD"),
	}

	var ttlErr, costErr error
	if raw := getenv("AUTH_TOKEN_TTL"); raw != "" {
		config.AuthTokenTTL, ttlErr = time.ParseDuration(raw)
		if ttlErr != nil {
			ttlErr = fmt.Errorf("AUTH_TOKEN_TTL: %w", ttlErr)
		}
	}
	if raw := getenv("BCRYPT_COST"); raw != "" {
		config.BcryptCost, costErr = strconv.Atoi(raw)
		if costErr != nil {
			costErr = fmt.Errorf("BCRYPT_COST: %w", costErr)
		}
	}

	var secretErr error
	if config.AuthSecret == "" {
		secretErr = errors.New("AUTH_SECRET is required")
	}

	if err := errors.Join(ttlErr, costErr, secretErr); err != nil {
		return Config{}, err
	}
	return config, nil
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
