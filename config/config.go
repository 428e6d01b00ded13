package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Scheduling   SchedulingConfig
	Notification NotificationConfig
}

type AppConfig struct {
	Port        string
	Env         string
	LogLevel    string
	CORSOrigins []string
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	TimeZone    string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SchedulingConfig holds the clinic-wide booking grid. Working hours are
// wall-clock times ("HH:MM") interpreted in Location.
type SchedulingConfig struct {
	SlotDuration        time.Duration
	WorkingHoursStart   string
	WorkingHoursEnd     string
	Location            *time.Location
	WorkloadConcurrency int
}

type NotificationConfig struct {
	Channel        string
	QueueSize      int
	PublishTimeout time.Duration
}

var ErrInvalidWorkingHours = errors.New("working hours must be HH:MM with start before end")

func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	// .env is optional, plain environment variables are enough in containers
	if _, err := os.Stat(".env"); err == nil {
		v.SetConfigFile(".env")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_CORS_ORIGINS", "*")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("JWT_ACCESS_EXPIRY", "15m")
	v.SetDefault("JWT_REFRESH_EXPIRY", "168h")
	v.SetDefault("SCHEDULING_SLOT_DURATION", "60m")
	v.SetDefault("SCHEDULING_WORKING_HOURS_START", "09:00")
	v.SetDefault("SCHEDULING_WORKING_HOURS_END", "17:00")
	v.SetDefault("SCHEDULING_LOCATION", "UTC")
	v.SetDefault("SCHEDULING_WORKLOAD_CONCURRENCY", 4)
	v.SetDefault("NOTIFICATION_CHANNEL", "appointments.events")
	v.SetDefault("NOTIFICATION_QUEUE_SIZE", 256)
	v.SetDefault("NOTIFICATION_PUBLISH_TIMEOUT", "5s")
}

func fromViper(v *viper.Viper) (*Config, error) {
	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(v.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	slotDuration, err := time.ParseDuration(v.GetString("SCHEDULING_SLOT_DURATION"))
	if err != nil || slotDuration <= 0 {
		return nil, fmt.Errorf("invalid SCHEDULING_SLOT_DURATION %q", v.GetString("SCHEDULING_SLOT_DURATION"))
	}

	location, err := time.LoadLocation(v.GetString("SCHEDULING_LOCATION"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULING_LOCATION: %w", err)
	}

	start := v.GetString("SCHEDULING_WORKING_HOURS_START")
	end := v.GetString("SCHEDULING_WORKING_HOURS_END")
	if err := validateWorkingHours(start, end); err != nil {
		return nil, err
	}

	publishTimeout, err := time.ParseDuration(v.GetString("NOTIFICATION_PUBLISH_TIMEOUT"))
	if err != nil {
		publishTimeout = 5 * time.Second
	}

	concurrency := v.GetInt("SCHEDULING_WORKLOAD_CONCURRENCY")
	if concurrency < 1 {
		concurrency = 1
	}

	config := &Config{
		App: AppConfig{
			Port:        v.GetString("APP_PORT"),
			Env:         v.GetString("APP_ENV"),
			LogLevel:    v.GetString("LOG_LEVEL"),
			CORSOrigins: splitList(v.GetString("APP_CORS_ORIGINS")),
		},
		DB: DBConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			Name:        v.GetString("DB_NAME"),
			TimeZone:    v.GetString("DB_TIMEZONE"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Scheduling: SchedulingConfig{
			SlotDuration:        slotDuration,
			WorkingHoursStart:   start,
			WorkingHoursEnd:     end,
			Location:            location,
			WorkloadConcurrency: concurrency,
		},
		Notification: NotificationConfig{
			Channel:        v.GetString("NOTIFICATION_CHANNEL"),
			QueueSize:      v.GetInt("NOTIFICATION_QUEUE_SIZE"),
			PublishTimeout: publishTimeout,
		},
	}

	return config, nil
}

func validateWorkingHours(start, end string) error {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return fmt.Errorf("%w: start %q", ErrInvalidWorkingHours, start)
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return fmt.Errorf("%w: end %q", ErrInvalidWorkingHours, end)
	}
	if !s.Before(e) {
		return ErrInvalidWorkingHours
	}
	return nil
}

// splitList parses a comma separated env value, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
