package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration values
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Env         string `mapstructure:"ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Scheduling
	BusinessTimezone       string `mapstructure:"BUSINESS_TIMEZONE"`
	MeetingDurationMinutes int    `mapstructure:"MEETING_DURATION_MINUTES"`

	// Calendar sync
	GoogleCalendarID      string `mapstructure:"GOOGLE_CALENDAR_ID"`
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`

	// Email
	ResendAPIKey string `mapstructure:"RESEND_API_KEY"`
	MailFrom     string `mapstructure:"MAIL_FROM"`
	OwnerEmail   string `mapstructure:"OWNER_EMAIL"`

	// Outbox worker
	OutboxCron string `mapstructure:"OUTBOX_CRON"`
}

// Global variable to store configuration
var AppConfig Config

// LoadConfig initializes Viper to load config values from env, file, or defaults
func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("DATABASE_URL", "lashdiary.db")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("BUSINESS_TIMEZONE", "Africa/Nairobi")
	viper.SetDefault("MEETING_DURATION_MINUTES", 45)
	viper.SetDefault("MAIL_FROM", "LashDiary Labs <bookings@lashdiary.co.ke>")
	viper.SetDefault("OWNER_EMAIL", "hello@lashdiary.co.ke")
	viper.SetDefault("OUTBOX_CRON", "@every 1m")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// GetEnv returns the application environment
func GetEnv() string {
	return AppConfig.Env
}

// IsProduction checks if the environment is production
func IsProduction() bool {
	return GetEnv() == "production"
}
