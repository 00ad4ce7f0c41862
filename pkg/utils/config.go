package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Stripe     StripeConfig
	Google     GoogleConfig
	Email      EmailConfig
	Sweep      SweepConfig
	Commission CommissionConfig
	Session    SessionConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
	BaseURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type StripeConfig struct {
	APIKey        string
	WebhookSecret string
	Currency      string
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type SweepConfig struct {
	// Cron expressions for the two scheduled sweeps.
	AutoCompleteCron string
	DailyCodesCron   string
}

type CommissionConfig struct {
	// Rate is a 0-1 fraction applied to base+extras at checkout. Not to be
	// confused with RefundPercent, which is 0-100.
	Rate float64
}

type SessionConfig struct {
	ExpiryHours int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("STRIPE_CURRENCY", "mxn")
	viper.SetDefault("SWEEP_AUTOCOMPLETE_CRON", "*/30 * * * *")
	viper.SetDefault("SWEEP_DAILY_CODES_CRON", "0 7 * * *")
	viper.SetDefault("COMMISSION_RATE", 0.10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
			BaseURL: viper.GetString("BASE_URL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Stripe: StripeConfig{
			APIKey:        viper.GetString("STRIPE_API_KEY"),
			WebhookSecret: viper.GetString("STRIPE_WEBHOOK_SECRET"),
			Currency:      viper.GetString("STRIPE_CURRENCY"),
		},
		Google: GoogleConfig{
			ClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  viper.GetString("GOOGLE_REDIRECT_URL"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		Sweep: SweepConfig{
			AutoCompleteCron: viper.GetString("SWEEP_AUTOCOMPLETE_CRON"),
			DailyCodesCron:   viper.GetString("SWEEP_DAILY_CODES_CRON"),
		},
		Commission: CommissionConfig{
			Rate: viper.GetFloat64("COMMISSION_RATE"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
	}

	return config, nil
}
