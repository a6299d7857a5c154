package config

type AppConfig struct {
	APIPort     string `env:"PORT,required" envDefault:"11000"`
	APIKey      string `env:"API_KEY,required"`
	RabbitMQURL string `env:"RABBITMQ_URL"`
}

type InboxdDatabaseConfig struct {
	Host            string `env:"INBOXD_POSTGRES_HOST,required"`
	Port            string `env:"INBOXD_POSTGRES_PORT,required"`
	User            string `env:"INBOXD_POSTGRES_USER,required"`
	DBName          string `env:"INBOXD_POSTGRES_DB_NAME,required"`
	Password        string `env:"INBOXD_POSTGRES_PASSWORD,required"`
	MaxConn         int    `env:"INBOXD_POSTGRES_DB_MAX_CONN"`
	MaxIdleConn     int    `env:"INBOXD_POSTGRES_DB_MAX_IDLE_CONN"`
	ConnMaxLifetime int    `env:"INBOXD_POSTGRES_DB_CONN_MAX_LIFETIME"`
	LogLevel        string `env:"INBOXD_POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"INBOXD_POSTGRES_SSL_MODE"`
}

type ResendConfig struct {
	APIKey string `env:"RESEND_API_KEY"`
	// Each webhook endpoint has its own signing secret in the Resend dashboard.
	WebhookEmailReceivedSecret string `env:"RESEND_WEBHOOK_EMAIL_RECEIVED_SECRET"`
	WebhookEmailStatusSecret   string `env:"RESEND_WEBHOOK_EMAIL_STATUS_SECRET"`
	BaseURL                    string `env:"RESEND_BASE_URL"`
}
