package config

// Config holds all configuration for the application.
type Config struct {
	DBName   string
	Port     string
	Telegram TelegramConfig
	Turso    TursoConfig
}

type TelegramConfig struct {
	Token string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
