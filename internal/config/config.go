package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	SupabaseURL   string
	SupabaseKey   string
	// Необязательный путь к YAML с таблицей налоговых ставок;
	// пустое значение — встроенная таблица текущего года
	TaxTablePath string
}

func LoadConfig() (*Config, error) {
	// .env необязателен: в облаке переменные приходят из окружения
	_ = godotenv.Load()

	return &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		SupabaseURL:   os.Getenv("SUPABASE_URL"),
		SupabaseKey:   os.Getenv("SUPABASE_KEY"),
		TaxTablePath:  os.Getenv("TAX_TABLE_PATH"),
	}, nil
}
