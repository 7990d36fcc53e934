package main

import (
	"context"

	"github.com/docugen/docgen_bot/internal/bot"
	"github.com/docugen/docgen_bot/internal/config"
	"github.com/docugen/docgen_bot/internal/repository"
	"github.com/docugen/docgen_bot/internal/tax"
	"github.com/docugen/docgen_bot/internal/wizard"
)

// Request структура входящего запроса от API Gateway
type Request struct {
	Body string `json:"body"`
}

// Response структура ответа для API Gateway
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

func Handler(ctx context.Context, request Request) (*Response, error) {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return errorResponse(err)
	}

	// Таблица ставок: из файла или встроенная
	table := tax.DefaultTable()
	if cfg.TaxTablePath != "" {
		table, err = tax.LoadTable(cfg.TaxTablePath)
		if err != nil {
			return errorResponse(err)
		}
	}

	// Инициализация репозитория
	repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		return errorResponse(err)
	}

	// Инициализация бота
	b, err := bot.NewBot(cfg.TelegramToken, wizard.NewMachine(table), repo)
	if err != nil {
		return errorResponse(err)
	}

	// Обработка webhook-обновления
	if err := b.HandleWebhook([]byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Точка входа для локального тестирования
}
