package repository

import (
	"context"

	"github.com/docugen/docgen_bot/internal/model"
)

// Repository — долговременное хранилище сгенерированных документов.
// Отказ хранилища не откатывает мастер: вызывающий сообщает пользователю
// предупреждение и продолжает.
type Repository interface {
	SaveDocument(ctx context.Context, document *model.Document) error
	RecentDocuments(ctx context.Context, userID int64, limit int) ([]model.Document, error)
}
