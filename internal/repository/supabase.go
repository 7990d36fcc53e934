package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/supabase-community/supabase-go"

	"github.com/docugen/docgen_bot/internal/model"
)

// SupabaseRepository хранит документы в таблице documents через PostgREST.
type SupabaseRepository struct {
	client *supabase.Client
}

// NewSupabaseRepository создает репозиторий поверх Supabase.
func NewSupabaseRepository(url, key string) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, err
	}

	return &SupabaseRepository{
		client: client,
	}, nil
}

func (r *SupabaseRepository) SaveDocument(ctx context.Context, document *model.Document) error {
	data, _, err := r.client.From("documents").Insert(document, true, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	// Парсим ответ для получения серверных ID и created_at
	var created []model.Document
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created document: %w", err)
	}
	if len(created) > 0 {
		document.ID = created[0].ID
		document.CreatedAt = created[0].CreatedAt
	}
	return nil
}

func (r *SupabaseRepository) RecentDocuments(ctx context.Context, userID int64, limit int) ([]model.Document, error) {
	query := r.client.From("documents").
		// содержимое файла в историю не тянем
		Select("id,user_id,user_name,category,template_id,file_name,created_at", "", false).
		Eq("user_id", strconv.FormatInt(userID, 10)).
		Order("created_at.desc", nil)

	if limit > 0 {
		query = query.Limit(limit, "")
	}

	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get documents: %w", err)
	}

	var documents []model.Document
	if err := json.Unmarshal(data, &documents); err != nil {
		return nil, fmt.Errorf("failed to parse documents: %w", err)
	}
	return documents, nil
}
