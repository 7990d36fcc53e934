package model

import (
	"time"

	"github.com/google/uuid"
)

// Document — запись о сгенерированном документе в хранилище.
type Document struct {
	ID         string            `json:"id,omitempty"`
	UserID     int64             `json:"user_id"`
	UserName   string            `json:"user_name"`
	Category   string            `json:"category"`
	TemplateID string            `json:"template_id"`
	FormData   map[string]string `json:"form_data"`
	FileName   string            `json:"file_name"`
	// Содержимое PDF; json кодирует []byte как base64
	FileContent []byte    `json:"file_content,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// GenerateID генерирует новый UUID для документа, если он еще не установлен
func (d *Document) GenerateID() {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
}
