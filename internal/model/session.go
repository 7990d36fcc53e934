package model

import "time"

// State — узел диалогового графа мастера.
type State int

const (
	// StateIdle — сессии нет, бот ждет /start
	StateIdle State = iota
	// StateMainMenu — выбор категории документа
	StateMainMenu
	// StateSelectTemplate — выбор шаблона внутри категории
	StateSelectTemplate
	// StateCollectFields — пошаговый сбор полей по плану категории
	StateCollectFields
	// StateConfirm — финальное подтверждение собранных данных
	StateConfirm
	// StateDone — терминальное состояние, сессия завершена
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMainMenu:
		return "main_menu"
	case StateSelectTemplate:
		return "select_template"
	case StateCollectFields:
		return "collect_fields"
	case StateConfirm:
		return "confirm"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Session хранит прогресс диалога одного пользователя.
// Мутируется только машиной состояний, по одной живой сессии на пользователя.
type Session struct {
	UserID     int64             `json:"user_id"`
	State      State             `json:"state"`
	Category   string            `json:"category"`
	TemplateID string            `json:"template_id"`
	FieldIndex int               `json:"field_index"`
	Fields     map[string]string `json:"fields"`
	Result     *PayrollResult    `json:"result,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// NewSession создает пустую сессию в главном меню.
func NewSession(userID int64) *Session {
	return &Session{
		UserID:    userID,
		State:     StateMainMenu,
		Fields:    make(map[string]string),
		UpdatedAt: time.Now(),
	}
}

// ResetForm сбрасывает категорию, шаблон и собранные поля,
// возвращая сессию в главное меню (кнопка "начать заново").
func (s *Session) ResetForm() {
	s.State = StateMainMenu
	s.Category = ""
	s.TemplateID = ""
	s.FieldIndex = 0
	s.Fields = make(map[string]string)
	s.Result = nil
	s.UpdatedAt = time.Now()
}

// FullName возвращает полное имя из собранных полей.
func (s *Session) FullName() string {
	first := s.Fields["first_name"]
	last := s.Fields["last_name"]
	if first == "" {
		return last
	}
	if last == "" {
		return first
	}
	return first + " " + last
}
