package wizard

import (
	"strconv"
	"strings"
	"time"

	"github.com/docugen/docgen_bot/internal/model"
	"github.com/docugen/docgen_bot/internal/tax"
)

// EventType — тип входящего события диалога.
type EventType int

const (
	// EventStart — команда /start, новая сессия
	EventStart EventType = iota
	// EventSelectCategory — выбрана категория в главном меню
	EventSelectCategory
	// EventSelectTemplate — выбран шаблон категории
	EventSelectTemplate
	// EventBack — возврат с выбора шаблона в главное меню
	EventBack
	// EventText — свободный текстовый ответ
	EventText
	// EventSkip — пропуск необязательного поля
	EventSkip
	// EventChoice — значение из фиксированного набора
	EventChoice
	// EventConfirm — подтверждение генерации документа
	EventConfirm
	// EventRestart — начать анкету заново, поля сбрасываются
	EventRestart
	// EventAbort — отказ на экране подтверждения
	EventAbort
	// EventCancel — глобальная команда /cancel
	EventCancel
)

// Event — входящий ответ пользователя, уже разобранный транспортом.
type Event struct {
	Type  EventType
	Value string
}

// KeyboardKind — подсказка транспорту, какую клавиатуру показать.
type KeyboardKind int

const (
	KbNone KeyboardKind = iota
	KbMainMenu
	KbTemplates
	KbSkip
	KbChoices
	KbConfirm
)

// Finalized — снимок завершенной сессии для рендера и сохранения.
// Снимается до вызова коллабораторов: их отказ уже не меняет сессию.
type Finalized struct {
	UserID     int64
	Category   string
	TemplateID string
	Fields     map[string]string
	Result     *model.PayrollResult
}

// Reply — результат перехода: текст ответа, клавиатура и, на терминальном
// ребре, снимок для генерации документа.
type Reply struct {
	Text     string
	Keyboard KeyboardKind
	// Choices заполняется при Keyboard == KbChoices
	Choices []Choice
	// Category заполняется при Keyboard == KbTemplates
	Category string
	// Ignored — событие не к текущему состоянию, транспорт молчит
	Ignored   bool
	Finalized *Finalized
}

// Machine — машина состояний мастера. Не держит собственного состояния,
// вся мутация идет через переданную сессию.
type Machine struct {
	table *tax.Table
}

// NewMachine создает машину поверх таблицы ставок.
func NewMachine(table *tax.Table) *Machine {
	return &Machine{table: table}
}

func ignored() Reply {
	return Reply{Ignored: true}
}

// Transition валидирует событие, мутирует сессию и возвращает ответ.
// Вся валидация происходит здесь, до записи поля; события не к текущему
// состоянию отбрасываются и никогда не перезаписывают чужое поле.
func (m *Machine) Transition(sess *model.Session, ev Event) Reply {
	switch ev.Type {
	case EventCancel:
		if sess.State == model.StateIdle {
			// отменять нечего, подсказываем как начать
			return Reply{Text: "Используйте /start чтобы создать документ."}
		}
		if !move(sess, model.StateDone) {
			return ignored()
		}
		return Reply{Text: "❌ Операция отменена.\n\nИспользуйте /start чтобы начать заново."}
	case EventStart, EventRestart:
		if !canTransition(sess.State, model.StateMainMenu) {
			return ignored()
		}
		sess.ResetForm()
		return mainMenuReply()
	}

	switch sess.State {
	case model.StateIdle:
		if ev.Type == EventText {
			return Reply{Text: "Используйте /start чтобы создать документ."}
		}
		return ignored()
	case model.StateMainMenu:
		return m.onMainMenu(sess, ev)
	case model.StateSelectTemplate:
		return m.onSelectTemplate(sess, ev)
	case model.StateCollectFields:
		return m.onCollectFields(sess, ev)
	case model.StateConfirm:
		return m.onConfirm(sess, ev)
	}
	return ignored()
}

func (m *Machine) onMainMenu(sess *model.Session, ev Event) Reply {
	if ev.Type != EventSelectCategory {
		return ignored()
	}
	category, ok := CategoryByID(ev.Value)
	if !ok {
		return ignored()
	}
	if !move(sess, model.StateSelectTemplate) {
		return ignored()
	}
	sess.Category = category.ID
	sess.UpdatedAt = time.Now()
	return Reply{
		Text:     category.Name + "\n\n" + category.Description + "\n\n📌 Выберите шаблон:",
		Keyboard: KbTemplates,
		Category: category.ID,
	}
}

func (m *Machine) onSelectTemplate(sess *model.Session, ev Event) Reply {
	switch ev.Type {
	case EventBack:
		if !move(sess, model.StateMainMenu) {
			return ignored()
		}
		sess.Category = ""
		return mainMenuReply()
	case EventSelectTemplate:
		category, ok := CategoryByID(sess.Category)
		if !ok {
			return ignored()
		}
		tpl, ok := templateOf(category, ev.Value)
		if !ok {
			return ignored()
		}
		if !move(sess, model.StateCollectFields) {
			return ignored()
		}
		sess.TemplateID = tpl.ID
		sess.FieldIndex = 0
		sess.UpdatedAt = time.Now()
		reply := m.fieldReply(sess)
		reply.Text = "✅ Шаблон выбран: " + tpl.Name + "\n\n" + reply.Text
		return reply
	}
	return ignored()
}

func (m *Machine) onCollectFields(sess *model.Session, ev Event) Reply {
	fields := plan(sess.Category)
	if sess.FieldIndex >= len(fields) {
		return ignored()
	}
	spec := fields[sess.FieldIndex]

	switch ev.Type {
	case EventText:
		switch spec.Kind {
		case KindChoice:
			// для этого узла ждем только кнопку
			return ignored()
		case KindAmount:
			value, err := parseAmount(ev.Value)
			if err != nil {
				// повтор того же узла, сессия не тронута
				return m.rejectReply(sess, spec, "❌ Неверная сумма. Введите положительное число (например 2500).")
			}
			storeField(sess, spec, strconv.FormatFloat(value, 'f', 2, 64))
		default:
			text := strings.TrimSpace(ev.Value)
			if text == "" {
				return m.rejectReply(sess, spec, "❌ Поле не может быть пустым.")
			}
			storeField(sess, spec, text)
		}
		return m.advance(sess)
	case EventSkip:
		if !spec.Optional {
			return ignored()
		}
		storeField(sess, spec, "")
		return m.advance(sess)
	case EventChoice:
		if spec.Kind != KindChoice || !spec.hasChoice(ev.Value) {
			return ignored()
		}
		storeField(sess, spec, ev.Value)
		return m.advance(sess)
	}
	return ignored()
}

func (m *Machine) onConfirm(sess *model.Session, ev Event) Reply {
	switch ev.Type {
	case EventConfirm:
		fields := make(map[string]string, len(sess.Fields))
		for k, v := range sess.Fields {
			fields[k] = v
		}
		finalized := &Finalized{
			UserID:     sess.UserID,
			Category:   sess.Category,
			TemplateID: sess.TemplateID,
			Fields:     fields,
			Result:     sess.Result,
		}
		if !move(sess, model.StateDone) {
			return ignored()
		}
		return Reply{Text: "⏳ Генерирую документ...", Finalized: finalized}
	case EventAbort:
		if !move(sess, model.StateDone) {
			return ignored()
		}
		return Reply{Text: "❌ Операция отменена."}
	}
	return ignored()
}

// storeField записывает принятое значение текущего узла.
func storeField(sess *model.Session, spec FieldSpec, value string) {
	if spec.Normalize != nil && value != "" {
		value = spec.Normalize(value)
	}
	sess.Fields[spec.Key] = value
	sess.UpdatedAt = time.Now()
}

// advance переходит к следующему узлу плана или, если план исчерпан,
// на экран подтверждения. Для зарплатных категорий здесь вызывается
// налоговый движок.
func (m *Machine) advance(sess *model.Session) Reply {
	sess.FieldIndex++
	fields := plan(sess.Category)
	if sess.FieldIndex < len(fields) {
		move(sess, model.StateCollectFields)
		return m.fieldReply(sess)
	}
	if !move(sess, model.StateConfirm) {
		return ignored()
	}
	m.computeResult(sess)
	return Reply{
		Text:     buildSummary(sess) + "\n\n*Сгенерировать документ?*",
		Keyboard: KbConfirm,
	}
}

// computeResult считает зарплатную раскладку для категорий,
// у которых она есть. Входы уже провалидированы узлами анкеты.
func (m *Machine) computeResult(sess *model.Session) {
	switch sess.Category {
	case "payroll":
		salary, err := strconv.ParseFloat(sess.Fields["salary"], 64)
		if err != nil {
			return
		}
		result := m.table.Compute(salary, tax.PayFrequency(sess.Fields["period"]), sess.Fields["province"])
		sess.Result = &result
	case "taxslip":
		income, err := strconv.ParseFloat(sess.Fields["income"], 64)
		if err != nil {
			return
		}
		result := m.table.Compute(income, tax.FreqAnnual, sess.Fields["province"])
		sess.Result = &result
	}
}

func (m *Machine) fieldReply(sess *model.Session) Reply {
	fields := plan(sess.Category)
	spec := fields[sess.FieldIndex]
	reply := Reply{
		Text: "📝 *Шаг " + strconv.Itoa(sess.FieldIndex+1) + "/" + strconv.Itoa(len(fields)) + "*\n" + spec.Prompt,
	}
	switch {
	case spec.Kind == KindChoice:
		reply.Keyboard = KbChoices
		reply.Choices = spec.Choices
	case spec.Optional:
		reply.Keyboard = KbSkip
	}
	return reply
}

// rejectReply повторяет запрос текущего узла после невалидного ввода.
func (m *Machine) rejectReply(sess *model.Session, spec FieldSpec, reason string) Reply {
	reply := m.fieldReply(sess)
	reply.Text = reason + "\n\n" + reply.Text
	return reply
}

func mainMenuReply() Reply {
	text := "📌 *Выберите категорию документа:*\n"
	for _, c := range Categories {
		text += "\n" + c.Name + " — " + c.Description
	}
	return Reply{Text: text, Keyboard: KbMainMenu}
}
