package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/docugen/docgen_bot/internal/wizard"
)

func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	if update.Message != nil && update.Message.IsCommand() {
		return b.handleCommand(update.Message)
	}

	if update.CallbackQuery != nil {
		return b.handleCallback(update.CallbackQuery)
	}

	if update.Message != nil {
		return b.handleMessage(update.Message)
	}

	return nil
}

func (b *Bot) handleCommand(message *tgbotapi.Message) error {
	userName := displayName(message.From)

	switch message.Command() {
	case "start":
		b.dispatch(message.From.ID, message.Chat.ID, userName, wizard.Event{Type: wizard.EventStart})
	case "cancel":
		b.dispatch(message.From.ID, message.Chat.ID, userName, wizard.Event{Type: wizard.EventCancel})
	case "help":
		b.handleHelp(message)
	case "history":
		b.handleHistory(message)
	}

	return nil
}

func (b *Bot) handleMessage(message *tgbotapi.Message) error {
	b.dispatch(message.From.ID, message.Chat.ID, displayName(message.From),
		wizard.Event{Type: wizard.EventText, Value: message.Text})
	return nil
}

// handleCallback переводит callback-данные кнопок в события машины.
// Транспорт гарантирует, что значение выбора приходит только из набора,
// показанного на клавиатуре.
func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) error {
	userID := callback.From.ID
	chatID := callback.Message.Chat.ID
	userName := displayName(callback.From)
	data := callback.Data

	switch {
	case strings.HasPrefix(data, "cat_"):
		b.dispatch(userID, chatID, userName,
			wizard.Event{Type: wizard.EventSelectCategory, Value: strings.TrimPrefix(data, "cat_")})
	case strings.HasPrefix(data, "tpl_"):
		b.dispatch(userID, chatID, userName,
			wizard.Event{Type: wizard.EventSelectTemplate, Value: strings.TrimPrefix(data, "tpl_")})
	case data == "back_main":
		b.dispatch(userID, chatID, userName, wizard.Event{Type: wizard.EventBack})
	case data == "skip":
		b.dispatch(userID, chatID, userName, wizard.Event{Type: wizard.EventSkip})
	case strings.HasPrefix(data, "choice_"):
		b.dispatch(userID, chatID, userName,
			wizard.Event{Type: wizard.EventChoice, Value: strings.TrimPrefix(data, "choice_")})
	case data == "confirm_yes":
		b.dispatch(userID, chatID, userName, wizard.Event{Type: wizard.EventConfirm})
	case data == "confirm_edit":
		b.dispatch(userID, chatID, userName, wizard.Event{Type: wizard.EventRestart})
	case data == "confirm_cancel":
		b.dispatch(userID, chatID, userName, wizard.Event{Type: wizard.EventAbort})
	}

	// Отвечаем на callback, чтобы убрать loading indicator
	b.api.Request(tgbotapi.NewCallback(callback.ID, ""))

	return nil
}

func (b *Bot) handleHelp(message *tgbotapi.Message) {
	text := "📚 *КАК ПОЛЬЗОВАТЬСЯ БОТОМ*\n\n" +
		"*Команды:*\n" +
		"• /start — главное меню и новый документ\n" +
		"• /help — эта справка\n" +
		"• /history — ваши последние документы\n" +
		"• /cancel — отменить текущую операцию\n\n" +
		"*Как это работает:*\n" +
		"1️⃣ Выберите категорию документа\n" +
		"2️⃣ Выберите шаблон\n" +
		"3️⃣ Заполните анкету шаг за шагом\n" +
		"4️⃣ Подтвердите и получите PDF\n\n" +
		"Поля с пометкой (необязательно) можно пропустить."

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ParseMode = "Markdown"
	b.api.Send(msg)
}

func (b *Bot) handleHistory(message *tgbotapi.Message) {
	documents, err := b.repo.RecentDocuments(context.Background(), message.From.ID, 10)
	if err != nil {
		fmt.Printf("Error getting documents: %v\n", err)
		b.sendErrorMessage(message.Chat.ID, "Не удалось получить историю документов")
		return
	}

	if len(documents) == 0 {
		b.api.Send(tgbotapi.NewMessage(message.Chat.ID, "📂 У вас пока нет сохраненных документов."))
		return
	}

	text := "📚 *ВАШИ ПОСЛЕДНИЕ ДОКУМЕНТЫ:*\n\n"
	for i, doc := range documents {
		text += fmt.Sprintf("%d. %s — %s\n", i+1,
			wizard.TemplateName(doc.TemplateID),
			doc.CreatedAt.Format("2006-01-02 15:04"))
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ParseMode = "Markdown"
	b.api.Send(msg)
}

func displayName(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	if user.UserName != "" {
		return user.UserName
	}
	return user.FirstName
}
