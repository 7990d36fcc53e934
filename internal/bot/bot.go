package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/docugen/docgen_bot/internal/document"
	"github.com/docugen/docgen_bot/internal/model"
	"github.com/docugen/docgen_bot/internal/repository"
	"github.com/docugen/docgen_bot/internal/wizard"
)

type Bot struct {
	api       *tgbotapi.BotAPI
	machine   *wizard.Machine
	sessions  *wizard.Store
	assembler *document.Assembler
	repo      repository.Repository
}

func NewBot(token string, machine *wizard.Machine, repo repository.Repository) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:       api,
		machine:   machine,
		sessions:  wizard.NewStore(),
		assembler: document.NewAssembler(),
		repo:      repo,
	}, nil
}

// Start запускает бота в режиме long polling
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if err := b.handleUpdate(update); err != nil {
			// Логируем ошибку, но продолжаем работу
			fmt.Printf("Error handling update: %v\n", err)
		}
	}

	return nil
}

// HandleWebhook - точка входа для обработки входящих webhook-обновлений
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}

	return b.handleUpdate(update)
}

// dispatch проводит событие через машину под блокировкой сессии
// пользователя и отправляет ответ. Переходы одного пользователя
// не пересекаются, терминальный снимок уходит в генерацию.
func (b *Bot) dispatch(userID, chatID int64, userName string, ev wizard.Event) {
	var reply wizard.Reply
	b.sessions.Do(userID, func(sess *model.Session) {
		reply = b.machine.Transition(sess, ev)
	})

	if reply.Ignored {
		return
	}
	b.sendReply(chatID, reply)

	if reply.Finalized != nil {
		b.finalize(chatID, userName, reply.Finalized)
	}
}

func (b *Bot) sendReply(chatID int64, reply wizard.Reply) {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	msg.ParseMode = "Markdown"

	switch reply.Keyboard {
	case wizard.KbMainMenu:
		msg.ReplyMarkup = mainMenuKeyboard()
	case wizard.KbTemplates:
		msg.ReplyMarkup = templatesKeyboard(reply.Category)
	case wizard.KbSkip:
		msg.ReplyMarkup = skipKeyboard()
	case wizard.KbChoices:
		msg.ReplyMarkup = choicesKeyboard(reply.Choices)
	case wizard.KbConfirm:
		msg.ReplyMarkup = confirmKeyboard()
	}

	if _, err := b.api.Send(msg); err != nil {
		fmt.Printf("Error sending reply: %v\n", err)
	}
}

// finalize рендерит и сохраняет документ по снимку завершенной сессии.
// Сессия уже терминальна: любой отказ здесь — предупреждение
// пользователю, а не откат мастера.
func (b *Bot) finalize(chatID int64, userName string, fin *wizard.Finalized) {
	content, err := b.assembler.Render(fin.Category, fin.TemplateID, fin.Fields, fin.Result)
	if err != nil {
		fmt.Printf("Error rendering document: %v\n", err)
		b.sendErrorMessage(chatID, "Не удалось сгенерировать документ. Попробуйте снова: /start")
		return
	}

	doc := &model.Document{
		UserID:      fin.UserID,
		UserName:    userName,
		Category:    fin.Category,
		TemplateID:  fin.TemplateID,
		FormData:    fin.Fields,
		FileContent: content,
	}
	doc.GenerateID()
	doc.FileName = strings.ReplaceAll(fin.TemplateID, "_", "-") + "_" + doc.ID[:8] + ".pdf"

	file := tgbotapi.FileBytes{Name: doc.FileName, Bytes: content}
	send := tgbotapi.NewDocument(chatID, file)
	send.Caption = "✅ Ваш документ готов!\n\n📄 " + doc.FileName
	if _, err := b.api.Send(send); err != nil {
		fmt.Printf("Error sending document: %v\n", err)
		b.sendErrorMessage(chatID, "Не удалось отправить документ")
		return
	}

	if err := b.repo.SaveDocument(context.Background(), doc); err != nil {
		fmt.Printf("Error saving document: %v\n", err)
		// не фатально: документ уже у пользователя
		b.sendErrorMessage(chatID, "Документ не сохранен в историю")
	}

	closing := tgbotapi.NewMessage(chatID,
		"🎉 Готово!\n\n"+
			"Используйте /start чтобы создать новый документ\n"+
			"Используйте /history чтобы посмотреть свои документы")
	if _, err := b.api.Send(closing); err != nil {
		fmt.Printf("Error sending message: %v\n", err)
	}
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "⚠️ "+text)
	if _, err := b.api.Send(msg); err != nil {
		fmt.Printf("Error sending message: %v\n", err)
	}
}
