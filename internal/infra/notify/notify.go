// Package notify доставляет пользователю короткие сообщения об итогах операций.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/empresa-pos/internal/optimistic"
)

type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Telegram шлёт сообщения в один чат.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

// NewTelegramWithAPI — для уже созданного клиента (в т.ч. с другим endpoint).
func NewTelegramWithAPI(api *tgbotapi.BotAPI, chatID int64) *Telegram {
	return &Telegram{api: api, chatID: chatID}
}

func (t *Telegram) Notify(_ context.Context, text string) error {
	_, err := t.api.Send(tgbotapi.NewMessage(t.chatID, text))
	return err
}

// Log пишет уведомления в лог; используется, когда Telegram не настроен.
type Log struct{ log *slog.Logger }

func NewLog(log *slog.Logger) Log { return Log{log: log} }

func (l Log) Notify(_ context.Context, text string) error {
	l.log.Info("notification", "text", text)
	return nil
}

// Badge — отметка успеха/ошибки перед текстом.
func Badge(ok bool) string {
	if ok {
		return "✅"
	}
	return "⚠️"
}

// Format собирает текст уведомления об итоге операции.
func Format(o optimistic.Outcome) string {
	return fmt.Sprintf("%s %s", Badge(o.Success), o.Message)
}
