package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// TelegramMirror copies every dispatched notification into one configured
// operations chat. It is a monitoring channel, not a per-user one, so the
// user id only shows up in the message text.
type TelegramMirror struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

func NewTelegramMirror(token string, chatID int64, logger *zap.Logger) (*TelegramMirror, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramMirror{api: api, chatID: chatID, logger: logger}, nil
}

func (m *TelegramMirror) Send(ctx context.Context, userID, title, body string) error {
	text := fmt.Sprintf("%s\n%s\n(user %s)", title, body, userID)
	msg := tgbotapi.NewMessage(m.chatID, text)
	if _, err := m.api.Send(msg); err != nil {
		m.logger.Warn("telegram mirror send failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}
