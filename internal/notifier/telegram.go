package notifier

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram sends review reminders to users who linked a Telegram chat
type Telegram struct {
	bot *tgbotapi.BotAPI
}

// NewTelegram connects to the Telegram Bot API
func NewTelegram(token string) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Telegram: %v", err)
	}
	return &Telegram{bot: bot}, nil
}

// SendReminder tells one chat how many words are waiting for review
func (t *Telegram) SendReminder(chatID int64, count int) error {
	text := fmt.Sprintf("Сәлем! You have %d word(s) waiting for review. Time to practice!", count)
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %v", err)
	}
	return nil
}
