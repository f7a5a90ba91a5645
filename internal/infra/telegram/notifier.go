package telegram

import (
	"fmt"

	"gopkg.in/telebot.v4"
)

// AdminNotifier отправляет уведомления оператору в личный чат.
type AdminNotifier struct {
	bot    *telebot.Bot
	chatID int64
}

// NewAdminNotifier создает новый экземпляр AdminNotifier.
func NewAdminNotifier(bot *telebot.Bot, chatID int64) *AdminNotifier {
	return &AdminNotifier{bot: bot, chatID: chatID}
}

// Notify отправляет текст оператору. Вызывающая сторона решает,
// является ли сбой доставки фатальным (для записи результатов — нет).
func (n *AdminNotifier) Notify(text string) error {
	if _, err := n.bot.Send(telebot.ChatID(n.chatID), text); err != nil {
		return fmt.Errorf("failed to notify operator: %w", err)
	}
	return nil
}
