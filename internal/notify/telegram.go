// Package notify pushes moderation alerts to admins over Telegram, so new
// reports get eyes before anyone opens the dashboard.
package notify

import (
	"fmt"
	"unicode/utf8"

	"careline/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// TelegramNotifier implements moderation.Notifier over a Telegram bot. All
// alerts go to one admin chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier connects the bot. chatID is the admin group the alerts
// land in.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Info().Str("bot", bot.Self.UserName).Msg("telegram admin notifier connected")
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// ReportFiled alerts admins about a newly filed report. It runs on its own
// goroutine; failures are logged and dropped, an alert is never worth
// failing the report intake for.
func (n *TelegramNotifier) ReportFiled(report *models.MessageReport, message *models.Message) {
	text := fmt.Sprintf(
		"🚩 New message report\nReason: %s\nReport: %s\nMessage: %s\nContent: %s",
		report.Reason, report.ID, message.ID, truncate(message.Content, 200),
	)

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		log.Error().Err(err).Str("report_id", report.ID).Msg("failed to send admin alert")
	}
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "…"
}
