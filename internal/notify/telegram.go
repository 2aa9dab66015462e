package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"infrawatch/internal/models"
)

// TelegramNotifier sends Critical-scan alerts to a fixed chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier authorizes against the Bot API.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// ScanAlert sends a short summary of a Critical scan.
func (n *TelegramNotifier) ScanAlert(record models.DetectionRecord, items []models.DetectionItem) error {
	msg := tgbotapi.NewMessage(n.chatID, formatAlert(record, items))
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send alert: %w", err)
	}
	return nil
}

// formatAlert builds the alert text. Listed items are capped so a noisy scan
// does not produce a wall of text.
func formatAlert(record models.DetectionRecord, items []models.DetectionItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Critical scan at %s: %d defect(s) at threshold %.2f\n",
		record.Timestamp.Format("2006-01-02 15:04:05"), record.DetectionCount, record.ConfidenceThreshold)

	const maxListed = 5
	for i, item := range items {
		if i == maxListed {
			fmt.Fprintf(&b, "... and %d more", len(items)-maxListed)
			break
		}
		fmt.Fprintf(&b, "%d. %s %.0f%% (%s)\n", item.Index, item.ClassName, item.Confidence*100, item.Severity)
	}
	return b.String()
}

var _ Notifier = (*TelegramNotifier)(nil)
