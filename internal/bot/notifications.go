package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// notifyAdmins sends text to every admin and, when set, the orders channel.
func (b *Bot) notifyAdmins(text string) {
	for _, adminID := range b.settings.AdminIDs {
		if _, err := b.api.Send(tgbotapi.NewMessage(adminID, text)); err != nil {
			b.logger.Error("Failed to notify admin",
				zap.Int64("admin_id", adminID),
				zap.Error(err))
		}
	}

	if b.settings.ChannelID != 0 {
		if _, err := b.api.Send(tgbotapi.NewMessage(b.settings.ChannelID, text)); err != nil {
			b.logger.Error("Failed to notify channel",
				zap.Int64("channel_id", b.settings.ChannelID),
				zap.Error(err))
		}
	}
}
