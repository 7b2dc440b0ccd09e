package telegram

import (
	"equeue-slip-bot/internal/constant"
	"equeue-slip-bot/pkg/conversation"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func menuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(constant.MenuLayout))
	for _, labels := range constant.MenuLayout {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(labels))
		for _, label := range labels {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
		}
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(buttons...))
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.OneTimeKeyboard = true
	kb.ResizeKeyboard = true
	return kb
}

func replyMarkup(r conversation.Reply) interface{} {
	if r.WithMenu() {
		return menuKeyboard()
	}
	return tgbotapi.NewRemoveKeyboard(true)
}

// chattable renders a reply as the Telegram request that delivers it.
func chattable(chatID int64, r conversation.Reply) tgbotapi.Chattable {
	if r.Kind == conversation.ReplyArtifact && r.Artifact != nil {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(r.Artifact.Path))
		photo.Caption = r.Text
		photo.ReplyMarkup = replyMarkup(r)
		return photo
	}
	msg := tgbotapi.NewMessage(chatID, r.Text)
	msg.ReplyMarkup = replyMarkup(r)
	return msg
}
