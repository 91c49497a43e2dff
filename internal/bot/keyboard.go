package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"rug-quote/internal/calculator"
)

// BOT KEYBOARDS

const (
	prefixShape      = "shape:"
	prefixMaterial   = "material:"
	prefixProtection = "protection:"
	prefixPad        = "pad:"
	prefixCart       = "cart:"

	padNone     = "none"
	cartAdd     = "add"
	cartRestart = "restart"
)

func createShapeKeyboard(preferred calculator.Shape) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, shape := range calculator.Shapes {
		label := shape.Title()
		if shape == preferred {
			label = "⭐ " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, prefixShape+string(shape)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func createMaterialKeyboard(materials []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, m := range materials {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(m, prefixMaterial+m),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func createProtectionKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes", prefixProtection+"yes"),
			tgbotapi.NewInlineKeyboardButtonData("No", prefixProtection+"no"),
		),
	)
}

func createPadKeyboard(padTypes []string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("No pad", prefixPad+padNone),
		),
	}
	for _, p := range padTypes {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(p, prefixPad+p),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func createReviewKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 Add to cart", prefixCart+cartAdd),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Start over", prefixCart+cartRestart),
		),
	)
}
