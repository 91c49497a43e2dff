package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"rug-quote/internal/calculator"
)

func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	userID := chatID
	if callback.From != nil {
		userID = callback.From.ID
	}
	data := callback.Data

	state, err := b.state.Get(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get user state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	switch {
	case strings.HasPrefix(data, prefixShape):
		b.handleShapeSelection(ctx, chatID, userID, state, strings.TrimPrefix(data, prefixShape))
	case strings.HasPrefix(data, prefixMaterial):
		b.handleMaterialSelection(ctx, chatID, state, strings.TrimPrefix(data, prefixMaterial))
	case strings.HasPrefix(data, prefixProtection):
		b.handleProtectionSelection(ctx, chatID, state, strings.TrimPrefix(data, prefixProtection))
	case strings.HasPrefix(data, prefixPad):
		b.handlePadSelection(ctx, chatID, userID, state, strings.TrimPrefix(data, prefixPad))
	case strings.HasPrefix(data, prefixCart):
		b.handleCartAction(ctx, chatID, callback.From, state, strings.TrimPrefix(data, prefixCart))
	default:
		b.logger.Warn("Unknown callback data",
			zap.Int64("chat_id", chatID),
			zap.String("data", data))
	}
}

// Stale buttons from an earlier dialog are ignored.
func (b *Bot) expectStep(chatID int64, state DialogState, step string) bool {
	if state.Step == step {
		return true
	}
	b.logger.Debug("Callback for inactive step",
		zap.Int64("chat_id", chatID),
		zap.String("expected", step),
		zap.String("current", state.Step))
	b.handleDefault(chatID)
	return false
}

func (b *Bot) handleShapeSelection(ctx context.Context, chatID, userID int64, state DialogState, raw string) {
	if !b.expectStep(chatID, state, StepShape) {
		return
	}

	shape, err := calculator.ParseShape(raw)
	if err != nil {
		b.sendError(chatID, "Unknown shape")
		return
	}

	state.Selection.SetShape(shape)
	if err := b.prefs.SetShape(ctx, userID, shape); err != nil {
		b.logger.Warn("Failed to save preferred shape",
			zap.Int64("user_id", userID),
			zap.Error(err))
	}

	b.askWidth(ctx, chatID, userID, state)
}

func (b *Bot) handleMaterialSelection(ctx context.Context, chatID int64, state DialogState, material string) {
	if !b.expectStep(chatID, state, StepMaterial) {
		return
	}

	if _, ok := b.calc.Config().MaterialMultipliers[material]; !ok {
		b.sendError(chatID, "Unknown material")
		return
	}

	state.Selection.Material = material
	state.Step = StepProtection
	if b.saveState(ctx, chatID, state) {
		b.sendWithKeyboard(chatID, "Add stain protection?", createProtectionKeyboard())
	}
}

func (b *Bot) handleProtectionSelection(ctx context.Context, chatID int64, state DialogState, answer string) {
	if !b.expectStep(chatID, state, StepProtection) {
		return
	}

	state.Selection.IncludeProtection = answer == "yes"
	state.Step = StepPad
	if b.saveState(ctx, chatID, state) {
		b.sendWithKeyboard(chatID, "Add a rug pad?", createPadKeyboard(b.calc.PadTypes()))
	}
}

func (b *Bot) handlePadSelection(ctx context.Context, chatID, userID int64, state DialogState, padType string) {
	if !b.expectStep(chatID, state, StepPad) {
		return
	}

	if padType == padNone {
		state.Selection.IncludePad = false
	} else {
		if _, ok := b.calc.Config().PadPrices[padType]; !ok {
			b.sendError(chatID, "Unknown pad type")
			return
		}
		state.Selection.IncludePad = true
		state.Selection.PadType = padType
	}

	b.showQuote(ctx, chatID, userID, state)
}

func (b *Bot) handleCartAction(ctx context.Context, chatID int64, from *tgbotapi.User, state DialogState, action string) {
	userID := chatID
	if from != nil {
		userID = from.ID
	}

	switch action {
	case cartRestart:
		b.handleStart(ctx, chatID, userID)
	case cartAdd:
		if !b.expectStep(chatID, state, StepReview) {
			return
		}
		b.addToCart(ctx, chatID, from, state)
	default:
		b.logger.Warn("Unknown cart action", zap.String("action", action))
	}
}
