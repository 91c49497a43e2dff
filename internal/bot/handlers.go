package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"rug-quote/internal/calculator"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := senderID(msg)

	switch msg.Command() {
	case "start":
		b.handleStart(ctx, chatID, userID)
	case "help":
		text := helpText
		if b.isAdmin(userID) {
			text += adminHelpText
		}
		b.sendText(chatID, text)
	case "unit":
		b.handleUnit(ctx, chatID, userID, msg.CommandArguments())
	case "sizes":
		b.sendText(chatID, formatRooms(calculator.RoomRecommendations()))
	case "export":
		if b.isAdmin(userID) {
			b.handleExport(ctx, chatID)
		}
	case "status":
		if b.isAdmin(userID) {
			b.handleStatus(ctx, chatID, msg.CommandArguments())
		}
	case "material":
		if b.isAdmin(userID) {
			b.handleMaterial(ctx, chatID, msg.CommandArguments())
		}
	default:
		b.sendText(chatID, "Unknown command. Use /help")
	}
}

func (b *Bot) handleDefault(chatID int64) {
	b.sendText(chatID, "Use /start to price a rug")
}

func (b *Bot) handleStart(ctx context.Context, chatID, userID int64) {
	shape, err := b.prefs.Shape(ctx, userID)
	if err != nil {
		b.logger.Warn("Failed to load preferred shape",
			zap.Int64("user_id", userID),
			zap.Error(err))
	}

	sel := calculator.DefaultSelection()
	sel.SetShape(shape)

	state := DialogState{Step: StepShape, Selection: sel}
	if !b.saveState(ctx, chatID, state) {
		return
	}

	b.sendWithKeyboard(chatID, "Choose a rug shape:", createShapeKeyboard(shape))
}

func (b *Bot) handleUnit(ctx context.Context, chatID, userID int64, args string) {
	unit := calculator.Unit(strings.ToLower(strings.TrimSpace(args)))
	if !unit.Valid() {
		current := b.preferredUnit(ctx, userID)
		b.sendText(chatID, "Current unit: "+string(current)+". Usage: /unit ft|in|cm|m")
		return
	}

	if err := b.prefs.SetUnit(ctx, userID, unit); err != nil {
		b.logger.Error("Failed to save unit",
			zap.Int64("user_id", userID),
			zap.Error(err))
		b.sendError(chatID, "Could not save the unit")
		return
	}
	b.sendText(chatID, "✅ Sizes will be read as "+unitName(unit))
}

func (b *Bot) handleWidth(ctx context.Context, msg *tgbotapi.Message, state DialogState) {
	chatID := msg.Chat.ID
	unit := b.preferredUnit(ctx, senderID(msg))

	feet, err := calculator.ParseLength(msg.Text, unit)
	if err != nil {
		b.logger.Debug("Bad width input", zap.String("text", msg.Text), zap.Error(err))
		b.sendError(chatID, "Couldn't read that size. "+widthPrompt(state.Selection.Shape, unit))
		return
	}

	state.Selection.SetWidth(feet)
	if state.Selection.Shape.Symmetric() {
		b.askMaterial(ctx, chatID, state)
		return
	}

	state.Step = StepLength
	if b.saveState(ctx, chatID, state) {
		b.sendText(chatID, lengthPrompt(unit))
	}
}

func (b *Bot) handleLength(ctx context.Context, msg *tgbotapi.Message, state DialogState) {
	chatID := msg.Chat.ID
	unit := b.preferredUnit(ctx, senderID(msg))

	feet, err := calculator.ParseLength(msg.Text, unit)
	if err != nil {
		b.logger.Debug("Bad length input", zap.String("text", msg.Text), zap.Error(err))
		b.sendError(chatID, "Couldn't read that size. "+lengthPrompt(unit))
		return
	}

	state.Selection.SetLength(feet)
	b.askMaterial(ctx, chatID, state)
}

func (b *Bot) askWidth(ctx context.Context, chatID, userID int64, state DialogState) {
	state.Step = StepWidth
	if b.saveState(ctx, chatID, state) {
		b.sendText(chatID, widthPrompt(state.Selection.Shape, b.preferredUnit(ctx, userID)))
	}
}

func (b *Bot) askMaterial(ctx context.Context, chatID int64, state DialogState) {
	state.Step = StepMaterial
	if b.saveState(ctx, chatID, state) {
		b.sendWithKeyboard(chatID, "Size: "+state.Selection.DisplaySize()+"\nChoose a material:",
			createMaterialKeyboard(b.calc.Materials()))
	}
}

func (b *Bot) preferredUnit(ctx context.Context, userID int64) calculator.Unit {
	unit, err := b.prefs.Unit(ctx, userID)
	if err != nil {
		b.logger.Warn("Failed to load preferred unit",
			zap.Int64("user_id", userID),
			zap.Error(err))
	}
	return unit
}

// showQuote prices the selection. An invalid size sends the customer back to
// the width step.
func (b *Bot) showQuote(ctx context.Context, chatID, userID int64, state DialogState) {
	sel := state.Selection
	q, err := b.calc.Quote(sel.Dimensions(), sel.Material, sel.AddOns())
	if err != nil {
		b.logger.Error("Failed to price selection",
			zap.Int64("chat_id", chatID),
			zap.Any("selection", sel),
			zap.Error(err))
		b.sendError(chatID, "This combination can't be priced. Use /start to try again")
		return
	}

	if !q.Valid {
		b.sendText(chatID, formatValidationErrors(q.Errors))
		b.askWidth(ctx, chatID, userID, state)
		return
	}

	state.Step = StepReview
	if b.saveState(ctx, chatID, state) {
		b.sendWithKeyboard(chatID, formatQuote(sel, q), createReviewKeyboard())
	}
}
