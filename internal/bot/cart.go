package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"rug-quote/internal/calculator"
	"rug-quote/internal/storage"
	"rug-quote/pkg/cart"
)

func (b *Bot) addToCart(ctx context.Context, chatID int64, from *tgbotapi.User, state DialogState) {
	userID := chatID
	username := ""
	if from != nil {
		userID = from.ID
		username = from.UserName
	}

	exceeded, err := b.limiter.Exceeded(ctx, userID, actionCartAdd, b.settings.CartAddLimit, b.settings.CartAddWindow)
	if err != nil {
		// Redis is down; don't block the sale over it.
		b.logger.Warn("Rate limit check failed",
			zap.Int64("user_id", userID),
			zap.Error(err))
	} else if exceeded {
		b.sendError(chatID, "Too many cart requests. Please try again in a few minutes")
		return
	}

	sel := state.Selection
	q, err := b.calc.Quote(sel.Dimensions(), sel.Material, sel.AddOns())
	if err != nil || !q.Valid {
		b.logger.Warn("Selection no longer valid at checkout",
			zap.Int64("chat_id", chatID),
			zap.Strings("errors", q.Errors),
			zap.Error(err))
		b.showQuote(ctx, chatID, userID, state)
		return
	}

	rec := storage.NewQuoteRecord(userID, sel, q, b.now())
	id, err := b.quotes.SaveQuote(ctx, rec)
	if err != nil {
		b.logger.Error("Failed to save quote",
			zap.Int64("user_id", userID),
			zap.Error(err))
		b.sendError(chatID, "Could not save your quote, please try again")
		return
	}
	rec.ID = id

	item, err := b.cart.AddItem(ctx, cart.AddRequest{
		ID:         b.settings.ProductID,
		Quantity:   1,
		Properties: calculator.LineItemProperties(sel, q),
	})
	if err != nil {
		b.logger.Error("Failed to add item to cart",
			zap.String("reference", rec.Reference),
			zap.Error(err))
		b.setQuoteStatus(ctx, rec.Reference, storage.StatusCartFailed, nil)
		b.sendError(chatID, "The store didn't accept the rug. Tap \"Add to cart\" to retry")
		return
	}

	b.setQuoteStatus(ctx, rec.Reference, storage.StatusInCart, &item.ID)

	b.logger.Info("Rug added to cart",
		zap.String("reference", rec.Reference),
		zap.Int64("user_id", userID),
		zap.Float64("price", q.FinalPrice),
		zap.Int64("line_id", item.ID))

	b.sendText(chatID, "✅ Added to cart: "+sel.DisplaySize()+" "+sel.Material+" "+
		sel.Shape.Title()+" rug, "+calculator.FormatPrice(q.FinalPrice)+
		"\nReference: "+rec.Reference)

	b.notifyAdmins(formatCartNotification(rec, username))

	if err := b.state.Clear(ctx, chatID); err != nil {
		b.logger.Warn("Failed to clear state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

func (b *Bot) setQuoteStatus(ctx context.Context, reference, status string, lineID *int64) {
	if err := b.quotes.UpdateQuoteStatus(ctx, reference, status, lineID); err != nil {
		b.logger.Error("Failed to update quote status",
			zap.String("reference", reference),
			zap.String("status", status),
			zap.Error(err))
	}
}
