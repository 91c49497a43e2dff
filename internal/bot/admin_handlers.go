package bot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"rug-quote/internal/calculator"
	"rug-quote/internal/storage"
)

// Material names end up in callback data, which Telegram caps at 64 bytes.
var materialNameRe = regexp.MustCompile(`^[a-z0-9-]{1,40}$`)

func (b *Bot) handleExport(ctx context.Context, chatID int64) {
	since := b.now().Add(-b.settings.ExportWindow)

	quotes, err := b.quotes.ListQuotes(ctx, since, exportLimit)
	if err != nil {
		b.logger.Error("Failed to list quotes", zap.Error(err))
		b.sendError(chatID, "Could not load quotes")
		return
	}
	if len(quotes) == 0 {
		b.sendText(chatID, "No quotes yet")
		return
	}

	buf, err := storage.BuildQuotesWorkbook(quotes)
	if err != nil {
		b.logger.Error("Failed to build workbook", zap.Error(err))
		b.sendError(chatID, "Could not build the report")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("quotes_%s.xlsx", b.now().Format("2006-01-02")),
		Bytes: buf.Bytes(),
	})
	doc.Caption = fmt.Sprintf("%d quotes", len(quotes))
	if _, err := b.api.Send(doc); err != nil {
		b.logger.Error("Failed to send export", zap.Error(err))
	}
}

// handleStatus handles "/status <reference>" (show) and
// "/status <reference> <status>" (update).
func (b *Bot) handleStatus(ctx context.Context, chatID int64, args string) {
	fields := strings.Fields(args)
	if len(fields) == 1 {
		b.showQuoteRecord(ctx, chatID, fields[0])
		return
	}
	if len(fields) != 2 {
		b.sendText(chatID, "Usage: /status <reference> <quoted|in_cart|cart_failed|ordered|cancelled>")
		return
	}
	reference, status := fields[0], fields[1]

	if !storage.ValidStatus(status) {
		b.sendError(chatID, "Unknown status "+status)
		return
	}

	err := b.quotes.UpdateQuoteStatus(ctx, reference, status, nil)
	if errors.Is(err, storage.ErrQuoteNotFound) {
		b.sendError(chatID, "Quote "+reference+" not found")
		return
	}
	if err != nil {
		b.logger.Error("Failed to update quote status",
			zap.String("reference", reference),
			zap.Error(err))
		b.sendError(chatID, "Could not update the quote")
		return
	}

	b.logger.Info("Quote status changed by admin",
		zap.String("reference", reference),
		zap.String("status", status))
	b.sendText(chatID, "✅ "+reference+" → "+status)
}

func (b *Bot) showQuoteRecord(ctx context.Context, chatID int64, reference string) {
	rec, err := b.quotes.GetQuoteByReference(ctx, reference)
	if errors.Is(err, storage.ErrQuoteNotFound) {
		b.sendError(chatID, "Quote "+reference+" not found")
		return
	}
	if err != nil {
		b.logger.Error("Failed to get quote",
			zap.String("reference", reference),
			zap.Error(err))
		b.sendError(chatID, "Could not load the quote")
		return
	}
	b.sendText(chatID, formatCartNotification(*rec, "")+"\nStatus: "+rec.Status)
}

// handleMaterial handles "/material <name> <multiplier>". The change is saved
// to the materials table and applied to new quotes right away.
func (b *Bot) handleMaterial(ctx context.Context, chatID int64, args string) {
	if b.materials == nil {
		b.sendError(chatID, "Materials are read-only in this deployment")
		return
	}

	fields := strings.Fields(args)
	if len(fields) != 2 {
		b.sendText(chatID, "Usage: /material <name> <multiplier>")
		return
	}
	name := strings.ToLower(fields[0])
	if !materialNameRe.MatchString(name) {
		b.sendError(chatID, "Material name must be 1-40 characters of a-z, 0-9 or -")
		return
	}
	multiplier, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || !calculator.ValidFactor(multiplier) {
		b.sendError(chatID, "Multiplier must be a positive number")
		return
	}

	cfg := b.calc.Config()
	cfg.MaterialMultipliers[name] = multiplier
	var opts []calculator.Option
	if b.calc.Strict() {
		opts = append(opts, calculator.WithStrict())
	}
	calc, err := calculator.New(cfg, opts...)
	if err != nil {
		b.sendError(chatID, err.Error())
		return
	}

	if err := b.materials.UpsertMaterial(ctx, name, multiplier); err != nil {
		b.logger.Error("Failed to save material",
			zap.String("material", name),
			zap.Error(err))
		b.sendError(chatID, "Could not save the material")
		return
	}
	b.calc = calc

	b.logger.Info("Material updated by admin",
		zap.String("material", name),
		zap.Float64("multiplier", multiplier))
	b.sendText(chatID, fmt.Sprintf("✅ %s × %s", name, strconv.FormatFloat(multiplier, 'f', -1, 64)))
}
