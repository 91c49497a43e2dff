package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"rug-quote/internal/storage"
	"rug-quote/pkg/cart"
)

type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Updater interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type StateStore interface {
	Get(ctx context.Context, chatID int64) (DialogState, error)
	Save(ctx context.Context, chatID int64, state DialogState) error
	Clear(ctx context.Context, chatID int64) error
}

type QuoteRepository interface {
	SaveQuote(ctx context.Context, q storage.QuoteRecord) (int64, error)
	GetQuoteByReference(ctx context.Context, reference string) (*storage.QuoteRecord, error)
	ListQuotes(ctx context.Context, since time.Time, limit int) ([]storage.QuoteRecord, error)
	UpdateQuoteStatus(ctx context.Context, reference, status string, cartLineID *int64) error
}

type CartClient interface {
	AddItem(ctx context.Context, req cart.AddRequest) (*cart.LineItem, error)
}

type MaterialStore interface {
	UpsertMaterial(ctx context.Context, name string, multiplier float64) error
}

type RateLimiter interface {
	Exceeded(ctx context.Context, userID int64, action string, limit int64, window time.Duration) (bool, error)
}

var (
	_ Sender          = (*tgbotapi.BotAPI)(nil)
	_ Updater         = (*tgbotapi.BotAPI)(nil)
	_ StateStore      = (*StateStorage)(nil)
	_ QuoteRepository = (*storage.PostgresStorage)(nil)
	_ CartClient      = (*cart.Client)(nil)
	_ RateLimiter     = (*storage.RateLimiter)(nil)
	_ MaterialStore   = (*storage.PostgresStorage)(nil)
)
