package bot

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"rug-quote/internal/calculator"
	"rug-quote/internal/preferences"
)

const (
	actionCartAdd = "cart_add"

	defaultCartAddLimit  = 5
	defaultCartAddWindow = 10 * time.Minute
	defaultExportWindow  = 30 * 24 * time.Hour
	exportLimit          = 1000
)

type Settings struct {
	ProductID     int64
	AdminIDs      []int64
	ChannelID     int64
	CartAddLimit  int64
	CartAddWindow time.Duration
	ExportWindow  time.Duration
}

type Deps struct {
	State     StateStore
	Prefs     *preferences.Preferences
	Calc      *calculator.Calculator
	Quotes    QuoteRepository
	Cart      CartClient
	Limiter   RateLimiter
	Materials MaterialStore // optional, enables /material
}

type Bot struct {
	api       Sender
	logger    *zap.Logger
	state     StateStore
	prefs     *preferences.Preferences
	calc      *calculator.Calculator
	quotes    QuoteRepository
	cart      CartClient
	limiter   RateLimiter
	materials MaterialStore
	settings  Settings
	mu        sync.Mutex
	now       func() time.Time
	handlers  map[string]func(context.Context, *tgbotapi.Message, DialogState)
}

func New(api Sender, deps Deps, settings Settings, logger *zap.Logger) *Bot {
	if settings.CartAddLimit <= 0 {
		settings.CartAddLimit = defaultCartAddLimit
	}
	if settings.CartAddWindow <= 0 {
		settings.CartAddWindow = defaultCartAddWindow
	}
	if settings.ExportWindow <= 0 {
		settings.ExportWindow = defaultExportWindow
	}

	b := &Bot{
		api:       api,
		logger:    logger,
		state:     deps.State,
		prefs:     deps.Prefs,
		calc:      deps.Calc,
		quotes:    deps.Quotes,
		cart:      deps.Cart,
		limiter:   deps.Limiter,
		materials: deps.Materials,
		settings:  settings,
		now:       time.Now,
	}
	b.registerHandlers()
	return b
}

// Text input is only expected while a size is being entered. Every other
// step is driven by inline keyboards.
func (b *Bot) registerHandlers() {
	b.handlers = map[string]func(context.Context, *tgbotapi.Message, DialogState){
		StepWidth:  b.handleWidth,
		StepLength: b.handleLength,
	}
}

func (b *Bot) Start(ctx context.Context, updater Updater) error {
	b.logger.Info("Starting bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := updater.GetUpdatesChan(u)
	defer updater.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down bot")
			return nil

		case update, ok := <-updates:
			if !ok {
				b.logger.Info("Updates channel closed")
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate processes a single update. Updates are serialized.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if update.Message != nil {
		b.processMessage(ctx, update.Message)
	} else if update.CallbackQuery != nil {
		b.processCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	b.logger.Debug("Processing message",
		zap.Int64("chat_id", chatID),
		zap.String("text", msg.Text))

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	state, err := b.state.Get(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get user state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	if handler, exists := b.handlers[state.Step]; exists {
		handler(ctx, msg, state)
	} else {
		b.handleDefault(chatID)
	}
}

func (b *Bot) processCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID

	b.logger.Debug("Processing callback",
		zap.Int64("chat_id", chatID),
		zap.String("data", callback.Data))

	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Warn("Failed to answer callback", zap.Error(err))
	}

	b.handleCallback(ctx, callback)
}

func (b *Bot) saveState(ctx context.Context, chatID int64, state DialogState) bool {
	if err := b.state.Save(ctx, chatID, state); err != nil {
		b.logger.Error("Failed to save state",
			zap.Int64("chat_id", chatID),
			zap.String("step", state.Step),
			zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return false
	}
	return true
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", msg.ChatID),
			zap.String("text", msg.Text),
			zap.Error(err))
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	b.sendMessage(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	b.sendMessage(msg)
}

func (b *Bot) sendError(chatID int64, text string) {
	b.sendText(chatID, "❌ "+text)
}

func (b *Bot) isAdmin(userID int64) bool {
	for _, id := range b.settings.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func senderID(msg *tgbotapi.Message) int64 {
	if msg.From != nil {
		return msg.From.ID
	}
	return msg.Chat.ID
}
