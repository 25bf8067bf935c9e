package telegram

import (
	"context"
	"sync"

	"github.com/akomarov/hockey-bot/internal/attendance"
	"github.com/akomarov/hockey-bot/internal/lineup"
	"github.com/akomarov/hockey-bot/internal/metrics"
	"github.com/akomarov/hockey-bot/internal/roster"
	"github.com/akomarov/hockey-bot/internal/schedule"
	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wires the Telegram gateway to the stores. One update is handled at a
// time; there is no serialization of near-simultaneous updates beyond the
// order Telegram delivers them in.
type Bot struct {
	api     Gateway
	players roster.Store
	events  schedule.Store
	ledger  attendance.Ledger
	former  *lineup.Former
	metrics metrics.Metrics

	// pending tracks users who pressed the create-event menu button and owe
	// us one line of "ДД.ММ Тип" input.
	mu      sync.Mutex
	pending map[int64]bool
}

// New connects to the Telegram Bot API and builds the bot.
func New(token string, players roster.Store, events schedule.Store, ledger attendance.Ledger, former *lineup.Former, m metrics.Metrics) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = false
	return NewWithGateway(api, players, events, ledger, former, m), nil
}

// NewWithGateway builds the bot on top of an existing gateway.
func NewWithGateway(api Gateway, players roster.Store, events schedule.Store, ledger attendance.Ledger, former *lineup.Former, m metrics.Metrics) *Bot {
	return &Bot{
		api:     api,
		players: players,
		events:  events,
		ledger:  ledger,
		former:  former,
		metrics: m,
		pending: map[int64]bool{},
	}
}

// Run consumes updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if err := b.HandleUpdate(upd); err != nil {
				log.Error("Failed to handle update", "error", err)
			}
		}
	}
}

// HandleUpdate dispatches a single inbound update.
func (b *Bot) HandleUpdate(upd tgbotapi.Update) error {
	b.metrics.IncUpdatesHandled()
	switch {
	case upd.Message != nil:
		return b.handleMessage(upd.Message)
	case upd.CallbackQuery != nil:
		return b.handleCallback(upd.CallbackQuery)
	}
	return nil
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) setPending(userID int64, waiting bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if waiting {
		b.pending[userID] = true
	} else {
		delete(b.pending, userID)
	}
}

func (b *Bot) isPending(userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending[userID]
}
