package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/RaghavSood/bridgeswap/db"
	"github.com/RaghavSood/bridgeswap/registry"
	"github.com/RaghavSood/bridgeswap/session"
	"github.com/RaghavSood/bridgeswap/swaps"
	"github.com/RaghavSood/bridgeswap/wallet"
)

// Sender delivers messages to Telegram. *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Store interface {
	session.History
	GetTransactions(ctx context.Context) ([]db.Transaction, error)
}

type BalanceLookup interface {
	Supports(chain registry.Chain) bool
	GetBalance(ctx context.Context, address string, asset registry.Asset) (decimal.Decimal, error)
	Invalidate(address string, asset registry.Asset)
}

// Deps are the collaborators shared by every chat. Store, Balances and
// Wallets are optional.
type Deps struct {
	Registry   *registry.Registry
	Aggregator session.Aggregator
	Executor   swaps.Executor
	Store      Store
	Balances   BalanceLookup
	Wallets    *wallet.Set
	Session    session.Config
	// IdleTimeout closes chat sessions unused for this long. Zero disables eviction.
	IdleTimeout time.Duration
}

// chat is the swap session of one Telegram chat and the last states pushed to it.
type chat struct {
	id   int64
	sess *session.Session

	mu             sync.Mutex
	lastQuote      session.QuoteState
	lastSubmission session.SubmissionState

	lastActive time.Time // guarded by Bot.mu
}

type Bot struct {
	api    *tgbotapi.BotAPI // nil when constructed with a bare Sender
	sender Sender
	deps   Deps
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	chats map[int64]*chat
	now   func() time.Time
}

func New(token string, deps Deps, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating bot API: %w", err)
	}

	b := newBot(api, deps, logger)
	b.api = api
	b.logger.Info("authorized on account", zap.String("username", api.Self.UserName))
	return b, nil
}

func newBot(sender Sender, deps Deps, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Registry == nil {
		deps.Registry = registry.Default
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Bot{
		sender: sender,
		deps:   deps,
		logger: logger.Named("bot"),
		ctx:    ctx,
		cancel: cancel,
		chats:  make(map[int64]*chat),
		now:    time.Now,
	}
}

// Run processes updates until ctx is done or Stop is called.
func (b *Bot) Run(ctx context.Context) error {
	if b.api == nil {
		return fmt.Errorf("bot has no telegram connection")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	if b.deps.IdleTimeout > 0 {
		go b.evictLoop(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-b.ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(update.Message)
		}
	}
}

// Stop ends Run and closes every chat session.
func (b *Bot) Stop() {
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}
	b.cancel()

	b.mu.Lock()
	defer b.mu.Unlock()
	for id, c := range b.chats {
		c.sess.Close()
		delete(b.chats, id)
	}
}

// chatFor returns the session of a chat, creating it on first use.
func (b *Bot) chatFor(chatID int64) *chat {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c, ok := b.chats[chatID]; ok {
		c.lastActive = b.now()
		return c
	}

	c := &chat{
		id:             chatID,
		sess:           session.New(b.deps.Aggregator, b.deps.Executor, b.deps.Store, b.deps.Session, b.logger),
		lastQuote:      session.QuotesIdle,
		lastSubmission: session.SubmissionIdle,
		lastActive:     b.now(),
	}
	c.sess.OnChange(func(snap session.Snapshot) {
		b.notify(c, snap)
	})
	b.chats[chatID] = c
	b.logger.Debug("chat session created", zap.Int64("chat", chatID), zap.String("session", c.sess.ID()))
	return c
}

func (b *Bot) evictLoop(ctx context.Context) {
	ticker := time.NewTicker(b.deps.IdleTimeout / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-b.ctx.Done():
			return
		case <-ticker.C:
			b.evictIdle()
		}
	}
}

// evictIdle closes chat sessions idle for longer than IdleTimeout. Chats with a
// submission in flight are kept. It returns the number of chats closed.
func (b *Bot) evictIdle() int {
	if b.deps.IdleTimeout <= 0 {
		return 0
	}
	cutoff := b.now().Add(-b.deps.IdleTimeout)

	b.mu.Lock()
	defer b.mu.Unlock()
	evicted := 0
	for id, c := range b.chats {
		if c.lastActive.After(cutoff) || c.sess.Snapshot().Submission == session.SubmissionPending {
			continue
		}
		c.sess.Close()
		delete(b.chats, id)
		evicted++
	}
	if evicted > 0 {
		b.logger.Debug("evicted idle chats", zap.Int("evicted", evicted), zap.Int("remaining", len(b.chats)))
	}
	return evicted
}

// notify pushes quote results and submission outcomes to the chat when they change.
func (b *Bot) notify(c *chat, snap session.Snapshot) {
	c.mu.Lock()
	quoteChanged := snap.QuoteState != c.lastQuote
	submissionChanged := snap.Submission != c.lastSubmission
	c.lastQuote = snap.QuoteState
	c.lastSubmission = snap.Submission
	c.mu.Unlock()

	if quoteChanged {
		switch snap.QuoteState {
		case session.QuotesReady:
			b.send(c.id, formatRoutes(snap), true)
		case session.QuotesEmpty:
			b.send(c.id, "No routes found for "+snap.From.String()+" -> "+snap.To.String()+".", false)
		case session.QuotesError:
			b.send(c.id, "Could not get quotes: "+snap.QuoteError+"\nUse /routes to try again.", false)
		}
	}

	if submissionChanged {
		switch snap.Submission {
		case session.SubmissionSuccess:
			if snap.Transaction != nil {
				b.send(c.id, formatTransaction(*snap.Transaction, snap.From.Chain), true)
			}
		case session.SubmissionError:
			b.send(c.id, "Swap failed: "+snap.SubmitError, false)
		}
	}
}

func (b *Bot) reply(msg *tgbotapi.Message, text string) {
	b.send(msg.Chat.ID, text, true)
}

// replyPlain sends text without Markdown, for content such as errors that may
// contain reserved characters.
func (b *Bot) replyPlain(msg *tgbotapi.Message, text string) {
	b.send(msg.Chat.ID, text, false)
}

func (b *Bot) send(chatID int64, text string, markdown bool) {
	m := tgbotapi.NewMessage(chatID, text)
	if markdown {
		m.ParseMode = tgbotapi.ModeMarkdown
	}
	if _, err := b.sender.Send(m); err != nil {
		b.logger.Warn("error sending message", zap.Int64("chat", chatID), zap.Error(err))
	}
}
