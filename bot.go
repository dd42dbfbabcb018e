package fluxcrystal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// Bot is the top-level entry point for a Fluxer client: it owns the REST
// client, the in-memory cache, the event dispatcher, and the gateway
// connection lifecycle.
type Bot struct {
	client     *Client
	cache      *Cache
	dispatcher *dispatcher
	log        *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// BotOption configures a Bot constructed by NewBot.
type BotOption func(*Bot)

// WithBotLogger sets the logger used for gateway lifecycle, cache, and
// dispatch diagnostics. Defaults to slog.Default().
func WithBotLogger(logger *slog.Logger) BotOption {
	return func(b *Bot) { b.log = logger }
}

// WithClientOptions passes through ClientOption values to the REST client
// NewBot constructs internally.
func WithClientOptions(opts ...ClientOption) BotOption {
	return func(b *Bot) {
		for _, opt := range opts {
			opt(b.client)
		}
	}
}

// NewBot constructs a Bot authenticated with token. The REST client and
// gateway connection are not dialed until Start or Run is called.
func NewBot(token string, opts ...BotOption) *Bot {
	b := &Bot{
		client: NewClient(token),
		log:    slog.Default(),
		done:   make(chan struct{}),
	}
	b.dispatcher = newDispatcher(b)
	for _, opt := range opts {
		opt(b)
	}
	b.cache = newCache(b.log)
	return b
}

func (b *Bot) logger() *slog.Logger { return b.log }

// REST returns the REST client backing this bot, for direct API calls
// outside the gateway-driven event flow.
func (b *Bot) REST() *Client { return b.client }

// Cache returns the in-memory state cache populated by gateway events.
func (b *Bot) Cache() *Cache { return b.cache }

// Start connects to the gateway and services it until ctx is canceled or
// a fatal close code is received. It blocks for the lifetime of the
// connection.
func (b *Bot) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	defer cancel()

	gatewayURL, err := b.client.GetGatewayURL(ctx)
	if err != nil {
		return fmt.Errorf("fluxcrystal: fetching gateway url: %w", err)
	}

	conn := newGatewayConnection(b)
	err = conn.run(ctx, gatewayURL)
	close(b.done)
	return err
}

// Stop cancels the bot's gateway connection, causing Start/Run to return.
func (b *Bot) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
}

// Run calls Start and additionally stops the bot on SIGINT/SIGTERM,
// blocking until either the connection ends or a signal arrives.
func (b *Bot) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() { errCh <- b.Start(ctx) }()

	select {
	case sig := <-sigCh:
		b.log.Info("received signal, shutting down", "signal", sig.String())
		cancel()
		return <-errCh
	case err := <-errCh:
		return err
	}
}

// OnMessageCreate registers handler to be called for every MESSAGE_CREATE
// event. Equivalent to Subscribe[MessageCreateEvent](b, handler).
func (b *Bot) OnMessageCreate(handler func(context.Context, *MessageCreateEvent)) {
	Subscribe(b, handler)
}

// OnReady registers handler to be called once the gateway session is
// established. Equivalent to Subscribe[ReadyEvent](b, handler).
func (b *Bot) OnReady(handler func(context.Context, *ReadyEvent)) {
	Subscribe(b, handler)
}
