package fluxcrystal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/coder/websocket"
)

// helloTimeout bounds how long the connection waits for the server's HELLO
// frame before giving up and treating the attempt as failed.
const helloTimeout = 30 * time.Second

// connState is the gateway connection's lifecycle state.
type connState int

const (
	stateClosed connState = iota
	stateOpening
	stateIdentifying
	stateResuming
	stateConnected
)

// gatewayConnection owns a single WebSocket connection to the gateway and
// the goroutines that keep it alive: the read loop and the heartbeat loop.
// Bot.Start creates one gatewayConnection and run reuses it for every
// reconnect attempt, so sessionID and sequence survive across attempts and
// a RESUME can be sent.
type gatewayConnection struct {
	bot    *Bot
	logger *slog.Logger

	mu        sync.Mutex
	conn      *websocket.Conn
	state     connState
	sessionID string
	sequence  int64

	helloReceived     chan struct{}
	heartbeatAcked    bool
	heartbeatInterval time.Duration
}

func newGatewayConnection(bot *Bot) *gatewayConnection {
	return &gatewayConnection{bot: bot, logger: bot.logger()}
}

// dialURL appends the gateway version and encoding query parameters to
// gatewayURL when it carries no query string of its own, per the
// IDENTIFY/HELLO wire contract.
func dialURL(gatewayURL string) string {
	u, err := url.Parse(gatewayURL)
	if err != nil || u.RawQuery != "" {
		return gatewayURL
	}
	u.RawQuery = fmt.Sprintf("v=%d&encoding=json", gatewayVersion)
	return u.String()
}

// run dials the gateway and services it until ctx is canceled or a fatal
// close code is received, reconnecting with jittered exponential backoff
// in between attempts. It returns only on ctx cancellation or a fatal
// error.
func (g *gatewayConnection) run(ctx context.Context, gatewayURL string) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 30 * time.Second
	bo.MaxElapsedTime = 0 // retry forever until ctx is canceled or fatal

	for {
		err := g.runOnce(ctx, gatewayURL)
		if err == nil {
			return nil
		}
		var fatal *FatalGatewayError
		if errors.As(err, &fatal) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		wait := bo.NextBackOff()
		if wait == backoff.Stop {
			return err
		}
		g.logger.Warn("gateway connection lost, reconnecting", "error", err, "wait", wait)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// runOnce performs a single connect-identify/resume-serve cycle. A nil
// return means the context was canceled cleanly; any other error is a
// candidate for reconnect (or fatal, per FatalGatewayError).
func (g *gatewayConnection) runOnce(ctx context.Context, gatewayURL string) error {
	g.setState(stateOpening)

	conn, _, err := websocket.Dial(ctx, dialURL(gatewayURL), &websocket.DialOptions{
		HTTPHeader: http.Header{"User-Agent": []string{g.bot.client.userAgent}},
	})
	if err != nil {
		return fmt.Errorf("dialing gateway: %w", err)
	}
	conn.SetReadLimit(1 << 20)

	g.mu.Lock()
	g.conn = conn
	g.helloReceived = make(chan struct{})
	g.heartbeatAcked = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		c := g.conn
		g.conn = nil
		g.mu.Unlock()
		if c != nil {
			c.Close(websocket.StatusNormalClosure, "closing")
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	readErrCh := make(chan error, 1)
	heartbeatErrCh := make(chan error, 1)

	go func() { readErrCh <- g.readLoop(ctx) }()
	go func() { heartbeatErrCh <- g.heartbeatLoop(ctx) }()

	select {
	case err := <-readErrCh:
		cancel()
		<-heartbeatErrCh
		return err
	case err := <-heartbeatErrCh:
		cancel()
		<-readErrCh
		return err
	case <-ctx.Done():
		return nil
	}
}

func (g *gatewayConnection) setState(s connState) {
	g.mu.Lock()
	g.state = s
	g.mu.Unlock()
}

// send marshals msg and writes it to the connection. Writes are serialized
// by websocket.Conn internally; g.mu is held only while reading g.conn, so a
// send racing a connection teardown sees either the live conn or nil.
func (g *gatewayConnection) send(ctx context.Context, msg gatewayMessage) error {
	g.mu.Lock()
	conn := g.conn
	g.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("fluxcrystal: gateway not connected")
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, data)
}

// heartbeatLoop waits up to helloTimeout for HELLO, then sends a heartbeat
// every interval and requires the previous one to have been acked,
// treating an unacked heartbeat as a zombie connection that must be torn
// down and reconnected.
func (g *gatewayConnection) heartbeatLoop(ctx context.Context) error {
	select {
	case <-g.helloReceived:
	case <-time.After(helloTimeout):
		return fmt.Errorf("fluxcrystal: no HELLO within %s", helloTimeout)
	case <-ctx.Done():
		return nil
	}

	g.mu.Lock()
	interval := g.heartbeatInterval
	g.mu.Unlock()
	if interval <= 0 {
		interval = 30 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			g.mu.Lock()
			acked := g.heartbeatAcked
			g.heartbeatAcked = false
			seq := g.sequence
			g.mu.Unlock()
			if !acked {
				return fmt.Errorf("fluxcrystal: zombie connection, heartbeat not acked")
			}
			if err := g.send(ctx, gatewayMessage{Op: OpHeartbeat, Data: mustMarshalJSON(seq)}); err != nil {
				return fmt.Errorf("sending heartbeat: %w", err)
			}
		}
	}
}

// readLoop decodes frames off the connection, maintains sequence/session
// state, and routes each frame to the right handler.
func (g *gatewayConnection) readLoop(ctx context.Context) error {
	for {
		g.mu.Lock()
		conn := g.conn
		g.mu.Unlock()
		if conn == nil {
			return nil
		}

		_, data, err := conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if status := websocket.CloseStatus(err); status != -1 {
				if reason, fatal := fatalCloseCodes[int(status)]; fatal {
					return &FatalGatewayError{CloseCode: int(status), Reason: reason}
				}
			}
			return fmt.Errorf("reading gateway frame: %w", err)
		}

		var msg gatewayMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			g.logger.Error("invalid gateway frame", "error", err)
			continue
		}
		if msg.Seq != nil {
			g.mu.Lock()
			g.sequence = *msg.Seq
			g.mu.Unlock()
		}

		switch msg.Op {
		case OpHello:
			if err := g.handleHello(ctx, msg.Data); err != nil {
				return err
			}
		case OpDispatch:
			g.handleDispatch(ctx, msg.Type, msg.Data)
		case OpHeartbeatAck:
			g.mu.Lock()
			g.heartbeatAcked = true
			g.mu.Unlock()
		case OpHeartbeat:
			g.mu.Lock()
			seq := g.sequence
			g.mu.Unlock()
			_ = g.send(ctx, gatewayMessage{Op: OpHeartbeat, Data: mustMarshalJSON(seq)})
		case OpReconnect:
			return fmt.Errorf("fluxcrystal: server requested reconnect")
		case OpInvalidSession:
			var resumable bool
			_ = json.Unmarshal(msg.Data, &resumable)
			if !resumable {
				g.mu.Lock()
				g.sessionID = ""
				g.sequence = 0
				g.mu.Unlock()
			}
			return fmt.Errorf("fluxcrystal: invalid session (resumable=%v)", resumable)
		}
	}
}

func (g *gatewayConnection) handleHello(ctx context.Context, data json.RawMessage) error {
	var hello helloPayload
	if err := json.Unmarshal(data, &hello); err != nil {
		return fmt.Errorf("parsing HELLO: %w", err)
	}

	g.mu.Lock()
	g.heartbeatInterval = time.Duration(hello.HeartbeatInterval) * time.Millisecond
	sessionID := g.sessionID
	seq := g.sequence
	g.mu.Unlock()

	close(g.helloReceived)

	if sessionID != "" {
		g.setState(stateResuming)
		return g.send(ctx, gatewayMessage{Op: OpResume, Data: mustMarshalJSON(resumePayload{
			Token:     g.bot.client.token,
			SessionID: sessionID,
			Seq:       seq,
		})})
	}

	g.setState(stateIdentifying)
	return g.send(ctx, gatewayMessage{Op: OpIdentify, Data: mustMarshalJSON(identifyPayload{
		Token: g.bot.client.token,
		Properties: identifyProperties{
			OS:      "go",
			Browser: "fluxcrystal",
			Device:  "fluxcrystal",
		},
	})})
}

func (g *gatewayConnection) handleDispatch(ctx context.Context, eventType string, data json.RawMessage) {
	if eventType == eventReady {
		var ready ReadyEvent
		if err := json.Unmarshal(data, &ready); err == nil {
			g.mu.Lock()
			g.sessionID = ready.SessionID
			g.mu.Unlock()
			g.setState(stateConnected)
		}
	}

	g.bot.cache.update(eventType, data)

	ev, known, err := decodeEvent(eventType, data)
	if err != nil {
		g.logger.Warn("failed to decode dispatch event", "event", eventType, "error", err)
		return
	}
	if !known {
		return
	}
	g.bot.dispatcher.dispatch(ctx, ev)
}

func mustMarshalJSON(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("fluxcrystal: marshaling known-good value: %v", err))
	}
	return b
}
