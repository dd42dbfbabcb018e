package fluxcrystal

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Event is implemented by every typed gateway event. EventName returns the
// dispatch name the event was decoded from (e.g. "MESSAGE_CREATE"),
// matching one of the event* constants in opcodes.go.
type Event interface {
	EventName() string
}

// eventConstructor decodes a dispatch event's raw data into a concrete
// Event value.
type eventConstructor func(raw json.RawMessage) (Event, error)

// eventRegistry maps dispatch name -> constructor. Built once at init time
// from the event* constants each concrete event type declares, mirroring
// the original's _EVENT_REGISTRY built from each Event subclass's
// event_name() classmethod.
var eventRegistry = map[string]eventConstructor{}

func registerEvent(name string, ctor eventConstructor) {
	eventRegistry[name] = ctor
}

// decodeEvent looks up name in the registry and decodes raw into the
// matching Event type. Returns (nil, false) for an unrecognized dispatch
// name — the gateway should ignore these rather than error, since the
// server may add event types a given client version doesn't know about.
func decodeEvent(name string, raw json.RawMessage) (Event, bool, error) {
	ctor, ok := eventRegistry[name]
	if !ok {
		return nil, false, nil
	}
	ev, err := ctor(raw)
	if err != nil {
		return nil, true, err
	}
	return ev, true, nil
}

// handlerEntry is one registered listener, type-erased so the dispatcher
// can hold listeners for every event type in a single slice per name.
type handlerEntry struct {
	id      uint64
	invoke  func(ctx context.Context, ev Event)
}

// dispatcher fans out decoded events to registered handlers in
// registration order. Handler panics are recovered and logged; one
// listener's bug must never take down the read loop or starve its
// siblings.
type dispatcher struct {
	mu       sync.Mutex
	handlers map[string][]handlerEntry
	nextID   uint64
	bot      *Bot
}

func newDispatcher(bot *Bot) *dispatcher {
	return &dispatcher{handlers: make(map[string][]handlerEntry), bot: bot}
}

// subscriptionID identifies a registered handler so it can later be
// removed with Unsubscribe.
type subscriptionID struct {
	name string
	id   uint64
}

func (d *dispatcher) subscribe(name string, invoke func(context.Context, Event)) subscriptionID {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.handlers[name] = append(d.handlers[name], handlerEntry{id: id, invoke: invoke})
	return subscriptionID{name: name, id: id}
}

func (d *dispatcher) unsubscribe(sub subscriptionID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	entries := d.handlers[sub.name]
	for i, e := range entries {
		if e.id == sub.id {
			d.handlers[sub.name] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// dispatch invokes every handler registered for ev's EventName, in
// registration order. The handler slice is snapshotted under lock so a
// handler that subscribes/unsubscribes mid-dispatch doesn't race the slice
// it's being invoked from.
func (d *dispatcher) dispatch(ctx context.Context, ev Event) {
	d.mu.Lock()
	entries := append([]handlerEntry(nil), d.handlers[ev.EventName()]...)
	d.mu.Unlock()

	for _, e := range entries {
		d.invokeSafely(ctx, e, ev)
	}
}

func (d *dispatcher) invokeSafely(ctx context.Context, e handlerEntry, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			d.bot.logger().Error("event handler panicked", "event", ev.EventName(), "panic", fmt.Sprint(r))
		}
	}()
	e.invoke(ctx, ev)
}

// Subscribe registers handler to be called whenever bot dispatches an
// event of type T, returning a token that can be passed to Unsubscribe.
//
//	fluxcrystal.Subscribe(bot, func(ctx context.Context, ev *fluxcrystal.MessageCreateEvent) {
//		...
//	})
func Subscribe[T Event](bot *Bot, handler func(context.Context, *T)) subscriptionID {
	var zero T
	name := zero.EventName()
	return bot.dispatcher.subscribe(name, func(ctx context.Context, ev Event) {
		typed, ok := ev.(*T)
		if !ok {
			return
		}
		handler(ctx, typed)
	})
}

// Unsubscribe removes a handler previously registered with Subscribe.
func Unsubscribe(bot *Bot, sub subscriptionID) {
	bot.dispatcher.unsubscribe(sub)
}
