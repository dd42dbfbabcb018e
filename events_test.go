package fluxcrystal

import (
	"context"
	"encoding/json"
	"testing"
)

func TestDecodeEvent_KnownType(t *testing.T) {
	ev, known, err := decodeEvent(eventMessageCreate, json.RawMessage(`{
		"id": "m1", "channel_id": "c1", "timestamp": "2024-01-01T00:00:00Z",
		"author": {"id": "u1", "username": "bob"}
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !known {
		t.Fatalf("expected MESSAGE_CREATE to be a known event")
	}
	msg, ok := ev.(*MessageCreateEvent)
	if !ok {
		t.Fatalf("expected *MessageCreateEvent, got %T", ev)
	}
	if msg.ID != "m1" || msg.Author.Username != "bob" {
		t.Fatalf("unexpected decode: %+v", msg)
	}
}

func TestDecodeEvent_UnknownType(t *testing.T) {
	ev, known, err := decodeEvent("SOME_FUTURE_EVENT", json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if known || ev != nil {
		t.Fatalf("expected unknown event to be ignored, got known=%v ev=%v", known, ev)
	}
}

func TestSubscribe_DispatchesInRegistrationOrder(t *testing.T) {
	bot := NewBot("test-token")
	var order []int

	Subscribe(bot, func(ctx context.Context, e *MessageCreateEvent) {
		order = append(order, 1)
	})
	Subscribe(bot, func(ctx context.Context, e *MessageCreateEvent) {
		order = append(order, 2)
	})

	ev := &MessageCreateEvent{Message: Message{ID: "m1"}}
	bot.dispatcher.dispatch(context.Background(), ev)

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("expected handlers invoked in registration order, got %v", order)
	}
}

func TestSubscribe_OnlyMatchingEventTypeInvoked(t *testing.T) {
	bot := NewBot("test-token")
	messageCalled := false
	readyCalled := false

	Subscribe(bot, func(ctx context.Context, e *MessageCreateEvent) { messageCalled = true })
	Subscribe(bot, func(ctx context.Context, e *ReadyEvent) { readyCalled = true })

	bot.dispatcher.dispatch(context.Background(), &MessageCreateEvent{Message: Message{ID: "m1"}})

	if !messageCalled {
		t.Fatalf("expected MessageCreateEvent handler to be invoked")
	}
	if readyCalled {
		t.Fatalf("ReadyEvent handler should not be invoked by a MessageCreateEvent dispatch")
	}
}

func TestUnsubscribe_StopsFutureDispatch(t *testing.T) {
	bot := NewBot("test-token")
	calls := 0

	sub := Subscribe(bot, func(ctx context.Context, e *MessageCreateEvent) { calls++ })
	bot.dispatcher.dispatch(context.Background(), &MessageCreateEvent{Message: Message{ID: "m1"}})
	Unsubscribe(bot, sub)
	bot.dispatcher.dispatch(context.Background(), &MessageCreateEvent{Message: Message{ID: "m2"}})

	if calls != 1 {
		t.Fatalf("expected exactly 1 call before unsubscribe, got %d", calls)
	}
}

func TestDispatch_HandlerPanicDoesNotStopSiblings(t *testing.T) {
	bot := NewBot("test-token")
	secondCalled := false

	Subscribe(bot, func(ctx context.Context, e *MessageCreateEvent) {
		panic("boom")
	})
	Subscribe(bot, func(ctx context.Context, e *MessageCreateEvent) {
		secondCalled = true
	})

	bot.dispatcher.dispatch(context.Background(), &MessageCreateEvent{Message: Message{ID: "m1"}})

	if !secondCalled {
		t.Fatalf("expected second handler to run despite first handler panicking")
	}
}
