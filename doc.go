// Package fluxcrystal is a Go client for Fluxer, a Discord-like chat
// platform. It wraps the REST API and the real-time WebSocket gateway,
// exposing an event-driven interface for bot development.
//
// Basic usage:
//
//	bot := fluxcrystal.NewBot("bot-token")
//	bot.OnMessageCreate(func(ctx context.Context, e *fluxcrystal.MessageCreateEvent) {
//		if e.Message.Content == "!ping" {
//			bot.REST().CreateMessage(ctx, e.Message.ChannelID, fluxcrystal.CreateMessageParams{
//				Content: "pong",
//			})
//		}
//	})
//	if err := bot.Run(); err != nil {
//		log.Fatal(err)
//	}
package fluxcrystal
