package fluxcrystal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
)

func TestNewBot_DefaultsAreUsable(t *testing.T) {
	bot := NewBot("tok")
	if bot.REST() == nil {
		t.Fatal("expected non-nil REST client")
	}
	if bot.Cache() == nil {
		t.Fatal("expected non-nil cache")
	}
	if bot.REST().Token() != "tok" {
		t.Fatalf("unexpected token: %q", bot.REST().Token())
	}
}

func TestBot_StopBeforeStartDoesNotPanic(t *testing.T) {
	bot := NewBot("tok")
	bot.Stop()
}

func TestBot_StartReturnsOnFatalClose(t *testing.T) {
	wsMux := http.NewServeMux()
	wsMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		conn.Close(websocket.StatusCode(4004), "authentication failed")
	})
	wsSrv := httptest.NewServer(wsMux)
	defer wsSrv.Close()
	wsURL := "ws" + wsSrv.URL[len("http"):]

	restMux := http.NewServeMux()
	restMux.HandleFunc("/gateway/bot", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"url": wsURL})
	})
	restSrv := httptest.NewServer(restMux)
	defer restSrv.Close()

	bot := NewBot("tok", WithClientOptions(WithBaseURL(restSrv.URL)))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := bot.Start(ctx)
	if err == nil {
		t.Fatal("expected fatal gateway close to surface as an error")
	}
	fatalErr, ok := err.(*FatalGatewayError)
	if !ok {
		t.Fatalf("expected *FatalGatewayError, got %T (%v)", err, err)
	}
	if fatalErr.CloseCode != 4004 {
		t.Fatalf("unexpected close code: %d", fatalErr.CloseCode)
	}
}
