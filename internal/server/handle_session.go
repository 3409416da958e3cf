package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/vetorank/vetorank/internal/room"
	"github.com/vetorank/vetorank/internal/session"
)

// handleSession hosts one live participant session over a WebSocket.
// Inbound messages are session actions; after every applied action and
// every room event that warrants it, the current view is pushed back.
// The session controller itself only ever runs on this handler's
// goroutine; a small reader goroutine feeds inbound actions into the
// select loop and winds down with the connection.
func handleSession(logger *slog.Logger, rooms *room.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		ctrl := session.New(rooms)
		defer ctrl.Close()

		inbound := make(chan session.Action)
		go func() {
			defer cancel()
			for {
				var a session.Action
				if err := wsjson.Read(ctx, conn, &a); err != nil {
					logger.Debug("session read ended", "error", err)
					return
				}
				select {
				case inbound <- a:
				case <-ctx.Done():
					return
				}
			}
		}()

		send := func() bool {
			wctx, wcancel := context.WithTimeout(ctx, 10*time.Second)
			defer wcancel()
			if err := wsjson.Write(wctx, conn, ctrl.Render()); err != nil {
				logger.Debug("session write failed", "error", err)
				return false
			}
			return true
		}

		// Initial render: the room choice page.
		if !send() {
			return
		}

		for {
			// Nil until a room is joined; a nil channel never fires
			// in select.
			events := ctrl.Events()

			select {
			case <-ctx.Done():
				return
			case a := <-inbound:
				ctrl.Apply(a)
				if !send() {
					return
				}
				if ctrl.Page() == session.PageError {
					return
				}
			case ev := <-events:
				if ctrl.HandleEvent(ev) && !send() {
					return
				}
			}
		}
	}
}
