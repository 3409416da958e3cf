package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vetorank/vetorank/internal/room"
)

type ctxKey int

const ctxKeyRoom ctxKey = iota

// roomMiddleware resolves the {code} URL parameter to a room and puts it
// on the request context. Codes are matched case-insensitively.
func roomMiddleware(rooms *room.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := chi.URLParam(r, "code")
			rm, err := rooms.Get(code)
			if err != nil {
				writeError(w, http.StatusNotFound, "room not found")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyRoom, rm)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func roomFrom(r *http.Request) *room.Room {
	return r.Context().Value(ctxKeyRoom).(*room.Room)
}
