package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/vetorank/vetorank/internal/room"
)

func testRouter(t *testing.T) (*chi.Mux, *room.Registry) {
	t.Helper()
	rooms := room.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	addRoutes(r, logger, rooms, "")
	return r, rooms
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createRoom(t *testing.T, r http.Handler, options string) RoomResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/rooms", CreateRoomRequest{Options: options})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp RoomResponse
	json.NewDecoder(w.Body).Decode(&resp)
	return resp
}

func TestCreateAndGetRoom(t *testing.T) {
	r, _ := testRouter(t)

	resp := createRoom(t, r, "pizza\ntacos\n\npizza\n")

	if len(resp.Code) != 4 {
		t.Errorf("expected a 4-letter code, got %q", resp.Code)
	}
	if resp.Stage != "vetoing" {
		t.Errorf("expected vetoing stage, got %q", resp.Stage)
	}
	if len(resp.Options) != 2 {
		t.Fatalf("expected 2 options after dedupe, got %d", len(resp.Options))
	}
	if resp.Options[0].Text != "pizza" || resp.Options[1].Text != "tacos" {
		t.Errorf("expected [pizza tacos], got %+v", resp.Options)
	}

	w := doJSON(t, r, http.MethodGet, "/api/rooms/"+resp.Code, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}
}

func TestGetRoomNotFound(t *testing.T) {
	r, _ := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/rooms/zzzz", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestVetoFlow(t *testing.T) {
	r, _ := testRouter(t)
	created := createRoom(t, r, "a\nb\nc")
	base := "/api/rooms/" + created.Code

	// Veto the middle option.
	w := doJSON(t, r, http.MethodPost, base+"/veto", VetoRequest{OptionID: created.Options[1].ID})
	if w.Code != http.StatusOK {
		t.Fatalf("veto: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp RoomResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if !resp.Options[1].Vetoed {
		t.Error("expected option b vetoed")
	}

	// Unknown id is tolerated.
	w = doJSON(t, r, http.MethodPost, base+"/veto", VetoRequest{OptionID: "bogus"})
	if w.Code != http.StatusOK {
		t.Errorf("stale veto: expected 200, got %d", w.Code)
	}

	// Add an option, then reset vetoes.
	w = doJSON(t, r, http.MethodPost, base+"/options", AddOptionRequest{Text: " d "})
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Options) != 4 || resp.Options[3].Text != "d" {
		t.Errorf("expected d appended, got %+v", resp.Options)
	}

	w = doJSON(t, r, http.MethodPost, base+"/veto/reset", nil)
	json.NewDecoder(w.Body).Decode(&resp)
	for _, o := range resp.Options {
		if o.Vetoed {
			t.Errorf("expected no vetoes after reset, %q still vetoed", o.Text)
		}
	}
}

func TestRankingFlow(t *testing.T) {
	r, _ := testRouter(t)
	created := createRoom(t, r, "A\nB")
	base := "/api/rooms/" + created.Code
	a, b := created.Options[0].ID, created.Options[1].ID

	w := doJSON(t, r, http.MethodPost, base+"/finish", nil)
	var resp RoomResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Stage != "ranking" {
		t.Fatalf("expected ranking stage, got %q", resp.Stage)
	}

	// Veto after finish is a tolerated no-op.
	w = doJSON(t, r, http.MethodPost, base+"/veto", VetoRequest{OptionID: a})
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Options[0].Vetoed {
		t.Error("veto after finish must not stick")
	}

	// Ballots: A>B, B>A, A alone.
	for _, ranking := range []string{a + "\n" + b, b + "\n" + a, a} {
		w = doJSON(t, r, http.MethodPost, base+"/ballots", SubmitBallotRequest{Ranking: ranking})
		if w.Code != http.StatusOK {
			t.Fatalf("ballot: expected 200, got %d", w.Code)
		}
	}

	w = doJSON(t, r, http.MethodGet, base+"/results", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("results: expected 200, got %d", w.Code)
	}
	var results ResultsResponse
	json.NewDecoder(w.Body).Decode(&results)

	if len(results.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(results.Entries))
	}
	if results.Entries[0].Text != "A" || results.Entries[0].Score != 5 {
		t.Errorf("expected A with 5 points, got %+v", results.Entries[0])
	}
	if results.Entries[1].Text != "B" || results.Entries[1].Score != 3 {
		t.Errorf("expected B with 3 points, got %+v", results.Entries[1])
	}
	if results.TopScore != 5 || !results.Entries[0].Winner || results.Entries[1].Winner {
		t.Error("expected A as the unique winner")
	}
	if results.Entries[0].Summary != "A (1st, 1st, 2nd) - 5" {
		t.Errorf("unexpected summary %q", results.Entries[0].Summary)
	}
	if len(results.AllVotes) != 3 {
		t.Errorf("expected 3 ballots listed, got %d", len(results.AllVotes))
	}
}

func TestDefaultBallot(t *testing.T) {
	r, _ := testRouter(t)
	created := createRoom(t, r, "A\nB\nC")
	base := "/api/rooms/" + created.Code

	doJSON(t, r, http.MethodPost, base+"/veto", VetoRequest{OptionID: created.Options[1].ID})
	doJSON(t, r, http.MethodPost, base+"/finish", nil)

	// Empty ranking falls back to the eligible options in display order.
	doJSON(t, r, http.MethodPost, base+"/ballots", SubmitBallotRequest{})

	w := doJSON(t, r, http.MethodGet, base+"/results", nil)
	var results ResultsResponse
	json.NewDecoder(w.Body).Decode(&results)

	if len(results.AllVotes) != 1 {
		t.Fatalf("expected 1 ballot, got %d", len(results.AllVotes))
	}
	vote := results.AllVotes[0]
	if len(vote) != 2 || vote[0] != "A" || vote[1] != "C" {
		t.Errorf("expected default ballot [A C], got %v", vote)
	}
}

func TestRoomCodeCaseInsensitive(t *testing.T) {
	r, _ := testRouter(t)
	created := createRoom(t, r, "a")

	w := doJSON(t, r, http.MethodGet, "/api/rooms/"+strings.ToUpper(created.Code), nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected uppercase code to resolve, got %d", w.Code)
	}
}

func TestCreateRoomBadBody(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/rooms", bytes.NewReader([]byte("{nope")))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
