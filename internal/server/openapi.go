package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Vetorank API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Collaborative veto-and-rank decision rooms.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns process liveness and the current room count.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getHealthz)

	// GET /ws/session
	getSession, _ := r.NewOperationContext(http.MethodGet, "/ws/session")
	getSession.SetSummary("Live session")
	getSession.SetDescription("Upgrades to a WebSocket hosting one participant session: send actions, receive page renders.")
	getSession.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getSession)

	// POST /api/rooms
	postRooms, _ := r.NewOperationContext(http.MethodPost, "/api/rooms")
	postRooms.SetSummary("Create room")
	postRooms.SetDescription("Creates a room from newline-separated option text and returns its join code.")
	postRooms.AddReqStructure(CreateRoomRequest{})
	postRooms.AddRespStructure(RoomResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postRooms.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postRooms.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(postRooms)

	// GET /api/rooms/{code}
	getRoom, _ := r.NewOperationContext(http.MethodGet, "/api/rooms/{code}")
	getRoom.SetSummary("Get room")
	getRoom.SetDescription("Returns the room's current options, stage, and ballot count. Codes are case-insensitive.")
	getRoom.AddRespStructure(RoomResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getRoom.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getRoom)

	// POST /api/rooms/{code}/options
	postOption, _ := r.NewOperationContext(http.MethodPost, "/api/rooms/{code}/options")
	postOption.SetSummary("Add option")
	postOption.SetDescription("Appends a candidate during the veto phase. Empty or duplicate text, or a room past vetoing, is a no-op.")
	postOption.AddReqStructure(AddOptionRequest{})
	postOption.AddRespStructure(RoomResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postOption.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postOption)

	// POST /api/rooms/{code}/veto
	postVeto, _ := r.NewOperationContext(http.MethodPost, "/api/rooms/{code}/veto")
	postVeto.SetSummary("Veto option")
	postVeto.SetDescription("Marks an option ineligible during the veto phase. Unknown IDs are a no-op.")
	postVeto.AddReqStructure(VetoRequest{})
	postVeto.AddRespStructure(RoomResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postVeto.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postVeto)

	// POST /api/rooms/{code}/veto/reset
	postReset, _ := r.NewOperationContext(http.MethodPost, "/api/rooms/{code}/veto/reset")
	postReset.SetSummary("Reset vetoes")
	postReset.SetDescription("Clears every veto during the veto phase.")
	postReset.AddRespStructure(RoomResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postReset.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postReset)

	// POST /api/rooms/{code}/finish
	postFinish, _ := r.NewOperationContext(http.MethodPost, "/api/rooms/{code}/finish")
	postFinish.SetSummary("Finish vetoing")
	postFinish.SetDescription("Moves the room into the ranking phase. Idempotent.")
	postFinish.AddRespStructure(RoomResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postFinish.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postFinish)

	// POST /api/rooms/{code}/ballots
	postBallot, _ := r.NewOperationContext(http.MethodPost, "/api/rooms/{code}/ballots")
	postBallot.SetSummary("Submit ranking")
	postBallot.SetDescription("Appends one ballot during the ranking phase. Empty ranking means the displayed order.")
	postBallot.AddReqStructure(SubmitBallotRequest{})
	postBallot.AddRespStructure(RoomResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postBallot.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postBallot)

	// GET /api/rooms/{code}/results
	getResults, _ := r.NewOperationContext(http.MethodGet, "/api/rooms/{code}/results")
	getResults.SetSummary("Get results")
	getResults.SetDescription("Returns the weighted tally and every submitted ballot. Recomputed on each call.")
	getResults.AddRespStructure(ResultsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getResults.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getResults)

	// GET /api/rooms/{code}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/rooms/{code}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of room change notifications. Clients re-fetch state on each event.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
