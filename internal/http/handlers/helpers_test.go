package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geocoder89/eventmanager/internal/domain/event"
	"github.com/geocoder89/eventmanager/internal/domain/packet"
	"github.com/geocoder89/eventmanager/internal/domain/relation"
	"github.com/geocoder89/eventmanager/internal/domain/ticket"
	"github.com/geocoder89/eventmanager/internal/links"
	"github.com/gin-gonic/gin"
)

// Make sure Gin does not spam the console during the test
func init() {
	gin.SetMode(gin.TestMode)
}

const baseURL = "http://localhost:8080/api/event-manager"

var res = links.NewResources(baseURL)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

// Fake repository implementations of the handler store interfaces

type fakeEventsRepo struct {
	createFn func(ctx context.Context, req event.CreateEventRequest) (event.Event, error)
	getFn    func(ctx context.Context, id int) (event.Event, error)
	listFn   func(ctx context.Context, filter event.ListEventsFilter) ([]event.Event, error)
	updateFn func(ctx context.Context, id int, req event.UpdateEventRequest) (event.Event, error)
	deleteFn func(ctx context.Context, id int) error
}

func (f *fakeEventsRepo) Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return event.Event{}, nil
}

func (f *fakeEventsRepo) GetByID(ctx context.Context, id int) (event.Event, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return event.Event{}, nil
}

func (f *fakeEventsRepo) List(ctx context.Context, filter event.ListEventsFilter) ([]event.Event, error) {
	if f.listFn != nil {
		return f.listFn(ctx, filter)
	}
	return []event.Event{}, nil
}

func (f *fakeEventsRepo) Update(ctx context.Context, id int, req event.UpdateEventRequest) (event.Event, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, req)
	}
	return event.Event{}, nil
}

func (f *fakeEventsRepo) Delete(ctx context.Context, id int) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakePacketsRepo struct {
	createFn func(ctx context.Context, req packet.CreatePacketRequest) (packet.Packet, error)
	getFn    func(ctx context.Context, id int) (packet.Packet, error)
	listFn   func(ctx context.Context, q packet.ListPacketsQuery) ([]packet.Packet, error)
	updateFn func(ctx context.Context, id int, req packet.UpdatePacketRequest) (packet.Packet, error)
	deleteFn func(ctx context.Context, id int) error
}

func (f *fakePacketsRepo) Create(ctx context.Context, req packet.CreatePacketRequest) (packet.Packet, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return packet.Packet{}, nil
}

func (f *fakePacketsRepo) GetByID(ctx context.Context, id int) (packet.Packet, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return packet.Packet{}, nil
}

func (f *fakePacketsRepo) List(ctx context.Context, q packet.ListPacketsQuery) ([]packet.Packet, error) {
	if f.listFn != nil {
		return f.listFn(ctx, q)
	}
	return []packet.Packet{}, nil
}

func (f *fakePacketsRepo) Update(ctx context.Context, id int, req packet.UpdatePacketRequest) (packet.Packet, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, req)
	}
	return packet.Packet{}, nil
}

func (f *fakePacketsRepo) Delete(ctx context.Context, id int) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeTicketsRepo struct {
	createFn func(ctx context.Context, req ticket.CreateTicketRequest) (ticket.Ticket, error)
	getFn    func(ctx context.Context, owner ticket.Owner, code string) (ticket.Ticket, error)
	listFn   func(ctx context.Context, owner ticket.Owner) ([]ticket.Ticket, error)
	updateFn func(ctx context.Context, owner ticket.Owner, code string, req ticket.UpdateTicketRequest) (ticket.Ticket, error)
	deleteFn func(ctx context.Context, owner ticket.Owner, code string) error
}

func (f *fakeTicketsRepo) Create(ctx context.Context, req ticket.CreateTicketRequest) (ticket.Ticket, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return ticket.New(req), nil
}

func (f *fakeTicketsRepo) Get(ctx context.Context, owner ticket.Owner, code string) (ticket.Ticket, error) {
	if f.getFn != nil {
		return f.getFn(ctx, owner, code)
	}
	return ticket.Ticket{}, nil
}

func (f *fakeTicketsRepo) List(ctx context.Context, owner ticket.Owner) ([]ticket.Ticket, error) {
	if f.listFn != nil {
		return f.listFn(ctx, owner)
	}
	return []ticket.Ticket{}, nil
}

func (f *fakeTicketsRepo) Update(ctx context.Context, owner ticket.Owner, code string, req ticket.UpdateTicketRequest) (ticket.Ticket, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, owner, code, req)
	}
	return ticket.Ticket{Code: code, PacketID: req.PacketID, EventID: req.EventID}, nil
}

func (f *fakeTicketsRepo) Delete(ctx context.Context, owner ticket.Owner, code string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, owner, code)
	}
	return nil
}

type fakeRelationsRepo struct {
	packetsForEventFn func(ctx context.Context, eventID int) ([]packet.Packet, error)
	eventsForPacketFn func(ctx context.Context, packetID int) ([]event.Event, error)
	addFn             func(ctx context.Context, req relation.CreateRelationRequest) (relation.Relation, error)
}

func (f *fakeRelationsRepo) PacketsForEvent(ctx context.Context, eventID int) ([]packet.Packet, error) {
	if f.packetsForEventFn != nil {
		return f.packetsForEventFn(ctx, eventID)
	}
	return []packet.Packet{}, nil
}

func (f *fakeRelationsRepo) EventsForPacket(ctx context.Context, packetID int) ([]event.Event, error) {
	if f.eventsForPacketFn != nil {
		return f.eventsForPacketFn(ctx, packetID)
	}
	return []event.Event{}, nil
}

func (f *fakeRelationsRepo) Add(ctx context.Context, req relation.CreateRelationRequest) (relation.Relation, error) {
	if f.addFn != nil {
		return f.addFn(ctx, req)
	}
	return relation.Relation{PacketID: req.PacketID, EventID: req.EventID, Seats: req.Seats}, nil
}

// small helper function which returns the gin engine to mount one handler per test
func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

func doRequest(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

type errorResponse struct {
	Error     string   `json:"error"`
	Details   []string `json:"details"`
	RequestID string   `json:"requestId"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()

	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal error response: %v body=%s", err, w.Body.String())
	}

	return resp
}

type linkJSON struct {
	Href string `json:"href"`
	Type string `json:"type"`
}

type linkedResource struct {
	Links map[string]linkJSON `json:"_links"`
}

func decodeLinks(t *testing.T, body []byte) map[string]linkJSON {
	t.Helper()

	var resp linkedResource
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to unmarshal resource: %v body=%s", err, string(body))
	}

	return resp.Links
}

func decodeLinksList(t *testing.T, body []byte) []map[string]linkJSON {
	t.Helper()

	var resp []linkedResource
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to unmarshal resource list: %v body=%s", err, string(body))
	}

	out := make([]map[string]linkJSON, 0, len(resp))
	for _, r := range resp {
		out = append(out, r.Links)
	}

	return out
}

func containsDetail(details []string, want string) bool {
	for _, d := range details {
		if d == want {
			return true
		}
	}
	return false
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
