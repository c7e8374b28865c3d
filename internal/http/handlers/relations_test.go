package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/geocoder89/eventmanager/internal/domain/event"
	"github.com/geocoder89/eventmanager/internal/domain/packet"
	"github.com/geocoder89/eventmanager/internal/domain/relation"
	"github.com/geocoder89/eventmanager/internal/http/handlers"
)

func TestAddPacketToEventHandler(t *testing.T) {
	var gotReq relation.CreateRelationRequest

	repo := &fakeRelationsRepo{
		addFn: func(ctx context.Context, req relation.CreateRelationRequest) (relation.Relation, error) {
			gotReq = req
			return relation.Relation{PacketID: req.PacketID, EventID: req.EventID, Seats: req.Seats}, nil
		},
	}

	h := handlers.NewRelationsHandler(repo, res, discardLogger())
	r := setupRouter(http.MethodPost, "/events/:id/event-packets", h.AddPacketToEvent)

	w := doRequest(r, http.MethodPost, "/events/3/event-packets", `{"id_pachet":9,"numarlocuri":40}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d, body=%s", w.Code, w.Body.String())
	}

	if gotReq.EventID != 3 || gotReq.PacketID != 9 || gotReq.Seats == nil || *gotReq.Seats != 40 {
		t.Fatalf("unexpected relation request: %+v", gotReq)
	}

	l := decodeLinks(t, w.Body.Bytes())
	if l["self"] != (linkJSON{Href: baseURL + "/events/3/event-packets", Type: "GET, POST"}) {
		t.Fatalf("unexpected self link: %+v", l["self"])
	}
	if l["parent"].Href != baseURL+"/events/3" {
		t.Fatalf("unexpected parent link: %+v", l["parent"])
	}
	if l["event-packet"].Href != baseURL+"/event-packets/9" {
		t.Fatalf("unexpected packet link: %+v", l["event-packet"])
	}
}

func TestAddEventToPacketHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"duplicate", `{"id_event":2}`, relation.ErrDuplicateEntry, http.StatusConflict, "This event is already in this packet."},
		{"bad reference", `{"id_event":2}`, relation.ErrInvalidReference, http.StatusBadRequest, "Invalid packet or event ID provided."},
		{"missing event", `{}`, nil, http.StatusUnprocessableEntity, "id_event: is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRelationsRepo{
				addFn: func(ctx context.Context, req relation.CreateRelationRequest) (relation.Relation, error) {
					return relation.Relation{}, tt.err
				},
			}

			h := handlers.NewRelationsHandler(repo, res, discardLogger())
			r := setupRouter(http.MethodPost, "/event-packets/:id/events", h.AddEventToPacket)

			w := doRequest(r, http.MethodPost, "/event-packets/1/events", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d, body=%s", tt.wantStatus, w.Code, w.Body.String())
			}
			if resp := decodeError(t, w); !containsDetail(resp.Details, tt.wantDetail) {
				t.Fatalf("expected detail %q, got %v", tt.wantDetail, resp.Details)
			}
		})
	}
}

func TestListRelationsHandlers(t *testing.T) {
	repo := &fakeRelationsRepo{
		packetsForEventFn: func(ctx context.Context, eventID int) ([]packet.Packet, error) {
			if eventID == 99 {
				return nil, event.ErrNotFound
			}
			return []packet.Packet{{ID: 4, Name: "Summer Pass"}}, nil
		},
		eventsForPacketFn: func(ctx context.Context, packetID int) ([]event.Event, error) {
			return []event.Event{{ID: 2, Name: "Rock Fest"}}, nil
		},
	}

	h := handlers.NewRelationsHandler(repo, res, discardLogger())
	r := setupRouter(http.MethodGet, "/events/:id/event-packets", h.ListPacketsOfEvent)
	r.GET("/event-packets/:id/events", h.ListEventsOfPacket)

	w := doRequest(r, http.MethodGet, "/events/1/event-packets", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	items := decodeLinksList(t, w.Body.Bytes())
	if len(items) != 1 {
		t.Fatalf("expected 1 packet, got %d", len(items))
	}
	if items[0]["self"].Href != baseURL+"/events/1/event-packets" || items[0]["parent"].Href != baseURL+"/events/1" {
		t.Fatalf("unexpected links: %+v", items[0])
	}

	w = doRequest(r, http.MethodGet, "/event-packets/4/events", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	items = decodeLinksList(t, w.Body.Bytes())
	if items[0]["self"].Href != baseURL+"/event-packets/4/events" || items[0]["parent"].Href != baseURL+"/event-packets/4" {
		t.Fatalf("unexpected links: %+v", items[0])
	}

	w = doRequest(r, http.MethodGet, "/events/99/event-packets", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	if resp := decodeError(t, w); !containsDetail(resp.Details, "The requested event was not found.") {
		t.Fatalf("unexpected details: %v", resp.Details)
	}
}
