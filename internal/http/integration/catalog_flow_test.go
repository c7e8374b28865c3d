package integration_test

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/geocoder89/eventmanager/internal/domain/ticket"
	"github.com/gin-gonic/gin"
)

// runCatalogFlow walks events, packets, their relation and tickets through
// the whole API. Every store backend must pass it unchanged.
func runCatalogFlow(t *testing.T, router *gin.Engine) {
	t.Helper()

	// events
	w := doRequest(router, http.MethodPost, "/events", `{"nume":"Rock Fest","locatie":"Cluj","numarlocuri":500}`)
	expectStatus(t, w, http.StatusCreated)

	var ev resource
	mustReadJSON(t, w, &ev)
	eventURL := linkBase + "/events/" + strconv.Itoa(ev.ID)

	if ev.Links["self"].Href != eventURL || w.Header().Get("Location") != eventURL {
		t.Fatalf("unexpected event self link: %+v", ev.Links["self"])
	}
	if ev.Links["event-packets"].Href != eventURL+"/event-packets" {
		t.Fatalf("unexpected event-packets link: %+v", ev.Links["event-packets"])
	}

	w = doRequest(router, http.MethodPost, "/events", `{"nume":"Rock Fest"}`)
	expectError(t, w, http.StatusConflict, "Duplicate Entry", "An event with this name already exists.")

	w = doRequest(router, http.MethodGet, "/events?location=clu", "")
	expectStatus(t, w, http.StatusOK)

	var filtered []resource
	mustReadJSON(t, w, &filtered)
	if len(filtered) != 1 || filtered[0].Links["self"].Href != linkBase+"/events?location=clu" {
		t.Fatalf("unexpected filtered events: %+v", filtered)
	}

	// packets
	w = doRequest(router, http.MethodPost, "/event-packets", `{"nume":"Summer Pass","descriere":"Festival bundle"}`)
	expectStatus(t, w, http.StatusCreated)

	var pk resource
	mustReadJSON(t, w, &pk)
	pid := strconv.Itoa(pk.ID)
	eid := strconv.Itoa(ev.ID)

	// relation
	w = doRequest(router, http.MethodPost, "/events/"+eid+"/event-packets", `{"id_pachet":`+pid+`,"numarlocuri":100}`)
	expectStatus(t, w, http.StatusCreated)

	var rel resource
	mustReadJSON(t, w, &rel)
	if rel.Links["event-packet"].Href != linkBase+"/event-packets/"+pid {
		t.Fatalf("unexpected relation links: %+v", rel.Links)
	}

	w = doRequest(router, http.MethodPost, "/event-packets/"+pid+"/events", `{"id_event":`+eid+`}`)
	expectError(t, w, http.StatusConflict, "Duplicate Entry", "This event is already in this packet.")

	w = doRequest(router, http.MethodPost, "/events/"+eid+"/event-packets", `{"id_pachet":99999}`)
	expectError(t, w, http.StatusBadRequest, "Invalid Reference", "Invalid packet or event ID provided.")

	w = doRequest(router, http.MethodGet, "/events/"+eid+"/event-packets", "")
	expectStatus(t, w, http.StatusOK)

	var packetsOfEvent []resource
	mustReadJSON(t, w, &packetsOfEvent)
	if len(packetsOfEvent) != 1 || packetsOfEvent[0].ID != pk.ID {
		t.Fatalf("expected packet %d under event, got %+v", pk.ID, packetsOfEvent)
	}

	// packet filters
	for query, want := range map[string]int{
		"?available_tickets=50":  1,
		"?available_tickets=500": 0,
		"?type=festival":         1,
		"?type=opera":            0,
		"?type=%25":              0,
		"?page=2":                0,
	} {
		w = doRequest(router, http.MethodGet, "/event-packets"+query, "")
		expectStatus(t, w, http.StatusOK)

		var got []resource
		mustReadJSON(t, w, &got)
		if len(got) != want {
			t.Fatalf("%s: expected %d packets, got %d", query, want, len(got))
		}
	}

	// tickets
	w = doRequest(router, http.MethodPost, "/tickets", `{"cod":"VIP-1","id_event":`+eid+`}`)
	expectStatus(t, w, http.StatusCreated)

	var vip resource
	mustReadJSON(t, w, &vip)
	expectStatus(t, follow(t, router, vip.Links["self"].Href), http.StatusOK)

	w = doRequest(router, http.MethodPost, "/tickets", `{"cod":"AB/C","id_event":`+eid+`}`)
	expectError(t, w, http.StatusUnprocessableEntity, "Validation Failed", "cod: must not contain any of /?#%")

	w = doRequest(router, http.MethodPost, "/tickets", `{"cod":"VIP-2","id_event":`+eid+`,"id_pachet":`+pid+`}`)
	expectError(t, w, http.StatusUnprocessableEntity, "Validation Failed", ticket.ExclusiveRefMessage)

	w = doRequest(router, http.MethodPost, "/tickets", `{"cod":"VIP-3","id_event":99999}`)
	expectError(t, w, http.StatusBadRequest, "Invalid Reference", "Invalid packet or event ID provided.")

	w = doRequest(router, http.MethodPost, "/tickets", `{"cod":"VIP-1","id_pachet":`+pid+`}`)
	expectError(t, w, http.StatusConflict, "Duplicate Entry", "A ticket with this code already exists.")

	w = doRequest(router, http.MethodPost, "/event-packets/"+pid+"/tickets", `{"cod":"PK-1"}`)
	expectStatus(t, w, http.StatusCreated)

	var nested resource
	mustReadJSON(t, w, &nested)
	if nested.Links["self"].Href != linkBase+"/event-packets/"+pid+"/tickets/PK-1" {
		t.Fatalf("unexpected nested ticket link: %+v", nested.Links["self"])
	}
	expectStatus(t, follow(t, router, nested.Links["self"].Href), http.StatusOK)
	expectStatus(t, follow(t, router, nested.Links["parent"].Href), http.StatusOK)

	w = doRequest(router, http.MethodGet, "/events/"+eid+"/tickets", "")
	expectStatus(t, w, http.StatusOK)

	var eventTickets []resource
	mustReadJSON(t, w, &eventTickets)
	if len(eventTickets) != 1 || eventTickets[0].Code != "VIP-1" {
		t.Fatalf("expected only VIP-1 under the event, got %+v", eventTickets)
	}

	// a packet ticket is invisible through the event
	w = doRequest(router, http.MethodGet, "/events/"+eid+"/tickets/PK-1", "")
	expectError(t, w, http.StatusNotFound, "Resource Not Found", "The requested ticket was not found.")

	w = doRequest(router, http.MethodPut, "/tickets/PK-1", `{"id_event":`+eid+`}`)
	expectStatus(t, w, http.StatusOK)

	var moved resource
	mustReadJSON(t, w, &moved)
	if moved.EventID == nil || moved.Packet != nil {
		t.Fatalf("expected ticket moved to the event, got %+v", moved)
	}

	w = doRequest(router, http.MethodGet, "/tickets", "")
	expectStatus(t, w, http.StatusOK)

	var all []resource
	mustReadJSON(t, w, &all)
	if len(all) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(all))
	}

	// cascading delete
	w = doRequest(router, http.MethodDelete, "/events/"+eid, "")
	expectStatus(t, w, http.StatusNoContent)

	w = doRequest(router, http.MethodGet, "/tickets/VIP-1", "")
	expectError(t, w, http.StatusNotFound, "Resource Not Found", "The requested ticket was not found.")

	w = doRequest(router, http.MethodGet, "/events/"+eid+"/event-packets", "")
	expectError(t, w, http.StatusNotFound, "Resource Not Found", "The requested event was not found.")

	w = doRequest(router, http.MethodGet, "/event-packets/"+pid+"/events", "")
	expectStatus(t, w, http.StatusOK)
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("expected no events left in packet, got %s", w.Body.String())
	}

	w = doRequest(router, http.MethodDelete, "/events/"+eid, "")
	expectError(t, w, http.StatusNotFound, "Resource Not Found", "The requested event was not found.")
}
