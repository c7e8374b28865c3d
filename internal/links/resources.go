package links

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/geocoder89/eventmanager/internal/domain/event"
	"github.com/geocoder89/eventmanager/internal/domain/packet"
	"github.com/geocoder89/eventmanager/internal/domain/relation"
	"github.com/geocoder89/eventmanager/internal/domain/ticket"
)

const (
	eventsPath  = "/events"
	packetsPath = "/event-packets"
	ticketsPath = "/tickets"

	RelEvents  = "events"
	RelEvent   = "event"
	RelPackets = "event-packets"
	RelPacket  = "event-packet"
	RelTickets = "tickets"
)

var (
	itemMethods       = []string{http.MethodGet, http.MethodPut, http.MethodDelete}
	collectionMethods = []string{http.MethodGet, http.MethodPost}
	readMethods       = []string{http.MethodGet}
)

// Resources shapes domain values into linked responses rooted at a base URL.
type Resources struct {
	base string
}

func NewResources(baseURL string) Resources {
	return Resources{base: strings.TrimRight(baseURL, "/")}
}

func (r Resources) BaseURL() string {
	return r.base
}

func (r Resources) url(segments ...string) string {
	var b strings.Builder
	b.WriteString(r.base)
	for _, s := range segments {
		b.WriteString(s)
	}
	return b.String()
}

func idSegment(id int) string {
	return "/" + strconv.Itoa(id)
}

func codeSegment(code string) string {
	return "/" + url.PathEscape(code)
}

// Events

func (r Resources) Event(e event.Event) Response[event.Event] {
	self := r.url(eventsPath, idSegment(e.ID))

	return NewBuilder(e, self, itemMethods...).
		Parent(r.url(eventsPath), collectionMethods...).
		Link(RelPackets, self+packetsPath, collectionMethods...).
		Link(RelTickets, self+ticketsPath, collectionMethods...).
		Build()
}

func (r Resources) Events(events []event.Event) []Response[event.Event] {
	out := make([]Response[event.Event], 0, len(events))
	for _, e := range events {
		out = append(out, r.Event(e))
	}
	return out
}

func (r Resources) FilteredEvents(events []event.Event, filter event.ListEventsFilter) []Response[event.Event] {
	self := r.url(eventsPath) + encodeQuery(eventQuery(filter))
	template := NewBuilder(event.Event{}, self, readMethods...).
		Parent(r.url(eventsPath), collectionMethods...)

	return BuildEach(template, events)
}

// ListEvents picks filtered mode when any filter is active.
func (r Resources) ListEvents(events []event.Event, filter event.ListEventsFilter) []Response[event.Event] {
	if filter.Active() {
		return r.FilteredEvents(events, filter)
	}
	return r.Events(events)
}

// EventsOfPacket shapes events reached through /event-packets/{id}/events.
func (r Resources) EventsOfPacket(events []event.Event, packetID int) []Response[event.Event] {
	owner := r.url(packetsPath, idSegment(packetID))
	template := NewBuilder(event.Event{}, owner+eventsPath, collectionMethods...).
		Parent(owner, itemMethods...)

	return BuildEach(template, events)
}

// Packets

func (r Resources) Packet(p packet.Packet) Response[packet.Packet] {
	self := r.url(packetsPath, idSegment(p.ID))

	return NewBuilder(p, self, itemMethods...).
		Parent(r.url(packetsPath), collectionMethods...).
		Link(RelEvents, self+eventsPath, collectionMethods...).
		Link(RelTickets, self+ticketsPath, collectionMethods...).
		Build()
}

func (r Resources) Packets(packets []packet.Packet) []Response[packet.Packet] {
	out := make([]Response[packet.Packet], 0, len(packets))
	for _, p := range packets {
		out = append(out, r.Packet(p))
	}
	return out
}

func (r Resources) FilteredPackets(packets []packet.Packet, q packet.ListPacketsQuery) []Response[packet.Packet] {
	self := r.url(packetsPath) + encodeQuery(packetQuery(q))
	template := NewBuilder(packet.Packet{}, self, readMethods...).
		Parent(r.url(packetsPath), collectionMethods...)

	return BuildEach(template, packets)
}

func (r Resources) ListPackets(packets []packet.Packet, q packet.ListPacketsQuery) []Response[packet.Packet] {
	if q.Active() {
		return r.FilteredPackets(packets, q)
	}
	return r.Packets(packets)
}

// PacketsOfEvent shapes packets reached through /events/{id}/event-packets.
func (r Resources) PacketsOfEvent(packets []packet.Packet, eventID int) []Response[packet.Packet] {
	owner := r.url(eventsPath, idSegment(eventID))
	template := NewBuilder(packet.Packet{}, owner+packetsPath, collectionMethods...).
		Parent(owner, itemMethods...)

	return BuildEach(template, packets)
}

// Tickets

func (r Resources) Ticket(t ticket.Ticket) Response[ticket.Ticket] {
	b := NewBuilder(t, r.url(ticketsPath, codeSegment(t.Code)), itemMethods...).
		Parent(r.url(ticketsPath), collectionMethods...)

	switch {
	case t.EventID != nil:
		b = b.Link(RelEvent, r.url(eventsPath, idSegment(*t.EventID)), itemMethods...)
	case t.PacketID != nil:
		b = b.Link(RelPacket, r.url(packetsPath, idSegment(*t.PacketID)), itemMethods...)
	}

	return b.Build()
}

func (r Resources) Tickets(tickets []ticket.Ticket) []Response[ticket.Ticket] {
	out := make([]Response[ticket.Ticket], 0, len(tickets))
	for _, t := range tickets {
		out = append(out, r.Ticket(t))
	}
	return out
}

// OwnedTicket shapes a ticket reached through its owner's nested collection.
// An unscoped owner, or one the ticket no longer belongs to, falls back to
// the top level representation.
func (r Resources) OwnedTicket(t ticket.Ticket, owner ticket.Owner) Response[ticket.Ticket] {
	collection := r.ownerTickets(owner)
	if collection == "" || !owner.Owns(t) {
		return r.Ticket(t)
	}

	return NewBuilder(t, collection+codeSegment(t.Code), itemMethods...).
		Parent(collection, collectionMethods...).
		Build()
}

func (r Resources) OwnedTickets(tickets []ticket.Ticket, owner ticket.Owner) []Response[ticket.Ticket] {
	out := make([]Response[ticket.Ticket], 0, len(tickets))
	for _, t := range tickets {
		out = append(out, r.OwnedTicket(t, owner))
	}
	return out
}

func (r Resources) ownerTickets(owner ticket.Owner) string {
	switch owner.Kind {
	case ticket.EventOwner:
		return r.url(eventsPath, idSegment(owner.ID), ticketsPath)
	case ticket.PacketOwner:
		return r.url(packetsPath, idSegment(owner.ID), ticketsPath)
	default:
		return ""
	}
}

// Relations

// RelationOfEvent shapes a relation created through /events/{id}/event-packets.
func (r Resources) RelationOfEvent(rel relation.Relation) Response[relation.Relation] {
	owner := r.url(eventsPath, idSegment(rel.EventID))

	return NewBuilder(rel, owner+packetsPath, collectionMethods...).
		Parent(owner, itemMethods...).
		Link(RelPacket, r.url(packetsPath, idSegment(rel.PacketID)), itemMethods...).
		Build()
}

// RelationOfPacket shapes a relation created through /event-packets/{id}/events.
func (r Resources) RelationOfPacket(rel relation.Relation) Response[relation.Relation] {
	owner := r.url(packetsPath, idSegment(rel.PacketID))

	return NewBuilder(rel, owner+eventsPath, collectionMethods...).
		Parent(owner, itemMethods...).
		Link(RelEvent, r.url(eventsPath, idSegment(rel.EventID)), itemMethods...).
		Build()
}
