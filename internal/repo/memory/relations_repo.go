package memory

import (
	"context"

	"github.com/geocoder89/eventmanager/internal/domain/event"
	"github.com/geocoder89/eventmanager/internal/domain/packet"
	"github.com/geocoder89/eventmanager/internal/domain/relation"
)

type RelationsRepo struct {
	s *Store
}

func (r *RelationsRepo) PacketsForEvent(_ context.Context, eventID int) ([]packet.Packet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.events[eventID]; !ok {
		return nil, event.ErrNotFound
	}

	out := make([]packet.Packet, 0)
	for _, p := range sortedValues(r.s.packets, func(p packet.Packet) int { return p.ID }) {
		if _, ok := r.s.relations[pairKey{packetID: p.ID, eventID: eventID}]; ok {
			out = append(out, clonePacket(p))
		}
	}

	return out, nil
}

func (r *RelationsRepo) EventsForPacket(_ context.Context, packetID int) ([]event.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.packets[packetID]; !ok {
		return nil, packet.ErrNotFound
	}

	out := make([]event.Event, 0)
	for _, e := range sortedValues(r.s.events, func(e event.Event) int { return e.ID }) {
		if _, ok := r.s.relations[pairKey{packetID: packetID, eventID: e.ID}]; ok {
			out = append(out, cloneEvent(e))
		}
	}

	return out, nil
}

func (r *RelationsRepo) Add(_ context.Context, req relation.CreateRelationRequest) (relation.Relation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey{packetID: req.PacketID, eventID: req.EventID}
	if _, ok := r.s.relations[key]; ok {
		return relation.Relation{}, relation.ErrDuplicateEntry
	}

	_, packetOK := r.s.packets[req.PacketID]
	_, eventOK := r.s.events[req.EventID]
	if !packetOK || !eventOK {
		return relation.Relation{}, relation.ErrInvalidReference
	}

	rel := relation.Relation{PacketID: req.PacketID, EventID: req.EventID, Seats: clonePtr(req.Seats)}
	r.s.relations[key] = rel

	return relation.Relation{PacketID: rel.PacketID, EventID: rel.EventID, Seats: clonePtr(rel.Seats)}, nil
}
