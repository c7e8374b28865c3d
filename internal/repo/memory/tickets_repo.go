package memory

import (
	"context"
	"sort"

	"github.com/geocoder89/eventmanager/internal/domain/event"
	"github.com/geocoder89/eventmanager/internal/domain/packet"
	"github.com/geocoder89/eventmanager/internal/domain/ticket"
)

type TicketsRepo struct {
	s *Store
}

func cloneTicket(t ticket.Ticket) ticket.Ticket {
	t.PacketID = clonePtr(t.PacketID)
	t.EventID = clonePtr(t.EventID)
	return t
}

// checkRefs applies the exclusivity check first and the foreign keys second,
// the order the database evaluates them in.
func (r *TicketsRepo) checkRefs(ref ticket.Referencer) error {
	if !ticket.HasExclusiveRef(ref) {
		return ticket.ErrConstraintViolation
	}

	packetID, eventID := ref.References()
	if packetID != nil {
		if _, ok := r.s.packets[*packetID]; !ok {
			return ticket.ErrInvalidReference
		}
	}
	if eventID != nil {
		if _, ok := r.s.events[*eventID]; !ok {
			return ticket.ErrInvalidReference
		}
	}

	return nil
}

func (r *TicketsRepo) Create(_ context.Context, req ticket.CreateTicketRequest) (ticket.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !ticket.HasExclusiveRef(req) {
		return ticket.Ticket{}, ticket.ErrConstraintViolation
	}

	if _, ok := r.s.tickets[req.Code]; ok {
		return ticket.Ticket{}, ticket.ErrDuplicateEntry
	}

	if err := r.checkRefs(req); err != nil {
		return ticket.Ticket{}, err
	}

	t := cloneTicket(ticket.New(req))
	r.s.tickets[t.Code] = t

	return cloneTicket(t), nil
}

func (r *TicketsRepo) lookup(owner ticket.Owner, code string) (ticket.Ticket, error) {
	t, ok := r.s.tickets[code]
	if !ok || !owner.Owns(t) {
		return ticket.Ticket{}, ticket.ErrNotFound
	}
	return t, nil
}

func (r *TicketsRepo) Get(_ context.Context, owner ticket.Owner, code string) (ticket.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, err := r.lookup(owner, code)
	if err != nil {
		return ticket.Ticket{}, err
	}

	return cloneTicket(t), nil
}

func (r *TicketsRepo) List(_ context.Context, owner ticket.Owner) ([]ticket.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	switch owner.Kind {
	case ticket.EventOwner:
		if _, ok := r.s.events[owner.ID]; !ok {
			return nil, event.ErrNotFound
		}
	case ticket.PacketOwner:
		if _, ok := r.s.packets[owner.ID]; !ok {
			return nil, packet.ErrNotFound
		}
	}

	out := make([]ticket.Ticket, 0)
	for _, t := range r.s.tickets {
		if owner.Owns(t) {
			out = append(out, cloneTicket(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })

	return out, nil
}

func (r *TicketsRepo) Update(_ context.Context, owner ticket.Owner, code string, req ticket.UpdateTicketRequest) (ticket.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, err := r.lookup(owner, code)
	if err != nil {
		return ticket.Ticket{}, err
	}

	if err := r.checkRefs(req); err != nil {
		return ticket.Ticket{}, err
	}

	t.PacketID = clonePtr(req.PacketID)
	t.EventID = clonePtr(req.EventID)
	r.s.tickets[code] = t

	return cloneTicket(t), nil
}

func (r *TicketsRepo) Delete(_ context.Context, owner ticket.Owner, code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, err := r.lookup(owner, code); err != nil {
		return err
	}

	delete(r.s.tickets, code)
	return nil
}
