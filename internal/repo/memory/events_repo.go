package memory

import (
	"context"

	"github.com/geocoder89/eventmanager/internal/domain/event"
)

type EventsRepo struct {
	s *Store
}

func cloneEvent(e event.Event) event.Event {
	e.OwnerID = clonePtr(e.OwnerID)
	e.Location = clonePtr(e.Location)
	e.Description = clonePtr(e.Description)
	e.Capacity = clonePtr(e.Capacity)
	return e
}

func (r *EventsRepo) nameTaken(name string, exceptID int) bool {
	for _, e := range r.s.events {
		if e.Name == name && e.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *EventsRepo) Create(_ context.Context, req event.CreateEventRequest) (event.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nameTaken(req.Name, 0) {
		return event.Event{}, event.ErrDuplicateEntry
	}

	r.s.lastEventID++
	e := cloneEvent(event.NewFromCreateRequest(r.s.lastEventID, req))
	r.s.events[e.ID] = e

	return cloneEvent(e), nil
}

func (r *EventsRepo) GetByID(_ context.Context, id int) (event.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.events[id]
	if !ok {
		return event.Event{}, event.ErrNotFound
	}

	return cloneEvent(e), nil
}

func (r *EventsRepo) List(_ context.Context, filter event.ListEventsFilter) ([]event.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]event.Event, 0)
	for _, e := range sortedValues(r.s.events, func(e event.Event) int { return e.ID }) {
		if filter.Location != nil && *filter.Location != "" && !containsFold(e.Location, *filter.Location) {
			continue
		}
		if filter.Name != nil && *filter.Name != "" && !containsFold(&e.Name, *filter.Name) {
			continue
		}
		out = append(out, cloneEvent(e))
	}

	return out, nil
}

func (r *EventsRepo) Update(_ context.Context, id int, req event.UpdateEventRequest) (event.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.events[id]
	if !ok {
		return event.Event{}, event.ErrNotFound
	}

	if r.nameTaken(req.Name, id) {
		return event.Event{}, event.ErrDuplicateEntry
	}

	e = cloneEvent(event.ApplyUpdate(e, req))
	r.s.events[id] = e

	return cloneEvent(e), nil
}

// Delete cascades to the event's tickets and packet relations.
func (r *EventsRepo) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[id]; !ok {
		return event.ErrNotFound
	}

	delete(r.s.events, id)

	for code, t := range r.s.tickets {
		if t.EventID != nil && *t.EventID == id {
			delete(r.s.tickets, code)
		}
	}
	for key := range r.s.relations {
		if key.eventID == id {
			delete(r.s.relations, key)
		}
	}

	return nil
}
