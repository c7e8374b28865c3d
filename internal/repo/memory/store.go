// Package memory is an in-process store with the same error semantics as the
// postgres repositories: uniqueness, foreign keys, the ticket exclusivity
// check and cascading deletes.
package memory

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/geocoder89/eventmanager/internal/domain/event"
	"github.com/geocoder89/eventmanager/internal/domain/packet"
	"github.com/geocoder89/eventmanager/internal/domain/relation"
	"github.com/geocoder89/eventmanager/internal/domain/ticket"
)

type pairKey struct {
	packetID int
	eventID  int
}

// Store holds every table behind one lock so cross-table checks are atomic.
type Store struct {
	mu sync.RWMutex

	events    map[int]event.Event
	packets   map[int]packet.Packet
	tickets   map[string]ticket.Ticket
	relations map[pairKey]relation.Relation

	lastEventID  int
	lastPacketID int
}

func NewStore() *Store {
	return &Store{
		events:    make(map[int]event.Event),
		packets:   make(map[int]packet.Packet),
		tickets:   make(map[string]ticket.Ticket),
		relations: make(map[pairKey]relation.Relation),
	}
}

func (s *Store) Events() *EventsRepo       { return &EventsRepo{s: s} }
func (s *Store) Packets() *PacketsRepo     { return &PacketsRepo{s: s} }
func (s *Store) Tickets() *TicketsRepo     { return &TicketsRepo{s: s} }
func (s *Store) Relations() *RelationsRepo { return &RelationsRepo{s: s} }

// containsFold is a case-insensitive substring match; % and _ are literal.
func containsFold(haystack *string, needle string) bool {
	if haystack == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*haystack), strings.ToLower(needle))
}

func sortedValues[K comparable, V any](m map[K]V, key func(V) int) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b V) int { return cmp.Compare(key(a), key(b)) })
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
