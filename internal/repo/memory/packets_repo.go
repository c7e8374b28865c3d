package memory

import (
	"context"

	"github.com/geocoder89/eventmanager/internal/domain/packet"
)

type PacketsRepo struct {
	s *Store
}

func clonePacket(p packet.Packet) packet.Packet {
	p.OwnerID = clonePtr(p.OwnerID)
	p.Location = clonePtr(p.Location)
	p.Description = clonePtr(p.Description)
	p.Capacity = clonePtr(p.Capacity)
	return p
}

func (r *PacketsRepo) nameTaken(name string, exceptID int) bool {
	for _, p := range r.s.packets {
		if p.Name == name && p.ID != exceptID {
			return true
		}
	}
	return false
}

// seats sums the seats allotted to the packet across its relations.
// ok is false when no relation carries a seat count.
func (r *PacketsRepo) seats(packetID int) (total int, ok bool) {
	for key, rel := range r.s.relations {
		if key.packetID == packetID && rel.Seats != nil {
			total += *rel.Seats
			ok = true
		}
	}
	return total, ok
}

func (r *PacketsRepo) Create(_ context.Context, req packet.CreatePacketRequest) (packet.Packet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nameTaken(req.Name, 0) {
		return packet.Packet{}, packet.ErrDuplicateName
	}

	r.s.lastPacketID++
	p := clonePacket(packet.NewFromCreateRequest(r.s.lastPacketID, req))
	r.s.packets[p.ID] = p

	return clonePacket(p), nil
}

func (r *PacketsRepo) GetByID(_ context.Context, id int) (packet.Packet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.packets[id]
	if !ok {
		return packet.Packet{}, packet.ErrNotFound
	}

	return clonePacket(p), nil
}

func (r *PacketsRepo) List(_ context.Context, q packet.ListPacketsQuery) ([]packet.Packet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]packet.Packet, 0)
	for _, p := range sortedValues(r.s.packets, func(p packet.Packet) int { return p.ID }) {
		if q.Type != nil && *q.Type != "" && !containsFold(p.Description, *q.Type) {
			continue
		}
		if q.AvailableTickets != nil {
			if total, ok := r.seats(p.ID); !ok || total < *q.AvailableTickets {
				continue
			}
		}
		matched = append(matched, p)
	}

	_, limit := q.Effective()
	offset := q.Offset()

	out := make([]packet.Packet, 0, limit)
	for i := offset; i < len(matched) && i < offset+limit; i++ {
		out = append(out, clonePacket(matched[i]))
	}

	return out, nil
}

func (r *PacketsRepo) Update(_ context.Context, id int, req packet.UpdatePacketRequest) (packet.Packet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.packets[id]
	if !ok {
		return packet.Packet{}, packet.ErrNotFound
	}

	if r.nameTaken(req.Name, id) {
		return packet.Packet{}, packet.ErrDuplicateName
	}

	p = clonePacket(packet.ApplyUpdate(p, req))
	r.s.packets[id] = p

	return clonePacket(p), nil
}

func (r *PacketsRepo) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.packets[id]; !ok {
		return packet.ErrNotFound
	}

	delete(r.s.packets, id)

	for code, t := range r.s.tickets {
		if t.PacketID != nil && *t.PacketID == id {
			delete(r.s.tickets, code)
		}
	}
	for key := range r.s.relations {
		if key.packetID == id {
			delete(r.s.relations, key)
		}
	}

	return nil
}
