package relation

import "github.com/geocoder89/eventmanager/internal/apperr"

// Relation links one packet to one event, optionally overriding the seat
// count for that pairing.
type Relation struct {
	PacketID int  `json:"id_pachet"`
	EventID  int  `json:"id_event"`
	Seats    *int `json:"numarlocuri"`
}

var (
	ErrNotFound            = apperr.New(apperr.Relation, apperr.NotFound)
	ErrDuplicateEntry      = apperr.New(apperr.Relation, apperr.Duplicate)
	ErrInvalidReference    = apperr.New(apperr.Relation, apperr.InvalidReference)
	ErrConstraintViolation = apperr.New(apperr.Relation, apperr.ConstraintViolation)
)

// AddPacketToEventRequest is posted to /events/{id}/event-packets.
type AddPacketToEventRequest struct {
	PacketID int  `json:"id_pachet" binding:"required,min=1"`
	Seats    *int `json:"numarlocuri" binding:"omitempty,min=1,max=50000"`
}

func (r AddPacketToEventRequest) ForEvent(eventID int) CreateRelationRequest {
	return CreateRelationRequest{PacketID: r.PacketID, EventID: eventID, Seats: r.Seats}
}

// AddEventToPacketRequest is posted to /event-packets/{id}/events.
type AddEventToPacketRequest struct {
	EventID int  `json:"id_event" binding:"required,min=1"`
	Seats   *int `json:"numarlocuri" binding:"omitempty,min=1,max=50000"`
}

func (r AddEventToPacketRequest) ForPacket(packetID int) CreateRelationRequest {
	return CreateRelationRequest{PacketID: packetID, EventID: r.EventID, Seats: r.Seats}
}

type CreateRelationRequest struct {
	PacketID int
	EventID  int
	Seats    *int
}
