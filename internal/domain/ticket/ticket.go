package ticket

import "github.com/geocoder89/eventmanager/internal/apperr"

type Ticket struct {
	Code     string `json:"cod"`
	PacketID *int   `json:"id_pachet"`
	EventID  *int   `json:"id_event"`
}

var (
	ErrNotFound            = apperr.New(apperr.Ticket, apperr.NotFound)
	ErrDuplicateEntry      = apperr.New(apperr.Ticket, apperr.Duplicate)
	ErrInvalidReference    = apperr.New(apperr.Ticket, apperr.InvalidReference)
	ErrConstraintViolation = apperr.New(apperr.Ticket, apperr.ConstraintViolation)
)

// ExclusiveRefMessage is reported whenever a ticket would end up with both
// or neither of its owner references.
const ExclusiveRefMessage = "A ticket must belong to EITHER a packet OR an event, not both or neither."

// Codes address tickets in URL paths, so path delimiters are rejected.
type CreateTicketRequest struct {
	Code     string `json:"cod" binding:"required,min=3,max=50,excludesall=/?#%"`
	PacketID *int   `json:"id_pachet" binding:"omitempty,min=1"`
	EventID  *int   `json:"id_event" binding:"omitempty,min=1"`
}

func (r CreateTicketRequest) References() (packetID, eventID *int) {
	return r.PacketID, r.EventID
}

type UpdateTicketRequest struct {
	PacketID *int `json:"id_pachet" binding:"omitempty,min=1"`
	EventID  *int `json:"id_event" binding:"omitempty,min=1"`
}

func (r UpdateTicketRequest) References() (packetID, eventID *int) {
	return r.PacketID, r.EventID
}

// NestedTicketRequest is the body accepted under /events/{id}/tickets and
// /event-packets/{id}/tickets; the owner comes from the path.
type NestedTicketRequest struct {
	Code string `json:"cod" binding:"required,min=3,max=50,excludesall=/?#%"`
}

// Referencer is implemented by payloads subject to the exclusivity rule.
type Referencer interface {
	References() (packetID, eventID *int)
}

// HasExclusiveRef reports whether exactly one owner reference is set.
func HasExclusiveRef(r Referencer) bool {
	packetID, eventID := r.References()
	return (packetID == nil) != (eventID == nil)
}

func New(req CreateTicketRequest) Ticket {
	return Ticket{Code: req.Code, PacketID: req.PacketID, EventID: req.EventID}
}
