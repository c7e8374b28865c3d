package ticket

type OwnerKind uint8

const (
	// AnyOwner leaves lookups unscoped.
	AnyOwner OwnerKind = iota
	EventOwner
	PacketOwner
)

// Owner scopes ticket operations to the event or packet a nested route names.
type Owner struct {
	Kind OwnerKind
	ID   int
}

var Unscoped = Owner{Kind: AnyOwner}

func OwnedByEvent(id int) Owner  { return Owner{Kind: EventOwner, ID: id} }
func OwnedByPacket(id int) Owner { return Owner{Kind: PacketOwner, ID: id} }

// Owns reports whether t falls inside the owner's scope.
func (o Owner) Owns(t Ticket) bool {
	switch o.Kind {
	case EventOwner:
		return t.EventID != nil && *t.EventID == o.ID
	case PacketOwner:
		return t.PacketID != nil && *t.PacketID == o.ID
	default:
		return true
	}
}

// Assign builds the create payload for a ticket created under the owner.
func (o Owner) Assign(req NestedTicketRequest) CreateTicketRequest {
	id := o.ID
	out := CreateTicketRequest{Code: req.Code}

	switch o.Kind {
	case EventOwner:
		out.EventID = &id
	case PacketOwner:
		out.PacketID = &id
	}

	return out
}
