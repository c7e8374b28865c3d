package event

func NewFromCreateRequest(id int, req CreateEventRequest) Event {
	return Event{
		ID:          id,
		OwnerID:     req.OwnerID,
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Capacity:    req.Capacity,
	}
}

// ApplyUpdate returns e with req applied. The owner is only replaced when set.
func ApplyUpdate(e Event, req UpdateEventRequest) Event {
	if req.OwnerID != nil {
		e.OwnerID = req.OwnerID
	}
	e.Name = req.Name
	e.Location = req.Location
	e.Description = req.Description
	e.Capacity = req.Capacity

	return e
}
