package event

import "github.com/geocoder89/eventmanager/internal/apperr"

type Event struct {
	ID          int     `json:"id"`
	OwnerID     *int    `json:"id_owner"`
	Name        string  `json:"nume"`
	Location    *string `json:"locatie"`
	Description *string `json:"descriere"`
	Capacity    *int    `json:"numarlocuri"`
}

// with pointers if optional, it will be nil
type ListEventsFilter struct {
	Location *string `form:"location" binding:"omitempty,max=100"`
	Name     *string `form:"name" binding:"omitempty,max=100"`
}

// Active reports whether any list filter was supplied.
func (f ListEventsFilter) Active() bool {
	return nonEmpty(f.Location) || nonEmpty(f.Name)
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}

var (
	ErrNotFound         = apperr.New(apperr.Event, apperr.NotFound)
	ErrInvalidReference = apperr.New(apperr.Event, apperr.InvalidReference)
	ErrDuplicateEntry   = apperr.New(apperr.Event, apperr.Duplicate)
)

type CreateEventRequest struct {
	OwnerID     *int    `json:"id_owner" binding:"omitempty,min=1"`
	Name        string  `json:"nume" binding:"required,min=3,max=100"`
	Location    *string `json:"locatie" binding:"omitempty,min=2,max=100"`
	Description *string `json:"descriere" binding:"omitempty,max=1000"`
	Capacity    *int    `json:"numarlocuri" binding:"omitempty,min=1,max=50000"`
}

// a full update payload; an absent owner keeps the stored one.
type UpdateEventRequest struct {
	OwnerID     *int    `json:"id_owner" binding:"omitempty,min=1"`
	Name        string  `json:"nume" binding:"required,min=3,max=100"`
	Location    *string `json:"locatie" binding:"omitempty,min=2,max=100"`
	Description *string `json:"descriere" binding:"omitempty,max=1000"`
	Capacity    *int    `json:"numarlocuri" binding:"omitempty,min=1,max=50000"`
}
