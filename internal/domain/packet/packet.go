package packet

import "github.com/geocoder89/eventmanager/internal/apperr"

const (
	DefaultPage         = 1
	DefaultItemsPerPage = 10
)

type Packet struct {
	ID          int     `json:"id"`
	OwnerID     *int    `json:"id_owner"`
	Name        string  `json:"nume"`
	Location    *string `json:"locatie"`
	Description *string `json:"descriere"`
	Capacity    *int    `json:"numarlocuri"`
}

var (
	ErrNotFound            = apperr.New(apperr.Packet, apperr.NotFound)
	ErrDuplicateName       = apperr.New(apperr.Packet, apperr.Duplicate)
	ErrInvalidEventID      = apperr.New(apperr.Packet, apperr.InvalidReference)
	ErrConstraintViolation = apperr.New(apperr.Packet, apperr.ConstraintViolation)
)

type Pagination struct {
	Page         *int `form:"page" binding:"omitempty,min=1"`
	ItemsPerPage *int `form:"items_per_page" binding:"omitempty,min=1,max=100"`
}

// Effective returns page and page size with defaults applied.
func (p Pagination) Effective() (page, itemsPerPage int) {
	page, itemsPerPage = DefaultPage, DefaultItemsPerPage

	if p.Page != nil && *p.Page > 0 {
		page = *p.Page
	}
	if p.ItemsPerPage != nil && *p.ItemsPerPage > 0 {
		itemsPerPage = *p.ItemsPerPage
	}

	return page, itemsPerPage
}

func (p Pagination) Offset() int {
	page, size := p.Effective()
	return (page - 1) * size
}

type ListPacketsQuery struct {
	// Type matches against the packet description.
	Type             *string `form:"type" binding:"omitempty,max=100"`
	AvailableTickets *int    `form:"available_tickets" binding:"omitempty,min=0"`
	Pagination
}

// Active reports whether any filter or pagination parameter was supplied.
func (q ListPacketsQuery) Active() bool {
	return (q.Type != nil && *q.Type != "") ||
		q.AvailableTickets != nil ||
		q.Page != nil ||
		q.ItemsPerPage != nil
}

type CreatePacketRequest struct {
	OwnerID     *int    `json:"id_owner" binding:"omitempty,min=1"`
	Name        string  `json:"nume" binding:"required,min=3,max=100"`
	Location    *string `json:"locatie" binding:"omitempty,min=2,max=100"`
	Description *string `json:"descriere" binding:"omitempty,max=1000"`
	Capacity    *int    `json:"numarlocuri" binding:"omitempty,min=1,max=50000"`
}

type UpdatePacketRequest struct {
	OwnerID     *int    `json:"id_owner" binding:"omitempty,min=1"`
	Name        string  `json:"nume" binding:"required,min=3,max=100"`
	Location    *string `json:"locatie" binding:"omitempty,min=2,max=100"`
	Description *string `json:"descriere" binding:"omitempty,max=1000"`
	Capacity    *int    `json:"numarlocuri" binding:"omitempty,min=1,max=50000"`
}

func NewFromCreateRequest(id int, req CreatePacketRequest) Packet {
	return Packet{
		ID:          id,
		OwnerID:     req.OwnerID,
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Capacity:    req.Capacity,
	}
}

func ApplyUpdate(p Packet, req UpdatePacketRequest) Packet {
	if req.OwnerID != nil {
		p.OwnerID = req.OwnerID
	}
	p.Name = req.Name
	p.Location = req.Location
	p.Description = req.Description
	p.Capacity = req.Capacity

	return p
}
