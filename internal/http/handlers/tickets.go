package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/geocoder89/eventmanager/internal/domain/ticket"
	"github.com/geocoder89/eventmanager/internal/links"
	"github.com/gin-gonic/gin"
)

type TicketsStore interface {
	Create(ctx context.Context, req ticket.CreateTicketRequest) (ticket.Ticket, error)
	Get(ctx context.Context, owner ticket.Owner, code string) (ticket.Ticket, error)
	List(ctx context.Context, owner ticket.Owner) ([]ticket.Ticket, error)
	Update(ctx context.Context, owner ticket.Owner, code string, req ticket.UpdateTicketRequest) (ticket.Ticket, error)
	Delete(ctx context.Context, owner ticket.Owner, code string) error
}

type TicketsHandler struct {
	repo TicketsStore
	res  links.Resources
	log  *slog.Logger
}

func NewTicketsHandler(repo TicketsStore, res links.Resources, log *slog.Logger) *TicketsHandler {
	return &TicketsHandler{repo: repo, res: res, log: log}
}

// TicketRoutes serves ticket endpoints for one owner kind: the top level
// /tickets collection or a collection nested under an event or packet.
type TicketRoutes struct {
	h    *TicketsHandler
	kind ticket.OwnerKind
}

func (h *TicketsHandler) Routes(kind ticket.OwnerKind) TicketRoutes {
	return TicketRoutes{h: h, kind: kind}
}

func (r TicketRoutes) owner(ctx *gin.Context) (ticket.Owner, bool) {
	switch r.kind {
	case ticket.EventOwner:
		id, ok := pathID(ctx, "id")
		return ticket.OwnedByEvent(id), ok
	case ticket.PacketOwner:
		id, ok := pathID(ctx, "id")
		return ticket.OwnedByPacket(id), ok
	default:
		return ticket.Unscoped, true
	}
}

func (r TicketRoutes) Create(ctx *gin.Context) {
	owner, ok := r.owner(ctx)
	if !ok {
		return
	}

	var req ticket.CreateTicketRequest

	if owner.Kind == ticket.AnyOwner {
		if !BindJSON(ctx, &req) {
			return
		}
	} else {
		var nested ticket.NestedTicketRequest
		if !BindJSON(ctx, &nested) {
			return
		}
		req = owner.Assign(nested)
	}

	c, cancel := requestContext(ctx)
	defer cancel()

	t, err := r.h.repo.Create(c, req)

	if err != nil {
		RespondDomainError(ctx, r.h.log, "tickets.create", err)
		return
	}

	out := r.h.res.OwnedTicket(t, owner)
	ctx.Header("Location", out.Links.Self.Href)
	ctx.JSON(http.StatusCreated, out)
}

func (r TicketRoutes) List(ctx *gin.Context) {
	owner, ok := r.owner(ctx)
	if !ok {
		return
	}

	c, cancel := requestContext(ctx)
	defer cancel()

	tickets, err := r.h.repo.List(c, owner)

	if err != nil {
		RespondDomainError(ctx, r.h.log, "tickets.list", err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, r.h.res.OwnedTickets(tickets, owner))
}

func (r TicketRoutes) Get(ctx *gin.Context) {
	owner, ok := r.owner(ctx)
	if !ok {
		return
	}

	c, cancel := requestContext(ctx)
	defer cancel()

	t, err := r.h.repo.Get(c, owner, ctx.Param("cod"))

	if err != nil {
		RespondDomainError(ctx, r.h.log, "tickets.get", err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, r.h.res.OwnedTicket(t, owner))
}

func (r TicketRoutes) Update(ctx *gin.Context) {
	owner, ok := r.owner(ctx)
	if !ok {
		return
	}

	var req ticket.UpdateTicketRequest

	if !BindJSON(ctx, &req) {
		return
	}

	c, cancel := requestContext(ctx)
	defer cancel()

	t, err := r.h.repo.Update(c, owner, ctx.Param("cod"), req)

	if err != nil {
		RespondDomainError(ctx, r.h.log, "tickets.update", err)
		return
	}

	ctx.JSON(http.StatusOK, r.h.res.OwnedTicket(t, owner))
}

func (r TicketRoutes) Delete(ctx *gin.Context) {
	owner, ok := r.owner(ctx)
	if !ok {
		return
	}

	c, cancel := requestContext(ctx)
	defer cancel()

	if err := r.h.repo.Delete(c, owner, ctx.Param("cod")); err != nil {
		RespondDomainError(ctx, r.h.log, "tickets.delete", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
