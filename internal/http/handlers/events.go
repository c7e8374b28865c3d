package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/geocoder89/eventmanager/internal/domain/event"
	"github.com/geocoder89/eventmanager/internal/links"
	"github.com/gin-gonic/gin"
)

type EventsStore interface {
	Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error)
	GetByID(ctx context.Context, id int) (event.Event, error)
	List(ctx context.Context, filter event.ListEventsFilter) ([]event.Event, error)
	Update(ctx context.Context, id int, req event.UpdateEventRequest) (event.Event, error)
	Delete(ctx context.Context, id int) error
}

type EventsHandler struct {
	repo EventsStore
	res  links.Resources
	log  *slog.Logger
}

func NewEventsHandler(repo EventsStore, res links.Resources, log *slog.Logger) *EventsHandler {
	return &EventsHandler{repo: repo, res: res, log: log}
}

func (h *EventsHandler) CreateEvent(ctx *gin.Context) {
	var req event.CreateEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	c, cancel := requestContext(ctx)
	defer cancel()

	e, err := h.repo.Create(c, req)

	if err != nil {
		RespondDomainError(ctx, h.log, "events.create", err)
		return
	}

	out := h.res.Event(e)
	ctx.Header("Location", out.Links.Self.Href)
	ctx.JSON(http.StatusCreated, out)
}

// ListEvents answers GET /events, optionally filtered by ?location= and ?name=.
func (h *EventsHandler) ListEvents(ctx *gin.Context) {
	var filter event.ListEventsFilter

	if !BindQuery(ctx, &filter) {
		return
	}

	c, cancel := requestContext(ctx)
	defer cancel()

	events, err := h.repo.List(c, filter)

	if err != nil {
		RespondDomainError(ctx, h.log, "events.list", err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, h.res.ListEvents(events, filter))
}

func (h *EventsHandler) GetEvent(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	c, cancel := requestContext(ctx)
	defer cancel()

	e, err := h.repo.GetByID(c, id)

	if err != nil {
		RespondDomainError(ctx, h.log, "events.get", err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, h.res.Event(e))
}

func (h *EventsHandler) UpdateEvent(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req event.UpdateEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	c, cancel := requestContext(ctx)
	defer cancel()

	e, err := h.repo.Update(c, id, req)

	if err != nil {
		RespondDomainError(ctx, h.log, "events.update", err)
		return
	}

	ctx.JSON(http.StatusOK, h.res.Event(e))
}

func (h *EventsHandler) DeleteEvent(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	c, cancel := requestContext(ctx)
	defer cancel()

	if err := h.repo.Delete(c, id); err != nil {
		RespondDomainError(ctx, h.log, "events.delete", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
