package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/geocoder89/eventmanager/internal/domain/event"
	"github.com/geocoder89/eventmanager/internal/domain/packet"
	"github.com/geocoder89/eventmanager/internal/domain/relation"
	"github.com/geocoder89/eventmanager/internal/links"
	"github.com/gin-gonic/gin"
)

type RelationsStore interface {
	PacketsForEvent(ctx context.Context, eventID int) ([]packet.Packet, error)
	EventsForPacket(ctx context.Context, packetID int) ([]event.Event, error)
	Add(ctx context.Context, req relation.CreateRelationRequest) (relation.Relation, error)
}

// RelationsHandler serves both directions of the packet <-> event link.
type RelationsHandler struct {
	repo RelationsStore
	res  links.Resources
	log  *slog.Logger
}

func NewRelationsHandler(repo RelationsStore, res links.Resources, log *slog.Logger) *RelationsHandler {
	return &RelationsHandler{repo: repo, res: res, log: log}
}

func (h *RelationsHandler) ListPacketsOfEvent(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	c, cancel := requestContext(ctx)
	defer cancel()

	packets, err := h.repo.PacketsForEvent(c, id)

	if err != nil {
		RespondDomainError(ctx, h.log, "relations.packets_for_event", err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, h.res.PacketsOfEvent(packets, id))
}

func (h *RelationsHandler) ListEventsOfPacket(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	c, cancel := requestContext(ctx)
	defer cancel()

	events, err := h.repo.EventsForPacket(c, id)

	if err != nil {
		RespondDomainError(ctx, h.log, "relations.events_for_packet", err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, h.res.EventsOfPacket(events, id))
}

func (h *RelationsHandler) AddPacketToEvent(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req relation.AddPacketToEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	c, cancel := requestContext(ctx)
	defer cancel()

	rel, err := h.repo.Add(c, req.ForEvent(id))

	if err != nil {
		RespondDomainError(ctx, h.log, "relations.add_packet_to_event", err)
		return
	}

	ctx.JSON(http.StatusCreated, h.res.RelationOfEvent(rel))
}

func (h *RelationsHandler) AddEventToPacket(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req relation.AddEventToPacketRequest

	if !BindJSON(ctx, &req) {
		return
	}

	c, cancel := requestContext(ctx)
	defer cancel()

	rel, err := h.repo.Add(c, req.ForPacket(id))

	if err != nil {
		RespondDomainError(ctx, h.log, "relations.add_event_to_packet", err)
		return
	}

	ctx.JSON(http.StatusCreated, h.res.RelationOfPacket(rel))
}
