package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/geocoder89/eventmanager/internal/domain/packet"
	"github.com/geocoder89/eventmanager/internal/links"
	"github.com/gin-gonic/gin"
)

type PacketsStore interface {
	Create(ctx context.Context, req packet.CreatePacketRequest) (packet.Packet, error)
	GetByID(ctx context.Context, id int) (packet.Packet, error)
	List(ctx context.Context, q packet.ListPacketsQuery) ([]packet.Packet, error)
	Update(ctx context.Context, id int, req packet.UpdatePacketRequest) (packet.Packet, error)
	Delete(ctx context.Context, id int) error
}

type PacketsHandler struct {
	repo PacketsStore
	res  links.Resources
	log  *slog.Logger
}

func NewPacketsHandler(repo PacketsStore, res links.Resources, log *slog.Logger) *PacketsHandler {
	return &PacketsHandler{repo: repo, res: res, log: log}
}

func (h *PacketsHandler) CreatePacket(ctx *gin.Context) {
	var req packet.CreatePacketRequest

	if !BindJSON(ctx, &req) {
		return
	}

	c, cancel := requestContext(ctx)
	defer cancel()

	p, err := h.repo.Create(c, req)

	if err != nil {
		RespondDomainError(ctx, h.log, "packets.create", err)
		return
	}

	out := h.res.Packet(p)
	ctx.Header("Location", out.Links.Self.Href)
	ctx.JSON(http.StatusCreated, out)
}

// ListPackets answers GET /event-packets with ?type=, ?available_tickets=,
// ?page= and ?items_per_page=. Any of them switches to filtered links.
func (h *PacketsHandler) ListPackets(ctx *gin.Context) {
	var q packet.ListPacketsQuery

	if !BindQuery(ctx, &q) {
		return
	}

	c, cancel := requestContext(ctx)
	defer cancel()

	packets, err := h.repo.List(c, q)

	if err != nil {
		RespondDomainError(ctx, h.log, "packets.list", err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, h.res.ListPackets(packets, q))
}

func (h *PacketsHandler) GetPacket(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	c, cancel := requestContext(ctx)
	defer cancel()

	p, err := h.repo.GetByID(c, id)

	if err != nil {
		RespondDomainError(ctx, h.log, "packets.get", err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, h.res.Packet(p))
}

func (h *PacketsHandler) UpdatePacket(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req packet.UpdatePacketRequest

	if !BindJSON(ctx, &req) {
		return
	}

	c, cancel := requestContext(ctx)
	defer cancel()

	p, err := h.repo.Update(c, id, req)

	if err != nil {
		RespondDomainError(ctx, h.log, "packets.update", err)
		return
	}

	ctx.JSON(http.StatusOK, h.res.Packet(p))
}

func (h *PacketsHandler) DeletePacket(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	c, cancel := requestContext(ctx)
	defer cancel()

	if err := h.repo.Delete(c, id); err != nil {
		RespondDomainError(ctx, h.log, "packets.delete", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
