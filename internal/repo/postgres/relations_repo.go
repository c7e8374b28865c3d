package postgres

import (
	"context"

	"github.com/geocoder89/eventmanager/internal/apperr"
	"github.com/geocoder89/eventmanager/internal/domain/event"
	"github.com/geocoder89/eventmanager/internal/domain/packet"
	"github.com/geocoder89/eventmanager/internal/domain/relation"
	"github.com/geocoder89/eventmanager/internal/observability"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RelationsRepo manages the packet <-> event join table.
type RelationsRepo struct {
	pool *pgxpool.Pool
	observer
}

func NewRelationsRepo(pool *pgxpool.Pool, prom *observability.Prom) *RelationsRepo {
	return &RelationsRepo{
		pool:     pool,
		observer: newObserver(prom),
	}
}

func (r *RelationsRepo) PacketsForEvent(ctx context.Context, eventID int) ([]packet.Packet, error) {
	output := make([]packet.Packet, 0)

	err := r.observe(ctx, "relations.packets_for_event", func(ctx context.Context) error {
		rows, err := r.pool.Query(ctx, `
			SELECT `+packetColumns+`
			FROM PACHETE p
			JOIN JOIN_PE j ON p.id = j.pachetid
			WHERE j.evenimentid = $1
			ORDER BY p.id ASC`, eventID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			p, err := scanPacket(rows)
			if err != nil {
				return err
			}
			output = append(output, p)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, MapError(apperr.Relation, err)
	}

	// an unknown event answers 404 rather than an empty list
	if len(output) == 0 {
		var ok bool
		err = r.observe(ctx, "relations.packets_for_event.check_event_exists", func(ctx context.Context) error {
			ok, err = eventExists(ctx, r.pool, eventID)
			return err
		})
		if err != nil {
			return nil, MapError(apperr.Event, err)
		}
		if !ok {
			return nil, event.ErrNotFound
		}
	}

	return output, nil
}

func (r *RelationsRepo) EventsForPacket(ctx context.Context, packetID int) ([]event.Event, error) {
	output := make([]event.Event, 0)

	err := r.observe(ctx, "relations.events_for_packet", func(ctx context.Context) error {
		rows, err := r.pool.Query(ctx, `
			SELECT e.id, e.id_owner, e.nume, e.locatie, e.descriere, e.numarlocuri
			FROM EVENIMENTE e
			JOIN JOIN_PE j ON e.id = j.evenimentid
			WHERE j.pachetid = $1
			ORDER BY e.id ASC`, packetID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			e, err := scanEvent(rows)
			if err != nil {
				return err
			}
			output = append(output, e)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, MapError(apperr.Relation, err)
	}

	if len(output) == 0 {
		var ok bool
		err = r.observe(ctx, "relations.events_for_packet.check_packet_exists", func(ctx context.Context) error {
			ok, err = packetExists(ctx, r.pool, packetID)
			return err
		})
		if err != nil {
			return nil, MapError(apperr.Packet, err)
		}
		if !ok {
			return nil, packet.ErrNotFound
		}
	}

	return output, nil
}

func (r *RelationsRepo) Add(ctx context.Context, req relation.CreateRelationRequest) (rel relation.Relation, err error) {
	err = r.observe(ctx, "relations.add", func(ctx context.Context) error {
		return r.pool.QueryRow(ctx, `
			INSERT INTO JOIN_PE (pachetid, evenimentid, numarlocuri)
			VALUES ($1, $2, $3)
			RETURNING pachetid, evenimentid, numarlocuri`,
			req.PacketID, req.EventID, req.Seats,
		).Scan(&rel.PacketID, &rel.EventID, &rel.Seats)
	})

	if err != nil {
		return relation.Relation{}, MapError(apperr.Relation, err)
	}

	return rel, nil
}
