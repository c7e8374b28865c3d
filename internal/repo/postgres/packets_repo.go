package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/geocoder89/eventmanager/internal/apperr"
	"github.com/geocoder89/eventmanager/internal/domain/packet"
	"github.com/geocoder89/eventmanager/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const packetColumns = `p.id, p.id_owner, p.nume, p.locatie, p.descriere, p.numarlocuri`

type PacketsRepo struct {
	pool *pgxpool.Pool
	observer
}

func NewPacketsRepo(pool *pgxpool.Pool, prom *observability.Prom) *PacketsRepo {
	return &PacketsRepo{
		pool:     pool,
		observer: newObserver(prom),
	}
}

func scanPacket(row pgx.Row) (p packet.Packet, err error) {
	err = row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Location, &p.Description, &p.Capacity)
	return
}

func (r *PacketsRepo) Create(ctx context.Context, req packet.CreatePacketRequest) (p packet.Packet, err error) {
	err = r.observe(ctx, "packets.create", func(ctx context.Context) error {
		p, err = scanPacket(r.pool.QueryRow(ctx, `
			INSERT INTO PACHETE AS p (id_owner, nume, locatie, descriere, numarlocuri)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+packetColumns,
			req.OwnerID, req.Name, req.Location, req.Description, req.Capacity,
		))
		return err
	})

	if err != nil {
		return packet.Packet{}, MapError(apperr.Packet, err)
	}

	return p, nil
}

func (r *PacketsRepo) GetByID(ctx context.Context, id int) (p packet.Packet, err error) {
	err = r.observe(ctx, "packets.get_by_id", func(ctx context.Context) error {
		p, err = scanPacket(r.pool.QueryRow(ctx, `SELECT `+packetColumns+` FROM PACHETE p WHERE p.id = $1`, id))
		return err
	})

	if err != nil {
		return packet.Packet{}, MapError(apperr.Packet, err)
	}

	return p, nil
}

// List always paginates; an absent page or page size falls back to the defaults.
func (r *PacketsRepo) List(ctx context.Context, q packet.ListPacketsQuery) ([]packet.Packet, error) {
	var conds []string
	var args []any

	argsPosition := 1

	if q.Type != nil && *q.Type != "" {
		conds = append(conds, fmt.Sprintf(`p.descriere ILIKE $%d ESCAPE '\'`, argsPosition))
		args = append(args, likePattern(*q.Type))
		argsPosition++
	}

	// SUM over no rows is NULL, so packets without seated relations never match.
	if q.AvailableTickets != nil {
		conds = append(conds, fmt.Sprintf(
			"(SELECT SUM(j.numarlocuri) FROM JOIN_PE j WHERE j.pachetid = p.id) >= $%d", argsPosition))
		args = append(args, *q.AvailableTickets)
		argsPosition++
	}

	query := `SELECT ` + packetColumns + ` FROM PACHETE p`

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	_, limit := q.Effective()

	// stable ordering for pagination
	query += fmt.Sprintf(" ORDER BY p.id ASC LIMIT $%d OFFSET $%d", argsPosition, argsPosition+1)
	args = append(args, limit, q.Offset())

	output := make([]packet.Packet, 0, limit)

	err := r.observe(ctx, "packets.list", func(ctx context.Context) error {
		rows, err := r.pool.Query(ctx, query, args...)
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
		return nil, MapError(apperr.Packet, err)
	}

	return output, nil
}

func (r *PacketsRepo) Update(ctx context.Context, id int, req packet.UpdatePacketRequest) (p packet.Packet, err error) {
	err = r.observe(ctx, "packets.update", func(ctx context.Context) error {
		p, err = scanPacket(r.pool.QueryRow(ctx, `
			UPDATE PACHETE AS p
			SET id_owner = COALESCE($1, p.id_owner),
				nume = $2,
				locatie = $3,
				descriere = $4,
				numarlocuri = $5
			WHERE p.id = $6
			RETURNING `+packetColumns,
			req.OwnerID, req.Name, req.Location, req.Description, req.Capacity, id,
		))
		return err
	})

	if err != nil {
		return packet.Packet{}, MapError(apperr.Packet, err)
	}

	return p, nil
}

func (r *PacketsRepo) Delete(ctx context.Context, id int) error {
	var affected int64

	err := r.observe(ctx, "packets.delete", func(ctx context.Context) error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM PACHETE WHERE id = $1`, id)
		affected = tag.RowsAffected()
		return err
	})

	if err != nil {
		return MapError(apperr.Packet, err)
	}

	if affected == 0 {
		return packet.ErrNotFound
	}

	return nil
}

func packetExists(ctx context.Context, q querier, id int) (bool, error) {
	var ok bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM PACHETE WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}
