package postgres

import (
	"context"
	"fmt"

	"github.com/geocoder89/eventmanager/internal/apperr"
	"github.com/geocoder89/eventmanager/internal/domain/event"
	"github.com/geocoder89/eventmanager/internal/domain/packet"
	"github.com/geocoder89/eventmanager/internal/domain/ticket"
	"github.com/geocoder89/eventmanager/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ticketColumns = `cod, pachetid, evenimentid`

type TicketsRepo struct {
	pool *pgxpool.Pool
	observer
}

func NewTicketsRepo(pool *pgxpool.Pool, prom *observability.Prom) *TicketsRepo {
	return &TicketsRepo{
		pool:     pool,
		observer: newObserver(prom),
	}
}

func scanTicket(row pgx.Row) (t ticket.Ticket, err error) {
	err = row.Scan(&t.Code, &t.PacketID, &t.EventID)
	return
}

// ownerScope returns the extra WHERE condition that restricts a query to the
// owner's tickets, using placeholder $pos.
func ownerScope(owner ticket.Owner, pos int) (string, []any) {
	switch owner.Kind {
	case ticket.EventOwner:
		return fmt.Sprintf(" AND evenimentid = $%d", pos), []any{owner.ID}
	case ticket.PacketOwner:
		return fmt.Sprintf(" AND pachetid = $%d", pos), []any{owner.ID}
	default:
		return "", nil
	}
}

func (r *TicketsRepo) Create(ctx context.Context, req ticket.CreateTicketRequest) (t ticket.Ticket, err error) {
	err = r.observe(ctx, "tickets.create", func(ctx context.Context) error {
		t, err = scanTicket(r.pool.QueryRow(ctx, `
			INSERT INTO BILETE (cod, pachetid, evenimentid)
			VALUES ($1, $2, $3)
			RETURNING `+ticketColumns,
			req.Code, req.PacketID, req.EventID,
		))
		return err
	})

	if err != nil {
		return ticket.Ticket{}, MapError(apperr.Ticket, err)
	}

	return t, nil
}

func (r *TicketsRepo) Get(ctx context.Context, owner ticket.Owner, code string) (t ticket.Ticket, err error) {
	scope, scopeArgs := ownerScope(owner, 2)

	err = r.observe(ctx, "tickets.get", func(ctx context.Context) error {
		t, err = scanTicket(r.pool.QueryRow(ctx,
			`SELECT `+ticketColumns+` FROM BILETE WHERE cod = $1`+scope,
			append([]any{code}, scopeArgs...)...,
		))
		return err
	})

	if err != nil {
		return ticket.Ticket{}, MapError(apperr.Ticket, err)
	}

	return t, nil
}

// List returns every ticket in the owner's scope. A scoped list for a missing
// event or packet fails with that entity's NotFound instead of coming back empty.
func (r *TicketsRepo) List(ctx context.Context, owner ticket.Owner) ([]ticket.Ticket, error) {
	scope, args := ownerScope(owner, 1)
	query := `SELECT ` + ticketColumns + ` FROM BILETE WHERE TRUE` + scope + ` ORDER BY cod ASC`

	output := make([]ticket.Ticket, 0)

	err := r.observe(ctx, "tickets.list", func(ctx context.Context) error {
		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			t, err := scanTicket(rows)
			if err != nil {
				return err
			}
			output = append(output, t)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, MapError(apperr.Ticket, err)
	}

	if len(output) == 0 && owner.Kind != ticket.AnyOwner {
		if err := r.checkOwner(ctx, owner); err != nil {
			return nil, err
		}
	}

	return output, nil
}

func (r *TicketsRepo) checkOwner(ctx context.Context, owner ticket.Owner) error {
	var (
		ok  bool
		err error
	)

	switch owner.Kind {
	case ticket.EventOwner:
		err = r.observe(ctx, "tickets.list.check_event_exists", func(ctx context.Context) error {
			ok, err = eventExists(ctx, r.pool, owner.ID)
			return err
		})
		if err == nil && !ok {
			return event.ErrNotFound
		}
		if err != nil {
			return MapError(apperr.Event, err)
		}
	case ticket.PacketOwner:
		err = r.observe(ctx, "tickets.list.check_packet_exists", func(ctx context.Context) error {
			ok, err = packetExists(ctx, r.pool, owner.ID)
			return err
		})
		if err == nil && !ok {
			return packet.ErrNotFound
		}
		if err != nil {
			return MapError(apperr.Packet, err)
		}
	}

	return nil
}

// Update replaces both owner references of the ticket.
func (r *TicketsRepo) Update(ctx context.Context, owner ticket.Owner, code string, req ticket.UpdateTicketRequest) (t ticket.Ticket, err error) {
	scope, scopeArgs := ownerScope(owner, 4)

	err = r.observe(ctx, "tickets.update", func(ctx context.Context) error {
		t, err = scanTicket(r.pool.QueryRow(ctx, `
			UPDATE BILETE
			SET pachetid = $1, evenimentid = $2
			WHERE cod = $3`+scope+`
			RETURNING `+ticketColumns,
			append([]any{req.PacketID, req.EventID, code}, scopeArgs...)...,
		))
		return err
	})

	if err != nil {
		return ticket.Ticket{}, MapError(apperr.Ticket, err)
	}

	return t, nil
}

func (r *TicketsRepo) Delete(ctx context.Context, owner ticket.Owner, code string) error {
	scope, scopeArgs := ownerScope(owner, 2)
	var affected int64

	err := r.observe(ctx, "tickets.delete", func(ctx context.Context) error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM BILETE WHERE cod = $1`+scope, append([]any{code}, scopeArgs...)...)
		affected = tag.RowsAffected()
		return err
	})

	if err != nil {
		return MapError(apperr.Ticket, err)
	}

	if affected == 0 {
		return ticket.ErrNotFound
	}

	return nil
}
