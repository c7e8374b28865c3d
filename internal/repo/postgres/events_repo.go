package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/geocoder89/eventmanager/internal/apperr"
	"github.com/geocoder89/eventmanager/internal/domain/event"
	"github.com/geocoder89/eventmanager/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const eventColumns = `id, id_owner, nume, locatie, descriere, numarlocuri`

type EventsRepo struct {
	pool *pgxpool.Pool
	observer
}

func NewEventsRepo(pool *pgxpool.Pool, prom *observability.Prom) *EventsRepo {
	return &EventsRepo{
		pool:     pool,
		observer: newObserver(prom),
	}
}

func scanEvent(row pgx.Row) (e event.Event, err error) {
	err = row.Scan(&e.ID, &e.OwnerID, &e.Name, &e.Location, &e.Description, &e.Capacity)
	return
}

func (r *EventsRepo) Create(ctx context.Context, req event.CreateEventRequest) (e event.Event, err error) {
	err = r.observe(ctx, "events.create", func(ctx context.Context) error {
		e, err = scanEvent(r.pool.QueryRow(ctx, `
			INSERT INTO EVENIMENTE (id_owner, nume, locatie, descriere, numarlocuri)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+eventColumns,
			req.OwnerID, req.Name, req.Location, req.Description, req.Capacity,
		))
		return err
	})

	if err != nil {
		return event.Event{}, MapError(apperr.Event, err)
	}

	return e, nil
}

func (r *EventsRepo) GetByID(ctx context.Context, id int) (e event.Event, err error) {
	err = r.observe(ctx, "events.get_by_id", func(ctx context.Context) error {
		e, err = scanEvent(r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM EVENIMENTE WHERE id = $1`, id))
		return err
	})

	if err != nil {
		return event.Event{}, MapError(apperr.Event, err)
	}

	return e, nil
}

func (r *EventsRepo) List(ctx context.Context, filter event.ListEventsFilter) ([]event.Event, error) {
	var conds []string
	var args []any

	argsPosition := 1

	if filter.Location != nil && *filter.Location != "" {
		conds = append(conds, fmt.Sprintf(`locatie ILIKE $%d ESCAPE '\'`, argsPosition))
		args = append(args, likePattern(*filter.Location))
		argsPosition++
	}

	if filter.Name != nil && *filter.Name != "" {
		conds = append(conds, fmt.Sprintf(`nume ILIKE $%d ESCAPE '\'`, argsPosition))
		args = append(args, likePattern(*filter.Name))
	}

	query := `SELECT ` + eventColumns + ` FROM EVENIMENTE`

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	query += " ORDER BY id ASC"

	output := make([]event.Event, 0)

	err := r.observe(ctx, "events.list", func(ctx context.Context) error {
		rows, err := r.pool.Query(ctx, query, args...)
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
		return nil, MapError(apperr.Event, err)
	}

	return output, nil
}

func (r *EventsRepo) Update(ctx context.Context, id int, req event.UpdateEventRequest) (e event.Event, err error) {
	err = r.observe(ctx, "events.update", func(ctx context.Context) error {
		e, err = scanEvent(r.pool.QueryRow(ctx, `
			UPDATE EVENIMENTE
			SET id_owner = COALESCE($1, id_owner),
				nume = $2,
				locatie = $3,
				descriere = $4,
				numarlocuri = $5
			WHERE id = $6
			RETURNING `+eventColumns,
			req.OwnerID, req.Name, req.Location, req.Description, req.Capacity, id,
		))
		return err
	})

	if err != nil {
		return event.Event{}, MapError(apperr.Event, err)
	}

	return e, nil
}

func (r *EventsRepo) Delete(ctx context.Context, id int) error {
	var affected int64

	err := r.observe(ctx, "events.delete", func(ctx context.Context) error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM EVENIMENTE WHERE id = $1`, id)
		affected = tag.RowsAffected()
		return err
	})

	if err != nil {
		return MapError(apperr.Event, err)
	}

	if affected == 0 {
		return event.ErrNotFound
	}

	return nil
}

func eventExists(ctx context.Context, q querier, id int) (bool, error) {
	var ok bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM EVENIMENTE WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}
