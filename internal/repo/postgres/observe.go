package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/eventmanager/internal/observability"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/geocoder89/eventmanager/internal/repo/postgres"

// observer wraps every logical DB operation in a client span and, when
// metrics are enabled, the DB latency/error metrics.
type observer struct {
	prom   *observability.Prom
	tracer trace.Tracer
}

func newObserver(prom *observability.Prom) observer {
	return observer{prom: prom, tracer: otel.Tracer(tracerName)}
}

func (o observer) observe(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, span := o.tracer.Start(ctx, op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation.name", op),
		),
	)
	defer span.End()

	run := func() error { return fn(ctx) }

	var err error
	if o.prom != nil {
		err = o.prom.ObserveDB(op, run)
	} else {
		err = run()
	}

	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
