package pgdb

import (
	"context"
	"fmt"
	"strconv"

	"github.com/DRSN-tech/pizzeria-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/pizzeria-backend/internal/usecase"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/DRSN-tech/pizzeria-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// OutboxChannel — канал LISTEN/NOTIFY, в который сообщается о новых событиях.
// В payload уведомления передаётся id заказа.
const OutboxChannel = "outbox_pending"

const outboxColumns = `id, event_id, event_type, order_id, payload, status, attempts, created_at, processed_at`

type OutboxEventRepo struct {
	pool *pgxpool.Pool
	conv converter.OutboxEventConverter
}

func NewOutboxEventRepo(pool *pgxpool.Pool, conv converter.OutboxEventConverter) *OutboxEventRepo {
	return &OutboxEventRepo{
		pool: pool,
		conv: conv,
	}
}

// Create сохраняет событие в текущей транзакции. Уведомление воркеру
// доставляется только после коммита.
func (o *OutboxEventRepo) Create(ctx context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	conn := tr.ConnFromCtx(ctx, o.pool)
	model := o.conv.ToModel(event)

	query := `
		INSERT INTO outbox_events (event_id, event_type, order_id, payload, status, created_at)
		VALUES (@event_id, @event_type, @order_id, @payload, @status, @created_at)
		RETURNING ` + outboxColumns

	rows, err := conn.Query(ctx, query, pgx.NamedArgs{
		"event_id":   model.EventID,
		"event_type": model.EventType,
		"order_id":   model.OrderID,
		"payload":    model.Payload,
		"status":     model.Status,
		"created_at": model.CreatedAt,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[converter.OutboxEventModel])
	if err != nil {
		if postgresDuplicate(err) {
			return nil, fmt.Errorf("%s: event with id %s already exists", whereami.WhereAmI(), event.EventID)
		}
		return nil, fmt.Errorf("%s: failed to insert event: %w", whereami.WhereAmI(), err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_notify($1, $2)", OutboxChannel, strconv.FormatInt(created.OrderID, 10)); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(created), nil
}

// GetAndMarkAsProcessing одной командой забирает до limit самых старых ожидающих
// событий. SKIP LOCKED не даёт двум воркерам получить одно и то же событие.
func (o *OutboxEventRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := `
		UPDATE outbox_events
		SET status = $1, processing_started_at = NOW()
		WHERE id IN (
			SELECT id FROM outbox_events
			WHERE status = $2
			ORDER BY created_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + outboxColumns

	rows, err := o.pool.Query(ctx, query, usecase.Processing, usecase.Pending, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to claim pending events: %w", whereami.WhereAmI(), err)
	}

	models, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[converter.OutboxEventModel])
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read claimed events: %w", whereami.WhereAmI(), err)
	}

	return o.conv.ToArrEntity(models), nil
}

// MarkAsProcessed завершает событие. Ноль затронутых строк не ошибка:
// событие уже закрыл другой воркер.
func (o *OutboxEventRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	return o.transition(ctx, id, `SET status = $1, processed_at = NOW()`, usecase.Processed)
}

// MarkAsPending возвращает событие в очередь после временной ошибки публикации.
func (o *OutboxEventRepo) MarkAsPending(ctx context.Context, id int64) error {
	return o.transition(ctx, id, `SET status = $1, processing_started_at = NULL, attempts = attempts + 1`, usecase.Pending)
}

func (o *OutboxEventRepo) transition(ctx context.Context, id int64, set string, to usecase.OutboxStatus) error {
	query := `UPDATE outbox_events ` + set + ` WHERE id = $2 AND status = $3`

	if _, err := o.pool.Exec(ctx, query, to, id, usecase.Processing); err != nil {
		return fmt.Errorf("%s: failed to move event %d to %s: %w", whereami.WhereAmI(), id, to, err)
	}

	return nil
}
