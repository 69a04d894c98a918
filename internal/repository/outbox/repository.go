package outbox

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

type Repository struct {
	db *sqlx.DB

	log logger.Logger
}

func New(log logger.Logger, db *sqlx.DB) *Repository {
	return &Repository{db: db, log: log}
}

// InsertTx writes the event payload inside the caller's transaction so the
// business row and its event commit or roll back together.
func (or *Repository) InsertTx(ctx context.Context, tx *sqlx.Tx, eventType models.EventType, payload []byte) error {
	const op = "repository.outbox.InsertTx"

	const outboxQuery = `INSERT INTO "outbox" (event_type, payload) VALUES ($1, $2)`

	if _, err := tx.ExecContext(ctx, outboxQuery, string(eventType), payload); err != nil {
		or.log.Error(op, logger.String("outbox insert error", err.Error()))
		return fmt.Errorf("%s: outbox insert error: %w", op, err)
	}

	return nil
}

func (or *Repository) FetchUnprocessedMessages(ctx context.Context, limit int) ([]models.OutBoxMessage, error) {
	const op = "repository.outbox.FetchUnprocessedMessages"

	const query = `
		SELECT id, event_type, payload, processed
			FROM "outbox"
			WHERE processed = FALSE
			ORDER BY id
			LIMIT $1`

	rows, err := or.db.QueryxContext(ctx, query, limit)
	if err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}
	defer rows.Close()

	var messages []models.OutBoxMessage
	for rows.Next() {
		var msg models.OutBoxMessage
		if err = rows.Scan(&msg.ID, &msg.EventType, &msg.Payload, &msg.Processed); err != nil {
			or.log.Error(op, logger.String("scan error", err.Error()))
			return nil, fmt.Errorf("%s: scan error: %w", op, err)
		}
		messages = append(messages, msg)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return messages, nil
}

func (or *Repository) MarkProcessed(ctx context.Context, ids []int) error {
	const op = "repository.outbox.MarkProcessed"

	if len(ids) == 0 {
		return nil
	}

	const query = `UPDATE "outbox" SET processed = TRUE WHERE id = ANY($1)`

	if _, err := or.db.ExecContext(ctx, query, pq.Array(ids)); err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return fmt.Errorf("%s: execute statement: %w", op, err)
	}

	return nil
}
