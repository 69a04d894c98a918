package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	internalErrors "github.com/tavakkoli/shop_events_system/internal/lib/errors"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

const uniqueViolation = "23505"

type Repository struct {
	log logger.Logger
	db  *sqlx.DB
}

func NewRepository(log logger.Logger, db *sqlx.DB) *Repository {
	return &Repository{
		log: log,
		db:  db,
	}
}

func (pr *Repository) Create(ctx context.Context, payment *models.Payment) (uuid.UUID, error) {
	const op = "repository.payment.Create"

	const query = `
		INSERT INTO "payment"
			(order_uuid, amount, method, status, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING uuid`

	row := pr.db.QueryRowxContext(ctx, query,
		payment.OrderUUID, payment.Amount, payment.Method, payment.Status,
		payment.Email, payment.Phone, payment.CreatedAt, payment.UpdatedAt,
	)

	var paymentUUID uuid.UUID
	if err := row.Scan(&paymentUUID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return uuid.Nil, internalErrors.ErrPaymentAlreadyExists
		}

		pr.log.Error(op, logger.String("error", err.Error()))
		return uuid.Nil, fmt.Errorf("%s: scan result: %w", op, err)
	}

	return paymentUUID, nil
}

func (pr *Repository) Update(ctx context.Context, payment *models.Payment) error {
	const op = "repository.payment.Update"

	const query = `
		UPDATE "payment"
			SET status = $1, transaction_id = $2, reference_id = $3, updated_at = $4
			WHERE uuid = $5`

	res, err := pr.db.ExecContext(ctx, query,
		payment.Status, payment.TransactionID, payment.ReferenceID, payment.UpdatedAt, payment.PaymentUUID,
	)
	if err != nil {
		pr.log.Error(op, logger.String("error", err.Error()))
		return fmt.Errorf("%s: execute statement: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return internalErrors.ErrPaymentNotFound
	}

	return nil
}

func (pr *Repository) Payment(ctx context.Context, paymentUUID uuid.UUID) (*models.Payment, error) {
	const op = "repository.payment.Payment"

	const query = `
		SELECT uuid, order_uuid, amount, method, status,
			COALESCE(transaction_id, ''), COALESCE(reference_id, ''),
			email, phone, created_at, updated_at
			FROM "payment"
			WHERE uuid = $1`

	row := pr.db.QueryRowxContext(ctx, query, paymentUUID)

	var payment models.Payment
	err := row.Scan(
		&payment.PaymentUUID, &payment.OrderUUID, &payment.Amount, &payment.Method, &payment.Status,
		&payment.TransactionID, &payment.ReferenceID,
		&payment.Email, &payment.Phone, &payment.CreatedAt, &payment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrPaymentNotFound
		}
		pr.log.Error(op, logger.String("scan payment error", err.Error()))
		return nil, fmt.Errorf("%s: scan error: %w", op, err)
	}

	return &payment, nil
}
