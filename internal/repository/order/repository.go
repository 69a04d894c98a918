package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	internalErrors "github.com/tavakkoli/shop_events_system/internal/lib/errors"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

type outBoxRepository interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, eventType models.EventType, payload []byte) error
}

type Repository struct {
	log              logger.Logger
	db               *sqlx.DB
	outBoxRepository outBoxRepository
}

func NewRepository(log logger.Logger, db *sqlx.DB, outBoxRepository outBoxRepository) *Repository {
	return &Repository{
		log:              log,
		db:               db,
		outBoxRepository: outBoxRepository,
	}
}

// Create persists the order, its items and a checkout event outbox row in one
// serializable transaction, so an order row without a pending event cannot
// exist.
func (or *Repository) Create(ctx context.Context, order *models.Order) (orderUUID uuid.UUID, err error) {
	const op = "repository.order.Create"

	tx, err := or.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return uuid.Nil, fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				or.log.Error(op, logger.String("error", rollBackErr.Error()))
				err = errors.Join(err, fmt.Errorf("%s: rollback transaction: %w", op, rollBackErr))
			}
		}
	}()

	const orderQuery = `
		INSERT INTO "order"
			(first_name, last_name, email, phone, province, city, street, zip_code, status, payment_method, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING uuid`

	row := tx.QueryRowContext(ctx, orderQuery,
		order.FirstName, order.LastName, order.Email, order.Phone,
		order.Shipping.Province, order.Shipping.City, order.Shipping.Street, order.Shipping.ZipCode,
		order.Status, order.PaymentMethod, order.TotalPrice, order.CreatedAt,
	)

	if err = row.Scan(&orderUUID); err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return uuid.Nil, fmt.Errorf("%s: scan result: %w", op, err)
	}

	const itemsQuery = `INSERT INTO "order_items" (order_uuid, title, quantity, unit_price) VALUES %s`
	var values []interface{}
	var placeholders []string

	for i, item := range order.Items {
		values = append(values, orderUUID, item.Title, item.Quantity, item.UnitPrice)

		argID := i * 4

		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d)", argID+1, argID+2, argID+3, argID+4))
	}

	fullQuery := fmt.Sprintf(itemsQuery, strings.Join(placeholders, ","))

	if _, err = tx.ExecContext(ctx, fullQuery, values...); err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return uuid.Nil, fmt.Errorf("%s: order_items execute statement: %w", op, err)
	}

	order.OrderUUID = orderUUID

	payload, err := json.Marshal(models.NewOrderCheckoutEvent(order))
	if err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return uuid.Nil, fmt.Errorf("%s: marshal checkout event: %w", op, err)
	}

	if err = or.outBoxRepository.InsertTx(ctx, tx, models.OrderCheckout, payload); err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return uuid.Nil, fmt.Errorf("%s: outbox insert error: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return uuid.Nil, fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return orderUUID, nil
}

func (or *Repository) Cancel(ctx context.Context, orderUUID uuid.UUID) error {
	const op = "repository.order.Cancel"

	const cancelQuery = `UPDATE "order" SET status = $1 WHERE uuid = $2`

	res, err := or.db.ExecContext(ctx, cancelQuery, int(models.OrderStatusCanceled), orderUUID)
	if err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return fmt.Errorf("%s: execute statement: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return internalErrors.ErrOrderNotFound
	}

	return nil
}

func (or *Repository) OrdersByUUIDs(ctx context.Context, UUIDs []uuid.UUID) (map[uuid.UUID]models.Order, error) {
	const op = "repository.order.OrdersByUUIDs"

	ordersMap := make(map[uuid.UUID]models.Order, len(UUIDs))

	const orderQuery = `
		SELECT uuid, first_name, last_name, email, phone, province, city, street, zip_code, status, payment_method, total_price, created_at
			FROM "order"
			WHERE uuid = ANY($1)`

	rows, err := or.db.QueryxContext(ctx, orderQuery, pq.Array(UUIDs))
	if err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var order models.Order
		if err = scanOrder(rows, &order); err != nil {
			or.log.Error(op, logger.String("scan order error", err.Error()))
			return nil, fmt.Errorf("%s: scan error: %w", op, err)
		}
		ordersMap[order.OrderUUID] = order
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	if len(ordersMap) == 0 {
		return nil, internalErrors.ErrOrderNotFound
	}

	const itemsQuery = `
		SELECT uuid, order_uuid, title, quantity, unit_price
			FROM "order_items"
			WHERE order_uuid = ANY($1)`

	rows, err = or.db.QueryxContext(ctx, itemsQuery, pq.Array(UUIDs))
	if err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err = rows.Scan(&item.UUID, &item.OrderUUID, &item.Title, &item.Quantity, &item.UnitPrice); err != nil {
			or.log.Error(op, logger.String("scan order_items error", err.Error()))
			return nil, fmt.Errorf("%s: scan error: %w", op, err)
		}
		order := ordersMap[item.OrderUUID]
		order.Items = append(order.Items, item)

		ordersMap[item.OrderUUID] = order
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return ordersMap, nil
}

func (or *Repository) Order(ctx context.Context, orderUUID uuid.UUID) (*models.Order, error) {
	const op = "repository.order.Order"

	const orderQuery = `
		SELECT uuid, first_name, last_name, email, phone, province, city, street, zip_code, status, payment_method, total_price, created_at
			FROM "order"
			WHERE uuid = $1`

	row := or.db.QueryRowxContext(ctx, orderQuery, orderUUID)

	var order models.Order
	if err := scanOrder(row, &order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrOrderNotFound
		}
		or.log.Error(op, logger.String("scan order error", err.Error()))
		return nil, fmt.Errorf("%s: scan error: %w", op, err)
	}

	const itemsQuery = `
		SELECT uuid, order_uuid, title, quantity, unit_price
			FROM "order_items"
			WHERE order_uuid = $1`

	rows, err := or.db.QueryxContext(ctx, itemsQuery, orderUUID)
	if err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err = rows.Scan(&item.UUID, &item.OrderUUID, &item.Title, &item.Quantity, &item.UnitPrice); err != nil {
			or.log.Error(op, logger.String("scan order_items error", err.Error()))
			return nil, fmt.Errorf("%s: scan error: %w", op, err)
		}
		order.Items = append(order.Items, item)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return &order, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(row scanner, order *models.Order) error {
	return row.Scan(
		&order.OrderUUID, &order.FirstName, &order.LastName, &order.Email, &order.Phone,
		&order.Shipping.Province, &order.Shipping.City, &order.Shipping.Street, &order.Shipping.ZipCode,
		&order.Status, &order.PaymentMethod, &order.TotalPrice, &order.CreatedAt,
	)
}
