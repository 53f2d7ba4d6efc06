package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var ErrActivityNotFound = errors.New("activity record not found")

type Repository interface {
	CreateOrder(ctx context.Context, o *Order) (int64, error)
	GetAllOrders(ctx context.Context) ([]Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	RevenueByDay(ctx context.Context, days int) ([]RevenuePoint, error)
	OrderTotals(ctx context.Context) (int64, float64, error)
	ActivityByDate(ctx context.Context, date string) (*ActivityRecord, error)
}

type sqliteRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &sqliteRepository{db: db}
}

// CreateOrder inserts the order and applies the incremental activity delta for
// its delivery date in one transaction: either both are visible or neither is.
func (r *sqliteRepository) CreateOrder(ctx context.Context, o *Order) (id int64, err error) {
	if o.Status == "" {
		o.Status = StatusProcessing
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Error().Err(rbErr).Msg("repository: failed to rollback CreateOrder transaction")
			}
		}
	}()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO orders (customer_name, product, quantity, price, delivery_date, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		o.CustomerName, o.Product, o.Quantity, o.Price, o.DeliveryDate, o.Status,
	)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to insert order: %w", err)
	}

	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("repository: failed to read inserted order id: %w", err)
	}

	// Инкрементальный upsert агрегата по дате доставки (не по дате создания).
	_, err = tx.ExecContext(ctx, `
		INSERT INTO activity (date, orders_count, revenue)
		VALUES (?, 1, ?)
		ON CONFLICT(date) DO UPDATE SET
			orders_count = orders_count + 1,
			revenue = revenue + excluded.revenue`,
		o.DeliveryDate, o.LineTotal(),
	)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to update activity for date %s: %w", o.DeliveryDate, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("repository: failed to commit transaction: %w", err)
	}

	o.ID = id

	return id, nil
}

func (r *sqliteRepository) GetAllOrders(ctx context.Context) ([]Order, error) {
	orders := make([]Order, 0)
	err := r.db.SelectContext(ctx, &orders, `
		SELECT id, customer_name, product, quantity, price, delivery_date, status
		FROM orders
		ORDER BY delivery_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to select orders: %w", err)
	}

	return orders, nil
}

// DeleteOrder removes the order and applies the downward activity delta in the
// same transaction. A missing id is a no-op, not an error. The aggregate
// counters are clamped at zero so pre-existing drift cannot push them negative.
func (r *sqliteRepository) DeleteOrder(ctx context.Context, id int64) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Error().Err(rbErr).Msg("repository: failed to rollback DeleteOrder transaction")
			}
		}
	}()

	var o Order
	err = tx.GetContext(ctx, &o, `
		SELECT id, customer_name, product, quantity, price, delivery_date, status
		FROM orders
		WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		_ = tx.Rollback()
		log.Warn().Int64("order_id", id).Msg("repository: order not found for delete, nothing to do")
		return nil
	}
	if err != nil {
		return fmt.Errorf("repository: failed to select order %d for delete: %w", id, err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE activity
		SET orders_count = MAX(orders_count - 1, 0),
		    revenue = MAX(revenue - ?, 0)
		WHERE date = ?`,
		o.LineTotal(), o.DeliveryDate,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update activity for date %s: %w", o.DeliveryDate, err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete order %d: %w", id, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("repository: failed to commit transaction: %w", err)
	}

	return nil
}

// RevenueByDay reads the aggregate series for the window [today-days, ...],
// ascending. When the activity table has no rows in the window it falls back to
// grouping live orders over the same window, so callers always get one shape.
func (r *sqliteRepository) RevenueByDay(ctx context.Context, days int) ([]RevenuePoint, error) {
	window := fmt.Sprintf("-%d days", days)

	points := make([]RevenuePoint, 0)
	err := r.db.SelectContext(ctx, &points, `
		SELECT date, revenue
		FROM activity
		WHERE date >= date('now', ?)
		ORDER BY date ASC`, window)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to select revenue stats: %w", err)
	}
	if len(points) > 0 {
		return points, nil
	}

	// Восстановительный путь: агрегат пуст, считаем напрямую из заказов.
	err = r.db.SelectContext(ctx, &points, `
		SELECT delivery_date AS date, SUM(price * quantity) AS revenue
		FROM orders
		WHERE delivery_date >= date('now', ?)
		GROUP BY delivery_date
		ORDER BY delivery_date ASC`, window)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to compute revenue stats from orders: %w", err)
	}

	return points, nil
}

func (r *sqliteRepository) OrderTotals(ctx context.Context) (int64, float64, error) {
	var totals struct {
		Count   int64   `db:"total_orders"`
		Revenue float64 `db:"total_revenue"`
	}
	err := r.db.GetContext(ctx, &totals, `
		SELECT COUNT(*) AS total_orders, COALESCE(SUM(price * quantity), 0) AS total_revenue
		FROM orders`)
	if err != nil {
		return 0, 0, fmt.Errorf("repository: failed to select order totals: %w", err)
	}

	return totals.Count, totals.Revenue, nil
}

func (r *sqliteRepository) ActivityByDate(ctx context.Context, date string) (*ActivityRecord, error) {
	var rec ActivityRecord
	err := r.db.GetContext(ctx, &rec, `
		SELECT id, date, orders_count, revenue
		FROM activity
		WHERE date = ?`, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("repository: failed to select activity for date %s: %w", date, err)
	}

	return &rec, nil
}
