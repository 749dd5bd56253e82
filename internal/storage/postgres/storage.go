package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/ivmish/teremok/internal/domain/errors"
	"github.com/ivmish/teremok/internal/domain/model"
	"github.com/ivmish/teremok/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool used by the storage. Tests replace
// it with a mock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type cartRepository struct {
	storage *Storage
}

type pendingOrderRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type subscriptionRepository struct {
	storage *Storage
}

type auditRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Carts() repository.CartRepository {
	return &cartRepository{storage: s}
}

func (s *Storage) Pendings() repository.PendingOrderRepository {
	return &pendingOrderRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Subscriptions() repository.SubscriptionRepository {
	return &subscriptionRepository{storage: s}
}

func (s *Storage) Audit() repository.AuditRepository {
	return &auditRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS merch_cart (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL,
            item TEXT NOT NULL,
            quantity INT NOT NULL CHECK (quantity > 0),
            unit_price BIGINT NOT NULL,
            added_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS merch_pending (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL,
            handle TEXT NOT NULL,
            total BIGINT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS merch_pending_lines (
            id SERIAL PRIMARY KEY,
            pending_id BIGINT NOT NULL REFERENCES merch_pending(id) ON DELETE CASCADE,
            item TEXT NOT NULL,
            quantity INT NOT NULL,
            unit_price BIGINT NOT NULL,
            line_total BIGINT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS merch_orders (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL,
            handle TEXT NOT NULL,
            item TEXT NOT NULL,
            quantity INT NOT NULL,
            unit_price BIGINT NOT NULL,
            line_total BIGINT NOT NULL,
            status TEXT NOT NULL CHECK (status IN ('PROCESSING','SHIPPED','DELIVERED','REJECTED')),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
            user_id BIGINT PRIMARY KEY,
            handle TEXT NOT NULL,
            date_subscribed TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS unsubscriptions (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL,
            handle TEXT NOT NULL,
            date_unsubscribed TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS user_log (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL,
            handle TEXT NOT NULL,
            action TEXT NOT NULL,
            logged_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS referrals (
            user_id BIGINT PRIMARY KEY,
            handle TEXT NOT NULL,
            source TEXT NOT NULL,
            date_registered TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_merch_cart_user ON merch_cart(user_id, added_at)`,
		`CREATE INDEX IF NOT EXISTS idx_merch_orders_user ON merch_orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_merch_orders_recent ON merch_orders(created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- CartRepository implementation ---

func (r *cartRepository) Add(ctx context.Context, userID int64, item string, quantity int32, unitPrice int64) (*model.CartLine, error) {
	const query = `INSERT INTO merch_cart (user_id, item, quantity, unit_price)
                   VALUES ($1, $2, $3, $4) RETURNING id, added_at`
	line := model.CartLine{UserID: userID, Item: item, Quantity: quantity, UnitPrice: unitPrice}
	err := r.storage.pool.QueryRow(ctx, query, userID, item, quantity, unitPrice).Scan(&line.ID, &line.AddedAt)
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartLine, error) {
	const query = `SELECT id, user_id, item, quantity, unit_price, added_at
                   FROM merch_cart WHERE user_id=$1 ORDER BY added_at, id`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CartLine
	for rows.Next() {
		var l model.CartLine
		if err := rows.Scan(&l.ID, &l.UserID, &l.Item, &l.Quantity, &l.UnitPrice, &l.AddedAt); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *cartRepository) Clear(ctx context.Context, userID int64) error {
	_, err := r.storage.pool.Exec(ctx, `DELETE FROM merch_cart WHERE user_id=$1`, userID)
	return err
}

func (r *cartRepository) Total(ctx context.Context, userID int64) (int64, error) {
	const query = `SELECT COALESCE(SUM(quantity * unit_price), 0) FROM merch_cart WHERE user_id=$1`
	var total int64
	if err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// --- PendingOrderRepository implementation ---

func (r *pendingOrderRepository) CreateFromCart(ctx context.Context, userID int64, handle string) (*model.PendingOrder, error) {
	pending := &model.PendingOrder{UserID: userID, Handle: handle}
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectCart = `SELECT item, quantity, unit_price FROM merch_cart
                            WHERE user_id=$1 ORDER BY added_at, id FOR UPDATE`
		rows, err := tx.Query(ctx, selectCart, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var line model.PendingLine
			if err := rows.Scan(&line.Item, &line.Quantity, &line.UnitPrice); err != nil {
				return err
			}
			line.LineTotal = int64(line.Quantity) * line.UnitPrice
			pending.Lines = append(pending.Lines, line)
			pending.Total += line.LineTotal
		}
		if err := rows.Err(); err != nil {
			return err
		}
		rows.Close()

		if len(pending.Lines) == 0 {
			return domainErrors.ErrEmptyCart
		}

		const insertPending = `INSERT INTO merch_pending (user_id, handle, total)
                               VALUES ($1, $2, $3) RETURNING id, created_at`
		if err := tx.QueryRow(ctx, insertPending, userID, handle, pending.Total).Scan(&pending.ID, &pending.CreatedAt); err != nil {
			return err
		}

		const insertLine = `INSERT INTO merch_pending_lines (pending_id, item, quantity, unit_price, line_total)
                            VALUES ($1, $2, $3, $4, $5)`
		for _, line := range pending.Lines {
			if _, err := tx.Exec(ctx, insertLine, pending.ID, line.Item, line.Quantity, line.UnitPrice, line.LineTotal); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pending, nil
}

func (r *pendingOrderRepository) Get(ctx context.Context, id int64) (*model.PendingOrder, error) {
	const query = `SELECT id, user_id, handle, total, created_at FROM merch_pending WHERE id=$1`
	var pending model.PendingOrder
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&pending.ID, &pending.UserID, &pending.Handle, &pending.Total, &pending.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	lines, err := r.storage.pendingLines(ctx, r.storage.pool, pending.ID)
	if err != nil {
		return nil, err
	}
	pending.Lines = lines
	return &pending, nil
}

func (r *pendingOrderRepository) List(ctx context.Context) ([]model.PendingOrder, error) {
	const query = `SELECT id, user_id, handle, total, created_at FROM merch_pending ORDER BY created_at, id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PendingOrder
	for rows.Next() {
		var p model.PendingOrder
		if err := rows.Scan(&p.ID, &p.UserID, &p.Handle, &p.Total, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		lines, err := r.storage.pendingLines(ctx, r.storage.pool, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Lines = lines
	}
	return result, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (s *Storage) pendingLines(ctx context.Context, q querier, pendingID int64) ([]model.PendingLine, error) {
	const query = `SELECT item, quantity, unit_price, line_total
                   FROM merch_pending_lines WHERE pending_id=$1 ORDER BY id`
	rows, err := q.Query(ctx, query, pendingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []model.PendingLine
	for rows.Next() {
		var l model.PendingLine
		if err := rows.Scan(&l.Item, &l.Quantity, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *pendingOrderRepository) Approve(ctx context.Context, id int64) ([]model.Order, error) {
	var orders []model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectPending = `SELECT user_id, handle FROM merch_pending WHERE id=$1 FOR UPDATE`
		var userID int64
		var handle string
		if err := tx.QueryRow(ctx, selectPending, id).Scan(&userID, &handle); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		lines, err := r.storage.pendingLines(ctx, tx, id)
		if err != nil {
			return err
		}

		const insertOrder = `INSERT INTO merch_orders (user_id, handle, item, quantity, unit_price, line_total, status)
                             VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`
		for _, line := range lines {
			order := model.Order{
				UserID:    userID,
				Handle:    handle,
				Item:      line.Item,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				LineTotal: line.LineTotal,
				Status:    model.OrderStatusProcessing,
			}
			err := tx.QueryRow(ctx, insertOrder,
				userID, handle, line.Item, line.Quantity, line.UnitPrice, line.LineTotal, model.OrderStatusProcessing,
			).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
			if err != nil {
				return err
			}
			orders = append(orders, order)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM merch_cart WHERE user_id=$1`, userID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM merch_pending WHERE id=$1`, id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *pendingOrderRepository) Decline(ctx context.Context, id int64) (*model.PendingOrder, error) {
	var pending model.PendingOrder
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectPending = `SELECT id, user_id, handle, total, created_at FROM merch_pending WHERE id=$1 FOR UPDATE`
		err := tx.QueryRow(ctx, selectPending, id).Scan(&pending.ID, &pending.UserID, &pending.Handle, &pending.Total, &pending.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM merch_cart WHERE user_id=$1`, pending.UserID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM merch_pending WHERE id=$1`, id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &pending, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Get(ctx context.Context, orderID int64) (*model.Order, error) {
	const query = `SELECT id, user_id, handle, item, quantity, unit_price, line_total, status, created_at, updated_at
                   FROM merch_orders WHERE id=$1`
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, orderID).Scan(
		&o.ID, &o.UserID, &o.Handle, &o.Item, &o.Quantity, &o.UnitPrice, &o.LineTotal, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	var order model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectStatus = `SELECT status FROM merch_orders WHERE id=$1 FOR UPDATE`
		var current model.OrderStatus
		if err := tx.QueryRow(ctx, selectStatus, orderID).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if current.Terminal() && current != status {
			return domainErrors.ErrInvalidStatus
		}

		const updateQuery = `UPDATE merch_orders SET status=$1, updated_at=NOW() WHERE id=$2
                             RETURNING id, user_id, handle, item, quantity, unit_price, line_total, status, created_at, updated_at`
		return tx.QueryRow(ctx, updateQuery, status, orderID).Scan(
			&order.ID, &order.UserID, &order.Handle, &order.Item, &order.Quantity,
			&order.UnitPrice, &order.LineTotal, &order.Status, &order.CreatedAt, &order.UpdatedAt,
		)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Delete(ctx context.Context, orderID int64) (*model.Order, error) {
	const query = `DELETE FROM merch_orders WHERE id=$1
                   RETURNING id, user_id, handle, item, quantity, unit_price, line_total, status, created_at, updated_at`
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, orderID).Scan(
		&o.ID, &o.UserID, &o.Handle, &o.Item, &o.Quantity, &o.UnitPrice, &o.LineTotal, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT id, user_id, handle, item, quantity, unit_price, line_total, status, created_at, updated_at
                   FROM merch_orders WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	return r.storage.queryOrders(ctx, query, userID)
}

func (r *orderRepository) ListRecent(ctx context.Context, limit int, includeDelivered bool) ([]model.Order, error) {
	if includeDelivered {
		const query = `SELECT id, user_id, handle, item, quantity, unit_price, line_total, status, created_at, updated_at
                       FROM merch_orders ORDER BY created_at DESC, id DESC LIMIT $1`
		return r.storage.queryOrders(ctx, query, limit)
	}
	const query = `SELECT id, user_id, handle, item, quantity, unit_price, line_total, status, created_at, updated_at
                   FROM merch_orders WHERE status <> 'DELIVERED' ORDER BY created_at DESC, id DESC LIMIT $1`
	return r.storage.queryOrders(ctx, query, limit)
}

func (s *Storage) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Handle, &o.Item, &o.Quantity, &o.UnitPrice, &o.LineTotal, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- SubscriptionRepository implementation ---

// Subscribe upserts the subscription row. Earlier unsubscriptions rows stay
// untouched: that table is an append-only audit log, not current state.
func (r *subscriptionRepository) Subscribe(ctx context.Context, userID int64, handle string) error {
	const query = `INSERT INTO subscriptions (user_id, handle)
                   VALUES ($1, $2)
                   ON CONFLICT (user_id) DO UPDATE SET handle = EXCLUDED.handle`
	_, err := r.storage.pool.Exec(ctx, query, userID, handle)
	return err
}

func (r *subscriptionRepository) Unsubscribe(ctx context.Context, userID int64, handle string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM subscriptions WHERE user_id=$1`, userID); err != nil {
			return err
		}
		const insertLog = `INSERT INTO unsubscriptions (user_id, handle) VALUES ($1, $2)`
		if _, err := tx.Exec(ctx, insertLog, userID, handle); err != nil {
			return err
		}
		return nil
	})
}

func (r *subscriptionRepository) List(ctx context.Context) ([]model.Subscriber, error) {
	const query = `SELECT user_id, handle, date_subscribed FROM subscriptions ORDER BY date_subscribed`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Subscriber
	for rows.Next() {
		var s model.Subscriber
		if err := rows.Scan(&s.UserID, &s.Handle, &s.SubscribedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *subscriptionRepository) Unsubscriptions(ctx context.Context, limit int) ([]model.Unsubscription, error) {
	const query = `SELECT id, user_id, handle, date_unsubscribed
                   FROM unsubscriptions ORDER BY date_unsubscribed DESC, id DESC LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Unsubscription
	for rows.Next() {
		var u model.Unsubscription
		if err := rows.Scan(&u.ID, &u.UserID, &u.Handle, &u.UnsubscribedAt); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- AuditRepository implementation ---

func (r *auditRepository) RecordActivity(ctx context.Context, userID int64, handle, action string) error {
	const query = `INSERT INTO user_log (user_id, handle, action) VALUES ($1, $2, $3)`
	_, err := r.storage.pool.Exec(ctx, query, userID, handle, action)
	return err
}

func (r *auditRepository) RecordReferral(ctx context.Context, userID int64, handle, source string) (bool, error) {
	const query = `INSERT INTO referrals (user_id, handle, source)
                   VALUES ($1, $2, $3)
                   ON CONFLICT (user_id) DO NOTHING`
	tag, err := r.storage.pool.Exec(ctx, query, userID, handle, source)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *auditRepository) Referrals(ctx context.Context) ([]model.Referral, error) {
	const query = `SELECT user_id, handle, source, date_registered FROM referrals ORDER BY date_registered DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Referral
	for rows.Next() {
		var ref model.Referral
		if err := rows.Scan(&ref.UserID, &ref.Handle, &ref.Source, &ref.RegisteredAt); err != nil {
			return nil, err
		}
		result = append(result, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
