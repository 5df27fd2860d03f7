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
	"github.com/shopspring/decimal"

	domainErrors "github.com/tinoe0404/eTuckshop-sub000/internal/domain/errors"
	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/repository"
)

// DB is the subset of pgxpool.Pool the storage layer uses. Tests substitute a
// pgxmock pool through the same interface.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   DB
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type catalogRepository struct {
	storage *Storage
}

type cartRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type artifactRepository struct {
	storage *Storage
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (DB, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
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
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Catalog() repository.CatalogRepository {
	return &catalogRepository{storage: s}
}

func (s *Storage) Carts() repository.CartRepository {
	return &cartRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Artifacts() repository.ArtifactRepository {
	return &artifactRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            phone TEXT UNIQUE NOT NULL,
            name TEXT NOT NULL,
            pin_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS categories (
            id BIGSERIAL PRIMARY KEY,
            name TEXT UNIQUE NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id BIGSERIAL PRIMARY KEY,
            category_id BIGINT NOT NULL REFERENCES categories(id),
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price DOUBLE PRECISION NOT NULL,
            stock INT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS carts (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT UNIQUE NOT NULL REFERENCES users(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS cart_items (
            cart_id BIGINT NOT NULL REFERENCES carts(id),
            product_id BIGINT NOT NULL REFERENCES products(id),
            quantity INT NOT NULL,
            PRIMARY KEY (cart_id, product_id)
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            number TEXT UNIQUE NOT NULL,
            user_id BIGINT NOT NULL REFERENCES users(id),
            status TEXT NOT NULL,
            payment_type TEXT NOT NULL,
            total DOUBLE PRECISION NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            paid_at TIMESTAMPTZ,
            completed_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product_id BIGINT NOT NULL REFERENCES products(id),
            name TEXT NOT NULL,
            unit_price DOUBLE PRECISION NOT NULL,
            quantity INT NOT NULL,
            subtotal DOUBLE PRECISION NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS pickup_artifacts (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT UNIQUE NOT NULL REFERENCES orders(id),
            payment_type TEXT NOT NULL,
            payload TEXT NOT NULL DEFAULT '',
            nonce TEXT NOT NULL DEFAULT '',
            expires_at TIMESTAMPTZ,
            status TEXT NOT NULL,
            issued_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id, name)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// Currency columns are DOUBLE PRECISION; amounts are normalized back to two
// decimal places on read.
func toDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

func toFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, phone, name, pinHash string) (*model.User, error) {
	const query = `INSERT INTO users (phone, name, pin_hash) VALUES ($1, $2, $3) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, phone, name, pinHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Phone = phone
	u.Name = name
	u.PINHash = pinHash
	return &u, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	const query = `SELECT id, phone, name, pin_hash, created_at FROM users WHERE phone=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, phone))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, phone, name, pin_hash, created_at FROM users WHERE id=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Phone, &u.Name, &u.PINHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- CatalogRepository implementation ---

func (r *catalogRepository) Categories(ctx context.Context) ([]model.Category, error) {
	const query = `SELECT id, name FROM categories ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *catalogRepository) ProductsByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	const query = `SELECT id, category_id, name, description, price, stock
                   FROM products WHERE category_id=$1 AND stock > 0 ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *catalogRepository) ProductByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT id, category_id, name, description, price, stock FROM products WHERE id=$1`
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		p     model.Product
		price float64
	)
	if err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &price, &p.Stock); err != nil {
		return nil, err
	}
	p.Price = toDecimal(price)
	return &p, nil
}

// --- CartRepository implementation ---

func (r *cartRepository) UpsertItem(ctx context.Context, userID, productID int64, quantity int) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const ensureCart = `INSERT INTO carts (user_id) VALUES ($1)
                            ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
                            RETURNING id`
		var cartID int64
		if err := tx.QueryRow(ctx, ensureCart, userID).Scan(&cartID); err != nil {
			return err
		}

		const upsertLine = `INSERT INTO cart_items (cart_id, product_id, quantity)
                            VALUES ($1, $2, $3)
                            ON CONFLICT (cart_id, product_id)
                            DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`
		_, err := tx.Exec(ctx, upsertLine, cartID, productID, quantity)
		return err
	})
}

func (r *cartRepository) Contents(ctx context.Context, userID int64) (*model.CartContents, error) {
	const cartQuery = `SELECT id FROM carts WHERE user_id=$1`
	var cartID int64
	err := r.storage.pool.QueryRow(ctx, cartQuery, userID).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.CartContents{}, nil
		}
		return nil, err
	}

	const linesQuery = `SELECT ci.product_id, p.name, p.price, ci.quantity, p.stock
                        FROM cart_items ci
                        JOIN products p ON p.id = ci.product_id
                        WHERE ci.cart_id=$1
                        ORDER BY p.id`
	rows, err := r.storage.pool.Query(ctx, linesQuery, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contents := &model.CartContents{CartID: cartID}
	for rows.Next() {
		var (
			line  model.CartLine
			price float64
		)
		if err := rows.Scan(&line.ProductID, &line.Name, &price, &line.Quantity, &line.Stock); err != nil {
			return nil, err
		}
		line.UnitPrice = toDecimal(price)
		contents.Lines = append(contents.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *cartRepository) Clear(ctx context.Context, userID int64) error {
	const query = `DELETE FROM cart_items WHERE cart_id = (SELECT id FROM carts WHERE user_id=$1)`
	_, err := r.storage.pool.Exec(ctx, query, userID)
	return err
}

// --- OrderRepository implementation ---

type placementLine struct {
	productID int64
	name      string
	unitPrice decimal.Decimal
	quantity  int
	stock     int
}

func (r *orderRepository) Place(ctx context.Context, userID int64, number string, paymentType model.PaymentType) (*model.Order, error) {
	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const cartQuery = `SELECT id FROM carts WHERE user_id=$1`
		var cartID int64
		if err := tx.QueryRow(ctx, cartQuery, userID).Scan(&cartID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrEmptyCart
			}
			return err
		}

		// Product rows are locked in id order so concurrent checkouts
		// touching the same products serialize instead of deadlocking.
		const linesQuery = `SELECT ci.product_id, p.name, p.price, ci.quantity, p.stock
                            FROM cart_items ci
                            JOIN products p ON p.id = ci.product_id
                            WHERE ci.cart_id=$1
                            ORDER BY p.id
                            FOR UPDATE OF p`
		rows, err := tx.Query(ctx, linesQuery, cartID)
		if err != nil {
			return err
		}

		var lines []placementLine
		for rows.Next() {
			var (
				line  placementLine
				price float64
			)
			if err := rows.Scan(&line.productID, &line.name, &price, &line.quantity, &line.stock); err != nil {
				rows.Close()
				return err
			}
			line.unitPrice = toDecimal(price)
			lines = append(lines, line)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		rows.Close()

		if len(lines) == 0 {
			return domainErrors.ErrEmptyCart
		}

		total := decimal.Zero
		for _, line := range lines {
			if line.quantity > line.stock {
				return domainErrors.InsufficientStockError{ProductName: line.name, Available: line.stock}
			}
			total = total.Add(line.unitPrice.Mul(decimal.NewFromInt(int64(line.quantity))))
		}
		total = total.Round(2)

		const insertOrder = `INSERT INTO orders (number, user_id, status, payment_type, total)
                             VALUES ($1, $2, $3, $4, $5)
                             RETURNING id, created_at`
		order = &model.Order{
			Number:      number,
			UserID:      userID,
			Status:      model.OrderStatusPending,
			PaymentType: paymentType,
			Total:       total,
		}
		if err := tx.QueryRow(ctx, insertOrder, number, userID, model.OrderStatusPending, paymentType, toFloat(total)).
			Scan(&order.ID, &order.CreatedAt); err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, product_id, name, unit_price, quantity, subtotal)
                            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
		const decrementStock = `UPDATE products SET stock = stock - $1 WHERE id=$2`
		for _, line := range lines {
			subtotal := line.unitPrice.Mul(decimal.NewFromInt(int64(line.quantity))).Round(2)
			item := model.OrderItem{
				OrderID:   order.ID,
				ProductID: line.productID,
				Name:      line.name,
				UnitPrice: line.unitPrice,
				Quantity:  line.quantity,
				Subtotal:  subtotal,
			}
			if err := tx.QueryRow(ctx, insertItem, order.ID, line.productID, line.name,
				toFloat(line.unitPrice), line.quantity, toFloat(subtotal)).Scan(&item.ID); err != nil {
				return err
			}
			order.Items = append(order.Items, item)

			if _, err := tx.Exec(ctx, decrementStock, line.quantity, line.productID); err != nil {
				return err
			}
		}

		const clearCart = `DELETE FROM cart_items WHERE cart_id=$1`
		if _, err := tx.Exec(ctx, clearCart, cartID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

const orderColumns = `id, number, user_id, status, payment_type, total, created_at, paid_at, completed_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o     model.Order
		total float64
	)
	err := row.Scan(&o.ID, &o.Number, &o.UserID, &o.Status, &o.PaymentType, &total, &o.CreatedAt, &o.PaidAt, &o.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	o.Total = toDecimal(total)
	return &o, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func loadItems(ctx context.Context, q querier, orderID int64) ([]model.OrderItem, error) {
	const query = `SELECT id, order_id, product_id, name, unit_price, quantity, subtotal
                   FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var (
			item      model.OrderItem
			unitPrice float64
			subtotal  float64
		)
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &unitPrice, &item.Quantity, &subtotal); err != nil {
			return nil, err
		}
		item.UnitPrice = toDecimal(unitPrice)
		item.Subtotal = toDecimal(subtotal)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE number=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, number))
	if err != nil {
		return nil, err
	}
	if order.Items, err = loadItems(ctx, r.storage.pool, order.ID); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if order.Items, err = loadItems(ctx, r.storage.pool, order.ID); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var (
			o     model.Order
			total float64
		)
		if err := rows.Scan(&o.ID, &o.Number, &o.UserID, &o.Status, &o.PaymentType, &total, &o.CreatedAt, &o.PaidAt, &o.CompletedAt); err != nil {
			return nil, err
		}
		o.Total = toDecimal(total)
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, number string) (*model.Order, error) {
	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		query := `SELECT ` + orderColumns + ` FROM orders WHERE number=$1 FOR UPDATE`
		var err error
		if order, err = scanOrder(tx.QueryRow(ctx, query, number)); err != nil {
			return err
		}

		// Payment providers retry confirmations; a repeat for an already
		// PAID order is absorbed without touching the row again.
		if order.Status == model.OrderStatusPaid {
			order.Items, err = loadItems(ctx, tx, order.ID)
			return err
		}
		if order.Status != model.OrderStatusPending || order.PaymentType != model.PaymentTypePrepaid {
			return domainErrors.ErrInvalidOrderState
		}

		const update = `UPDATE orders SET status=$1, paid_at=NOW() WHERE id=$2 RETURNING paid_at`
		if err := tx.QueryRow(ctx, update, model.OrderStatusPaid, order.ID).Scan(&order.PaidAt); err != nil {
			return err
		}
		order.Status = model.OrderStatusPaid

		order.Items, err = loadItems(ctx, tx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) Complete(ctx context.Context, orderID int64) (*model.Order, error) {
	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
		var err error
		if order, err = scanOrder(tx.QueryRow(ctx, query, orderID)); err != nil {
			return err
		}

		cashReady := order.PaymentType == model.PaymentTypeCash && order.Status == model.OrderStatusPending
		prepaidReady := order.PaymentType == model.PaymentTypePrepaid && order.Status == model.OrderStatusPaid
		if !cashReady && !prepaidReady {
			return domainErrors.ErrInvalidOrderState
		}

		const update = `UPDATE orders SET status=$1, completed_at=NOW() WHERE id=$2 RETURNING completed_at`
		if err := tx.QueryRow(ctx, update, model.OrderStatusCompleted, order.ID).Scan(&order.CompletedAt); err != nil {
			return err
		}
		order.Status = model.OrderStatusCompleted

		order.Items, err = loadItems(ctx, tx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) Cancel(ctx context.Context, orderID int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
		order, err := scanOrder(tx.QueryRow(ctx, query, orderID))
		if err != nil {
			return err
		}
		if order.Status != model.OrderStatusPending {
			return domainErrors.ErrInvalidOrderState
		}

		items, err := loadItems(ctx, tx, order.ID)
		if err != nil {
			return err
		}
		const restoreStock = `UPDATE products SET stock = stock + $1 WHERE id=$2`
		for _, item := range items {
			if _, err := tx.Exec(ctx, restoreStock, item.Quantity, item.ProductID); err != nil {
				return err
			}
		}

		const update = `UPDATE orders SET status=$1 WHERE id=$2`
		_, err = tx.Exec(ctx, update, model.OrderStatusCancelled, order.ID)
		return err
	})
}

// --- ArtifactRepository implementation ---

func (r *artifactRepository) Save(ctx context.Context, artifact *model.PickupArtifact) error {
	const query = `INSERT INTO pickup_artifacts (order_id, payment_type, payload, nonce, expires_at, status, issued_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   ON CONFLICT (order_id) DO UPDATE
                   SET payment_type = EXCLUDED.payment_type,
                       payload = EXCLUDED.payload,
                       nonce = EXCLUDED.nonce,
                       expires_at = EXCLUDED.expires_at,
                       status = EXCLUDED.status,
                       issued_at = EXCLUDED.issued_at
                   RETURNING id`
	return r.storage.pool.QueryRow(ctx, query,
		artifact.OrderID, artifact.PaymentType, artifact.Payload, artifact.Nonce,
		artifact.ExpiresAt, artifact.Status, artifact.IssuedAt).Scan(&artifact.ID)
}

func (r *artifactRepository) GetByOrder(ctx context.Context, orderID int64) (*model.PickupArtifact, error) {
	const query = `SELECT id, order_id, payment_type, payload, nonce, expires_at, status, issued_at
                   FROM pickup_artifacts WHERE order_id=$1`
	var a model.PickupArtifact
	err := r.storage.pool.QueryRow(ctx, query, orderID).
		Scan(&a.ID, &a.OrderID, &a.PaymentType, &a.Payload, &a.Nonce, &a.ExpiresAt, &a.Status, &a.IssuedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
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
