package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			parent_id BIGINT REFERENCES categories(id),
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255)
		);

		CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			category_id BIGINT REFERENCES categories(id),
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL UNIQUE,
			description TEXT,
			image_url TEXT,
			price DOUBLE PRECISION NOT NULL,
			discount_price DOUBLE PRECISION,
			promo_text VARCHAR(255),
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			is_special BOOLEAN NOT NULL DEFAULT FALSE
		);

		CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			order_code VARCHAR(50) NOT NULL UNIQUE,
			recipient_name VARCHAR(255) NOT NULL,
			phone_number VARCHAR(50) NOT NULL,
			delivery_address TEXT NOT NULL,
			items_list TEXT NOT NULL,
			note TEXT,
			subtotal DOUBLE PRECISION NOT NULL,
			shipping_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
			promo_code VARCHAR(50),
			discount_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_amount DOUBLE PRECISION NOT NULL,
			delivery_method VARCHAR(20) NOT NULL,
			payment_status VARCHAR(20) NOT NULL DEFAULT 'unpaid',
			delivery_date VARCHAR(20) NOT NULL,
			delivery_time VARCHAR(20) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			order_time TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_products_category_id ON products(category_id);
		CREATE INDEX IF NOT EXISTS idx_products_status ON products(status);
		CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedCatalog inserts test categories and products, returning the category IDs
// keyed by name.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) map[string]int64 {
	t.Helper()

	ctx := context.Background()
	categories := map[string]int64{}

	for _, name := range []string{"Món chính", "Tráng miệng"} {
		var id int64
		err := pool.QueryRow(ctx,
			"INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id",
			name, name,
		).Scan(&id)
		if err != nil {
			t.Fatalf("failed to seed category %s: %v", name, err)
		}
		categories[name] = id
	}

	products := []struct {
		name          string
		slug          string
		category      string
		price         float64
		discountPrice *float64
		status        string
		isSpecial     bool
	}{
		{"Bánh chưng", "banh-chung", "Món chính", 45000, nil, "active", true},
		{"Chả lụa", "cha-lua", "Món chính", 10000, floatPtr(8000), "active", false},
		{"Gà kho gừng", "ga-kho-gung", "Món chính", 55000, nil, "active", false},
		{"Chè ba màu", "che-ba-mau", "Tráng miệng", 20000, nil, "active", false},
		{"Món thử nghiệm", "mon-thu-nghiem", "Món chính", 99000, nil, "hidden", false},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx, `
			INSERT INTO products (category_id, name, slug, price, discount_price, status, is_special)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			categories[p.category], p.name, p.slug, p.price, p.discountPrice, p.status, p.isSpecial,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.name, err)
		}
	}

	return categories
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"orders", "products", "categories"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

func floatPtr(f float64) *float64 { return &f }
