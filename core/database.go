package core

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/delivery-desk/v2/internal/types"
)

// RecordCache keeps the last successfully fetched deliveries and
// customers in a local sqlite database so the dashboard tables still
// render when the API is unreachable. It is a convenience mirror, never
// the source of truth, and it is wiped on logout.
type RecordCache struct {
	dbFile string
	conn   *sql.DB
}

func NewRecordCache(dataDir, dbFile string) (*RecordCache, error) {
	if dbFile == "" {
		dbFile = "delivery_desk.db"
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &RecordCache{
		dbFile: filepath.Join(dataDir, dbFile),
	}, nil
}

func (c *RecordCache) Connect() error {
	conn, err := sql.Open("sqlite3", c.dbFile)
	if err != nil {
		return fmt.Errorf("failed to connect to cache database: %w", err)
	}
	c.conn = conn

	return c.initDatabase()
}

func (c *RecordCache) initDatabase() error {
	query := `
    CREATE TABLE IF NOT EXISTS deliveries (
        id INTEGER PRIMARY KEY,
        tracking_code TEXT NOT NULL,
        customer TEXT NOT NULL,
        address TEXT,
        status TEXT,
        driver TEXT,
        scheduled_at TEXT,
        delivered_at TEXT,
        cod_amount REAL DEFAULT 0
    );
    CREATE TABLE IF NOT EXISTS customers (
        id INTEGER PRIMARY KEY,
        name TEXT NOT NULL,
        email TEXT,
        phone TEXT,
        address TEXT,
        total_orders INTEGER DEFAULT 0
    )`
	_, err := c.conn.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to initialize cache database: %w", err)
	}
	return nil
}

// SaveDeliveries replaces the cached delivery set with the given one
func (c *RecordCache) SaveDeliveries(deliveries []types.Delivery) error {
	tx, err := c.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM deliveries"); err != nil {
		return fmt.Errorf("failed to clear cached deliveries: %w", err)
	}

	stmt, err := tx.Prepare(`
    INSERT INTO deliveries (id, tracking_code, customer, address, status, driver, scheduled_at, delivered_at, cod_amount)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare delivery insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range deliveries {
		_, err := stmt.Exec(d.ID, d.TrackingCode, d.Customer, d.Address, d.Status, d.Driver,
			formatTime(d.ScheduledAt), formatTime(d.DeliveredAt), d.CODAmount)
		if err != nil {
			return fmt.Errorf("failed to cache delivery %d: %w", d.ID, err)
		}
	}

	return tx.Commit()
}

// Deliveries returns the cached delivery set
func (c *RecordCache) Deliveries() ([]types.Delivery, error) {
	rows, err := c.conn.Query(`
    SELECT id, tracking_code, customer, address, status, driver, scheduled_at, delivered_at, cod_amount
    FROM deliveries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []types.Delivery
	for rows.Next() {
		var d types.Delivery
		var scheduledAt, deliveredAt sql.NullString
		err := rows.Scan(&d.ID, &d.TrackingCode, &d.Customer, &d.Address, &d.Status, &d.Driver,
			&scheduledAt, &deliveredAt, &d.CODAmount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cached delivery: %w", err)
		}
		d.ScheduledAt = parseTime(scheduledAt)
		d.DeliveredAt = parseTime(deliveredAt)
		deliveries = append(deliveries, d)
	}

	return deliveries, rows.Err()
}

// SaveCustomers replaces the cached customer set with the given one
func (c *RecordCache) SaveCustomers(customers []types.Customer) error {
	tx, err := c.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM customers"); err != nil {
		return fmt.Errorf("failed to clear cached customers: %w", err)
	}

	stmt, err := tx.Prepare(`
    INSERT INTO customers (id, name, email, phone, address, total_orders)
    VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare customer insert: %w", err)
	}
	defer stmt.Close()

	for _, cu := range customers {
		if _, err := stmt.Exec(cu.ID, cu.Name, cu.Email, cu.Phone, cu.Address, cu.TotalOrders); err != nil {
			return fmt.Errorf("failed to cache customer %d: %w", cu.ID, err)
		}
	}

	return tx.Commit()
}

// Customers returns the cached customer set
func (c *RecordCache) Customers() ([]types.Customer, error) {
	rows, err := c.conn.Query(`
    SELECT id, name, email, phone, address, total_orders
    FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached customers: %w", err)
	}
	defer rows.Close()

	var customers []types.Customer
	for rows.Next() {
		var cu types.Customer
		if err := rows.Scan(&cu.ID, &cu.Name, &cu.Email, &cu.Phone, &cu.Address, &cu.TotalOrders); err != nil {
			return nil, fmt.Errorf("failed to scan cached customer: %w", err)
		}
		customers = append(customers, cu)
	}

	return customers, rows.Err()
}

// Clear wipes all cached records. Called on logout so one operator's
// data never lingers for the next.
func (c *RecordCache) Clear() error {
	if _, err := c.conn.Exec("DELETE FROM deliveries; DELETE FROM customers"); err != nil {
		return fmt.Errorf("failed to clear record cache: %w", err)
	}
	return nil
}

func (c *RecordCache) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func formatTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}

func parseTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}
