package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"ScreenerBot/internal/model"
)

// SQLiteRecorder journals runs, orders, and skips to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad-hoc reads don't block the bot's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			source           TEXT,
			buying_power     REAL,
			rows_processed   INTEGER,
			decisions        INTEGER,
			skips            INTEGER,
			orders_submitted INTEGER,
			orders_failed    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS orders (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			symbol    TEXT,
			notional  REAL,
			order_id  TEXT,
			status    TEXT,
			error     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_ts ON orders(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_symbol ON orders(symbol)`,

		`CREATE TABLE IF NOT EXISTS skips (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			sheet_row INTEGER,
			symbol    TEXT,
			reason    TEXT,
			detail    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_skips_ts ON skips(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO runs
		(timestamp, source, buying_power, rows_processed, decisions, skips, orders_submitted, orders_failed)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Source, rec.BuyingPower, rec.RowsProcessed,
		rec.Decisions, rec.Skips, rec.OrdersSubmitted, rec.OrdersFailed,
	)
	return err
}

func (r *SQLiteRecorder) RecordOrder(ord *OrderRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO orders
		(timestamp, symbol, notional, order_id, status, error)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), ord.Symbol, ord.Notional, ord.OrderID, ord.Status, ord.Err,
	)
	return err
}

func (r *SQLiteRecorder) RecordSkip(s *model.RowSkip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO skips
		(timestamp, sheet_row, symbol, reason, detail)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), s.SheetRow, s.Symbol, string(s.Reason), s.Detail,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
