package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/iliyamo/hostel-management/internal/model"
)

// SQLTable stores every collection in the shared hostel_records table, one
// JSON document per row, keyed by kind and position.
type SQLTable[T any] struct {
	DB      *sql.DB
	Kind    string
	Dialect string // "mysql" or "postgres"
	// Strict makes an undecodable row an error. Otherwise the collection
	// starts empty, as with an unreadable JSON file.
	Strict bool
}

func NewSQLTable[T any](db *sql.DB, dialect, kind string, strict bool) *SQLTable[T] {
	return &SQLTable[T]{DB: db, Kind: kind, Dialect: dialect, Strict: strict}
}

func (s *SQLTable[T]) Name() string { return s.Kind }

func (s *SQLTable[T]) Load(ctx context.Context) ([]T, error) {
	rows, err := s.DB.QueryContext(ctx,
		s.rebind("SELECT body FROM hostel_records WHERE kind=? ORDER BY seq"), s.Kind)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.Kind, err)
	}
	defer rows.Close()

	var bodies []string
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		bodies = append(bodies, body)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return decodeRows[T](s.Kind, bodies, s.Strict)
}

func decodeRows[T any](kind string, bodies []string, strict bool) ([]T, error) {
	items := make([]T, 0, len(bodies))
	for i, body := range bodies {
		var it T
		if err := json.Unmarshal([]byte(body), &it); err != nil {
			if strict {
				return nil, fmt.Errorf("%w: %s row %d: %v", ErrCorruptStore, kind, i, err)
			}
			log.Printf("store: %s row %d is unreadable, starting empty: %v", kind, i, err)
			return nil, nil
		}
		items = append(items, it)
	}
	return items, nil
}

// Save replaces all rows of this kind in one transaction.
func (s *SQLTable[T]) Save(ctx context.Context, items []T) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, s.rebind("DELETE FROM hostel_records WHERE kind=?"), s.Kind); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		s.rebind("INSERT INTO hostel_records (kind, seq, id, body) VALUES (?,?,?,?)"))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, it := range items {
		body, err := json.Marshal(it)
		if err != nil {
			return err
		}
		id := 0
		if r, ok := any(it).(interface{ RecordID() int }); ok {
			id = r.RecordID()
		}
		if _, err := stmt.ExecContext(ctx, s.Kind, i, id, string(body)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *SQLTable[T]) rebind(q string) string {
	if s.Dialect != "postgres" {
		return q
	}
	return Rebind(q)
}

// Rebind converts ?-style placeholders to the numbered form used by pgx.
func Rebind(q string) string {
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// OpenSQL opens a table backed by the hostel_records rows of kind.
func OpenSQL[T model.Record[T]](ctx context.Context, db *sql.DB, dialect, kind string, strict bool) (*Table[T], error) {
	return Open[T](ctx, NewSQLTable[T](db, dialect, kind, strict))
}

const recordsSchema = `CREATE TABLE IF NOT EXISTS hostel_records (
    kind VARCHAR(64) NOT NULL,
    seq  INT NOT NULL,
    id   INT NOT NULL,
    body TEXT NOT NULL,
    PRIMARY KEY (kind, seq)
)`

// EnsureSchema creates the records table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, recordsSchema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
