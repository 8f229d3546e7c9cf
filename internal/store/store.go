package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")
var ErrDuplicate = errors.New("duplicate")

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Store struct {
	db     *sqlx.DB
	driver string
	now    func() time.Time
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db, driver: db.DriverName(), now: utcNow}
}

// Open connects to the database and applies per-driver pool settings.
func Open(driver, dsn string) (*Store, error) {
	dsn, err := NormalizeDSN(driver, dsn)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	switch driver {
	case DriverSQLite:
		// One writer; avoids SQLITE_BUSY under concurrent requests.
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}
	return New(db), nil
}

// NormalizeDSN makes sure MySQL DSNs parse times and allow the multi
// statement migration files. Other drivers pass through.
func NormalizeDSN(driver, dsn string) (string, error) {
	switch driver {
	case DriverMySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "", fmt.Errorf("parse mysql dsn: %w", err)
		}
		cfg.ParseTime = true
		cfg.MultiStatements = true
		cfg.ClientFoundRows = true
		if cfg.Loc == nil {
			cfg.Loc = time.UTC
		}
		return cfg.FormatDSN(), nil
	case DriverSQLite:
		return dsn, nil
	default:
		return "", fmt.Errorf("unsupported driver %q", driver)
	}
}

func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Driver() string {
	return s.driver
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// updateSet collects "col = ?" assignments for partial updates.
type updateSet struct {
	parts []string
	args  []any
}

func (u *updateSet) add(col string, v any) {
	u.parts = append(u.parts, col+" = ?")
	u.args = append(u.args, v)
}

func addIf[T any](u *updateSet, col string, v *T) {
	if v != nil {
		u.add(col, *v)
	}
}

func (u *updateSet) empty() bool {
	return len(u.parts) == 0
}

// execUpdate runs an UPDATE on table for id, stamping updated_at.
func (s *Store) execUpdate(ctx context.Context, table string, id int64, u *updateSet) error {
	if u.empty() {
		var exists int
		err := s.db.GetContext(ctx, &exists, "SELECT 1 FROM "+table+" WHERE id = ?", id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	u.add("updated_at", s.now())
	query := "UPDATE " + table + " SET " + strings.Join(u.parts, ", ") + " WHERE id = ?"
	res, err := s.db.ExecContext(ctx, query, append(u.args, id)...)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) deleteByID(ctx context.Context, table string, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// reorder assigns order_index by position. Unknown ids are skipped.
func (s *Store) reorder(ctx context.Context, table string, ids []int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := s.now()
	query := "UPDATE " + table + " SET order_index = ?, updated_at = ? WHERE id = ?"
	for i, id := range ids {
		if _, err := tx.ExecContext(ctx, query, i, now, id); err != nil {
			return fmt.Errorf("reorder %s: %w", table, err)
		}
	}
	return tx.Commit()
}

func (s *Store) getOne(ctx context.Context, dest any, query string, args ...any) error {
	err := s.db.GetContext(ctx, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
