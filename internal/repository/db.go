package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lifeline/lifeline-api/internal/model"
)

// mysqlDuplicateEntry is the server error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// NewDB creates a new MySQL database connection pool with the given DSN.
func NewDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging mysql: %w", err)
	}

	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            CHAR(24)     NOT NULL PRIMARY KEY,
		first_name    VARCHAR(100) NOT NULL,
		last_name     VARCHAR(100) NOT NULL,
		phone         VARCHAR(32)  NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		created_at    DATETIME(6)  NOT NULL,
		updated_at    DATETIME(6)  NOT NULL,
		UNIQUE KEY uniq_phone (phone)
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id              CHAR(24)     NOT NULL PRIMARY KEY,
		user_id         CHAR(24)     NOT NULL,
		first_name      VARCHAR(100) NOT NULL,
		last_name       VARCHAR(100) NOT NULL,
		email           VARCHAR(255) NOT NULL,
		mobile_phone    VARCHAR(32)  NOT NULL,
		location        VARCHAR(255) NOT NULL,
		blood_type      VARCHAR(3)   NULL,
		date_of_birth   DATETIME(6)  NULL,
		gender          VARCHAR(10)  NULL,
		ec_name         VARCHAR(200) NULL,
		ec_phone        VARCHAR(32)  NULL,
		ec_relationship VARCHAR(100) NULL,
		medical_history TEXT         NOT NULL,
		is_available    BOOLEAN      NOT NULL DEFAULT TRUE,
		created_at      DATETIME(6)  NOT NULL,
		updated_at      DATETIME(6)  NOT NULL,
		UNIQUE KEY uniq_user (user_id),
		UNIQUE KEY uniq_email (email),
		KEY idx_profiles_mobile_phone (mobile_phone)
	)`,
	`CREATE TABLE IF NOT EXISTS cards (
		id           CHAR(24)     NOT NULL PRIMARY KEY,
		owner_id     CHAR(24)     NOT NULL,
		name         VARCHAR(200) NOT NULL,
		location     VARCHAR(255) NOT NULL,
		blood_type   VARCHAR(3)   NOT NULL,
		mobile_phone VARCHAR(32)  NOT NULL,
		description  TEXT         NOT NULL,
		status       VARCHAR(16)  NOT NULL,
		created_at   DATETIME(6)  NOT NULL,
		updated_at   DATETIME(6)  NOT NULL,
		KEY idx_cards_mobile_phone (mobile_phone),
		KEY idx_cards_created_at (created_at)
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          CHAR(24)     NOT NULL PRIMARY KEY,
		name        VARCHAR(200) NOT NULL,
		price       DOUBLE       NOT NULL,
		description TEXT         NOT NULL,
		created_at  DATETIME(6)  NOT NULL,
		updated_at  DATETIME(6)  NOT NULL
	)`,
}

// Migrate creates the tables and unique keys the repositories rely on.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	slog.Info("mysql schema ready", "tables", len(schema))
	return nil
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}

// parseRowID converts a CHAR(24) column into an identifier.
// deleted reports ErrNotFound when a DELETE matched no row, which happens when
// another request removed the record after it was read.
func deleted(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func parseRowID(s string) (model.ID, error) {
	id, err := model.ParseID(s)
	if err != nil {
		return model.ID{}, fmt.Errorf("corrupt id column %q: %w", s, err)
	}
	return id, nil
}

// likeContains builds a case-insensitive LIKE pattern matching s anywhere.
func likeContains(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}

// setClause accumulates "col = ?" assignments for a partial update.
type setClause struct {
	cols []string
	args []any
}

func (s *setClause) add(col string, v any) {
	s.cols = append(s.cols, col+" = ?")
	s.args = append(s.args, v)
}

func (s *setClause) sql() string {
	return strings.Join(s.cols, ", ")
}

// whereClause accumulates AND-joined conditions for a listing.
type whereClause struct {
	conds []string
	args  []any
}

func (w *whereClause) add(cond string, v any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, v)
}

func (w *whereClause) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}
