package repositories

import "database/sql"

// Runner abstracts *sql.DB and *sql.Tx so repository writes can take part
// in a caller-owned transaction. Money-moving services open the
// transaction; repositories never commit.
type Runner interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}
