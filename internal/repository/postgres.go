package repository

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx, so
// the same repository code serves both transactional and plain access.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ConnectPostgres establishes a connection to PostgreSQL
func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// PostgresUnitOfWork implements UnitOfWork over a database/sql transaction.
type PostgresUnitOfWork struct {
	db *sql.DB
}

func NewPostgresUnitOfWork(db *sql.DB) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{db: db}
}

func (u *PostgresUnitOfWork) Do(ctx context.Context, fn func(r Repos) error) error {
	return u.run(ctx, nil, fn)
}

func (u *PostgresUnitOfWork) DoReadOnly(ctx context.Context, fn func(r Repos) error) error {
	return u.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (u *PostgresUnitOfWork) run(ctx context.Context, opts *sql.TxOptions, fn func(r Repos) error) error {
	tx, err := u.db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(postgresRepos{q: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

type postgresRepos struct {
	q Querier
}

func (r postgresRepos) Members() MemberRepository { return NewPostgresMemberRepository(r.q) }
func (r postgresRepos) Items() ItemRepository     { return NewPostgresItemRepository(r.q) }
func (r postgresRepos) Orders() OrderRepository   { return NewPostgresOrderRepository(r.q) }
