package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/bookshop/internal/domain/member"
)

// PostgresMemberRepository implements MemberRepository using PostgreSQL.
type PostgresMemberRepository struct {
	q Querier
}

func NewPostgresMemberRepository(q Querier) *PostgresMemberRepository {
	return &PostgresMemberRepository{q: q}
}

func (r *PostgresMemberRepository) Save(ctx context.Context, m *member.Member) (string, error) {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO members (id, name, email, city, street, zipcode, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			city = EXCLUDED.city,
			street = EXCLUDED.street,
			zipcode = EXCLUDED.zipcode
	`, m.ID, m.Name, m.Email, m.Address.City, m.Address.Street, m.Address.Zipcode, m.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("saving member: %w", err)
	}
	return m.ID, nil
}

func (r *PostgresMemberRepository) FindByID(ctx context.Context, id string) (*member.Member, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, name, email, city, street, zipcode, created_at
		FROM members WHERE id = $1
	`, id)
	m, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, member.ErrNotFound
	}
	return m, err
}

func (r *PostgresMemberRepository) FindByName(ctx context.Context, name string) ([]*member.Member, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, name, email, city, street, zipcode, created_at
		FROM members WHERE name = $1
	`, name)
	if err != nil {
		return nil, fmt.Errorf("finding members by name: %w", err)
	}
	return collectMembers(rows)
}

func (r *PostgresMemberRepository) FindAll(ctx context.Context) ([]*member.Member, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, name, email, city, street, zipcode, created_at
		FROM members ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return collectMembers(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*member.Member, error) {
	var m member.Member
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Address.City, &m.Address.Street, &m.Address.Zipcode, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectMembers(rows *sql.Rows) ([]*member.Member, error) {
	defer rows.Close()

	var members []*member.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
