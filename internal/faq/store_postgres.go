package faq

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tradegate/pkg/platform/sentinel"
	txcontext "tradegate/pkg/platform/tx"
)

// PostgresStore persists FAQ entries in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Add(ctx context.Context, f *FAQ) (int64, error) {
	query := `INSERT INTO faqs (question, answer) VALUES ($1, $2) RETURNING faq_id`
	var id int64
	if err := s.execer(ctx).QueryRowContext(ctx, query, f.Question, f.Answer).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert faq: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) FindAnswer(ctx context.Context, query string) (string, error) {
	stmt := `
		SELECT answer FROM faqs
		WHERE lower(question) LIKE '%' || lower($1) || '%'
		ORDER BY faq_id
		LIMIT 1
	`
	var answer string
	err := s.execer(ctx).QueryRowContext(ctx, stmt, query).Scan(&answer)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", sentinel.ErrNotFound
		}
		return "", fmt.Errorf("query faq answer: %w", err)
	}
	return answer, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*FAQ, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `SELECT faq_id, question, answer FROM faqs ORDER BY faq_id`)
	if err != nil {
		return nil, fmt.Errorf("query faqs: %w", err)
	}
	defer rows.Close()

	var out []*FAQ
	for rows.Next() {
		var f FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}
