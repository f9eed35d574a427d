package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/balajiselvarajk/tds-solver-project-2/internal/models"
)

// Store persists served answers for later inspection.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// RecordAnswer inserts one question/answer pair.
func (s *Store) RecordAnswer(ctx context.Context, question, fileName, source, answer string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO answers (question, file_name, source, answer, created_at) VALUES (?, ?, ?, ?, ?)`,
		question, fileName, source, answer, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("insert answer: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("answer id: %w", err)
	}
	return id, nil
}

// ListRecent returns the newest records, most recent first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]*models.AnswerRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, question, file_name, source, answer, created_at
		 FROM answers ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	var records []*models.AnswerRecord
	for rows.Next() {
		var rec models.AnswerRecord
		if err := rows.Scan(&rec.ID, &rec.Question, &rec.FileName, &rec.Source, &rec.Answer, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
