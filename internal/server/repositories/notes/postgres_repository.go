package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sparks/noteapp/internal/common"
	"github.com/sparks/noteapp/internal/dbx"
	"github.com/sparks/noteapp/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {

	query :=
		`INSERT INTO notes (title, content, user_id)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		note.Title, note.Content, note.UserID).Scan(&note.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	query :=
		`SELECT id, title, content, COALESCE(attachment_key, ''), user_id FROM notes
		 WHERE id = $1
		 `

	note := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&note.ID, &note.Title, &note.Content, &note.AttachmentKey, &note.UserID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Note, error) {
	query :=
		`SELECT id, title, content, COALESCE(attachment_key, ''), user_id FROM notes
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Note{}
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(&note.ID, &note.Title, &note.Content, &note.AttachmentKey, &note.UserID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, note *models.Note) (*models.Note, error) {
	query :=
		`UPDATE notes SET title = $1, content = $2
		 WHERE id = $3
		 `

	res, err := r.db.ExecContext(ctx, query, note.Title, note.Content, note.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return nil, common.ErrorNotFound
	}

	return note, nil
}

func (r *PostgresRepository) SetAttachmentKey(ctx context.Context, id int64, key string) error {
	query :=
		`UPDATE notes SET attachment_key = $1
		 WHERE id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query :=
		`DELETE FROM notes WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
