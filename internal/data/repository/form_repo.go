package repository

import (
	"context"
	"errors"
	"fmt"

	"answerq/internal/data/entity"
	"answerq/pkg/apperr"
	"answerq/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FormRepository interface {
	Create(ctx context.Context, form *entity.Form) error
	FindByID(ctx context.Context, id int64) (*entity.Form, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Form, error)
	CountAll(ctx context.Context) (int64, error)
	FindByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.Form, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	Update(ctx context.Context, form *entity.Form) error
	Delete(ctx context.Context, id int64) error
}

type formRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFormRepository(db database.PgxIface, log *zap.Logger) FormRepository {
	return &formRepository{
		db:  db,
		log: log.With(zap.String("repository", "form")),
	}
}

const formColumns = `id, name, enabled, pin, user_id, created_at, updated_at`

func (r *formRepository) Create(ctx context.Context, form *entity.Form) error {
	query := `
		INSERT INTO forms (name, enabled, pin, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, form.Name, form.Enabled, form.Pin, form.UserID).
		Scan(&form.ID, &form.CreatedAt, &form.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create form", zap.Error(err), zap.Int64("user_id", form.UserID))
		return dbError(fmt.Sprintf("create form for user %d", form.UserID), err)
	}

	return nil
}

func (r *formRepository) FindByID(ctx context.Context, id int64) (*entity.Form, error) {
	query := `SELECT ` + formColumns + ` FROM forms WHERE id = $1`

	var form entity.Form
	err := r.db.QueryRow(ctx, query, id).Scan(
		&form.ID,
		&form.Name,
		&form.Enabled,
		&form.Pin,
		&form.UserID,
		&form.CreatedAt,
		&form.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find form by ID", zap.Error(err), zap.Int64("form_id", id))
		return nil, dbError(fmt.Sprintf("find form by ID %d", id), err)
	}

	return &form, nil
}

func (r *formRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Form, error) {
	query := `SELECT ` + formColumns + ` FROM forms ORDER BY id LIMIT $1 OFFSET $2`
	return r.list(ctx, "find all forms", query, limit, offset)
}

func (r *formRepository) CountAll(ctx context.Context) (int64, error) {
	return count(ctx, r.db, r.log, "forms", `SELECT COUNT(*) FROM forms`)
}

func (r *formRepository) FindByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.Form, error) {
	query := `SELECT ` + formColumns + ` FROM forms WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	return r.list(ctx, fmt.Sprintf("find forms by user %d", userID), query, userID, limit, offset)
}

func (r *formRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	return count(ctx, r.db, r.log, "forms", `SELECT COUNT(*) FROM forms WHERE user_id = $1`, userID)
}

func (r *formRepository) Update(ctx context.Context, form *entity.Form) error {
	query := `
		UPDATE forms
		SET name = $2, enabled = $3, pin = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query, form.ID, form.Name, form.Enabled, form.Pin).Scan(&form.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("update form %d: %w", form.ID, apperr.ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to update form", zap.Error(err), zap.Int64("form_id", form.ID))
		return dbError(fmt.Sprintf("update form %d", form.ID), err)
	}

	return nil
}

func (r *formRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, r.log, "forms", id)
}

func (r *formRepository) list(ctx context.Context, op, query string, args ...any) ([]*entity.Form, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list forms", zap.Error(err), zap.String("op", op))
		return nil, dbError(op, err)
	}
	defer rows.Close()

	var forms []*entity.Form
	for rows.Next() {
		var form entity.Form
		if err := rows.Scan(
			&form.ID,
			&form.Name,
			&form.Enabled,
			&form.Pin,
			&form.UserID,
			&form.CreatedAt,
			&form.UpdatedAt,
		); err != nil {
			r.log.Error("Failed to scan form row", zap.Error(err))
			return nil, fmt.Errorf("scan form row: %w", err)
		}
		forms = append(forms, &form)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, dbError("iterate form rows", err)
	}

	return forms, nil
}
