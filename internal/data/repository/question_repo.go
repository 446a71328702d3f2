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

type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	FindByID(ctx context.Context, id int64) (*entity.Question, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Question, error)
	CountAll(ctx context.Context) (int64, error)
	FindByFormID(ctx context.Context, formID int64, limit, offset int) ([]*entity.Question, error)
	CountByFormID(ctx context.Context, formID int64) (int64, error)
	Update(ctx context.Context, question *entity.Question) error
	Delete(ctx context.Context, id int64) error
}

type questionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewQuestionRepository(db database.PgxIface, log *zap.Logger) QuestionRepository {
	return &questionRepository{
		db:  db,
		log: log.With(zap.String("repository", "question")),
	}
}

const questionColumns = `id, form_id, content, required, created_at, updated_at`

func (r *questionRepository) Create(ctx context.Context, question *entity.Question) error {
	query := `
		INSERT INTO questions (form_id, content, required)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, question.FormID, question.Content, question.Required).
		Scan(&question.ID, &question.CreatedAt, &question.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create question", zap.Error(err), zap.Int64("form_id", question.FormID))
		return dbError(fmt.Sprintf("create question for form %d", question.FormID), err)
	}

	return nil
}

func (r *questionRepository) FindByID(ctx context.Context, id int64) (*entity.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`

	var q entity.Question
	err := r.db.QueryRow(ctx, query, id).Scan(
		&q.ID,
		&q.FormID,
		&q.Content,
		&q.Required,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find question by ID", zap.Error(err), zap.Int64("question_id", id))
		return nil, dbError(fmt.Sprintf("find question by ID %d", id), err)
	}

	return &q, nil
}

func (r *questionRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions ORDER BY id LIMIT $1 OFFSET $2`
	return r.list(ctx, "find all questions", query, limit, offset)
}

func (r *questionRepository) CountAll(ctx context.Context) (int64, error) {
	return count(ctx, r.db, r.log, "questions", `SELECT COUNT(*) FROM questions`)
}

func (r *questionRepository) FindByFormID(ctx context.Context, formID int64, limit, offset int) ([]*entity.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE form_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	return r.list(ctx, fmt.Sprintf("find questions by form %d", formID), query, formID, limit, offset)
}

func (r *questionRepository) CountByFormID(ctx context.Context, formID int64) (int64, error) {
	return count(ctx, r.db, r.log, "questions", `SELECT COUNT(*) FROM questions WHERE form_id = $1`, formID)
}

func (r *questionRepository) Update(ctx context.Context, question *entity.Question) error {
	query := `
		UPDATE questions
		SET form_id = $2, content = $3, required = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query, question.ID, question.FormID, question.Content, question.Required).
		Scan(&question.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("update question %d: %w", question.ID, apperr.ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to update question", zap.Error(err), zap.Int64("question_id", question.ID))
		return dbError(fmt.Sprintf("update question %d", question.ID), err)
	}

	return nil
}

func (r *questionRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, r.log, "questions", id)
}

func (r *questionRepository) list(ctx context.Context, op, query string, args ...any) ([]*entity.Question, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list questions", zap.Error(err), zap.String("op", op))
		return nil, dbError(op, err)
	}
	defer rows.Close()

	var questions []*entity.Question
	for rows.Next() {
		var q entity.Question
		if err := rows.Scan(&q.ID, &q.FormID, &q.Content, &q.Required, &q.CreatedAt, &q.UpdatedAt); err != nil {
			r.log.Error("Failed to scan question row", zap.Error(err))
			return nil, fmt.Errorf("scan question row: %w", err)
		}
		questions = append(questions, &q)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, dbError("iterate question rows", err)
	}

	return questions, nil
}
