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

type AnswerRepository interface {
	Create(ctx context.Context, answer *entity.Answer) error
	FindByID(ctx context.Context, id int64) (*entity.Answer, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Answer, error)
	CountAll(ctx context.Context) (int64, error)
	FindByQuestionID(ctx context.Context, questionID int64, limit, offset int) ([]*entity.Answer, error)
	CountByQuestionID(ctx context.Context, questionID int64) (int64, error)
	Update(ctx context.Context, answer *entity.Answer) error
	Delete(ctx context.Context, id int64) error
}

type answerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAnswerRepository(db database.PgxIface, log *zap.Logger) AnswerRepository {
	return &answerRepository{
		db:  db,
		log: log.With(zap.String("repository", "answer")),
	}
}

const answerColumns = `id, question_id, content, is_correct`

func (r *answerRepository) Create(ctx context.Context, answer *entity.Answer) error {
	query := `
		INSERT INTO answers (question_id, content, is_correct)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, answer.QuestionID, answer.Content, answer.IsCorrect).Scan(&answer.ID)
	if err != nil {
		r.log.Error("Failed to create answer", zap.Error(err), zap.Int64("question_id", answer.QuestionID))
		return dbError(fmt.Sprintf("create answer for question %d", answer.QuestionID), err)
	}

	return nil
}

func (r *answerRepository) FindByID(ctx context.Context, id int64) (*entity.Answer, error) {
	query := `SELECT ` + answerColumns + ` FROM answers WHERE id = $1`

	var a entity.Answer
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.QuestionID, &a.Content, &a.IsCorrect)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find answer by ID", zap.Error(err), zap.Int64("answer_id", id))
		return nil, dbError(fmt.Sprintf("find answer by ID %d", id), err)
	}

	return &a, nil
}

func (r *answerRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Answer, error) {
	query := `SELECT ` + answerColumns + ` FROM answers ORDER BY id LIMIT $1 OFFSET $2`
	return r.list(ctx, "find all answers", query, limit, offset)
}

func (r *answerRepository) CountAll(ctx context.Context) (int64, error) {
	return count(ctx, r.db, r.log, "answers", `SELECT COUNT(*) FROM answers`)
}

func (r *answerRepository) FindByQuestionID(ctx context.Context, questionID int64, limit, offset int) ([]*entity.Answer, error) {
	query := `SELECT ` + answerColumns + ` FROM answers WHERE question_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	return r.list(ctx, fmt.Sprintf("find answers by question %d", questionID), query, questionID, limit, offset)
}

func (r *answerRepository) CountByQuestionID(ctx context.Context, questionID int64) (int64, error) {
	return count(ctx, r.db, r.log, "answers", `SELECT COUNT(*) FROM answers WHERE question_id = $1`, questionID)
}

func (r *answerRepository) Update(ctx context.Context, answer *entity.Answer) error {
	query := `UPDATE answers SET question_id = $2, content = $3, is_correct = $4 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, answer.ID, answer.QuestionID, answer.Content, answer.IsCorrect)
	if err != nil {
		r.log.Error("Failed to update answer", zap.Error(err), zap.Int64("answer_id", answer.ID))
		return dbError(fmt.Sprintf("update answer %d", answer.ID), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("update answer %d: %w", answer.ID, apperr.ErrNotFound)
	}

	return nil
}

func (r *answerRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, r.log, "answers", id)
}

func (r *answerRepository) list(ctx context.Context, op, query string, args ...any) ([]*entity.Answer, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list answers", zap.Error(err), zap.String("op", op))
		return nil, dbError(op, err)
	}
	defer rows.Close()

	var answers []*entity.Answer
	for rows.Next() {
		var a entity.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.Content, &a.IsCorrect); err != nil {
			r.log.Error("Failed to scan answer row", zap.Error(err))
			return nil, fmt.Errorf("scan answer row: %w", err)
		}
		answers = append(answers, &a)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, dbError("iterate answer rows", err)
	}

	return answers, nil
}
