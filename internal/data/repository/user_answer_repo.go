package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"answerq/internal/data/entity"
	"answerq/pkg/apperr"
	"answerq/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserAnswerRepository interface {
	Create(ctx context.Context, ua *entity.UserAnswer) error
	FindByID(ctx context.Context, id int64) (*entity.UserAnswer, error)
	Find(ctx context.Context, filter entity.UserAnswerFilter, limit, offset int) ([]*entity.UserAnswer, error)
	Count(ctx context.Context, filter entity.UserAnswerFilter) (int64, error)
	Update(ctx context.Context, ua *entity.UserAnswer) error
	Delete(ctx context.Context, id int64) error
}

type userAnswerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserAnswerRepository(db database.PgxIface, log *zap.Logger) UserAnswerRepository {
	return &userAnswerRepository{
		db:  db,
		log: log.With(zap.String("repository", "user_answer")),
	}
}

const userAnswerColumns = `id, form_id, question_id, answer_id, user_id, answered_at`

func (r *userAnswerRepository) Create(ctx context.Context, ua *entity.UserAnswer) error {
	query := `
		INSERT INTO user_answers (form_id, question_id, answer_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, answered_at
	`

	err := r.db.QueryRow(ctx, query, ua.FormID, ua.QuestionID, ua.AnswerID, ua.UserID).
		Scan(&ua.ID, &ua.AnsweredAt)
	if err != nil {
		r.log.Error("Failed to create user answer",
			zap.Error(err),
			zap.Int64("user_id", ua.UserID),
			zap.Int64("question_id", ua.QuestionID),
		)
		return dbError(fmt.Sprintf("create user answer for question %d", ua.QuestionID), err)
	}

	return nil
}

func (r *userAnswerRepository) FindByID(ctx context.Context, id int64) (*entity.UserAnswer, error) {
	query := `SELECT ` + userAnswerColumns + ` FROM user_answers WHERE id = $1`

	var ua entity.UserAnswer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&ua.ID,
		&ua.FormID,
		&ua.QuestionID,
		&ua.AnswerID,
		&ua.UserID,
		&ua.AnsweredAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user answer by ID", zap.Error(err), zap.Int64("user_answer_id", id))
		return nil, dbError(fmt.Sprintf("find user answer by ID %d", id), err)
	}

	return &ua, nil
}

func (r *userAnswerRepository) Find(ctx context.Context, filter entity.UserAnswerFilter, limit, offset int) ([]*entity.UserAnswer, error) {
	where, args := userAnswerWhere(filter)
	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM user_answers%s ORDER BY id LIMIT $%d OFFSET $%d`,
		userAnswerColumns, where, n+1, n+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list user answers", zap.Error(err), zap.Any("filter", filter))
		return nil, dbError("find user answers", err)
	}
	defer rows.Close()

	var answers []*entity.UserAnswer
	for rows.Next() {
		var ua entity.UserAnswer
		if err := rows.Scan(&ua.ID, &ua.FormID, &ua.QuestionID, &ua.AnswerID, &ua.UserID, &ua.AnsweredAt); err != nil {
			r.log.Error("Failed to scan user answer row", zap.Error(err))
			return nil, fmt.Errorf("scan user answer row: %w", err)
		}
		answers = append(answers, &ua)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, dbError("iterate user answer rows", err)
	}

	return answers, nil
}

func (r *userAnswerRepository) Count(ctx context.Context, filter entity.UserAnswerFilter) (int64, error) {
	where, args := userAnswerWhere(filter)
	return count(ctx, r.db, r.log, "user_answers", `SELECT COUNT(*) FROM user_answers`+where, args...)
}

func (r *userAnswerRepository) Update(ctx context.Context, ua *entity.UserAnswer) error {
	query := `
		UPDATE user_answers
		SET form_id = $2, question_id = $3, answer_id = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, ua.ID, ua.FormID, ua.QuestionID, ua.AnswerID)
	if err != nil {
		r.log.Error("Failed to update user answer", zap.Error(err), zap.Int64("user_answer_id", ua.ID))
		return dbError(fmt.Sprintf("update user answer %d", ua.ID), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("update user answer %d: %w", ua.ID, apperr.ErrNotFound)
	}

	return nil
}

func (r *userAnswerRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, r.log, "user_answers", id)
}

func userAnswerWhere(f entity.UserAnswerFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(column string, v int64) {
		if v == 0 {
			return
		}
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("form_id", f.FormID)
	add("user_id", f.UserID)
	add("question_id", f.QuestionID)
	add("answer_id", f.AnswerID)

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
