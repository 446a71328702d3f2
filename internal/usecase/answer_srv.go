package usecase

import (
	"context"
	"fmt"

	"answerq/internal/data/entity"
	"answerq/internal/data/repository"
	"answerq/internal/dto/request"
	"answerq/internal/dto/response"
	"answerq/pkg/apperr"

	"go.uber.org/zap"
)

type AnswerService interface {
	GetAll(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.AnswerResponse], error)
	GetByQuestion(ctx context.Context, questionID int64, page request.PaginatedRequest) (*response.PaginatedResponse[response.AnswerResponse], error)
	GetByID(ctx context.Context, id int64) (*response.AnswerResponse, error)
	Create(ctx context.Context, callerID int64, req *request.CreateAnswerRequest) (*response.AnswerResponse, error)
	Update(ctx context.Context, callerID, id int64, req *request.UpdateAnswerRequest) (*response.AnswerResponse, error)
	Delete(ctx context.Context, callerID, id int64) error
}

type answerService struct {
	answers   repository.AnswerRepository
	questions repository.QuestionRepository
	forms     repository.FormRepository
	log       *zap.Logger
}

func NewAnswerService(
	answers repository.AnswerRepository,
	questions repository.QuestionRepository,
	forms repository.FormRepository,
	log *zap.Logger,
) AnswerService {
	return &answerService{
		answers:   answers,
		questions: questions,
		forms:     forms,
		log:       log.With(zap.String("service", "answer")),
	}
}

func (s *answerService) GetAll(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.AnswerResponse], error) {
	answers, err := s.answers.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	total, err := s.answers.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count answers: %w", err)
	}

	return response.NewPaginatedResponse(response.MapSlice(answers, response.AnswerToResponse), page.CurrentPage(), page.Limit(), total), nil
}

func (s *answerService) GetByQuestion(ctx context.Context, questionID int64, page request.PaginatedRequest) (*response.PaginatedResponse[response.AnswerResponse], error) {
	answers, err := s.answers.FindByQuestionID(ctx, questionID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list answers of question %d: %w", questionID, err)
	}
	total, err := s.answers.CountByQuestionID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("count answers of question %d: %w", questionID, err)
	}

	return response.NewPaginatedResponse(response.MapSlice(answers, response.AnswerToResponse), page.CurrentPage(), page.Limit(), total), nil
}

func (s *answerService) GetByID(ctx context.Context, id int64) (*response.AnswerResponse, error) {
	a, err := findAnswer(ctx, s.answers, id)
	if err != nil {
		return nil, err
	}
	resp := response.AnswerToResponse(a)
	return &resp, nil
}

func (s *answerService) Create(ctx context.Context, callerID int64, req *request.CreateAnswerRequest) (*response.AnswerResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if _, err := ownedQuestion(ctx, s.questions, s.forms, callerID, req.QuestionID); err != nil {
		return nil, err
	}

	a := &entity.Answer{QuestionID: req.QuestionID, Content: req.Content, IsCorrect: req.IsCorrect}
	if err := s.answers.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create answer: %w", err)
	}

	s.log.Info("Answer created", zap.Int64("answer_id", a.ID), zap.Int64("question_id", a.QuestionID))

	resp := response.AnswerToResponse(a)
	return &resp, nil
}

func (s *answerService) Update(ctx context.Context, callerID, id int64, req *request.UpdateAnswerRequest) (*response.AnswerResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	a, err := s.ownedAnswer(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		a.Content = *req.Content
	}
	if req.IsCorrect != nil {
		a.IsCorrect = *req.IsCorrect
	}

	if err := s.answers.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("update answer %d: %w", id, err)
	}

	resp := response.AnswerToResponse(a)
	return &resp, nil
}

func (s *answerService) Delete(ctx context.Context, callerID, id int64) error {
	if _, err := s.ownedAnswer(ctx, callerID, id); err != nil {
		return err
	}
	if err := s.answers.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete answer %d: %w", id, err)
	}

	s.log.Info("Answer deleted", zap.Int64("answer_id", id))
	return nil
}

func (s *answerService) ownedAnswer(ctx context.Context, callerID, id int64) (*entity.Answer, error) {
	a, err := findAnswer(ctx, s.answers, id)
	if err != nil {
		return nil, err
	}
	if _, err := ownedQuestion(ctx, s.questions, s.forms, callerID, a.QuestionID); err != nil {
		return nil, err
	}
	return a, nil
}

func findAnswer(ctx context.Context, answers repository.AnswerRepository, id int64) (*entity.Answer, error) {
	a, err := answers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find answer %d: %w", id, err)
	}
	if a == nil {
		return nil, fmt.Errorf("answer %d: %w", id, apperr.ErrNotFound)
	}
	return a, nil
}
