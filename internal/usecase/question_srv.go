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

type QuestionService interface {
	GetAll(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.QuestionResponse], error)
	GetByForm(ctx context.Context, formID int64, page request.PaginatedRequest) (*response.PaginatedResponse[response.QuestionResponse], error)
	GetByID(ctx context.Context, id int64) (*response.QuestionResponse, error)
	Create(ctx context.Context, callerID int64, req *request.CreateQuestionRequest) (*response.QuestionResponse, error)
	Update(ctx context.Context, callerID, id int64, req *request.UpdateQuestionRequest) (*response.QuestionResponse, error)
	Delete(ctx context.Context, callerID, id int64) error
}

type questionService struct {
	questions repository.QuestionRepository
	forms     repository.FormRepository
	log       *zap.Logger
}

func NewQuestionService(questions repository.QuestionRepository, forms repository.FormRepository, log *zap.Logger) QuestionService {
	return &questionService{
		questions: questions,
		forms:     forms,
		log:       log.With(zap.String("service", "question")),
	}
}

func (s *questionService) GetAll(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.QuestionResponse], error) {
	questions, err := s.questions.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	total, err := s.questions.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}

	return response.NewPaginatedResponse(response.MapSlice(questions, response.QuestionToResponse), page.CurrentPage(), page.Limit(), total), nil
}

func (s *questionService) GetByForm(ctx context.Context, formID int64, page request.PaginatedRequest) (*response.PaginatedResponse[response.QuestionResponse], error) {
	questions, err := s.questions.FindByFormID(ctx, formID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list questions of form %d: %w", formID, err)
	}
	total, err := s.questions.CountByFormID(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("count questions of form %d: %w", formID, err)
	}

	return response.NewPaginatedResponse(response.MapSlice(questions, response.QuestionToResponse), page.CurrentPage(), page.Limit(), total), nil
}

func (s *questionService) GetByID(ctx context.Context, id int64) (*response.QuestionResponse, error) {
	q, err := findQuestion(ctx, s.questions, id)
	if err != nil {
		return nil, err
	}
	resp := response.QuestionToResponse(q)
	return &resp, nil
}

// Create adds a question to a form the caller owns.
func (s *questionService) Create(ctx context.Context, callerID int64, req *request.CreateQuestionRequest) (*response.QuestionResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if _, err := ownedForm(ctx, s.forms, callerID, req.FormID); err != nil {
		return nil, err
	}

	q := &entity.Question{FormID: req.FormID, Content: req.Content, Required: req.Required}
	if err := s.questions.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	s.log.Info("Question created", zap.Int64("question_id", q.ID), zap.Int64("form_id", q.FormID))

	resp := response.QuestionToResponse(q)
	return &resp, nil
}

func (s *questionService) Update(ctx context.Context, callerID, id int64, req *request.UpdateQuestionRequest) (*response.QuestionResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	q, err := ownedQuestion(ctx, s.questions, s.forms, callerID, id)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		q.Content = *req.Content
	}
	if req.Required != nil {
		q.Required = *req.Required
	}

	if err := s.questions.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("update question %d: %w", id, err)
	}

	resp := response.QuestionToResponse(q)
	return &resp, nil
}

func (s *questionService) Delete(ctx context.Context, callerID, id int64) error {
	if _, err := ownedQuestion(ctx, s.questions, s.forms, callerID, id); err != nil {
		return err
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}

	s.log.Info("Question deleted", zap.Int64("question_id", id))
	return nil
}

func findQuestion(ctx context.Context, questions repository.QuestionRepository, id int64) (*entity.Question, error) {
	q, err := questions.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find question %d: %w", id, err)
	}
	if q == nil {
		return nil, fmt.Errorf("question %d: %w", id, apperr.ErrNotFound)
	}
	return q, nil
}

// ownedQuestion loads question id and checks that callerID owns its form.
func ownedQuestion(ctx context.Context, questions repository.QuestionRepository, forms repository.FormRepository, callerID, id int64) (*entity.Question, error) {
	q, err := findQuestion(ctx, questions, id)
	if err != nil {
		return nil, err
	}
	if _, err := ownedForm(ctx, forms, callerID, q.FormID); err != nil {
		return nil, err
	}
	return q, nil
}
