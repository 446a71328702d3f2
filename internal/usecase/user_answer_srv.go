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

type UserAnswerService interface {
	List(ctx context.Context, filter entity.UserAnswerFilter, page request.PaginatedRequest) (*response.PaginatedResponse[response.UserAnswerResponse], error)
	GetByID(ctx context.Context, id int64) (*response.UserAnswerResponse, error)
	Create(ctx context.Context, callerID int64, req *request.CreateUserAnswerRequest) (*response.UserAnswerResponse, error)
	Update(ctx context.Context, callerID, id int64, req *request.UpdateUserAnswerRequest) (*response.UserAnswerResponse, error)
	Delete(ctx context.Context, callerID, id int64) error
}

type userAnswerService struct {
	userAnswers repository.UserAnswerRepository
	forms       repository.FormRepository
	questions   repository.QuestionRepository
	answers     repository.AnswerRepository
	log         *zap.Logger
}

func NewUserAnswerService(
	userAnswers repository.UserAnswerRepository,
	forms repository.FormRepository,
	questions repository.QuestionRepository,
	answers repository.AnswerRepository,
	log *zap.Logger,
) UserAnswerService {
	return &userAnswerService{
		userAnswers: userAnswers,
		forms:       forms,
		questions:   questions,
		answers:     answers,
		log:         log.With(zap.String("service", "user_answer")),
	}
}

func (s *userAnswerService) List(ctx context.Context, filter entity.UserAnswerFilter, page request.PaginatedRequest) (*response.PaginatedResponse[response.UserAnswerResponse], error) {
	items, err := s.userAnswers.Find(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list user answers: %w", err)
	}
	total, err := s.userAnswers.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count user answers: %w", err)
	}

	return response.NewPaginatedResponse(response.MapSlice(items, response.UserAnswerToResponse), page.CurrentPage(), page.Limit(), total), nil
}

func (s *userAnswerService) GetByID(ctx context.Context, id int64) (*response.UserAnswerResponse, error) {
	ua, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.UserAnswerToResponse(ua)
	return &resp, nil
}

// Create records the caller's response. The question must belong to the form
// and a chosen answer must belong to the question.
func (s *userAnswerService) Create(ctx context.Context, callerID int64, req *request.CreateUserAnswerRequest) (*response.UserAnswerResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	if _, err := findForm(ctx, s.forms, req.FormID); err != nil {
		return nil, err
	}
	if err := s.checkChoice(ctx, req.FormID, req.QuestionID, req.AnswerID); err != nil {
		return nil, err
	}

	ua := &entity.UserAnswer{
		FormID:     req.FormID,
		QuestionID: req.QuestionID,
		AnswerID:   req.AnswerID,
		UserID:     callerID,
	}
	if err := s.userAnswers.Create(ctx, ua); err != nil {
		return nil, fmt.Errorf("create user answer: %w", err)
	}

	s.log.Info("User answer recorded",
		zap.Int64("user_answer_id", ua.ID),
		zap.Int64("user_id", callerID),
		zap.Int64("question_id", ua.QuestionID),
	)

	resp := response.UserAnswerToResponse(ua)
	return &resp, nil
}

// Update changes the chosen answer. Only the account that recorded it may.
func (s *userAnswerService) Update(ctx context.Context, callerID, id int64, req *request.UpdateUserAnswerRequest) (*response.UserAnswerResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	ua, err := s.owned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkChoice(ctx, ua.FormID, ua.QuestionID, req.AnswerID); err != nil {
		return nil, err
	}

	ua.AnswerID = req.AnswerID
	if err := s.userAnswers.Update(ctx, ua); err != nil {
		return nil, fmt.Errorf("update user answer %d: %w", id, err)
	}

	resp := response.UserAnswerToResponse(ua)
	return &resp, nil
}

func (s *userAnswerService) Delete(ctx context.Context, callerID, id int64) error {
	if _, err := s.owned(ctx, callerID, id); err != nil {
		return err
	}
	if err := s.userAnswers.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user answer %d: %w", id, err)
	}

	s.log.Info("User answer deleted", zap.Int64("user_answer_id", id))
	return nil
}

func (s *userAnswerService) checkChoice(ctx context.Context, formID, questionID int64, answerID *int64) error {
	q, err := findQuestion(ctx, s.questions, questionID)
	if err != nil {
		return err
	}
	if q.FormID != formID {
		return apperr.FieldErrors{"question_id": "Question does not belong to the form"}
	}

	if answerID == nil {
		return nil
	}
	a, err := findAnswer(ctx, s.answers, *answerID)
	if err != nil {
		return err
	}
	if a.QuestionID != questionID {
		return apperr.FieldErrors{"answer_id": "Answer does not belong to the question"}
	}
	return nil
}

func (s *userAnswerService) find(ctx context.Context, id int64) (*entity.UserAnswer, error) {
	ua, err := s.userAnswers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user answer %d: %w", id, err)
	}
	if ua == nil {
		return nil, fmt.Errorf("user answer %d: %w", id, apperr.ErrNotFound)
	}
	return ua, nil
}

func (s *userAnswerService) owned(ctx context.Context, callerID, id int64) (*entity.UserAnswer, error) {
	ua, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if ua.UserID != callerID {
		return nil, fmt.Errorf("user answer %d recorded by another account: %w", id, apperr.ErrForbidden)
	}
	return ua, nil
}
