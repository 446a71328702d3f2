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

type FormService interface {
	GetAll(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.FormResponse], error)
	GetByUser(ctx context.Context, userID int64, page request.PaginatedRequest) (*response.PaginatedResponse[response.FormResponse], error)
	GetByID(ctx context.Context, id int64) (*response.FormResponse, error)
	Create(ctx context.Context, ownerID int64, req *request.CreateFormRequest) (*response.FormResponse, error)
	Update(ctx context.Context, callerID, id int64, req *request.UpdateFormRequest) (*response.FormResponse, error)
	Delete(ctx context.Context, callerID, id int64) error
}

type formService struct {
	forms repository.FormRepository
	log   *zap.Logger
}

func NewFormService(forms repository.FormRepository, log *zap.Logger) FormService {
	return &formService{
		forms: forms,
		log:   log.With(zap.String("service", "form")),
	}
}

func (s *formService) GetAll(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.FormResponse], error) {
	forms, err := s.forms.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	total, err := s.forms.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count forms: %w", err)
	}

	return response.NewPaginatedResponse(response.MapSlice(forms, response.FormToResponse), page.CurrentPage(), page.Limit(), total), nil
}

func (s *formService) GetByUser(ctx context.Context, userID int64, page request.PaginatedRequest) (*response.PaginatedResponse[response.FormResponse], error) {
	forms, err := s.forms.FindByUserID(ctx, userID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list forms of user %d: %w", userID, err)
	}
	total, err := s.forms.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count forms of user %d: %w", userID, err)
	}

	return response.NewPaginatedResponse(response.MapSlice(forms, response.FormToResponse), page.CurrentPage(), page.Limit(), total), nil
}

func (s *formService) GetByID(ctx context.Context, id int64) (*response.FormResponse, error) {
	form, err := findForm(ctx, s.forms, id)
	if err != nil {
		return nil, err
	}
	resp := response.FormToResponse(form)
	return &resp, nil
}

func (s *formService) Create(ctx context.Context, ownerID int64, req *request.CreateFormRequest) (*response.FormResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	form := &entity.Form{
		Name:    req.Name,
		Enabled: true,
		Pin:     req.Pin,
		UserID:  ownerID,
	}
	if req.Enabled != nil {
		form.Enabled = *req.Enabled
	}

	if err := s.forms.Create(ctx, form); err != nil {
		return nil, fmt.Errorf("create form: %w", err)
	}

	s.log.Info("Form created", zap.Int64("form_id", form.ID), zap.Int64("user_id", ownerID))

	resp := response.FormToResponse(form)
	return &resp, nil
}

func (s *formService) Update(ctx context.Context, callerID, id int64, req *request.UpdateFormRequest) (*response.FormResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	form, err := ownedForm(ctx, s.forms, callerID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		form.Name = *req.Name
	}
	if req.Enabled != nil {
		form.Enabled = *req.Enabled
	}
	if req.Pin != nil {
		form.Pin = req.Pin
	}

	if err := s.forms.Update(ctx, form); err != nil {
		return nil, fmt.Errorf("update form %d: %w", id, err)
	}

	resp := response.FormToResponse(form)
	return &resp, nil
}

func (s *formService) Delete(ctx context.Context, callerID, id int64) error {
	if _, err := ownedForm(ctx, s.forms, callerID, id); err != nil {
		return err
	}
	if err := s.forms.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete form %d: %w", id, err)
	}

	s.log.Info("Form deleted", zap.Int64("form_id", id), zap.Int64("user_id", callerID))
	return nil
}

func findForm(ctx context.Context, forms repository.FormRepository, id int64) (*entity.Form, error) {
	form, err := forms.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find form %d: %w", id, err)
	}
	if form == nil {
		return nil, fmt.Errorf("form %d: %w", id, apperr.ErrNotFound)
	}
	return form, nil
}

// ownedForm loads form id and checks that callerID owns it.
func ownedForm(ctx context.Context, forms repository.FormRepository, callerID, id int64) (*entity.Form, error) {
	form, err := findForm(ctx, forms, id)
	if err != nil {
		return nil, err
	}
	if form.UserID != callerID {
		return nil, fmt.Errorf("form %d owned by another account: %w", id, apperr.ErrForbidden)
	}
	return form, nil
}
