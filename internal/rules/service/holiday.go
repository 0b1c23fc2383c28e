package service

import (
	"context"
	"errors"
	"sync"

	ruleserrors "pawresort/internal/rules/errors"
	"pawresort/internal/rules/repository"
	"pawresort/internal/rules/validator"
	"pawresort/pkg/config"
	apperrors "pawresort/pkg/errors"
	"pawresort/pkg/model"
	"pawresort/pkg/sanitizer"
)

type HolidayService interface {
	Create(ctx context.Context, holiday *model.Holiday) error
	GetByID(ctx context.Context, id string) (*model.Holiday, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Holiday, int64, error)
	Update(ctx context.Context, id string, holiday *model.Holiday) error
	Delete(ctx context.Context, id string) error
}

type holidayService struct {
	repo      repository.HolidayRepository
	validator *validator.HolidayValidator
	publisher EventPublisher
	cfg       *config.Config
}

func NewHolidayService(
	repo repository.HolidayRepository,
	validator *validator.HolidayValidator,
	publisher EventPublisher,
	cfg *config.Config,
) HolidayService {
	return &holidayService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *holidayService) Create(ctx context.Context, holiday *model.Holiday) error {
	s.sanitize(holiday)

	if err := s.validator.Validate(holiday); err != nil {
		s.cfg.Log.Warn("Holiday validation failed", "name", holiday.Name, "error", err)
		return apperrors.Validation("Holiday validation failed", validationDetails(err))
	}

	if err := s.repo.Create(ctx, holiday); err != nil {
		s.cfg.Log.Error("Failed to create holiday", "name", holiday.Name, "error", err)
		return apperrors.Internal("Failed to create holiday", err)
	}

	s.cfg.Log.Info("Holiday created",
		"id", holiday.ID,
		"name", holiday.Name,
		"is_recurring", holiday.IsRecurring,
	)

	publishCatalogChanged(ctx, s.cfg, s.publisher, EntityHoliday, holiday.ID, ActionCreated)
	return nil
}

func (s *holidayService) GetByID(ctx context.Context, id string) (*model.Holiday, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Holiday ID cannot be empty")
	}

	holiday, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleserrors.ErrHolidayNotFound) {
			return nil, apperrors.NotFoundWithID("Holiday", id)
		}
		if errors.Is(err, ruleserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid holiday ID format")
		}
		s.cfg.Log.Error("Failed to get holiday", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve holiday", err)
	}

	return holiday, nil
}

func (s *holidayService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Holiday, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var holidays []*model.Holiday
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		count, err = s.repo.Count(ctx)
		if err != nil {
			s.cfg.Log.Error("Failed to count holidays", "error", err)
			errCount = apperrors.Internal("Failed to count holidays", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		holidays, err = s.repo.FindAll(ctx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list holidays",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve holidays", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return holidays, count, nil
}

func (s *holidayService) Update(ctx context.Context, id string, holiday *model.Holiday) error {
	if id == "" {
		return apperrors.InvalidInput("Holiday ID cannot be empty")
	}

	s.sanitize(holiday)

	if err := s.validator.Validate(holiday); err != nil {
		return apperrors.Validation("Holiday validation failed", validationDetails(err))
	}

	if _, err := s.repo.Update(ctx, id, holiday); err != nil {
		if errors.Is(err, ruleserrors.ErrHolidayNotFound) {
			return apperrors.NotFoundWithID("Holiday", id)
		}
		if errors.Is(err, ruleserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid holiday ID format")
		}
		s.cfg.Log.Error("Failed to update holiday", "id", id, "error", err)
		return apperrors.Internal("Failed to update holiday", err)
	}

	s.cfg.Log.Info("Holiday updated", "id", id, "name", holiday.Name)

	publishCatalogChanged(ctx, s.cfg, s.publisher, EntityHoliday, id, ActionUpdated)
	return nil
}

func (s *holidayService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Holiday ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ruleserrors.ErrHolidayNotFound) {
			return apperrors.NotFoundWithID("Holiday", id)
		}
		if errors.Is(err, ruleserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid holiday ID format")
		}
		s.cfg.Log.Error("Failed to delete holiday", "id", id, "error", err)
		return apperrors.Internal("Failed to delete holiday", err)
	}

	s.cfg.Log.Info("Holiday deleted", "id", id)

	publishCatalogChanged(ctx, s.cfg, s.publisher, EntityHoliday, id, ActionDeleted)
	return nil
}

func (s *holidayService) sanitize(holiday *model.Holiday) {
	holiday.Name = sanitizer.NormalizeName(holiday.Name)
}
