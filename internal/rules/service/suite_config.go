package service

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	ruleserrors "pawresort/internal/rules/errors"
	"pawresort/internal/rules/repository"
	"pawresort/internal/rules/validator"
	"pawresort/pkg/config"
	apperrors "pawresort/pkg/errors"
	"pawresort/pkg/model"
	"pawresort/pkg/sanitizer"
)

type SuiteConfigService interface {
	Create(ctx context.Context, config *model.SuiteCapacityConfig) error
	GetByID(ctx context.Context, id string) (*model.SuiteCapacityConfig, error)
	GetBySuiteType(ctx context.Context, suiteType string) (*model.SuiteCapacityConfig, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.SuiteCapacityConfig, int64, error)
	Update(ctx context.Context, id string, config *model.SuiteCapacityConfig) error
	Delete(ctx context.Context, id string) error
}

type suiteConfigService struct {
	repo      repository.SuiteConfigRepository
	validator *validator.SuiteConfigValidator
	publisher EventPublisher
	cfg       *config.Config
}

func NewSuiteConfigService(
	repo repository.SuiteConfigRepository,
	validator *validator.SuiteConfigValidator,
	publisher EventPublisher,
	cfg *config.Config,
) SuiteConfigService {
	return &suiteConfigService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *suiteConfigService) Create(ctx context.Context, suiteConfig *model.SuiteCapacityConfig) error {
	s.sanitize(suiteConfig)
	s.applyDefaults(suiteConfig)

	if err := s.validator.Validate(suiteConfig); err != nil {
		s.cfg.Log.Warn("Suite capacity config validation failed",
			"suite_type", suiteConfig.SuiteType,
			"pricing_type", suiteConfig.PricingType,
			"error", err,
		)
		return apperrors.Validation("Suite capacity config validation failed", validationDetails(err))
	}

	// One pricing config per suite type; a second one would make base
	// price resolution ambiguous. The uniqueness check and the insert run
	// in one transaction so concurrent creates cannot both pass the check.
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if existing, err := s.repo.FindBySuiteType(sessCtx, suiteConfig.SuiteType); err == nil && existing != nil {
			return apperrors.Conflict("Suite type " + suiteConfig.SuiteType + " already has a capacity config")
		}
		return s.repo.Create(sessCtx, suiteConfig)
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		s.cfg.Log.Error("Failed to create suite capacity config",
			"suite_type", suiteConfig.SuiteType,
			"error", err,
		)
		return apperrors.Internal("Failed to create suite capacity config", err)
	}

	s.cfg.Log.Info("Suite capacity config created",
		"id", suiteConfig.ID,
		"suite_type", suiteConfig.SuiteType,
		"pricing_type", suiteConfig.PricingType,
		"max_pets", suiteConfig.MaxPets,
	)

	publishCatalogChanged(ctx, s.cfg, s.publisher, EntitySuiteConfig, suiteConfig.ID, ActionCreated)
	return nil
}

func (s *suiteConfigService) GetByID(ctx context.Context, id string) (*model.SuiteCapacityConfig, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Suite capacity config ID cannot be empty")
	}

	suiteConfig, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleserrors.ErrConfigNotFound) {
			return nil, apperrors.NotFoundWithID("Suite capacity config", id)
		}
		if errors.Is(err, ruleserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid suite capacity config ID format")
		}
		s.cfg.Log.Error("Failed to get suite capacity config", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve suite capacity config", err)
	}

	return suiteConfig, nil
}

func (s *suiteConfigService) GetBySuiteType(ctx context.Context, suiteType string) (*model.SuiteCapacityConfig, error) {
	suiteType = sanitizer.NormalizeName(suiteType)
	if suiteType == "" {
		return nil, apperrors.InvalidInput("Suite type cannot be empty")
	}

	suiteConfig, err := s.repo.FindBySuiteType(ctx, suiteType)
	if err != nil {
		if errors.Is(err, ruleserrors.ErrConfigNotFound) {
			return nil, apperrors.NotFound("Suite capacity config for " + suiteType)
		}
		s.cfg.Log.Error("Failed to get suite capacity config",
			"suite_type", suiteType,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve suite capacity config", err)
	}

	return suiteConfig, nil
}

func (s *suiteConfigService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.SuiteCapacityConfig, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var configs []*model.SuiteCapacityConfig
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
			s.cfg.Log.Error("Failed to count suite capacity configs", "error", err)
			errCount = apperrors.Internal("Failed to count suite capacity configs", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		configs, err = s.repo.FindAll(ctx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list suite capacity configs",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve suite capacity configs", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return configs, count, nil
}

func (s *suiteConfigService) Update(ctx context.Context, id string, suiteConfig *model.SuiteCapacityConfig) error {
	if id == "" {
		return apperrors.InvalidInput("Suite capacity config ID cannot be empty")
	}

	s.sanitize(suiteConfig)
	s.applyDefaults(suiteConfig)

	if err := s.validator.Validate(suiteConfig); err != nil {
		return apperrors.Validation("Suite capacity config validation failed", validationDetails(err))
	}

	if _, err := s.repo.Update(ctx, id, suiteConfig); err != nil {
		if errors.Is(err, ruleserrors.ErrConfigNotFound) {
			return apperrors.NotFoundWithID("Suite capacity config", id)
		}
		if errors.Is(err, ruleserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid suite capacity config ID format")
		}
		s.cfg.Log.Error("Failed to update suite capacity config", "id", id, "error", err)
		return apperrors.Internal("Failed to update suite capacity config", err)
	}

	s.cfg.Log.Info("Suite capacity config updated",
		"id", id,
		"suite_type", suiteConfig.SuiteType,
	)

	publishCatalogChanged(ctx, s.cfg, s.publisher, EntitySuiteConfig, id, ActionUpdated)
	return nil
}

func (s *suiteConfigService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Suite capacity config ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ruleserrors.ErrConfigNotFound) {
			return apperrors.NotFoundWithID("Suite capacity config", id)
		}
		if errors.Is(err, ruleserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid suite capacity config ID format")
		}
		s.cfg.Log.Error("Failed to delete suite capacity config", "id", id, "error", err)
		return apperrors.Internal("Failed to delete suite capacity config", err)
	}

	s.cfg.Log.Info("Suite capacity config deleted", "id", id)

	publishCatalogChanged(ctx, s.cfg, s.publisher, EntitySuiteConfig, id, ActionDeleted)
	return nil
}

func (s *suiteConfigService) sanitize(suiteConfig *model.SuiteCapacityConfig) {
	suiteConfig.SuiteType = sanitizer.NormalizeName(suiteConfig.SuiteType)
	suiteConfig.Currency = sanitizer.NormalizeCurrency(suiteConfig.Currency)
}

func (s *suiteConfigService) applyDefaults(suiteConfig *model.SuiteCapacityConfig) {
	if suiteConfig.Currency == "" {
		suiteConfig.Currency = s.cfg.DefaultCurrency
	}
}
