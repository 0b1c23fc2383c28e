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

type RuleService interface {
	Create(ctx context.Context, rule *model.PricingRule) error
	GetByID(ctx context.Context, id string) (*model.PricingRule, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.PricingRule, int64, error)
	GetActive(ctx context.Context) ([]*model.PricingRule, error)
	Update(ctx context.Context, id string, updates *model.PricingRuleUpdate) (*model.PricingRule, error)
	Delete(ctx context.Context, id string) error
}

type ruleService struct {
	repo      repository.RuleRepository
	validator *validator.RuleValidator
	publisher EventPublisher
	cfg       *config.Config
}

func NewRuleService(
	repo repository.RuleRepository,
	validator *validator.RuleValidator,
	publisher EventPublisher,
	cfg *config.Config,
) RuleService {
	return &ruleService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *ruleService) Create(ctx context.Context, rule *model.PricingRule) error {
	s.sanitize(rule)
	s.applyDefaults(rule)

	if err := s.validator.Validate(rule); err != nil {
		s.cfg.Log.Warn("Pricing rule validation failed",
			"name", rule.Name,
			"type", rule.Type,
			"error", err,
		)
		return apperrors.Validation("Pricing rule validation failed", validationDetails(err))
	}

	if err := s.repo.Create(ctx, rule); err != nil {
		s.cfg.Log.Error("Failed to create pricing rule",
			"name", rule.Name,
			"type", rule.Type,
			"error", err,
		)
		return apperrors.Internal("Failed to create pricing rule", err)
	}

	s.cfg.Log.Info("Pricing rule created",
		"id", rule.ID,
		"name", rule.Name,
		"type", rule.Type,
		"priority", rule.Priority,
	)

	publishCatalogChanged(ctx, s.cfg, s.publisher, EntityPricingRule, rule.ID, ActionCreated)
	return nil
}

func (s *ruleService) GetByID(ctx context.Context, id string) (*model.PricingRule, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Pricing rule ID cannot be empty")
	}

	rule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleserrors.ErrRuleNotFound) {
			return nil, apperrors.NotFoundWithID("Pricing rule", id)
		}
		if errors.Is(err, ruleserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid pricing rule ID format")
		}
		s.cfg.Log.Error("Failed to get pricing rule", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve pricing rule", err)
	}

	return rule, nil
}

func (s *ruleService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.PricingRule, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var rules []*model.PricingRule
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
			s.cfg.Log.Error("Failed to count pricing rules", "error", err)
			errCount = apperrors.Internal("Failed to count pricing rules", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		rules, err = s.repo.FindAll(ctx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list pricing rules",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve pricing rules", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return rules, count, nil
}

func (s *ruleService) GetActive(ctx context.Context) ([]*model.PricingRule, error) {
	rules, err := s.repo.FindActive(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to load active pricing rules", "error", err)
		return nil, apperrors.Internal("Failed to retrieve active pricing rules", err)
	}
	return rules, nil
}

func (s *ruleService) Update(ctx context.Context, id string, updates *model.PricingRuleUpdate) (*model.PricingRule, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Pricing rule ID cannot be empty")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		return nil, apperrors.Validation("Pricing rule update validation failed", validationDetails(err))
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleserrors.ErrRuleNotFound) {
			return nil, apperrors.NotFoundWithID("Pricing rule", id)
		}
		if errors.Is(err, ruleserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid pricing rule ID format")
		}
		return nil, apperrors.Internal("Failed to check pricing rule existence", err)
	}

	merged := s.mergeUpdates(existing, updates)
	if err := s.validator.Validate(merged); err != nil {
		return nil, apperrors.Validation("Pricing rule update validation failed", validationDetails(err))
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, ruleserrors.ErrRuleNotFound) {
			return nil, apperrors.NotFoundWithID("Pricing rule", id)
		}
		s.cfg.Log.Error("Failed to update pricing rule", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update pricing rule", err)
	}

	s.cfg.Log.Info("Pricing rule updated", "id", id, "name", merged.Name)

	publishCatalogChanged(ctx, s.cfg, s.publisher, EntityPricingRule, id, ActionUpdated)
	return merged, nil
}

func (s *ruleService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Pricing rule ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ruleserrors.ErrRuleNotFound) {
			return apperrors.NotFoundWithID("Pricing rule", id)
		}
		if errors.Is(err, ruleserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid pricing rule ID format")
		}
		s.cfg.Log.Error("Failed to delete pricing rule", "id", id, "error", err)
		return apperrors.Internal("Failed to delete pricing rule", err)
	}

	s.cfg.Log.Info("Pricing rule deleted", "id", id)

	publishCatalogChanged(ctx, s.cfg, s.publisher, EntityPricingRule, id, ActionDeleted)
	return nil
}

func (s *ruleService) sanitize(rule *model.PricingRule) {
	rule.Name = sanitizer.NormalizeName(rule.Name)
	rule.Description = sanitizer.NormalizeDescription(rule.Description)
	rule.Priority = sanitizer.NormalizePriority(rule.Priority)
	if rule.AdjustmentType == model.AdjustPercentage {
		rule.AdjustmentValue = sanitizer.ClampPercentage(rule.AdjustmentValue)
	}
	if rule.Holiday != nil {
		rule.Holiday.HolidayIDs = sanitizer.NormalizeIDs(rule.Holiday.HolidayIDs)
	}
}

func (s *ruleService) applyDefaults(rule *model.PricingRule) {
	if rule.Priority == 0 {
		rule.Priority = s.cfg.DefaultRulePriority
	}
}

func (s *ruleService) mergeUpdates(existing *model.PricingRule, updates *model.PricingRuleUpdate) *model.PricingRule {
	merged := *existing

	if updates.Name != "" {
		merged.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Description != nil {
		merged.Description = sanitizer.NormalizeDescription(*updates.Description)
	}
	if updates.IsActive != nil {
		merged.IsActive = *updates.IsActive
	}
	if updates.Priority != nil {
		merged.Priority = sanitizer.NormalizePriority(*updates.Priority)
	}
	if updates.AdjustmentType != "" {
		merged.AdjustmentType = updates.AdjustmentType
	}
	if updates.AdjustmentValue != nil {
		merged.AdjustmentValue = *updates.AdjustmentValue
	}
	if updates.ValidFrom != nil {
		merged.ValidFrom = updates.ValidFrom
	}
	if updates.ValidUntil != nil {
		merged.ValidUntil = updates.ValidUntil
	}

	return &merged
}

// validationDetails flattens validator errors into response details.
func validationDetails(err error) map[string]any {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return validationErrs.Fields()
	}
	return map[string]any{"error": err.Error()}
}
