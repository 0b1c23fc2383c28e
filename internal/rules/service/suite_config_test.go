package service

import (
	"context"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	ruleserrors "pawresort/internal/rules/errors"
	"pawresort/internal/rules/validator"
	mongotx "pawresort/pkg/db/mongo"
	apperrors "pawresort/pkg/errors"
	"pawresort/pkg/model"
)

type mockSuiteConfigRepository struct {
	createFunc          func(ctx context.Context, config *model.SuiteCapacityConfig) error
	findBySuiteTypeFunc func(ctx context.Context, suiteType string) (*model.SuiteCapacityConfig, error)
}

func (m *mockSuiteConfigRepository) Create(ctx context.Context, config *model.SuiteCapacityConfig) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, config)
	}
	return nil
}

func (m *mockSuiteConfigRepository) FindByID(_ context.Context, id string) (*model.SuiteCapacityConfig, error) {
	return nil, fmt.Errorf("%w: %s", ruleserrors.ErrConfigNotFound, id)
}

func (m *mockSuiteConfigRepository) FindBySuiteType(ctx context.Context, suiteType string) (*model.SuiteCapacityConfig, error) {
	if m.findBySuiteTypeFunc != nil {
		return m.findBySuiteTypeFunc(ctx, suiteType)
	}
	return nil, fmt.Errorf("%w: suite type %s", ruleserrors.ErrConfigNotFound, suiteType)
}

func (m *mockSuiteConfigRepository) FindAll(context.Context, int, int64) ([]*model.SuiteCapacityConfig, error) {
	return nil, nil
}

func (m *mockSuiteConfigRepository) Update(context.Context, string, *model.SuiteCapacityConfig) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockSuiteConfigRepository) Delete(context.Context, string) error { return nil }

func (m *mockSuiteConfigRepository) Count(context.Context) (int64, error) { return 0, nil }

func (m *mockSuiteConfigRepository) ExecuteTransaction(_ context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func perPetConfig() *model.SuiteCapacityConfig {
	additional := int64(4000)
	return &model.SuiteCapacityConfig{
		SuiteType:               "Luxury Suite",
		CapacityType:            "MULTI",
		MaxPets:                 4,
		PricingType:             model.PricePerPet,
		BasePriceCents:          10000,
		AdditionalPetPriceCents: &additional,
	}
}

func TestSuiteConfigServiceCreate(t *testing.T) {
	repo := &mockSuiteConfigRepository{
		createFunc: func(_ context.Context, config *model.SuiteCapacityConfig) error {
			config.ID = "65a000000000000000000010"
			return nil
		},
	}
	publisher := &recordingPublisher{}
	svc := NewSuiteConfigService(repo, validator.NewSuiteConfigValidator(), publisher, testConfig())

	cfg := perPetConfig()
	cfg.SuiteType = "  Luxury   Suite  "
	if err := svc.Create(context.Background(), cfg); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if cfg.SuiteType != "Luxury Suite" {
		t.Errorf("expected sanitized suite type, got %q", cfg.SuiteType)
	}
	if cfg.Currency != "USD" {
		t.Errorf("expected default currency USD, got %q", cfg.Currency)
	}
	if len(publisher.messages) != 1 || publisher.messages[0].GetEventType() != "suite_capacity_config.created" {
		t.Errorf("expected a suite_capacity_config.created event, got %v", publisher.messages)
	}
}

func TestSuiteConfigServiceCreateRejectsDuplicateSuiteType(t *testing.T) {
	repo := &mockSuiteConfigRepository{
		findBySuiteTypeFunc: func(_ context.Context, _ string) (*model.SuiteCapacityConfig, error) {
			return perPetConfig(), nil
		},
		createFunc: func(_ context.Context, _ *model.SuiteCapacityConfig) error {
			t.Fatal("create should not be reached when the suite type is taken")
			return nil
		},
	}
	svc := NewSuiteConfigService(repo, validator.NewSuiteConfigValidator(), nil, testConfig())

	err := svc.Create(context.Background(), perPetConfig())
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected %s, got %s", apperrors.CodeConflict, appErr.Code)
	}
}

func TestSuiteConfigServiceCreateRejectsIncompleteStrategy(t *testing.T) {
	svc := NewSuiteConfigService(&mockSuiteConfigRepository{}, validator.NewSuiteConfigValidator(), nil, testConfig())

	cfg := perPetConfig()
	cfg.AdditionalPetPriceCents = nil // required for PER_PET
	err := svc.Create(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
}

func TestSuiteConfigServiceGetBySuiteTypeNotFound(t *testing.T) {
	svc := NewSuiteConfigService(&mockSuiteConfigRepository{}, validator.NewSuiteConfigValidator(), nil, testConfig())

	_, err := svc.GetBySuiteType(context.Background(), "Unknown Suite")
	if err == nil {
		t.Fatal("expected error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected %s, got %s", apperrors.CodeNotFound, appErr.Code)
	}
}
