package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	ruleserrors "pawresort/internal/rules/errors"
	"pawresort/internal/rules/validator"
	"pawresort/pkg/config"
	mongotx "pawresort/pkg/db/mongo"
	apperrors "pawresort/pkg/errors"
	"pawresort/pkg/kafka"
	"pawresort/pkg/logger"
	"pawresort/pkg/model"
)

type mockRuleRepository struct {
	createFunc     func(ctx context.Context, rule *model.PricingRule) error
	findByIDFunc   func(ctx context.Context, id string) (*model.PricingRule, error)
	findAllFunc    func(ctx context.Context, limit int, offset int64) ([]*model.PricingRule, error)
	findActiveFunc func(ctx context.Context) ([]*model.PricingRule, error)
	updateFunc     func(ctx context.Context, id string, rule *model.PricingRule) (*mongo.UpdateResult, error)
	deleteFunc     func(ctx context.Context, id string) error
	countFunc      func(ctx context.Context) (int64, error)
}

func (m *mockRuleRepository) Create(ctx context.Context, rule *model.PricingRule) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, rule)
	}
	return nil
}

func (m *mockRuleRepository) FindByID(ctx context.Context, id string) (*model.PricingRule, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("%w: %s", ruleserrors.ErrRuleNotFound, id)
}

func (m *mockRuleRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.PricingRule, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockRuleRepository) FindActive(ctx context.Context) ([]*model.PricingRule, error) {
	if m.findActiveFunc != nil {
		return m.findActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockRuleRepository) Update(ctx context.Context, id string, rule *model.PricingRule) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, rule)
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockRuleRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockRuleRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockRuleRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type recordingPublisher struct {
	messages []kafka.Message
}

func (p *recordingPublisher) Publish(_ context.Context, msg kafka.Message) error {
	p.messages = append(p.messages, msg)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		ReadTimeout:         time.Second,
		WriteTimeout:        time.Second,
		DefaultCurrency:     "USD",
		DefaultRulePriority: 100,
	}
}

func weekendRule() *model.PricingRule {
	return &model.PricingRule{
		Name:            "Weekend peak",
		Type:            model.RulePeakTime,
		IsActive:        true,
		Priority:        50,
		AdjustmentType:  model.AdjustPercentage,
		AdjustmentValue: 15,
		DayOfWeek:       &model.DayOfWeekCondition{WeekendOnly: true},
	}
}

func TestRuleServiceCreate(t *testing.T) {
	repo := &mockRuleRepository{
		createFunc: func(_ context.Context, rule *model.PricingRule) error {
			rule.ID = "65a000000000000000000001"
			return nil
		},
	}
	publisher := &recordingPublisher{}
	svc := NewRuleService(repo, validator.NewRuleValidator(), publisher, testConfig())

	rule := weekendRule()
	rule.Name = "  Weekend   peak  "
	if err := svc.Create(context.Background(), rule); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if rule.Name != "Weekend peak" {
		t.Errorf("expected sanitized name, got %q", rule.Name)
	}
	if len(publisher.messages) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(publisher.messages))
	}
	msg := publisher.messages[0]
	if msg.Key != "65a000000000000000000001" {
		t.Errorf("expected event keyed by rule ID, got %q", msg.Key)
	}
	if got := msg.GetEventType(); got != "pricing_rule.created" {
		t.Errorf("expected event type pricing_rule.created, got %q", got)
	}
}

func TestRuleServiceCreateAppliesDefaultPriority(t *testing.T) {
	repo := &mockRuleRepository{}
	svc := NewRuleService(repo, validator.NewRuleValidator(), nil, testConfig())

	rule := weekendRule()
	rule.Priority = 0
	if err := svc.Create(context.Background(), rule); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rule.Priority != 100 {
		t.Errorf("expected default priority 100, got %d", rule.Priority)
	}
}

func TestRuleServiceCreateRejectsInvalidRule(t *testing.T) {
	repo := &mockRuleRepository{
		createFunc: func(_ context.Context, _ *model.PricingRule) error {
			t.Fatal("repository should not be reached for invalid rules")
			return nil
		},
	}
	svc := NewRuleService(repo, validator.NewRuleValidator(), nil, testConfig())

	rule := weekendRule()
	rule.DayOfWeek = nil // payload missing for PEAK_TIME
	err := svc.Create(context.Background(), rule)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
}

func TestRuleServiceGetByIDNotFound(t *testing.T) {
	svc := NewRuleService(&mockRuleRepository{}, validator.NewRuleValidator(), nil, testConfig())

	_, err := svc.GetByID(context.Background(), "65a000000000000000000009")
	if err == nil {
		t.Fatal("expected error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected %s, got %s", apperrors.CodeNotFound, appErr.Code)
	}
}

func TestRuleServiceGetByIDInvalidFormat(t *testing.T) {
	repo := &mockRuleRepository{
		findByIDFunc: func(_ context.Context, id string) (*model.PricingRule, error) {
			return nil, fmt.Errorf("%w: %s", ruleserrors.ErrInvalidID, id)
		},
	}
	svc := NewRuleService(repo, validator.NewRuleValidator(), nil, testConfig())

	_, err := svc.GetByID(context.Background(), "not-an-object-id")
	if err == nil {
		t.Fatal("expected error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected %s, got %s", apperrors.CodeInvalidInput, appErr.Code)
	}
}

func TestRuleServiceGetAll(t *testing.T) {
	repo := &mockRuleRepository{
		countFunc: func(_ context.Context) (int64, error) {
			return 7, nil
		},
		findAllFunc: func(_ context.Context, limit int, offset int64) ([]*model.PricingRule, error) {
			if limit != 2 || offset != 4 {
				t.Errorf("unexpected pagination: limit=%d offset=%d", limit, offset)
			}
			return []*model.PricingRule{weekendRule(), weekendRule()}, nil
		},
	}
	svc := NewRuleService(repo, validator.NewRuleValidator(), nil, testConfig())

	rules, total, err := svc.GetAll(context.Background(), 2, 4)
	if err != nil {
		t.Fatalf("GetAll returned error: %v", err)
	}
	if total != 7 {
		t.Errorf("expected total 7, got %d", total)
	}
	if len(rules) != 2 {
		t.Errorf("expected 2 rules, got %d", len(rules))
	}
}

func TestRuleServiceUpdateMergesFields(t *testing.T) {
	existing := weekendRule()
	existing.ID = "65a000000000000000000001"

	var stored *model.PricingRule
	repo := &mockRuleRepository{
		findByIDFunc: func(_ context.Context, _ string) (*model.PricingRule, error) {
			return existing, nil
		},
		updateFunc: func(_ context.Context, _ string, rule *model.PricingRule) (*mongo.UpdateResult, error) {
			stored = rule
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
	}
	publisher := &recordingPublisher{}
	svc := NewRuleService(repo, validator.NewRuleValidator(), publisher, testConfig())

	inactive := false
	newPriority := 80
	merged, err := svc.Update(context.Background(), existing.ID, &model.PricingRuleUpdate{
		IsActive: &inactive,
		Priority: &newPriority,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if merged.IsActive {
		t.Error("expected rule to be deactivated")
	}
	if merged.Priority != 80 {
		t.Errorf("expected priority 80, got %d", merged.Priority)
	}
	// Untouched fields survive the merge.
	if merged.AdjustmentValue != 15 || merged.DayOfWeek == nil {
		t.Error("expected unrelated fields to be preserved")
	}
	if stored == nil {
		t.Fatal("expected repository update to be called")
	}
	if len(publisher.messages) != 1 || publisher.messages[0].GetEventType() != "pricing_rule.updated" {
		t.Errorf("expected a pricing_rule.updated event, got %v", publisher.messages)
	}
}

func TestRuleServiceUpdateRejectsOutOfRangePercentage(t *testing.T) {
	svc := NewRuleService(&mockRuleRepository{}, validator.NewRuleValidator(), nil, testConfig())

	bad := 250.0
	_, err := svc.Update(context.Background(), "65a000000000000000000001", &model.PricingRuleUpdate{
		AdjustmentType:  model.AdjustPercentage,
		AdjustmentValue: &bad,
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
}

func TestRuleServiceDelete(t *testing.T) {
	publisher := &recordingPublisher{}
	svc := NewRuleService(&mockRuleRepository{}, validator.NewRuleValidator(), publisher, testConfig())

	if err := svc.Delete(context.Background(), "65a000000000000000000001"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(publisher.messages) != 1 || publisher.messages[0].GetEventType() != "pricing_rule.deleted" {
		t.Errorf("expected a pricing_rule.deleted event, got %v", publisher.messages)
	}
}
