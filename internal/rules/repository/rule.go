package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	ruleserrors "pawresort/internal/rules/errors"
	"pawresort/pkg/config"
	mongotx "pawresort/pkg/db/mongo"
	"pawresort/pkg/model"
)

const (
	RulesCollectionName = "Pricing_rules"
)

type mongoRuleRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type RuleRepository interface {
	Create(ctx context.Context, rule *model.PricingRule) error
	FindByID(ctx context.Context, id string) (*model.PricingRule, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.PricingRule, error)
	FindActive(ctx context.Context) ([]*model.PricingRule, error)
	Update(ctx context.Context, id string, rule *model.PricingRule) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoRuleRepository(cfg *config.Config) RuleRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRuleRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(RulesCollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context
// unchanged with a no-op cancel function.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoRuleRepository) Create(ctx context.Context, rule *model.PricingRule) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	rule.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, rule)
	if err != nil {
		return fmt.Errorf("failed to create pricing rule: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		rule.ID = oid.Hex()
	}

	return nil
}

func (r *mongoRuleRepository) FindByID(ctx context.Context, id string) (*model.PricingRule, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ruleserrors.ErrInvalidID, id)
	}
	filter := bson.M{"_id": objectID}

	var rule model.PricingRule
	err = r.collection.FindOne(ctx, filter).Decode(&rule)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ruleserrors.ErrRuleNotFound, id)
		}
		return nil, fmt.Errorf("failed to find pricing rule: %w", err)
	}
	return &rule, nil
}

func (r *mongoRuleRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.PricingRule, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "priority", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query pricing rules: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []*model.PricingRule
	if err = cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode pricing rules: %w", err)
	}

	return rules, nil
}

func (r *mongoRuleRepository) FindActive(ctx context.Context) ([]*model.PricingRule, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query active pricing rules: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []*model.PricingRule
	if err = cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode active pricing rules: %w", err)
	}

	return rules, nil
}

func (r *mongoRuleRepository) Update(ctx context.Context, id string, rule *model.PricingRule) (*mongo.UpdateResult, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ruleserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	update := bson.M{
		"$set": bson.M{
			"name":             rule.Name,
			"description":      rule.Description,
			"type":             rule.Type,
			"is_active":        rule.IsActive,
			"priority":         rule.Priority,
			"adjustment_type":  rule.AdjustmentType,
			"adjustment_value": rule.AdjustmentValue,
			"valid_from":       rule.ValidFrom,
			"valid_until":      rule.ValidUntil,
			"seasonal":         rule.Seasonal,
			"day_of_week":      rule.DayOfWeek,
			"holiday":          rule.Holiday,
			"capacity":         rule.Capacity,
			"advance_booking":  rule.AdvanceBooking,
			"last_minute":      rule.LastMinute,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update pricing rule: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: %s", ruleserrors.ErrRuleNotFound, id)
	}

	return result, nil
}

func (r *mongoRuleRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ruleserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete pricing rule: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", ruleserrors.ErrRuleNotFound, id)
	}

	return nil
}

func (r *mongoRuleRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count pricing rules: %w", err)
	}
	return count, nil
}

func (r *mongoRuleRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
