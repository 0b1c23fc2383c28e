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
	SuiteConfigsCollectionName = "Suite_capacity_configs"
)

type mongoSuiteConfigRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type SuiteConfigRepository interface {
	Create(ctx context.Context, config *model.SuiteCapacityConfig) error
	FindByID(ctx context.Context, id string) (*model.SuiteCapacityConfig, error)
	FindBySuiteType(ctx context.Context, suiteType string) (*model.SuiteCapacityConfig, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.SuiteCapacityConfig, error)
	Update(ctx context.Context, id string, config *model.SuiteCapacityConfig) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoSuiteConfigRepository(cfg *config.Config) SuiteConfigRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSuiteConfigRepository{
		cfg:        cfg,
		collection: db.Collection(SuiteConfigsCollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoSuiteConfigRepository) Create(ctx context.Context, config *model.SuiteCapacityConfig) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	config.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create suite capacity config: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		config.ID = oid.Hex()
	}

	return nil
}

func (r *mongoSuiteConfigRepository) FindByID(ctx context.Context, id string) (*model.SuiteCapacityConfig, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ruleserrors.ErrInvalidID, id)
	}

	var config model.SuiteCapacityConfig
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&config)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ruleserrors.ErrConfigNotFound, id)
		}
		return nil, fmt.Errorf("failed to find suite capacity config: %w", err)
	}
	return &config, nil
}

func (r *mongoSuiteConfigRepository) FindBySuiteType(ctx context.Context, suiteType string) (*model.SuiteCapacityConfig, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var config model.SuiteCapacityConfig
	err := r.collection.FindOne(ctx, bson.M{"suite_type": suiteType}).Decode(&config)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: suite type %s", ruleserrors.ErrConfigNotFound, suiteType)
		}
		return nil, fmt.Errorf("failed to find suite capacity config: %w", err)
	}
	return &config, nil
}

func (r *mongoSuiteConfigRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.SuiteCapacityConfig, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "suite_type", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query suite capacity configs: %w", err)
	}
	defer cursor.Close(ctx)

	var configs []*model.SuiteCapacityConfig
	if err = cursor.All(ctx, &configs); err != nil {
		return nil, fmt.Errorf("failed to decode suite capacity configs: %w", err)
	}

	return configs, nil
}

func (r *mongoSuiteConfigRepository) Update(ctx context.Context, id string, config *model.SuiteCapacityConfig) (*mongo.UpdateResult, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ruleserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"suite_type":                 config.SuiteType,
			"capacity_type":              config.CapacityType,
			"max_pets":                   config.MaxPets,
			"pricing_type":               config.PricingType,
			"base_price_cents":           config.BasePriceCents,
			"additional_pet_price_cents": config.AdditionalPetPriceCents,
			"percentage_off":             config.PercentageOff,
			"tiered_pricing":             config.TieredPricing,
			"currency":                   config.Currency,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update suite capacity config: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: %s", ruleserrors.ErrConfigNotFound, id)
	}

	return result, nil
}

func (r *mongoSuiteConfigRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ruleserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete suite capacity config: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", ruleserrors.ErrConfigNotFound, id)
	}

	return nil
}

func (r *mongoSuiteConfigRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func (r *mongoSuiteConfigRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count suite capacity configs: %w", err)
	}
	return count, nil
}
