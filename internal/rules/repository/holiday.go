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
	"pawresort/pkg/model"
)

const (
	HolidaysCollectionName = "Holidays"
)

type mongoHolidayRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type HolidayRepository interface {
	Create(ctx context.Context, holiday *model.Holiday) error
	FindByID(ctx context.Context, id string) (*model.Holiday, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Holiday, error)
	FindEntireCatalog(ctx context.Context) ([]*model.Holiday, error)
	Update(ctx context.Context, id string, holiday *model.Holiday) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

func NewMongoHolidayRepository(cfg *config.Config) HolidayRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoHolidayRepository{
		cfg:        cfg,
		collection: db.Collection(HolidaysCollectionName),
	}
}

func (r *mongoHolidayRepository) Create(ctx context.Context, holiday *model.Holiday) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	holiday.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, holiday)
	if err != nil {
		return fmt.Errorf("failed to create holiday: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		holiday.ID = oid.Hex()
	}

	return nil
}

func (r *mongoHolidayRepository) FindByID(ctx context.Context, id string) (*model.Holiday, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ruleserrors.ErrInvalidID, id)
	}

	var holiday model.Holiday
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&holiday)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ruleserrors.ErrHolidayNotFound, id)
		}
		return nil, fmt.Errorf("failed to find holiday: %w", err)
	}
	return &holiday, nil
}

func (r *mongoHolidayRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Holiday, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer cursor.Close(ctx)

	var holidays []*model.Holiday
	if err = cursor.All(ctx, &holidays); err != nil {
		return nil, fmt.Errorf("failed to decode holidays: %w", err)
	}

	return holidays, nil
}

// FindEntireCatalog loads every holiday without pagination. Quote
// resolution needs the full catalog to evaluate holiday rules.
func (r *mongoHolidayRepository) FindEntireCatalog(ctx context.Context) ([]*model.Holiday, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query holiday catalog: %w", err)
	}
	defer cursor.Close(ctx)

	var holidays []*model.Holiday
	if err = cursor.All(ctx, &holidays); err != nil {
		return nil, fmt.Errorf("failed to decode holiday catalog: %w", err)
	}

	return holidays, nil
}

func (r *mongoHolidayRepository) Update(ctx context.Context, id string, holiday *model.Holiday) (*mongo.UpdateResult, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ruleserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":         holiday.Name,
			"date":         holiday.Date,
			"month":        holiday.Month,
			"day":          holiday.Day,
			"is_recurring": holiday.IsRecurring,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update holiday: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: %s", ruleserrors.ErrHolidayNotFound, id)
	}

	return result, nil
}

func (r *mongoHolidayRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ruleserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", ruleserrors.ErrHolidayNotFound, id)
	}

	return nil
}

func (r *mongoHolidayRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count holidays: %w", err)
	}
	return count, nil
}
