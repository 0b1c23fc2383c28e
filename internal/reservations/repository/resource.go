package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"pawresort/pkg/config"
)

const (
	ResourcesCollectionName = "Resources"
)

type mongoResourceRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type ResourceRepository interface {
	CountActiveByType(ctx context.Context, resourceType string) (int64, error)
}

func NewMongoResourceRepository(cfg *config.Config) ResourceRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoResourceRepository{
		cfg:        cfg,
		collection: db.Collection(ResourcesCollectionName),
	}
}

// CountActiveByType returns the bookable inventory of a resource type.
// Inactive units (maintenance, decommissioned) are excluded from capacity.
func (r *mongoResourceRepository) CountActiveByType(ctx context.Context, resourceType string) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{
		"resource_type": resourceType,
		"is_active":     true,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count resources: %w", err)
	}
	return count, nil
}
