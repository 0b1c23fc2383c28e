package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"pawresort/pkg/config"
	"pawresort/pkg/model"
)

const (
	ReservationsCollectionName = "Reservations"
)

// occupyingStatuses are the reservation states that consume capacity.
// Cancelled, checked-out and no-show stays free their unit.
var occupyingStatuses = []string{model.ReservationConfirmed, model.ReservationCheckedIn}

type mongoReservationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type ReservationRepository interface {
	FindOverlapping(ctx context.Context, resourceType string, start, end time.Time) ([]*model.Reservation, error)
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationRepository{
		cfg:        cfg,
		collection: db.Collection(ReservationsCollectionName),
	}
}

// FindOverlapping returns capacity-consuming reservations of the resource
// type whose stay intersects [start, end). Check-out day is exclusive on
// both sides of the comparison.
func (r *mongoReservationRepository) FindOverlapping(ctx context.Context, resourceType string, start, end time.Time) ([]*model.Reservation, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"resource_type": resourceType,
		"status":        bson.M{"$in": occupyingStatuses},
		"start_date":    bson.M{"$lt": end},
		"end_date":      bson.M{"$gt": start},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

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
