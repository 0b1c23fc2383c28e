package service

import (
	"context"
	"sync"
	"time"

	"pawresort/internal/pricing/engine"
	"pawresort/internal/reservations/repository"
	"pawresort/pkg/config"
	apperrors "pawresort/pkg/errors"
	"pawresort/pkg/model"
)

// Snapshot is the occupancy view of a resource type over a stay window:
// total bookable units and the peak number of units simultaneously occupied
// on any day of the window.
type Snapshot struct {
	Occupied int
	Total    int
}

type OccupancyService interface {
	SnapshotForStay(ctx context.Context, resourceType string, start, end time.Time) (Snapshot, error)
	Calendar(ctx context.Context, resourceType string, start, end time.Time) ([]engine.DateAvailability, error)
}

type occupancyService struct {
	reservations repository.ReservationRepository
	resources    repository.ResourceRepository
	cfg          *config.Config
}

func NewOccupancyService(
	reservations repository.ReservationRepository,
	resources repository.ResourceRepository,
	cfg *config.Config,
) OccupancyService {
	return &occupancyService{
		reservations: reservations,
		resources:    resources,
		cfg:          cfg,
	}
}

// SnapshotForStay computes the occupancy snapshot used by capacity rules.
// Occupied is the peak per-day count over [start, end): pricing against the
// busiest day of the stay, never an average.
func (s *occupancyService) SnapshotForStay(ctx context.Context, resourceType string, start, end time.Time) (Snapshot, error) {
	total, overlapping, err := s.load(ctx, resourceType, start, end)
	if err != nil {
		return Snapshot{}, err
	}

	peak := 0
	forEachDay(start, end, func(day time.Time) {
		occupied := countOccupied(overlapping, day)
		if occupied > peak {
			peak = occupied
		}
	})

	return Snapshot{Occupied: peak, Total: total}, nil
}

// Calendar derives the per-day availability view over [start, end).
func (s *occupancyService) Calendar(ctx context.Context, resourceType string, start, end time.Time) ([]engine.DateAvailability, error) {
	days := int(dayOf(end).Sub(dayOf(start)) / (24 * time.Hour))
	if days < 1 {
		return nil, apperrors.Validation("availability window is empty", map[string]any{
			"start_date": start.Format("2006-01-02"),
			"end_date":   end.Format("2006-01-02"),
		})
	}
	if days > s.cfg.MaxAvailabilityWindowDays {
		return nil, apperrors.Validation("availability window too large", map[string]any{
			"days":     days,
			"max_days": s.cfg.MaxAvailabilityWindowDays,
		})
	}

	total, overlapping, err := s.load(ctx, resourceType, start, end)
	if err != nil {
		return nil, err
	}

	calendar := make([]engine.DateAvailability, 0, days)
	forEachDay(start, end, func(day time.Time) {
		calendar = append(calendar, engine.ClassifyAvailability(day, countOccupied(overlapping, day), total))
	})

	return calendar, nil
}

// load fetches inventory size and overlapping stays in parallel.
func (s *occupancyService) load(ctx context.Context, resourceType string, start, end time.Time) (int, []*model.Reservation, error) {
	var total int64
	var overlapping []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		total, err = s.resources.CountActiveByType(ctx, resourceType)
		if err != nil {
			s.cfg.Log.Error("Failed to count resources",
				"resource_type", resourceType,
				"error", err,
			)
			errCount = apperrors.Internal("Failed to count resources", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		overlapping, err = s.reservations.FindOverlapping(ctx, resourceType, start, end)
		if err != nil {
			s.cfg.Log.Error("Failed to load overlapping reservations",
				"resource_type", resourceType,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to load reservations", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return 0, nil, errCount
	}
	if errFind != nil {
		return 0, nil, errFind
	}

	return int(total), overlapping, nil
}

func countOccupied(reservations []*model.Reservation, day time.Time) int {
	occupied := 0
	for _, res := range reservations {
		if res.OccupiesCapacity() && res.Covers(day) {
			occupied++
		}
	}
	return occupied
}

func forEachDay(start, end time.Time, fn func(day time.Time)) {
	last := dayOf(end)
	for day := dayOf(start); day.Before(last); day = day.AddDate(0, 0, 1) {
		fn(day)
	}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
