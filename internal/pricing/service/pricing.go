package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"pawresort/internal/pricing/engine"
	"pawresort/internal/pricing/validator"
	ruleserrors "pawresort/internal/rules/errors"
	rulesrepo "pawresort/internal/rules/repository"
	occupancy "pawresort/internal/reservations/service"
	"pawresort/pkg/config"
	apperrors "pawresort/pkg/errors"
	"pawresort/pkg/kafka"
	"pawresort/pkg/model"
	"pawresort/pkg/money"
	"pawresort/pkg/sanitizer"
)

const (
	TopicQuoteComputed    = "pricing.quotes.computed"
	TopicQuoteComputedDLQ = "pricing.quotes.computed.dlq"

	eventSchemaVersion = "1"
	eventSource        = "pricing-service"
)

// Quote is the full answer for one stay: base price under the capacity
// model, rule adjustments, and the availability view of the window.
type Quote struct {
	SuiteType          string                 `json:"suite_type"`
	ResourceType       string                 `json:"resource_type"`
	StartDate          string                 `json:"start_date"`
	EndDate            string                 `json:"end_date"`
	Nights             int                    `json:"nights"`
	PetCount           int                    `json:"pet_count"`
	AvailabilityStatus engine.Status          `json:"availability_status"`
	Capacity           string                 `json:"capacity"`
	PerNight           *engine.BasePriceQuote `json:"per_night"`
	Pricing            *engine.Resolution     `json:"pricing"`
}

// QuoteComputedEvent is published after every successful resolution so
// downstream consumers (analytics, rate monitoring) see quoted prices.
type QuoteComputedEvent struct {
	SuiteType       string    `json:"suite_type"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	PetCount        int       `json:"pet_count"`
	FinalPriceCents int64     `json:"final_price_cents"`
	Currency        string    `json:"currency"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// EventPublisher is satisfied by kafka.Producer; nil disables events.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type PricingService interface {
	Quote(ctx context.Context, req *model.QuoteRequest) (*Quote, error)
	BasePrice(ctx context.Context, suiteType string, petCount int) (*engine.BasePriceQuote, error)
	Availability(ctx context.Context, resourceType string, start, end time.Time) ([]engine.DateAvailability, error)
}

type pricingService struct {
	rules        rulesrepo.RuleRepository
	holidays     rulesrepo.HolidayRepository
	suiteConfigs rulesrepo.SuiteConfigRepository
	occupancy    occupancy.OccupancyService
	validator    *validator.QuoteValidator
	publisher    EventPublisher
	cfg          *config.Config
	now          func() time.Time
}

func NewPricingService(
	rules rulesrepo.RuleRepository,
	holidays rulesrepo.HolidayRepository,
	suiteConfigs rulesrepo.SuiteConfigRepository,
	occupancy occupancy.OccupancyService,
	validator *validator.QuoteValidator,
	publisher EventPublisher,
	cfg *config.Config,
) PricingService {
	return &pricingService{
		rules:        rules,
		holidays:     holidays,
		suiteConfigs: suiteConfigs,
		occupancy:    occupancy,
		validator:    validator,
		publisher:    publisher,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (s *pricingService) Quote(ctx context.Context, req *model.QuoteRequest) (*Quote, error) {
	req.SuiteType = sanitizer.NormalizeName(req.SuiteType)
	req.ResourceType = sanitizer.NormalizeName(req.ResourceType)

	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Quote request validation failed",
			"suite_type", req.SuiteType,
			"error", err,
		)
		return nil, apperrors.Validation("Quote request validation failed", validationDetails(err))
	}

	start, end, requestDate, err := req.Dates()
	if err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}
	if requestDate.IsZero() {
		requestDate = s.now()
	}

	if engine.IsPastDate(start, s.now()) {
		return nil, apperrors.Validation("start_date is in the past", map[string]any{
			"start_date": req.StartDate,
		})
	}

	nights := int(end.Sub(start) / (24 * time.Hour))
	if nights > s.cfg.MaxStayNights {
		return nil, apperrors.Validation("stay exceeds the maximum length", map[string]any{
			"nights":     nights,
			"max_nights": s.cfg.MaxStayNights,
		})
	}

	suiteConfig, err := s.suiteConfigs.FindBySuiteType(ctx, req.SuiteType)
	if err != nil {
		if errors.Is(err, ruleserrors.ErrConfigNotFound) {
			return nil, apperrors.ConfigurationGap("No pricing configuration for suite type", map[string]any{
				"suite_type": req.SuiteType,
			})
		}
		s.cfg.Log.Error("Failed to load suite capacity config",
			"suite_type", req.SuiteType,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to load pricing configuration", err)
	}

	catalog, holidays, snapshot, err := s.loadQuoteInputs(ctx, req.Resource(), start, end)
	if err != nil {
		return nil, err
	}

	perNight, err := engine.ComputeBasePrice(*suiteConfig, req.PetCount)
	if err != nil {
		return nil, err
	}
	stayBase := perNight.TotalPrice.MultiplyBy(int64(nights))
	if req.BaseRateCents != nil {
		stayBase = money.New(*req.BaseRateCents, perNight.TotalPrice.Currency)
	}

	status := engine.ClassifyStatus(snapshot.Total-snapshot.Occupied, snapshot.Total)
	if status == engine.StatusUnavailable {
		return nil, apperrors.Conflict("No availability for the requested window")
	}

	bc := engine.BookingContext{
		StartDate:        start,
		EndDate:          end,
		PetCount:         req.PetCount,
		OccupiedCapacity: snapshot.Occupied,
		TotalCapacity:    snapshot.Total,
		RequestDate:      requestDate,
		BaseRate:         stayBase,
	}

	resolution, err := engine.Resolve(bc, catalog, holidays, stayBase)
	if err != nil {
		return nil, err
	}

	quote := &Quote{
		SuiteType:          req.SuiteType,
		ResourceType:       req.Resource(),
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Nights:             nights,
		PetCount:           req.PetCount,
		AvailabilityStatus: status,
		Capacity:           engine.FormatCapacity(snapshot.Total-snapshot.Occupied, snapshot.Total),
		PerNight:           perNight,
		Pricing:            resolution,
	}

	s.cfg.Log.Info("Quote resolved",
		"suite_type", quote.SuiteType,
		"nights", quote.Nights,
		"pet_count", quote.PetCount,
		"matched_rules", len(resolution.Adjustments),
		"final_price_cents", resolution.FinalPrice.Amount,
	)

	s.publishQuoteComputed(ctx, quote)
	return quote, nil
}

func (s *pricingService) BasePrice(ctx context.Context, suiteType string, petCount int) (*engine.BasePriceQuote, error) {
	suiteType = sanitizer.NormalizeName(suiteType)
	if suiteType == "" {
		return nil, apperrors.InvalidInput("Suite type cannot be empty")
	}

	suiteConfig, err := s.suiteConfigs.FindBySuiteType(ctx, suiteType)
	if err != nil {
		if errors.Is(err, ruleserrors.ErrConfigNotFound) {
			return nil, apperrors.ConfigurationGap("No pricing configuration for suite type", map[string]any{
				"suite_type": suiteType,
			})
		}
		s.cfg.Log.Error("Failed to load suite capacity config",
			"suite_type", suiteType,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to load pricing configuration", err)
	}

	return engine.ComputeBasePrice(*suiteConfig, petCount)
}

func (s *pricingService) Availability(ctx context.Context, resourceType string, start, end time.Time) ([]engine.DateAvailability, error) {
	resourceType = sanitizer.NormalizeName(resourceType)
	if resourceType == "" {
		return nil, apperrors.InvalidInput("Resource type cannot be empty")
	}
	return s.occupancy.Calendar(ctx, resourceType, start, end)
}

// loadQuoteInputs gathers the rule catalog, holiday catalog, and occupancy
// snapshot in parallel.
func (s *pricingService) loadQuoteInputs(ctx context.Context, resourceType string, start, end time.Time) ([]model.PricingRule, []model.Holiday, occupancy.Snapshot, error) {
	var (
		activeRules []*model.PricingRule
		holidayPtrs []*model.Holiday
		snapshot    occupancy.Snapshot
		errRules, errHolidays, errSnapshot error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		activeRules, err = s.rules.FindActive(ctx)
		if err != nil {
			s.cfg.Log.Error("Failed to load active pricing rules", "error", err)
			errRules = apperrors.Internal("Failed to load pricing rules", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		holidayPtrs, err = s.holidays.FindEntireCatalog(ctx)
		if err != nil {
			s.cfg.Log.Error("Failed to load holiday catalog", "error", err)
			errHolidays = apperrors.Internal("Failed to load holiday catalog", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		snapshot, err = s.occupancy.SnapshotForStay(ctx, resourceType, start, end)
		if err != nil {
			errSnapshot = err
		}
	}()
	wg.Wait()

	if errRules != nil {
		return nil, nil, occupancy.Snapshot{}, errRules
	}
	if errHolidays != nil {
		return nil, nil, occupancy.Snapshot{}, errHolidays
	}
	if errSnapshot != nil {
		return nil, nil, occupancy.Snapshot{}, errSnapshot
	}

	catalog := make([]model.PricingRule, 0, len(activeRules))
	for _, rule := range activeRules {
		catalog = append(catalog, *rule)
	}
	holidays := make([]model.Holiday, 0, len(holidayPtrs))
	for _, holiday := range holidayPtrs {
		holidays = append(holidays, *holiday)
	}

	return catalog, holidays, snapshot, nil
}

func (s *pricingService) publishQuoteComputed(ctx context.Context, quote *Quote) {
	if s.publisher == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(quote.SuiteType).
		WithValue(QuoteComputedEvent{
			SuiteType:       quote.SuiteType,
			StartDate:       quote.StartDate,
			EndDate:         quote.EndDate,
			PetCount:        quote.PetCount,
			FinalPriceCents: quote.Pricing.FinalPrice.Amount,
			Currency:        quote.Pricing.FinalPrice.Currency,
			OccurredAt:      time.Now().UTC(),
		}).
		WithEventType("quote.computed").
		WithSchemaVersion(eventSchemaVersion).
		WithSource(eventSource).
		Build()
	msg.Topic = TopicQuoteComputed

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish quote event",
			"suite_type", quote.SuiteType,
			"error", err,
		)
	}
}

func validationDetails(err error) map[string]any {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return validationErrs.Fields()
	}
	return map[string]any{"error": err.Error()}
}
