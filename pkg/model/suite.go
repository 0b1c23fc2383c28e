package model

import (
	"fmt"
	"time"
)

type PricingType string

const (
	PricePerPet        PricingType = "PER_PET"
	PriceFlatRate      PricingType = "FLAT_RATE"
	PriceTiered        PricingType = "TIERED"
	PricePercentageOff PricingType = "PERCENTAGE_OFF"
)

// TierBand prices a contiguous pet-count range. Bands must partition
// 1..MaxPets with no gaps or overlaps.
type TierBand struct {
	MinPets    int   `json:"min_pets" bson:"min_pets" validate:"required,min=1"`
	MaxPets    int   `json:"max_pets" bson:"max_pets" validate:"required,min=1"`
	PriceCents int64 `json:"price_cents" bson:"price_cents" validate:"min=0"`
}

// SuiteCapacityConfig is the multi-occupant pricing configuration for one
// suite type. Prices are minor units.
type SuiteCapacityConfig struct {
	ID                      string      `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	SuiteType               string      `json:"suite_type" bson:"suite_type" validate:"required,min=2,max=50"`
	CapacityType            string      `json:"capacity_type" bson:"capacity_type" validate:"required,oneof=SINGLE MULTI"`
	MaxPets                 int         `json:"max_pets" bson:"max_pets" validate:"required,min=1,max=20"`
	PricingType             PricingType `json:"pricing_type" bson:"pricing_type" validate:"required,oneof=PER_PET FLAT_RATE TIERED PERCENTAGE_OFF"`
	BasePriceCents          int64       `json:"base_price_cents" bson:"base_price_cents" validate:"min=0"`
	AdditionalPetPriceCents *int64      `json:"additional_pet_price_cents,omitempty" bson:"additional_pet_price_cents,omitempty" validate:"omitempty,min=0"`
	PercentageOff           *float64    `json:"percentage_off,omitempty" bson:"percentage_off,omitempty" validate:"omitempty,min=0,max=100"`
	TieredPricing           []TierBand  `json:"tiered_pricing,omitempty" bson:"tiered_pricing,omitempty" validate:"omitempty,dive"`
	Currency                string      `json:"currency,omitempty" bson:"currency,omitempty" validate:"omitempty,len=3"`
	CreatedAt               time.Time   `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Validate enforces the strategy-specific requirements: which optional
// fields each pricing type needs, and that tiered bands partition
// 1..MaxPets exactly.
func (c *SuiteCapacityConfig) Validate() error {
	switch c.PricingType {
	case PricePerPet:
		if c.AdditionalPetPriceCents == nil {
			return fmt.Errorf("suite %q: PER_PET pricing needs additional_pet_price_cents", c.SuiteType)
		}
	case PriceFlatRate:
		// base price alone is enough
	case PriceTiered:
		if err := c.validateBands(); err != nil {
			return err
		}
	case PricePercentageOff:
		if c.AdditionalPetPriceCents == nil {
			return fmt.Errorf("suite %q: PERCENTAGE_OFF pricing needs additional_pet_price_cents", c.SuiteType)
		}
		if c.PercentageOff == nil {
			return fmt.Errorf("suite %q: PERCENTAGE_OFF pricing needs percentage_off", c.SuiteType)
		}
	default:
		return fmt.Errorf("suite %q: unknown pricing type %q", c.SuiteType, c.PricingType)
	}
	return nil
}

func (c *SuiteCapacityConfig) validateBands() error {
	if len(c.TieredPricing) == 0 {
		return fmt.Errorf("suite %q: TIERED pricing needs at least one band", c.SuiteType)
	}
	next := 1
	for i, band := range c.TieredPricing {
		if band.MinPets != next {
			return fmt.Errorf("suite %q: band %d starts at %d, expected %d (bands must cover 1..max_pets without gaps or overlaps)",
				c.SuiteType, i, band.MinPets, next)
		}
		if band.MaxPets < band.MinPets {
			return fmt.Errorf("suite %q: band %d has max_pets %d below min_pets %d", c.SuiteType, i, band.MaxPets, band.MinPets)
		}
		next = band.MaxPets + 1
	}
	if next != c.MaxPets+1 {
		return fmt.Errorf("suite %q: bands end at %d, expected coverage through max_pets %d", c.SuiteType, next-1, c.MaxPets)
	}
	return nil
}

// BandFor returns the band containing petCount, if any. Callers treat a
// missing band as a configuration gap, never as a fallback to base price.
func (c *SuiteCapacityConfig) BandFor(petCount int) (TierBand, bool) {
	for _, band := range c.TieredPricing {
		if petCount >= band.MinPets && petCount <= band.MaxPets {
			return band, true
		}
	}
	return TierBand{}, false
}
