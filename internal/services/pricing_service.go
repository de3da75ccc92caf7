package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"fleetdesk/internal/domain"
	"fleetdesk/internal/domain/models"
	"fleetdesk/internal/repositories"
	"fleetdesk/internal/utils"
)

// PricingService prices a trip from trip-type rules. Stored configs override
// the built-in defaults field by field; a missing config falls back entirely
// to built-ins for the four standard types.
type PricingService struct {
	TripTypeRepo repositories.TripTypeConfigRepository
	RequestID    string

	// LoadConfig overrides config resolution (tests). nil means absent.
	LoadConfig func(name string) (*models.TripTypeConfig, error)
}

type PriceRequest struct {
	TripType      string  `json:"trip_type"`
	DistanceKm    float64 `json:"distance_km"`
	DurationHours float64 `json:"duration_hours"`
	CarCategory   string  `json:"car_category"`
}

// PriceBreakdown itemizes the computed total; zero fields are omitted.
type PriceBreakdown struct {
	Base              int64 `json:"base,omitempty"`
	DurationExtra     int64 `json:"duration_extra,omitempty"`
	DistanceExtra     int64 `json:"distance_extra,omitempty"`
	SlabBased         int64 `json:"slab_based,omitempty"`
	PremiumAdjustment int64 `json:"premium_adjustment,omitempty"`
}

const (
	ConfigSourceStored  = "stored"
	ConfigSourceBuiltin = "builtin"
)

type PriceResult struct {
	TripType     string         `json:"trip_type"`
	TotalPrice   int64          `json:"total_price"`
	Breakdown    PriceBreakdown `json:"breakdown"`
	ConfigSource string         `json:"config_source"`
}

type pricingStrategy int

const (
	strategyFlatOvertime pricingStrategy = iota
	strategyFlatOverdistance
	strategyDistanceSlab
	strategyBaseOnly
)

// Built-in rate card for the four standard trip types. Stored configs
// override these per field.
type tripTypeDefaults struct {
	basePrice        int64
	baseDuration     float64
	baseDistance     float64
	extraPerHour     int64
	extraPerHalfHour int64
	extraPerKm       int64
	slabs            []models.DistanceSlab
}

var defaultLongDropoffSlabs = []models.DistanceSlab{
	{FromKm: 0, ToKm: 50, Price: 1000},
	{FromKm: 50, ToKm: 100, Price: 2000},
	{FromKm: 100, ToKm: 200, Price: 3500},
	{FromKm: 200, ToKm: 500, Price: 5000},
}

var builtinDefaults = map[string]tripTypeDefaults{
	models.TripTypeCityRound: {basePrice: 400, baseDuration: 3, extraPerHour: 100},
	models.TripTypeLongRound: {basePrice: 2500, baseDuration: 12, extraPerHour: 200},
	models.TripTypeCityDropoff: {
		basePrice: 300, baseDuration: 1, baseDistance: 10,
		extraPerHour: 100, extraPerHalfHour: 50, extraPerKm: 15,
	},
	models.TripTypeLongDropoff: {slabs: defaultLongDropoffSlabs},
}

const defaultPremiumMultiplier = 1.5

// CalculatePrice computes the quote for one trip. Pure read/compute: the only
// side effect is the degraded-config warning log.
func (s PricingService) CalculatePrice(req PriceRequest) (PriceResult, error) {
	name := strings.ToUpper(strings.TrimSpace(req.TripType))
	if name == "" {
		return PriceResult{}, domain.ValidationError{Code: domain.CodeInvalidTripType, Field: "trip_type", Msg: "trip type is required"}
	}
	if req.DistanceKm < 0 {
		return PriceResult{}, domain.ValidationError{Code: domain.CodeInvalidDistance, Field: "distance_km", Msg: "distance must not be negative"}
	}
	if req.DurationHours < 0 {
		return PriceResult{}, domain.ValidationError{Code: domain.CodeInvalidDuration, Field: "duration_hours", Msg: "duration must not be negative"}
	}

	cfg, err := s.loadConfig(name)
	if err != nil {
		return PriceResult{}, err
	}

	strategy, err := resolveStrategy(name, cfg)
	if err != nil {
		return PriceResult{}, err
	}

	defaults := builtinDefaults[name]
	var breakdown PriceBreakdown
	var total float64

	switch strategy {
	case strategyFlatOvertime:
		total, breakdown = priceFlatOvertime(req, cfg, defaults)
	case strategyFlatOverdistance:
		total, breakdown = priceFlatOverdistance(req, cfg, defaults)
	case strategyDistanceSlab:
		total, breakdown, err = priceDistanceSlab(req, cfg, defaults)
		if err != nil {
			return PriceResult{}, err
		}
	case strategyBaseOnly:
		total = float64(pickInt(cfg.BasePrice, 0))
		breakdown.Base = utils.RoundMoney(total)
		utils.LogEvent(s.RequestID, "pricing", "degraded_config",
			fmt.Sprintf("trip_type=%s priced at base only: config matches no known shape", name))
	}

	if adj := premiumAdjustment(req.CarCategory, cfg, total); adj > 0 {
		breakdown.PremiumAdjustment = utils.RoundMoney(adj)
		total += adj
	}

	source := ConfigSourceBuiltin
	if cfg != nil {
		source = ConfigSourceStored
	}

	return PriceResult{
		TripType:     name,
		TotalPrice:   utils.RoundMoney(total),
		Breakdown:    breakdown,
		ConfigSource: source,
	}, nil
}

func (s PricingService) loadConfig(name string) (*models.TripTypeConfig, error) {
	if s.LoadConfig != nil {
		return s.LoadConfig(name)
	}
	cfg, err := s.TripTypeRepo.GetActiveByName(name)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// resolveStrategy dispatches the four pricing shapes. Custom types need a
// stored config; a config matching no shape degrades to base-only rather
// than failing the quote.
func resolveStrategy(name string, cfg *models.TripTypeConfig) (pricingStrategy, error) {
	if cfg != nil && cfg.SpecialPrice {
		return strategyDistanceSlab, nil
	}

	switch name {
	case models.TripTypeCityRound, models.TripTypeLongRound:
		return strategyFlatOvertime, nil
	case models.TripTypeCityDropoff:
		return strategyFlatOverdistance, nil
	case models.TripTypeLongDropoff:
		if cfg != nil && cfg.HasDurationShape() {
			return strategyFlatOvertime, nil
		}
		return strategyDistanceSlab, nil
	}

	if cfg == nil {
		return 0, domain.ValidationError{
			Code:  domain.CodeInvalidTripType,
			Field: "trip_type",
			Msg:   "unknown trip type " + name,
		}
	}
	if cfg.HasDurationShape() && len(cfg.DistanceSlabs) == 0 {
		return strategyFlatOvertime, nil
	}
	return strategyBaseOnly, nil
}

// total = base + max(0, duration - baseDuration) * extraPerHour
func priceFlatOvertime(req PriceRequest, cfg *models.TripTypeConfig, def tripTypeDefaults) (float64, PriceBreakdown) {
	base := float64(cfgInt(cfg, func(c *models.TripTypeConfig) *int64 { return c.BasePrice }, def.basePrice))
	baseDuration := cfgFloat(cfg, func(c *models.TripTypeConfig) *float64 { return c.BaseDurationHours }, def.baseDuration)
	perHour := float64(cfgInt(cfg, func(c *models.TripTypeConfig) *int64 { return c.ExtraPerHour }, def.extraPerHour))

	extra := 0.0
	if req.DurationHours > baseDuration {
		extra = (req.DurationHours - baseDuration) * perHour
	}

	b := PriceBreakdown{Base: utils.RoundMoney(base)}
	if extra > 0 {
		b.DurationExtra = utils.RoundMoney(extra)
	}
	return base + extra, b
}

// Flat base plus per-km overdistance and hourly/half-hourly overtime. Whole
// excess hours bill at extraPerHour; the remainder rounds up to half-hour
// increments, or bills proportionally at the hourly rate when no half-hour
// rate is configured.
func priceFlatOverdistance(req PriceRequest, cfg *models.TripTypeConfig, def tripTypeDefaults) (float64, PriceBreakdown) {
	base := float64(cfgInt(cfg, func(c *models.TripTypeConfig) *int64 { return c.BasePrice }, def.basePrice))
	baseDuration := cfgFloat(cfg, func(c *models.TripTypeConfig) *float64 { return c.BaseDurationHours }, def.baseDuration)
	baseDistance := cfgFloat(cfg, func(c *models.TripTypeConfig) *float64 { return c.BaseDistanceKm }, def.baseDistance)
	perHour := float64(cfgInt(cfg, func(c *models.TripTypeConfig) *int64 { return c.ExtraPerHour }, def.extraPerHour))
	perHalfHour := float64(cfgInt(cfg, func(c *models.TripTypeConfig) *int64 { return c.ExtraPerHalfHour }, def.extraPerHalfHour))
	perKm := float64(cfgInt(cfg, func(c *models.TripTypeConfig) *int64 { return c.ExtraPerKm }, def.extraPerKm))

	distanceExtra := 0.0
	if req.DistanceKm > baseDistance {
		distanceExtra = (req.DistanceKm - baseDistance) * perKm
	}

	durationExtra := 0.0
	if req.DurationHours > baseDuration {
		excess := req.DurationHours - baseDuration
		wholeHours := math.Floor(excess)
		remainderMinutes := (excess - wholeHours) * 60

		durationExtra = wholeHours * perHour
		if remainderMinutes > 0 {
			if perHalfHour > 0 {
				durationExtra += math.Ceil(remainderMinutes/30) * perHalfHour
			} else {
				durationExtra += remainderMinutes / 60 * perHour
			}
		}
	}

	b := PriceBreakdown{Base: utils.RoundMoney(base)}
	if durationExtra > 0 {
		b.DurationExtra = utils.RoundMoney(durationExtra)
	}
	if distanceExtra > 0 {
		b.DistanceExtra = utils.RoundMoney(distanceExtra)
	}
	return base + durationExtra + distanceExtra, b
}

// Slab lookup over half-open (from, to] ranges. Distances beyond the last
// slab keep the last slab's price, plus a per-km surcharge when configured.
func priceDistanceSlab(req PriceRequest, cfg *models.TripTypeConfig, def tripTypeDefaults) (float64, PriceBreakdown, error) {
	if req.DistanceKm <= 0 {
		return 0, PriceBreakdown{}, domain.ValidationError{
			Code:  domain.CodeMissingDistanceForDropoff,
			Field: "distance_km",
			Msg:   "Distance is required for dropoff trips",
		}
	}

	slabs := def.slabs
	if cfg != nil && len(cfg.DistanceSlabs) > 0 {
		slabs = cfg.DistanceSlabs
	}
	if len(slabs) == 0 {
		slabs = defaultLongDropoffSlabs
	}
	sorted := make([]models.DistanceSlab, len(slabs))
	copy(sorted, slabs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].FromKm < sorted[j].FromKm })

	price := 0.0
	extra := 0.0
	last := sorted[len(sorted)-1]
	if req.DistanceKm > last.ToKm {
		// open-ended overflow: keep the last slab's price
		price = float64(last.Price)
		if cfg != nil && cfg.ExtraPerKm != nil {
			extra = float64(*cfg.ExtraPerKm) * req.DistanceKm
		}
	} else {
		for _, slab := range sorted {
			if req.DistanceKm <= slab.ToKm {
				price = float64(slab.Price)
				break
			}
		}
	}

	b := PriceBreakdown{SlabBased: utils.RoundMoney(price)}
	if extra > 0 {
		b.DistanceExtra = utils.RoundMoney(extra)
	}
	return price + extra, b, nil
}

// premiumAdjustment returns the surcharge for non-NORMAL car categories:
// (base + extras) * (multiplier - 1). Multiplier precedence: explicit config
// multiplier, then presence of a premium fee plan, then the default for
// PREMIUM/LUXURY categories.
func premiumAdjustment(category string, cfg *models.TripTypeConfig, totalSoFar float64) float64 {
	cat := strings.ToUpper(strings.TrimSpace(category))
	if cat == "" || cat == models.CarCategoryNormal {
		return 0
	}

	multiplier := 0.0
	switch {
	case cfg != nil && cfg.PremiumCarMultiplier != nil:
		multiplier = *cfg.PremiumCarMultiplier
	case cfg != nil && cfg.ForPremiumCars.Kind != models.PremiumPlanNone:
		multiplier = defaultPremiumMultiplier
	case cat == models.CarCategoryPremium || cat == models.CarCategoryLuxury:
		multiplier = defaultPremiumMultiplier
	}

	if multiplier <= 1 {
		return 0
	}
	return totalSoFar * (multiplier - 1)
}

func cfgInt(cfg *models.TripTypeConfig, field func(*models.TripTypeConfig) *int64, def int64) int64 {
	if cfg != nil {
		if v := field(cfg); v != nil {
			return *v
		}
	}
	return def
}

func cfgFloat(cfg *models.TripTypeConfig, field func(*models.TripTypeConfig) *float64, def float64) float64 {
	if cfg != nil {
		if v := field(cfg); v != nil {
			return *v
		}
	}
	return def
}

func pickInt(v *int64, def int64) int64 {
	if v != nil {
		return *v
	}
	return def
}
