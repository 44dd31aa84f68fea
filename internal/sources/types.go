package sources

import "strconv"

type FuelType string

const (
	Petrol FuelType = "petrol"
	Diesel FuelType = "diesel"
)

type Kind int

const (
	// NoData means no rule matched or the matched value failed validation.
	// A valid terminal outcome, not an error.
	NoData Kind = iota
	// FormatError means formatting itself blew up; rendered as a distinct
	// user-visible string and logged, never propagated.
	FormatError
	Priced
)

// Result is the canonical price for one (country, fuel) pair. Amounts are
// kept as normalized (dot-decimal) strings so the captured precision
// survives into the display; EURAmount exposes the numeric euro value for
// scaling.
type Result struct {
	Kind     Kind
	Amount   string // primary amount
	Currency string // currency of Amount; "EUR" for euro-only results
	EUR      string // secondary euro equivalent, empty if none
}

func (r Result) Display() string {
	switch r.Kind {
	case NoData:
		return "Нет данных"
	case FormatError:
		return "Ошибка форматирования"
	}
	if r.Currency == "EUR" {
		return "€" + r.Amount
	}
	if r.EUR != "" {
		return r.Amount + " " + r.Currency + " (€" + r.EUR + ")"
	}
	return r.Amount + " " + r.Currency
}

// EURAmount returns the euro value carried by the result, if any.
func (r Result) EURAmount() (float64, bool) {
	if r.Kind != Priced {
		return 0, false
	}
	s := r.Amount
	if r.Currency != "EUR" {
		s = r.EUR
	}
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

type CountryPrices struct {
	Petrol Result
	Diesel Result
}

// Snapshot maps country ID -> prices for one refresh cycle. It is replaced
// wholesale on commit and never mutated in place.
type Snapshot map[string]CountryPrices

// Limits holds the sanity windows and euro-conversion multipliers used by
// the generic formatting branch. The numbers are approximations that drift
// with real-world prices, so they come from config rather than constants.
type Limits struct {
	EURMin      float64
	EURMax      float64
	EstimateMin float64
	EstimateMax float64
	NativeCap   float64
	EURRates    map[string]float64 // currency code -> euro multiplier
}

func DefaultLimits() Limits {
	return Limits{
		EURMin:      0.5,
		EURMax:      3.0,
		EstimateMin: 0.3,
		EstimateMax: 5.0,
		NativeCap:   10000,
		EURRates: map[string]float64{
			"RUB": 0.011,
			"CZK": 0.041,
			"UAH": 0.024,
		},
	}
}
