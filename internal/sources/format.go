package sources

import (
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/fuelwatch/fuel-price-bot/internal/countries"
)

// Formatter turns raw matches into canonical price results. Countries with
// a tuned rule table are formatted purely from the declared capture shape;
// everything else goes through the sanity-checked generic branch.
type Formatter struct {
	Limits Limits
}

func NewFormatter(limits Limits) Formatter {
	if limits.EURRates == nil {
		limits = DefaultLimits()
	}
	return Formatter{Limits: limits}
}

// Format produces the Result for one (country, fuel) pair. An absent match
// is NoData; a panic anywhere in here degrades to FormatError instead of
// escaping into the fetch cycle.
func (f Formatter) Format(c countries.Country, fuel FuelType, m Match, ok bool) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[format] %s/%s: %v", c.ID, fuel, r)
			res = Result{Kind: FormatError}
		}
	}()

	if !ok {
		return Result{Kind: NoData}
	}

	groups := make([]string, len(m.Groups))
	for i, g := range m.Groups {
		// Source pages use both comma and dot decimal separators.
		groups[i] = strings.ReplaceAll(g, ",", ".")
	}
	if len(groups) == 0 || groups[0] == "" {
		return Result{Kind: NoData}
	}

	if _, tuned := RulesFor(c.ID, fuel); tuned {
		return formatTuned(c, m.Rule.Shape, groups)
	}
	return f.formatGeneric(c, m.Rule.Shape, groups[0])
}

func formatTuned(c countries.Country, shape Shape, groups []string) Result {
	if shape == ShapeNativeEUR && len(groups) >= 2 && groups[1] != "" {
		return Result{Kind: Priced, Amount: groups[0], Currency: c.Currency, EUR: groups[1]}
	}
	// A single capture is euro unless the rule targets the native currency
	// (paired rules name the native code, so a lone capture from one is
	// native too).
	if shape == ShapeNative || shape == ShapeNativeEUR {
		return Result{Kind: Priced, Amount: groups[0], Currency: c.Currency}
	}
	return Result{Kind: Priced, Amount: groups[0], Currency: "EUR"}
}

// formatGeneric validates values from the loose fallback ladder. Source
// pages interleave prices with dates and other numbers; the range windows
// are the main defense against nonsense making it into the message.
func (f Formatter) formatGeneric(c countries.Country, shape Shape, amount string) Result {
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return Result{Kind: NoData}
	}

	if c.Currency == "EUR" || shape == ShapeEUR {
		if v < f.Limits.EURMin || v > f.Limits.EURMax {
			return Result{Kind: NoData}
		}
		return Result{Kind: Priced, Amount: amount, Currency: "EUR"}
	}

	rate, known := f.Limits.EURRates[c.Currency]
	if known && v < f.Limits.NativeCap {
		est := math.Round(v*rate*1000) / 1000
		if est < f.Limits.EstimateMin || est > f.Limits.EstimateMax {
			return Result{Kind: NoData}
		}
		return Result{Kind: Priced, Amount: amount, Currency: c.Currency, EUR: strconv.FormatFloat(est, 'f', -1, 64)}
	}
	return Result{Kind: Priced, Amount: amount, Currency: c.Currency}
}
