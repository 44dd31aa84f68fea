package sources

import "regexp"

// Shape declares what a rule's capture groups mean, so the formatter never
// has to inspect the pattern text itself.
type Shape int

const (
	// ShapeEUR: one capture, euro amount.
	ShapeEUR Shape = iota
	// ShapeNative: one capture, native-currency amount.
	ShapeNative
	// ShapeNativeEUR: two captures, native amount then euro equivalent.
	ShapeNativeEUR
)

// Rule is one extraction attempt: a pattern plus its capture shape. Rules
// are tried in declaration order, most specific first; a miss is never an
// error, the next rule simply gets its turn.
type Rule struct {
	Expr  *regexp.Regexp
	Shape Shape
}

// rule compiles a pattern case-insensitively with `.` spanning newlines:
// the source markup mixes case freely and splits price labels from the
// numeric spans with embedded newlines.
func rule(pattern string, shape Shape) Rule {
	return Rule{Expr: regexp.MustCompile(`(?is)` + pattern), Shape: shape}
}

// Hand-tuned ladders for the four known source pages. The first rule of
// each ladder matches the structured markup (grade label, currency marker,
// numeric span inside a formatting tag, euro equivalent in parentheses);
// the later ones are progressively looser euro-only fallbacks.
var countryRules = map[string]map[FuelType][]Rule{
	"russia": {
		Petrol: {
			rule(`АИ-95</span>.*?RUB.*?<span[^>]*>([\d\.,]+)</span>\s*\(€[^\d]*([\d\.,]+)\)`, ShapeNativeEUR),
			rule(`АИ-95</span>.*?€[^\d]*([\d\.,]+)`, ShapeEUR),
			rule(`АИ-95.*?€\s*([\d\.,]+)`, ShapeEUR),
		},
		Diesel: {
			rule(`ДТ</span>.*?RUB.*?<span[^>]*>([\d\.,]+)</span>\s*\(€[^\d]*([\d\.,]+)\)`, ShapeNativeEUR),
			rule(`ДТ</span>.*?€[^\d]*([\d\.,]+)`, ShapeEUR),
			// [^П] keeps "ДТ" from matching "ДТП" road-accident stats.
			rule(`ДТ[^П].*?€\s*([\d\.,]+)`, ShapeEUR),
		},
	},
	"germany": {
		Petrol: {
			rule(`Super\s*\(95\).*?€.*?<span[^>]*>([\d\.,]+)</span>`, ShapeEUR),
			rule(`E10.*?€.*?<span[^>]*>([\d\.,]+)</span>`, ShapeEUR),
			rule(`Super\s*\(95\).*?€.*?([\d\.,]+)`, ShapeEUR),
		},
		Diesel: {
			rule(`Diesel.*?€.*?<span[^>]*>([\d\.,]+)</span>`, ShapeEUR),
			rule(`Diesel.*?€.*?([\d\.,]+)`, ShapeEUR),
		},
	},
	"czechia": {
		Petrol: {
			rule(`Natural\s*95</span>.*?CZK.*?<span[^>]*>([\d\.,]+)</span>\s*\(€\s*([\d\.,]+)\)`, ShapeNativeEUR),
			rule(`Natural\s*95</span>.*?€\s*([\d\.,]+)`, ShapeEUR),
			rule(`Natural\s*95.*?€\s*([\d\.,]+)`, ShapeEUR),
		},
		Diesel: {
			rule(`Nafta</span>.*?CZK.*?<span[^>]*>([\d\.,]+)</span>\s*\(€\s*([\d\.,]+)\)`, ShapeNativeEUR),
			rule(`Nafta</span>.*?€\s*([\d\.,]+)`, ShapeEUR),
			rule(`Nafta.*?€\s*([\d\.,]+)`, ShapeEUR),
		},
	},
	"ukraine": {
		Petrol: {
			rule(`АИ-95</span>.*?UAH.*?<span[^>]*>([\d\.,]+)</span>\s*\(€\s*([\d\.,]+)\)`, ShapeNativeEUR),
			rule(`АИ-95.*?UAH.*?([\d\.,]+).*?\(€\s*([\d\.,]+)\)`, ShapeNativeEUR),
			rule(`АИ-95.*?€\s*([\d\.,]+)`, ShapeEUR),
		},
		Diesel: {
			rule(`ДТ</span>.*?UAH.*?<span[^>]*>([\d\.,]+)</span>\s*\(€\s*([\d\.,]+)\)`, ShapeNativeEUR),
			rule(`ДТ.*?UAH.*?([\d\.,]+).*?\(€\s*([\d\.,]+)\)`, ShapeNativeEUR),
			rule(`ДТ[^П].*?€\s*([\d\.,]+)`, ShapeEUR),
		},
	},
}

// Generic ladders for countries without a tuned table. The euro patterns
// bound the integer part to 0-3 so dates, IDs and other page noise don't
// pass as prices; the native patterns stay conservative and rely on the
// formatter's sanity windows.
var genericRules = map[FuelType][]Rule{
	Petrol: {
		rule(`(?:Super|Petrol|Benzin|95|E5|SP95).*?€\s*([0-3]\.\d{1,3})`, ShapeEUR),
		rule(`(?:Super|Petrol|Benzin|95|E5|SP95).*?(\d{1,3}\.\d{1,3})\s*€`, ShapeEUR),
		rule(`95.*?€\s*([0-3]\.\d{1,3})`, ShapeEUR),
		rule(`бензин.*?([0-9]{1,3}\.[0-9]{1,3})`, ShapeNative),
	},
	Diesel: {
		rule(`(?:Diesel|Dizel|Дизель).*?€\s*([0-3]\.\d{1,3})`, ShapeEUR),
		rule(`(?:Diesel|Dizel|Дизель).*?(\d{1,3}\.\d{1,3})\s*€`, ShapeEUR),
		rule(`дизель.*?([0-9]{1,3}\.[0-9]{1,3})`, ShapeNative),
	},
}

// RulesFor returns the ordered ladder for a country and fuel, and whether
// the country has a hand-tuned table (which changes formatting behavior).
func RulesFor(countryID string, fuel FuelType) ([]Rule, bool) {
	if byFuel, ok := countryRules[countryID]; ok {
		return byFuel[fuel], true
	}
	return genericRules[fuel], false
}
