package sources

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fuelwatch/fuel-price-bot/internal/countries"
)

// Match is the raw outcome of one rule applied to page text: the captured
// numeric strings (decimal separator not yet normalized) and the rule that
// produced them.
type Match struct {
	Groups []string
	Rule   Rule
}

// Extract applies the country's ordered rule ladder to the page text and
// returns the first hit. A miss returns ok=false, never an error.
//
// For countries on the generic ladder the rules get a second pass over a
// plain-text view of the page: the loose keyword patterns false-match far
// less often once tags and scripts are stripped away.
func Extract(c countries.Country, fuel FuelType, page string) (Match, bool) {
	rules, tuned := RulesFor(c.ID, fuel)

	if m, ok := apply(rules, page); ok {
		return m, true
	}
	if !tuned {
		if text := visibleText(page); text != "" {
			return apply(rules, text)
		}
	}
	return Match{}, false
}

func apply(rules []Rule, text string) (Match, bool) {
	for _, r := range rules {
		sub := r.Expr.FindStringSubmatch(text)
		if sub == nil {
			continue
		}
		return Match{Groups: sub[1:], Rule: r}, true
	}
	return Match{}, false
}

// visibleText reduces an HTML page to its rendered text. Returns "" when
// the input doesn't parse as a document.
func visibleText(page string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()
	return strings.TrimSpace(doc.Text())
}
