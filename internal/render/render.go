package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/fuelwatch/fuel-price-bot/internal/countries"
	"github.com/fuelwatch/fuel-price-bot/internal/sources"
)

// BuildMessage renders the snapshot into the message text posted to the
// chat: one titled block per country in table order, petrol and diesel
// lines, and for liters != 1 a scaled euro total computed from the
// structured result (never re-parsed out of the display string).
func BuildMessage(snap sources.Snapshot, liters float64) string {
	var b strings.Builder

	if len(snap) == 0 {
		b.WriteString("⛽ Цены на топливо\n\n")
		b.WriteString("❌ Ошибка\nДанные о ценах временно недоступны")
		return b.String()
	}

	b.WriteString("⛽ Цены на топливо (" + formatLiters(liters) + " л)\n")
	for _, c := range countries.All {
		prices, ok := snap[c.ID]
		if !ok {
			continue
		}
		b.WriteString("\n" + c.Flag + " " + c.Name + "\n")
		b.WriteString("⛽ Бензин: " + line(prices.Petrol, liters) + "\n")
		b.WriteString("🛢 Дизель: " + line(prices.Diesel, liters) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func line(r sources.Result, liters float64) string {
	text := r.Display()
	if liters == 1 {
		return text
	}
	eur, ok := r.EURAmount()
	if !ok {
		return text
	}
	total := math.Round(eur*liters*100) / 100
	return text + " → €" + strconv.FormatFloat(total, 'f', -1, 64) + " за " + formatLiters(liters) + "л"
}

func formatLiters(liters float64) string {
	return strconv.FormatFloat(liters, 'f', -1, 64)
}
