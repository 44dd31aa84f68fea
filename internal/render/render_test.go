package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuelwatch/fuel-price-bot/internal/sources"
)

func TestBuildMessageEmptySnapshot(t *testing.T) {
	got := BuildMessage(nil, 1)
	require.Contains(t, got, "Данные о ценах временно недоступны")
	require.NotContains(t, got, "Россия")

	got = BuildMessage(sources.Snapshot{}, 1)
	require.Contains(t, got, "Данные о ценах временно недоступны")
}

func fullSnapshot() sources.Snapshot {
	return sources.Snapshot{
		"russia": {
			Petrol: sources.Result{Kind: sources.Priced, Amount: "61.50", Currency: "RUB", EUR: "0.68"},
			Diesel: sources.Result{Kind: sources.NoData},
		},
		"germany": {
			Petrol: sources.Result{Kind: sources.Priced, Amount: "1.50", Currency: "EUR"},
			Diesel: sources.Result{Kind: sources.Priced, Amount: "1.65", Currency: "EUR"},
		},
		"czechia": {
			Petrol: sources.Result{Kind: sources.Priced, Amount: "38.90", Currency: "CZK", EUR: "1.59"},
			Diesel: sources.Result{Kind: sources.FormatError},
		},
		"ukraine": {
			Petrol: sources.Result{Kind: sources.NoData},
			Diesel: sources.Result{Kind: sources.NoData},
		},
	}
}

func TestBuildMessageSingleLiter(t *testing.T) {
	got := BuildMessage(fullSnapshot(), 1)

	require.Contains(t, got, "⛽ Цены на топливо (1 л)")
	require.Contains(t, got, "🇷🇺 Россия")
	require.Contains(t, got, "⛽ Бензин: 61.50 RUB (€0.68)")
	require.Contains(t, got, "🛢 Дизель: Нет данных")
	require.Contains(t, got, "⛽ Бензин: €1.50")
	require.Contains(t, got, "🛢 Дизель: Ошибка форматирования")
	// No scaling at the default quantity.
	require.NotContains(t, got, "→")

	// Countries keep the fixed display order.
	require.Less(t, strings.Index(got, "Россия"), strings.Index(got, "Германия"))
	require.Less(t, strings.Index(got, "Германия"), strings.Index(got, "Чехия"))
	require.Less(t, strings.Index(got, "Чехия"), strings.Index(got, "Украина"))
}

func TestBuildMessageScalesEuroResults(t *testing.T) {
	got := BuildMessage(fullSnapshot(), 2.5)

	require.Contains(t, got, "⛽ Цены на топливо (2.5 л)")
	// 1.50 × 2.5 = 3.75 for the euro-only German petrol price.
	require.Contains(t, got, "€1.50 → €3.75 за 2.5л")
	// Secondary euro amounts scale too: 0.68 × 2.5 = 1.7.
	require.Contains(t, got, "61.50 RUB (€0.68) → €1.7 за 2.5л")
	// Results without a euro amount are left alone.
	require.Contains(t, got, "🛢 Дизель: Нет данных")
	require.NotContains(t, got, "Нет данных →")
}

func TestBuildMessageSkipsCountriesAbsentFromSnapshot(t *testing.T) {
	snap := sources.Snapshot{
		"germany": {
			Petrol: sources.Result{Kind: sources.Priced, Amount: "1.79", Currency: "EUR"},
			Diesel: sources.Result{Kind: sources.Priced, Amount: "1.65", Currency: "EUR"},
		},
	}
	got := BuildMessage(snap, 1)
	require.Contains(t, got, "Германия")
	require.NotContains(t, got, "Россия")
}
