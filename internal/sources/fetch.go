package sources

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/fuelwatch/fuel-price-bot/internal/countries"
	"github.com/fuelwatch/fuel-price-bot/internal/db"
)

// Some of the source sites reject unidentified clients.
const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

const fetchTimeout = 30 * time.Second

// Manager fetches every configured country's page and assembles a
// Snapshot. Countries are fetched sequentially: volume is four pages a few
// times a day, and keeping failure isolation and logging linear beats
// parallelism here.
type Manager struct {
	client *resty.Client
	fmtr   Formatter
	list   []countries.Country
	db     *db.DB // health recording, may be nil

	// serializes refresh cycles; overlapping triggers queue up instead of
	// hammering the sources twice
	mu sync.Mutex
}

func NewManager(list []countries.Country, limits Limits, database *db.DB) *Manager {
	client := resty.New()
	client.SetTimeout(fetchTimeout)
	client.SetHeader("User-Agent", browserUA)
	return &Manager{
		client: client,
		fmtr:   NewFormatter(limits),
		list:   list,
		db:     database,
	}
}

// RefreshAll fetches all countries and returns the fully assembled
// snapshot plus whether any source was actually reached. One country
// failing never aborts the others; its entries degrade to NoData. The
// caller decides whether to commit the snapshot (it should skip commit
// only when no source was reached at all).
func (m *Manager) RefreshAll(ctx context.Context) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cycle := uuid.NewString()[:8]
	snap := make(Snapshot, len(m.list))
	reached := false

	for _, c := range m.list {
		log.Printf("[fetch] %s: fetching prices (cycle %s)", c.ID, cycle)
		prices, ok := m.fetchCountry(ctx, cycle, c)
		snap[c.ID] = prices
		if ok {
			reached = true
		}
	}
	return snap, reached
}

func (m *Manager) fetchCountry(ctx context.Context, cycle string, c countries.Country) (CountryPrices, bool) {
	none := CountryPrices{
		Petrol: Result{Kind: NoData},
		Diesel: Result{Kind: NoData},
	}

	resp, err := m.client.R().SetContext(ctx).Get(c.URL)
	if err != nil {
		log.Printf("[fetch] %s: %v", c.ID, err)
		m.recordHealth(c.ID, cycle, err.Error())
		return none, false
	}
	if resp.StatusCode() != http.StatusOK {
		log.Printf("[fetch] %s: HTTP %d", c.ID, resp.StatusCode())
		m.recordHealth(c.ID, cycle, "HTTP "+resp.Status())
		return none, false
	}

	page := resp.String()
	petrol := m.one(c, Petrol, page)
	diesel := m.one(c, Diesel, page)
	m.recordHealth(c.ID, cycle, "")
	return CountryPrices{Petrol: petrol, Diesel: diesel}, true
}

func (m *Manager) one(c countries.Country, fuel FuelType, page string) Result {
	match, ok := Extract(c, fuel, page)
	res := m.fmtr.Format(c, fuel, match, ok)
	switch res.Kind {
	case NoData:
		log.Printf("[fetch] %s: no %s price found", c.ID, fuel)
	case Priced:
		log.Printf("[fetch] %s: %s = %s", c.ID, fuel, res.Display())
	}
	return res
}

func (m *Manager) recordHealth(countryID, cycle, errMsg string) {
	if m.db == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.db.UpdateCountryHealth(ctx, countryID, cycle, time.Now(), errMsg); err != nil {
		log.Printf("[fetch] record health for %s: %v", countryID, err)
	}
}
