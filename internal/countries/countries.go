package countries

// Country describes one fuel-price source. The set is fixed at startup.
type Country struct {
	ID   string
	Name string // display name (Russian, matches the message language)
	Flag string

	URL      string
	Currency string // native currency code of the source page
}

var All = []Country{
	{ID: "russia", Name: "Россия", Flag: "🇷🇺", URL: "https://autotraveler.ru/russia/#fuel", Currency: "RUB"},
	{ID: "germany", Name: "Германия", Flag: "🇩🇪", URL: "https://autotraveler.ru/germany/#fuel", Currency: "EUR"},
	{ID: "czechia", Name: "Чехия", Flag: "🇨🇿", URL: "https://autotraveler.ru/czech/#fuel", Currency: "CZK"},
	{ID: "ukraine", Name: "Украина", Flag: "🇺🇦", URL: "https://autotraveler.ru/ukraine/#fuel", Currency: "UAH"},
}

var byID map[string]Country

func init() {
	byID = map[string]Country{}
	for _, c := range All {
		byID[c.ID] = c
	}
}

func ByID(id string) (Country, bool) {
	c, ok := byID[id]
	return c, ok
}
