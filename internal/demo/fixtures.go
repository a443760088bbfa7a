package demo

import (
	"time"

	"github.com/keessnoek/ing-transactie-verwerker/internal/model"
)

// Category ids of the demo data.
const (
	CategoryWonen        = 1
	CategoryBoodschappen = 2
	CategoryAuto         = 3
	CategoryRestaurants  = 4
	CategoryAbonnementen = 5
)

// SampleCategories returns the demo categories.
func SampleCategories() model.CategoryList {
	return model.CategoryList{
		{ID: CategoryWonen, Name: "Wonen"},
		{ID: CategoryBoodschappen, Name: "Boodschappen"},
		{ID: CategoryAuto, Name: "Auto/Transport"},
		{ID: CategoryRestaurants, Name: "Restaurants/Eten"},
		{ID: CategoryAbonnementen, Name: "Abonnementen"},
	}
}

type fixture struct {
	name     string
	code     string
	notes    string
	amount   float64
	count    int
	category int
}

var fixtures = []fixture{
	{name: "ALBERT HEIJN 1403 AMSTERDAM", code: "BA", amount: -34.12, count: 14},
	{name: "JUMBO AMSTERDAM OOST", code: "BA", amount: -21.75, count: 8},
	{name: "LIDL ZAANDAM", code: "BA", amount: -17.40, count: 3},
	{name: "PICNIC BV", code: "IC", notes: "Bestelling thuisbezorgd", amount: -62.30, count: 4},
	{name: "SHELL STATION A10", code: "BA", amount: -71.05, count: 6},
	{name: "TINQ HAARLEM", code: "BA", amount: -55.00, count: 2},
	{name: "MCDONALDS SCHIPHOL", code: "BA", amount: -11.85, count: 5},
	{name: "CAFE DE JAREN", code: "BA", amount: -27.50, count: 3},
	{name: "Q-PARK CENTRUM", code: "BA", amount: -6.40, count: 4},
	{name: "BOL.COM", code: "IC", notes: "Bestelnummer 4021", amount: -34.99, count: 12},
	{name: "NS GROEP IZ NS REIZIGERS", code: "IC", amount: -98.20, count: 11},
	{name: "WERKGEVER BV SALARIS", code: "OV", notes: "Salaris", amount: 3150.00, count: 3},
	{name: "WONINGCORPORATIE YMERE", code: "IC", notes: "Huur", amount: -845.00, count: 6, category: CategoryWonen},
	{name: "ALBERT HEIJN 1187 HAARLEM", code: "BA", amount: -12.30, count: 5, category: CategoryBoodschappen},
	{name: "NETFLIX INTERNATIONAL", code: "IC", amount: -13.99, count: 6, category: CategoryAbonnementen},
}

var fixtureStart = time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

// SampleTransactions returns the demo transactions. The data is the same
// on every call.
func SampleTransactions() []model.Transaction {
	var txns []model.Transaction
	id := 1
	for fi, f := range fixtures {
		for i := 0; i < f.count; i++ {
			txns = append(txns, model.Transaction{
				ID:         id,
				Date:       fixtureStart.AddDate(0, 0, i*9+fi).Format("2006-01-02"),
				Name:       f.name,
				Code:       f.code,
				Notes:      f.notes,
				Amount:     f.amount - float64(i%3),
				CategoryID: f.category,
			})
			id++
		}
	}
	return txns
}

// NewSampleStore returns a store filled with the demo data.
func NewSampleStore() *Store {
	return NewStore(SampleCategories(), SampleTransactions())
}
