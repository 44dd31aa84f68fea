package utils

import (
	"log"
	"time"

	_ "time/tzdata"
)

// Location resolves a zone name with a Moscow default. The tzdata import
// keeps this working on minimal systems without a zoneinfo database.
func Location(name string) *time.Location {
	if name == "" {
		name = "Europe/Moscow"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("[time] unknown zone %q, using UTC: %v", name, err)
		return time.UTC
	}
	return loc
}
