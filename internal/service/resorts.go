package service

import (
	"context"
	"sync"

	"github.com/joeruch23/colorado-weather-network/internal/domain"
)

// Resort is one entry of the fixed Colorado resort list.
type Resort struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// resorts are the major Colorado ski areas shown on the winter page.
var resorts = []Resort{
	{ID: "vail", Name: "Vail", Lat: 39.6403, Lon: -106.3742},
	{ID: "breckenridge", Name: "Breckenridge", Lat: 39.4817, Lon: -106.0384},
	{ID: "keystone", Name: "Keystone", Lat: 39.6084, Lon: -105.9437},
	{ID: "copper", Name: "Copper Mountain", Lat: 39.5022, Lon: -106.1497},
	{ID: "winter-park", Name: "Winter Park", Lat: 39.8868, Lon: -105.7625},
	{ID: "steamboat", Name: "Steamboat", Lat: 40.4572, Lon: -106.8045},
	{ID: "aspen", Name: "Aspen Snowmass", Lat: 39.2130, Lon: -106.9378},
	{ID: "telluride", Name: "Telluride", Lat: 37.9375, Lon: -107.8123},
	{ID: "crested-butte", Name: "Crested Butte", Lat: 38.8697, Lon: -106.9878},
	{ID: "wolf-creek", Name: "Wolf Creek", Lat: 37.4722, Lon: -106.7931},
	{ID: "loveland", Name: "Loveland", Lat: 39.6800, Lon: -105.8979},
	{ID: "a-basin", Name: "Arapahoe Basin", Lat: 39.6425, Lon: -105.8719},
}

// ResortSnowRow pairs a resort with its model-derived snowfall totals.
type ResortSnowRow struct {
	Resort
	Snow domain.SnowReport `json:"snow"`
}

// ResortSnow fetches snowfall totals for every resort concurrently. A failed
// fetch yields a zero report for that resort; row order matches the resort
// list.
func (s *Service) ResortSnow(ctx context.Context) []ResortSnowRow {
	rows := make([]ResortSnowRow, len(resorts))

	var wg sync.WaitGroup
	for i, r := range resorts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rows[i] = ResortSnowRow{Resort: r, Snow: s.SnowTotals(ctx, r.Lat, r.Lon)}
		}()
	}
	wg.Wait()

	return rows
}
