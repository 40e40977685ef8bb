package geometry

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"landlord/server/internal/models"
)

func located(id uint, city string, rent, lat, lon float64) models.Property {
	return models.Property{ID: id, City: city, RentAmount: rent, Latitude: &lat, Longitude: &lon}
}

func unlocated(id uint, city string, rent float64) models.Property {
	return models.Property{ID: id, City: city, RentAmount: rent}
}

func TestWithinRadius(t *testing.T) {
	// Springfield, IL city centre.
	center := orb.Point{-89.6501, 39.7817}
	candidates := []models.Property{
		located(1, "Springfield", 1000, 39.7900, -89.6440), // ~1 km
		located(2, "Springfield", 1200, 39.8300, -89.6500), // ~5.4 km
		located(3, "Chicago", 2500, 41.8781, -87.6298),     // ~280 km
		unlocated(4, "Springfield", 900),
	}

	tests := []struct {
		name     string
		radiusKm float64
		wantIDs  []uint
	}{
		{name: "Tight radius", radiusKm: 2, wantIDs: []uint{1}},
		{name: "Wider radius", radiusKm: 10, wantIDs: []uint{1, 2}},
		{name: "Zero radius", radiusKm: 0, wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []uint
			for _, p := range WithinRadius(center, candidates, tt.radiusKm) {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestMarketSummary(t *testing.T) {
	subject := located(10, "Springfield", 1100, 39.7817, -89.6501)

	tests := []struct {
		name       string
		subject    models.Property
		candidates []models.Property
		radiusKm   float64
		want       models.MarketSummary
	}{
		{
			name:    "Radius comparables",
			subject: subject,
			candidates: []models.Property{
				located(1, "Springfield", 1000, 39.7900, -89.6440),
				located(2, "Springfield", 1300, 39.7850, -89.6550),
				located(3, "Chicago", 2500, 41.8781, -87.6298),
			},
			radiusKm: 5,
			want: models.MarketSummary{
				Basis: BasisRadius, RadiusKm: 5, Comparables: 2,
				MinRent: 1000, MaxRent: 1300, AverageRent: 1150, SubjectRent: 1100, DeltaToAverage: -50,
			},
		},
		{
			name:    "Falls back to city when nothing is close",
			subject: subject,
			candidates: []models.Property{
				unlocated(1, "springfield ", 900),
				located(3, "Chicago", 2500, 41.8781, -87.6298),
			},
			radiusKm: 5,
			want: models.MarketSummary{
				Basis: BasisCity, Comparables: 1,
				MinRent: 900, MaxRent: 900, AverageRent: 900, SubjectRent: 1100, DeltaToAverage: 200,
			},
		},
		{
			name:       "Unlocated subject uses city",
			subject:    unlocated(10, "Chicago", 2000),
			candidates: []models.Property{located(3, "Chicago", 2500, 41.8781, -87.6298)},
			radiusKm:   5,
			want: models.MarketSummary{
				Basis: BasisCity, Comparables: 1,
				MinRent: 2500, MaxRent: 2500, AverageRent: 2500, SubjectRent: 2000, DeltaToAverage: -500,
			},
		},
		{
			name:       "No comparables",
			subject:    subject,
			candidates: []models.Property{unlocated(3, "Chicago", 2500)},
			radiusKm:   5,
			want:       models.MarketSummary{Basis: BasisNone, SubjectRent: 1100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject := tt.subject
			assert.Equal(t, tt.want, MarketSummary(&subject, tt.candidates, tt.radiusKm))
		})
	}
}
