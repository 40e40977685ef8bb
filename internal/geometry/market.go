package geometry

import (
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"landlord/server/internal/models"
)

const (
	BasisRadius = "radius"
	BasisCity   = "city"
	BasisNone   = "none"
)

func location(p *models.Property) (orb.Point, bool) {
	if !p.HasCoordinates() {
		return orb.Point{}, false
	}
	return orb.Point{*p.Longitude, *p.Latitude}, true
}

// WithinRadius returns the candidates whose great-circle distance from center is at most radiusKm.
func WithinRadius(center orb.Point, candidates []models.Property, radiusKm float64) []models.Property {
	meters := radiusKm * 1000
	bound := geo.NewBoundAroundPoint(center, meters)

	var nearby []models.Property
	for i := range candidates {
		point, ok := location(&candidates[i])
		if !ok || !bound.Contains(point) {
			continue
		}
		if geo.DistanceHaversine(center, point) <= meters {
			nearby = append(nearby, candidates[i])
		}
	}
	return nearby
}

// SameCity returns the candidates in the subject's city, compared case-insensitively.
func SameCity(subject *models.Property, candidates []models.Property) []models.Property {
	var matches []models.Property
	for _, c := range candidates {
		if strings.EqualFold(strings.TrimSpace(c.City), strings.TrimSpace(subject.City)) {
			matches = append(matches, c)
		}
	}
	return matches
}

// MarketSummary picks comparables for subject and summarises their rents. Candidates
// within radiusKm are preferred when the subject is located; otherwise the same city is used.
func MarketSummary(subject *models.Property, candidates []models.Property, radiusKm float64) models.MarketSummary {
	summary := models.MarketSummary{Basis: BasisNone, SubjectRent: subject.RentAmount}

	var comparables []models.Property
	if center, ok := location(subject); ok && radiusKm > 0 {
		comparables = WithinRadius(center, candidates, radiusKm)
		if len(comparables) > 0 {
			summary.Basis = BasisRadius
			summary.RadiusKm = radiusKm
		}
	}
	if len(comparables) == 0 {
		comparables = SameCity(subject, candidates)
		if len(comparables) > 0 {
			summary.Basis = BasisCity
		}
	}
	if len(comparables) == 0 {
		return summary
	}

	summary.Comparables = len(comparables)
	summary.MinRent = math.Inf(1)
	summary.MaxRent = math.Inf(-1)
	total := 0.0
	for _, c := range comparables {
		summary.MinRent = math.Min(summary.MinRent, c.RentAmount)
		summary.MaxRent = math.Max(summary.MaxRent, c.RentAmount)
		total += c.RentAmount
	}
	summary.AverageRent = round2(total / float64(len(comparables)))
	summary.DeltaToAverage = round2(subject.RentAmount - summary.AverageRent)
	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
