package models

import "time"

type Property struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	OwnerID       uint      `json:"owner_id" gorm:"index;not null"`
	Name          string    `json:"name" gorm:"not null"`
	Address       string    `json:"address" gorm:"not null"`
	City          string    `json:"city" gorm:"not null"`
	State         string    `json:"state" gorm:"not null"`
	ZipCode       string    `json:"zip_code" gorm:"not null"`
	PropertyType  string    `json:"property_type" gorm:"not null"`
	Bedrooms      *int      `json:"bedrooms"`
	Bathrooms     *float64  `json:"bathrooms"`
	SquareFeet    *int      `json:"square_feet"`
	RentAmount    float64   `json:"rent_amount" gorm:"not null"`
	DepositAmount *float64  `json:"deposit_amount"`
	Description   *string   `json:"description"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	IsActive      bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Location is the set of address columns coordinates are derived from.
type Location struct {
	Address string
	City    string
	State   string
	ZipCode string
}

func (p *Property) Location() Location {
	return Location{Address: p.Address, City: p.City, State: p.State, ZipCode: p.ZipCode}
}

// HasCoordinates reports whether the property has been located.
func (p *Property) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

func (p *Property) Validate() error {
	required := []struct{ field, value string }{
		{"name", p.Name},
		{"address", p.Address},
		{"city", p.City},
		{"state", p.State},
		{"zip_code", p.ZipCode},
		{"property_type", p.PropertyType},
	}
	for _, r := range required {
		if err := requireText(r.field, r.value); err != nil {
			return err
		}
	}
	if err := requirePositive("rent_amount", p.RentAmount); err != nil {
		return err
	}
	if err := optionalNonNegative("deposit_amount", p.DepositAmount); err != nil {
		return err
	}
	if p.Bedrooms != nil && *p.Bedrooms < 0 {
		return NewValidationError("bedrooms", "must not be negative")
	}
	if err := optionalNonNegative("bathrooms", p.Bathrooms); err != nil {
		return err
	}
	if p.SquareFeet != nil && *p.SquareFeet < 0 {
		return NewValidationError("square_feet", "must not be negative")
	}
	if p.Latitude != nil && (*p.Latitude < -90 || *p.Latitude > 90) {
		return NewValidationError("latitude", "must be between -90 and 90")
	}
	if p.Longitude != nil && (*p.Longitude < -180 || *p.Longitude > 180) {
		return NewValidationError("longitude", "must be between -180 and 180")
	}
	return nil
}

type PropertyCreate struct {
	Name          string   `json:"name" binding:"required"`
	Address       string   `json:"address" binding:"required"`
	City          string   `json:"city" binding:"required"`
	State         string   `json:"state" binding:"required"`
	ZipCode       string   `json:"zip_code" binding:"required"`
	PropertyType  string   `json:"property_type" binding:"required"`
	Bedrooms      *int     `json:"bedrooms"`
	Bathrooms     *float64 `json:"bathrooms"`
	SquareFeet    *int     `json:"square_feet"`
	RentAmount    float64  `json:"rent_amount" binding:"required"`
	DepositAmount *float64 `json:"deposit_amount"`
	Description   *string  `json:"description"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

// Build turns a create request into an unsaved row for owner.
func (in *PropertyCreate) Build(ownerID uint) *Property {
	return &Property{
		OwnerID:       ownerID,
		Name:          in.Name,
		Address:       in.Address,
		City:          in.City,
		State:         in.State,
		ZipCode:       in.ZipCode,
		PropertyType:  in.PropertyType,
		Bedrooms:      in.Bedrooms,
		Bathrooms:     in.Bathrooms,
		SquareFeet:    in.SquareFeet,
		RentAmount:    in.RentAmount,
		DepositAmount: in.DepositAmount,
		Description:   in.Description,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		IsActive:      true,
	}
}

// PropertyUpdate is a partial patch. Pointer fields ignore null; Nullable fields clear on null.
type PropertyUpdate struct {
	Name          *string           `json:"name"`
	Address       *string           `json:"address"`
	City          *string           `json:"city"`
	State         *string           `json:"state"`
	ZipCode       *string           `json:"zip_code"`
	PropertyType  *string           `json:"property_type"`
	Bedrooms      Nullable[int]     `json:"bedrooms"`
	Bathrooms     Nullable[float64] `json:"bathrooms"`
	SquareFeet    Nullable[int]     `json:"square_feet"`
	RentAmount    *float64          `json:"rent_amount"`
	DepositAmount Nullable[float64] `json:"deposit_amount"`
	Description   Nullable[string]  `json:"description"`
	Latitude      Nullable[float64] `json:"latitude"`
	Longitude     Nullable[float64] `json:"longitude"`
	IsActive      *bool             `json:"is_active"`
}

// Apply merges the patch into p. Moving the property without supplying
// coordinates clears the old ones so they never describe another address.
func (u *PropertyUpdate) Apply(p *Property) {
	before := p.Location()
	set(u.Name, &p.Name)
	set(u.Address, &p.Address)
	set(u.City, &p.City)
	set(u.State, &p.State)
	set(u.ZipCode, &p.ZipCode)
	set(u.PropertyType, &p.PropertyType)
	u.Bedrooms.apply(&p.Bedrooms)
	u.Bathrooms.apply(&p.Bathrooms)
	u.SquareFeet.apply(&p.SquareFeet)
	set(u.RentAmount, &p.RentAmount)
	u.DepositAmount.apply(&p.DepositAmount)
	u.Description.apply(&p.Description)
	u.Latitude.apply(&p.Latitude)
	u.Longitude.apply(&p.Longitude)
	set(u.IsActive, &p.IsActive)

	if p.Location() != before && !u.Latitude.Set && !u.Longitude.Set {
		p.Latitude, p.Longitude = nil, nil
	}
}

// ChangesLocation reports whether the patch touches any address field.
func (u *PropertyUpdate) ChangesLocation() bool {
	return u.Address != nil || u.City != nil || u.State != nil || u.ZipCode != nil
}

// PropertySnapshot is the subset of a property handed to the AI adapter.
type PropertySnapshot struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PropertyType string    `json:"property_type"`
	Bedrooms     *int      `json:"bedrooms"`
	Bathrooms    *float64  `json:"bathrooms"`
	SquareFeet   *int      `json:"square_feet"`
	RentAmount   float64   `json:"rent_amount"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (p *Property) Snapshot() PropertySnapshot {
	return PropertySnapshot{
		ID:           p.ID,
		Name:         p.Name,
		Address:      p.Address,
		City:         p.City,
		State:        p.State,
		PropertyType: p.PropertyType,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		SquareFeet:   p.SquareFeet,
		RentAmount:   p.RentAmount,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
	}
}

// DashboardStats aggregates an owner's portfolio.
type DashboardStats struct {
	TotalProperties    int64     `json:"total_properties"`
	ActiveProperties   int64     `json:"active_properties"`
	TotalTenants       int64     `json:"total_tenants"`
	PendingMaintenance int64     `json:"pending_maintenance"`
	MonthlyRent        float64   `json:"monthly_rent"`
	CollectedRent      float64   `json:"collected_rent"`
	OutstandingRent    float64   `json:"outstanding_rent"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// MarketSummary describes comparable properties used for rent analysis.
type MarketSummary struct {
	Basis          string  `json:"basis"`
	RadiusKm       float64 `json:"radius_km,omitempty"`
	Comparables    int     `json:"comparables"`
	MinRent        float64 `json:"min_rent,omitempty"`
	MaxRent        float64 `json:"max_rent,omitempty"`
	AverageRent    float64 `json:"average_rent,omitempty"`
	SubjectRent    float64 `json:"subject_rent"`
	DeltaToAverage float64 `json:"delta_to_average,omitempty"`
}
