package models

import "time"

type Tenant struct {
	ID                    uint      `json:"id" gorm:"primaryKey"`
	PropertyID            uint      `json:"property_id" gorm:"index;not null"`
	FullName              string    `json:"full_name" gorm:"not null"`
	Email                 *string   `json:"email"`
	Phone                 *string   `json:"phone"`
	EmergencyContactName  *string   `json:"emergency_contact_name"`
	EmergencyContactPhone *string   `json:"emergency_contact_phone"`
	LeaseStartDate        Date      `json:"lease_start_date" gorm:"not null"`
	LeaseEndDate          Date      `json:"lease_end_date" gorm:"not null"`
	MonthlyRent           float64   `json:"monthly_rent" gorm:"not null"`
	SecurityDeposit       *float64  `json:"security_deposit"`
	Notes                 *string   `json:"notes"`
	IsActive              bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (t *Tenant) Validate() error {
	if err := requireText("full_name", t.FullName); err != nil {
		return err
	}
	if err := requireDate("lease_start_date", t.LeaseStartDate); err != nil {
		return err
	}
	if err := requireDate("lease_end_date", t.LeaseEndDate); err != nil {
		return err
	}
	if t.LeaseEndDate.Before(t.LeaseStartDate) {
		return NewValidationError("lease_end_date", "must not be before lease_start_date")
	}
	if err := requirePositive("monthly_rent", t.MonthlyRent); err != nil {
		return err
	}
	return optionalNonNegative("security_deposit", t.SecurityDeposit)
}

type TenantCreate struct {
	PropertyID            uint     `json:"property_id" binding:"required"`
	FullName              string   `json:"full_name" binding:"required"`
	Email                 *string  `json:"email" binding:"omitempty,email"`
	Phone                 *string  `json:"phone"`
	EmergencyContactName  *string  `json:"emergency_contact_name"`
	EmergencyContactPhone *string  `json:"emergency_contact_phone"`
	LeaseStartDate        Date     `json:"lease_start_date"`
	LeaseEndDate          Date     `json:"lease_end_date"`
	MonthlyRent           float64  `json:"monthly_rent" binding:"required"`
	SecurityDeposit       *float64 `json:"security_deposit"`
	Notes                 *string  `json:"notes"`
}

func (in *TenantCreate) Build() *Tenant {
	return &Tenant{
		PropertyID:            in.PropertyID,
		FullName:              in.FullName,
		Email:                 in.Email,
		Phone:                 in.Phone,
		EmergencyContactName:  in.EmergencyContactName,
		EmergencyContactPhone: in.EmergencyContactPhone,
		LeaseStartDate:        in.LeaseStartDate,
		LeaseEndDate:          in.LeaseEndDate,
		MonthlyRent:           in.MonthlyRent,
		SecurityDeposit:       in.SecurityDeposit,
		Notes:                 in.Notes,
		IsActive:              true,
	}
}

type TenantUpdate struct {
	FullName              *string           `json:"full_name"`
	Email                 Nullable[string]  `json:"email"`
	Phone                 Nullable[string]  `json:"phone"`
	EmergencyContactName  Nullable[string]  `json:"emergency_contact_name"`
	EmergencyContactPhone Nullable[string]  `json:"emergency_contact_phone"`
	LeaseStartDate        *Date             `json:"lease_start_date"`
	LeaseEndDate          *Date             `json:"lease_end_date"`
	MonthlyRent           *float64          `json:"monthly_rent"`
	SecurityDeposit       Nullable[float64] `json:"security_deposit"`
	Notes                 Nullable[string]  `json:"notes"`
	IsActive              *bool             `json:"is_active"`
}

func (u *TenantUpdate) Apply(t *Tenant) {
	set(u.FullName, &t.FullName)
	u.Email.apply(&t.Email)
	u.Phone.apply(&t.Phone)
	u.EmergencyContactName.apply(&t.EmergencyContactName)
	u.EmergencyContactPhone.apply(&t.EmergencyContactPhone)
	set(u.LeaseStartDate, &t.LeaseStartDate)
	set(u.LeaseEndDate, &t.LeaseEndDate)
	set(u.MonthlyRent, &t.MonthlyRent)
	u.SecurityDeposit.apply(&t.SecurityDeposit)
	u.Notes.apply(&t.Notes)
	set(u.IsActive, &t.IsActive)
}

// TenantSnapshot is the tenant payload handed to the AI adapter.
type TenantSnapshot struct {
	ID             uint    `json:"id"`
	FullName       string  `json:"full_name"`
	PropertyName   string  `json:"property_name"`
	LeaseStartDate Date    `json:"lease_start_date"`
	LeaseEndDate   Date    `json:"lease_end_date"`
	MonthlyRent    float64 `json:"monthly_rent"`
	IsActive       bool    `json:"is_active"`
}

func (t *Tenant) Snapshot(propertyName string) TenantSnapshot {
	return TenantSnapshot{
		ID:             t.ID,
		FullName:       t.FullName,
		PropertyName:   propertyName,
		LeaseStartDate: t.LeaseStartDate,
		LeaseEndDate:   t.LeaseEndDate,
		MonthlyRent:    t.MonthlyRent,
		IsActive:       t.IsActive,
	}
}
