package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "Calendar day", input: `"2024-03-01"`, want: NewDate(2024, time.March, 1)},
		{name: "Null", input: `null`, want: Date{}},
		{name: "Timestamp rejected", input: `"2024-03-01T10:00:00Z"`, wantErr: true},
		{name: "Bad month", input: `"2024-13-01"`, wantErr: true},
		{name: "Number", input: `20240301`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(d.Time), "got %v", d)
		})
	}

	out, err := json.Marshal(NewDate(2024, time.December, 31))
	require.NoError(t, err)
	assert.Equal(t, `"2024-12-31"`, string(out))

	out, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(out))
}

func TestDateScan(t *testing.T) {
	want := NewDate(2024, time.June, 15)

	tests := []struct {
		name    string
		value   interface{}
		wantErr bool
	}{
		{name: "time.Time with clock", value: time.Date(2024, time.June, 15, 13, 45, 0, 0, time.UTC)},
		{name: "Date string", value: "2024-06-15"},
		{name: "Timestamp string", value: "2024-06-15 00:00:00+00:00"},
		{name: "Bytes", value: []byte("2024-06-15")},
		{name: "Short string", value: "2024", wantErr: true},
		{name: "Integer", value: int64(20240615), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := d.Scan(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, want.String(), d.String())
		})
	}

	var d Date
	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
}

func TestNullableDistinguishesAbsentFromNull(t *testing.T) {
	var patch PropertyUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"description": null, "bedrooms": 3}`), &patch))

	assert.True(t, patch.Description.Set)
	assert.Nil(t, patch.Description.Value)
	assert.True(t, patch.Bedrooms.Set)
	require.NotNil(t, patch.Bedrooms.Value)
	assert.Equal(t, 3, *patch.Bedrooms.Value)
	assert.False(t, patch.DepositAmount.Set)
}

func TestPropertyUpdateApply(t *testing.T) {
	desc := "Corner unit"
	deposit := 1500.0
	p := &Property{Name: "Maple", City: "Springfield", RentAmount: 1200, Description: &desc, DepositAmount: &deposit, IsActive: true}

	var patch PropertyUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"name": null, "rent_amount": 1350, "description": null, "is_active": false}`), &patch))
	patch.Apply(p)

	assert.Equal(t, "Maple", p.Name, "null on a required field is ignored")
	assert.Equal(t, 1350.0, p.RentAmount)
	assert.Nil(t, p.Description, "null on an optional field clears it")
	require.NotNil(t, p.DepositAmount, "absent fields are untouched")
	assert.Equal(t, 1500.0, *p.DepositAmount)
	assert.False(t, p.IsActive)
	assert.False(t, patch.ChangesLocation())
}

func TestChangesLocation(t *testing.T) {
	var patch PropertyUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"city": "Shelbyville"}`), &patch))
	assert.True(t, patch.ChangesLocation())
}

func TestPropertyUpdateCoordinatesFollowLocation(t *testing.T) {
	tests := []struct {
		name    string
		patch   string
		wantLat *float64
	}{
		{name: "Move without coordinates clears them", patch: `{"city": "Miami", "state": "FL"}`},
		{name: "Move with coordinates keeps the supplied ones", patch: `{"address": "2 Ocean Dr", "latitude": 25.77, "longitude": -80.13}`, wantLat: ptr(25.77)},
		{name: "Unchanged address keeps coordinates", patch: `{"city": "Springfield", "rent_amount": 1300}`, wantLat: ptr(39.78)},
		{name: "Other fields keep coordinates", patch: `{"name": "Maple Court"}`, wantLat: ptr(39.78)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Property{Address: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701", Latitude: ptr(39.78), Longitude: ptr(-89.65)}

			var patch PropertyUpdate
			require.NoError(t, json.Unmarshal([]byte(tt.patch), &patch))
			patch.Apply(p)

			if tt.wantLat == nil {
				assert.Nil(t, p.Latitude)
				assert.Nil(t, p.Longitude)
				return
			}
			require.True(t, p.HasCoordinates())
			assert.Equal(t, *tt.wantLat, *p.Latitude)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}

func TestPropertyValidate(t *testing.T) {
	valid := func() *Property {
		return &Property{Name: "Maple", Address: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701", PropertyType: "apartment", RentAmount: 1200}
	}
	neg := -1.0
	lat := 91.0

	tests := []struct {
		name      string
		mutate    func(p *Property)
		wantField string
	}{
		{name: "Valid", mutate: func(p *Property) {}},
		{name: "Missing name", mutate: func(p *Property) { p.Name = "" }, wantField: "name"},
		{name: "Zero rent", mutate: func(p *Property) { p.RentAmount = 0 }, wantField: "rent_amount"},
		{name: "Negative deposit", mutate: func(p *Property) { p.DepositAmount = &neg }, wantField: "deposit_amount"},
		{name: "Latitude out of range", mutate: func(p *Property) { p.Latitude = &lat }, wantField: "latitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(p)
			err := p.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var invalid *ValidationError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.wantField, invalid.Field)
		})
	}
}

func TestTenantValidateLeaseRange(t *testing.T) {
	tenant := &Tenant{
		FullName:       "Ada Tenant",
		LeaseStartDate: NewDate(2024, time.February, 1),
		LeaseEndDate:   NewDate(2024, time.January, 31),
		MonthlyRent:    900,
	}
	var invalid *ValidationError
	require.ErrorAs(t, tenant.Validate(), &invalid)
	assert.Equal(t, "lease_end_date", invalid.Field)

	tenant.LeaseEndDate = tenant.LeaseStartDate
	assert.NoError(t, tenant.Validate())
}

func TestRentPaymentDefaultsAndEnums(t *testing.T) {
	in := &RentPaymentCreate{PropertyID: 1, TenantID: 2, Amount: 900, DueDate: NewDate(2024, time.March, 1)}
	payment := in.Build(7)
	assert.Equal(t, PaymentStatusPending, payment.Status)
	assert.Equal(t, uint(7), payment.PayerID)
	assert.NoError(t, payment.Validate())

	payment.Status = "late"
	var invalid *ValidationError
	require.ErrorAs(t, payment.Validate(), &invalid)
	assert.Equal(t, "status", invalid.Field)

	payment.Status = PaymentStatusPaid
	method := PaymentMethod("crypto")
	payment.PaymentMethod = &method
	require.ErrorAs(t, payment.Validate(), &invalid)
	assert.Equal(t, "payment_method", invalid.Field)
}

func TestMaintenanceRequestDefaults(t *testing.T) {
	in := &MaintenanceRequestCreate{PropertyID: 1, Title: "Leak", Description: "Kitchen sink"}
	req := in.Build(3)
	assert.Equal(t, MaintenanceStatusPending, req.Status)
	assert.Equal(t, PriorityMedium, req.Priority)
	assert.Equal(t, uint(3), req.RequesterID)
	assert.NoError(t, req.Validate())

	req.Priority = "whenever"
	assert.Error(t, req.Validate())
}

func TestSessionRoundTrip(t *testing.T) {
	u := &User{ID: 4, Email: "owner@example.com", FullName: "Owner", IsActive: true, HashedPassword: "secret"}
	back := u.Session().User()
	assert.Equal(t, u.ID, back.ID)
	assert.Equal(t, u.Email, back.Email)
	assert.True(t, back.IsActive)
	assert.Empty(t, back.HashedPassword)

	out, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "secret")
}
