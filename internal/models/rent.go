package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusOverdue   PaymentStatus = "overdue"
	PaymentStatusPartial   PaymentStatus = "partial"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue, PaymentStatusPartial, PaymentStatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodOnline       PaymentMethod = "online"
	PaymentMethodOther        PaymentMethod = "other"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCheck, PaymentMethodBankTransfer, PaymentMethodOnline, PaymentMethodOther:
		return true
	}
	return false
}

type RentPayment struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	PropertyID      uint           `json:"property_id" gorm:"index;not null"`
	TenantID        uint           `json:"tenant_id" gorm:"index;not null"`
	PayerID         uint           `json:"payer_id" gorm:"not null"`
	Amount          float64        `json:"amount" gorm:"not null"`
	DueDate         Date           `json:"due_date" gorm:"index;not null"`
	PaidDate        *Date          `json:"paid_date"`
	Status          PaymentStatus  `json:"status" gorm:"type:varchar(16);index;not null;default:pending"`
	PaymentMethod   *PaymentMethod `json:"payment_method" gorm:"type:varchar(16)"`
	ReferenceNumber *string        `json:"reference_number"`
	Notes           *string        `json:"notes"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (r *RentPayment) Validate() error {
	if err := requirePositive("amount", r.Amount); err != nil {
		return err
	}
	if err := requireDate("due_date", r.DueDate); err != nil {
		return err
	}
	if !r.Status.IsValid() {
		return NewValidationError("status", "must be one of pending, paid, overdue, partial, cancelled")
	}
	if r.PaymentMethod != nil && !r.PaymentMethod.IsValid() {
		return NewValidationError("payment_method", "must be one of cash, check, bank_transfer, online, other")
	}
	return nil
}

type RentPaymentCreate struct {
	PropertyID      uint           `json:"property_id" binding:"required"`
	TenantID        uint           `json:"tenant_id" binding:"required"`
	Amount          float64        `json:"amount" binding:"required"`
	DueDate         Date           `json:"due_date"`
	PaidDate        *Date          `json:"paid_date"`
	Status          PaymentStatus  `json:"status"`
	PaymentMethod   *PaymentMethod `json:"payment_method"`
	ReferenceNumber *string        `json:"reference_number"`
	Notes           *string        `json:"notes"`
}

// Build turns a create request into an unsaved row paid by payerID.
func (in *RentPaymentCreate) Build(payerID uint) *RentPayment {
	status := in.Status
	if status == "" {
		status = PaymentStatusPending
	}
	return &RentPayment{
		PropertyID:      in.PropertyID,
		TenantID:        in.TenantID,
		PayerID:         payerID,
		Amount:          in.Amount,
		DueDate:         in.DueDate,
		PaidDate:        in.PaidDate,
		Status:          status,
		PaymentMethod:   in.PaymentMethod,
		ReferenceNumber: in.ReferenceNumber,
		Notes:           in.Notes,
	}
}

type RentPaymentUpdate struct {
	Amount          *float64                `json:"amount"`
	DueDate         *Date                   `json:"due_date"`
	PaidDate        Nullable[Date]          `json:"paid_date"`
	Status          *PaymentStatus          `json:"status"`
	PaymentMethod   Nullable[PaymentMethod] `json:"payment_method"`
	ReferenceNumber Nullable[string]        `json:"reference_number"`
	Notes           Nullable[string]        `json:"notes"`
}

func (u *RentPaymentUpdate) Apply(r *RentPayment) {
	set(u.Amount, &r.Amount)
	set(u.DueDate, &r.DueDate)
	u.PaidDate.apply(&r.PaidDate)
	set(u.Status, &r.Status)
	u.PaymentMethod.apply(&r.PaymentMethod)
	u.ReferenceNumber.apply(&r.ReferenceNumber)
	u.Notes.apply(&r.Notes)
}
