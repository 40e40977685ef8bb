package repository

import (
	"context"

	"gorm.io/gorm"

	"landlord/server/internal/models"
)

const resourceRentPayment = "Rent payment"

func (r *Repository) ListRentPayments(ctx context.Context, userID uint, page Page) ([]models.RentPayment, error) {
	payments := []models.RentPayment{}
	if err := page.apply(inScope(r.db.WithContext(ctx), userID)).Find(&payments).Error; err != nil {
		return nil, storeErr("list rent payments", err)
	}
	return payments, nil
}

func (r *Repository) CreateRentPayment(ctx context.Context, userID uint, in *models.RentPaymentCreate) (*models.RentPayment, error) {
	payment := in.Build(userID)
	if err := payment.Validate(); err != nil {
		return nil, err
	}
	var created *models.RentPayment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getProperty(tx.Clauses(lockShared), userID, in.PropertyID); err != nil {
			return err
		}
		if _, err := tenantOfProperty(tx.Clauses(lockShared), userID, in.TenantID, in.PropertyID); err != nil {
			return err
		}
		if err := tx.Create(payment).Error; err != nil {
			return storeErr("create rent payment", err)
		}
		var err error
		created, err = getRentPayment(tx, userID, payment.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *Repository) GetRentPayment(ctx context.Context, userID, id uint) (*models.RentPayment, error) {
	return getRentPayment(r.db.WithContext(ctx), userID, id)
}

func getRentPayment(tx *gorm.DB, userID, id uint) (*models.RentPayment, error) {
	var payment models.RentPayment
	if err := inScope(tx, userID).Where("id = ?", id).First(&payment).Error; err != nil {
		return nil, lookupErr(resourceRentPayment, err)
	}
	return &payment, nil
}

func (r *Repository) UpdateRentPayment(ctx context.Context, userID, id uint, patch *models.RentPaymentUpdate) (*models.RentPayment, error) {
	var updated *models.RentPayment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment, err := getRentPayment(tx, userID, id)
		if err != nil {
			return err
		}
		patch.Apply(payment)
		if err := payment.Validate(); err != nil {
			return err
		}
		if err := tx.Model(payment).Select("*").Omit("ID", "PropertyID", "TenantID", "PayerID", "CreatedAt").Updates(payment).Error; err != nil {
			return storeErr("update rent payment", err)
		}
		updated, err = getRentPayment(tx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Repository) DeleteRentPayment(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment, err := getRentPayment(tx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(payment).Error; err != nil {
			return storeErr("delete rent payment", err)
		}
		return nil
	})
}

// MarkOverdue flips pending payments due before today to overdue and reports how many changed.
func (r *Repository) MarkOverdue(ctx context.Context, today models.Date) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.RentPayment{}).
		Where("status = ? AND due_date < ?", models.PaymentStatusPending, today).
		Update("status", models.PaymentStatusOverdue)
	if result.Error != nil {
		return 0, storeErr("mark overdue payments", result.Error)
	}
	return result.RowsAffected, nil
}
