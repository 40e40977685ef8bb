package repository

import (
	"context"

	"gorm.io/gorm"

	"landlord/server/internal/database"
	"landlord/server/internal/models"
)

// DashboardStats aggregates counts and rent totals across everything userID owns.
func (r *Repository) DashboardStats(ctx context.Context, userID uint) (*models.DashboardStats, error) {
	db := r.db.WithContext(ctx)
	stats := &models.DashboardStats{}

	owned := func() *gorm.DB {
		return db.Model(&models.Property{}).Where("owner_id = ?", userID)
	}
	if err := owned().Count(&stats.TotalProperties).Error; err != nil {
		return nil, storeErr("count properties", err)
	}
	if err := owned().Where("is_active = ?", true).Count(&stats.ActiveProperties).Error; err != nil {
		return nil, storeErr("count active properties", err)
	}
	if err := owned().Where("is_active = ?", true).
		Select("COALESCE(SUM(rent_amount), 0)").Scan(&stats.MonthlyRent).Error; err != nil {
		return nil, storeErr("sum monthly rent", err)
	}

	if err := inScope(db.Model(&models.Tenant{}), userID).
		Where("is_active = ?", true).Count(&stats.TotalTenants).Error; err != nil {
		return nil, storeErr("count tenants", err)
	}
	if err := inScope(db.Model(&models.MaintenanceRequest{}), userID).
		Where("status = ?", models.MaintenanceStatusPending).Count(&stats.PendingMaintenance).Error; err != nil {
		return nil, storeErr("count pending maintenance", err)
	}

	payments := func() *gorm.DB {
		return inScope(db.Model(&models.RentPayment{}), userID).Select("COALESCE(SUM(amount), 0)")
	}
	if err := payments().Where("status = ?", models.PaymentStatusPaid).Scan(&stats.CollectedRent).Error; err != nil {
		return nil, storeErr("sum collected rent", err)
	}
	outstanding := []models.PaymentStatus{models.PaymentStatusPending, models.PaymentStatusOverdue, models.PaymentStatusPartial}
	if err := payments().Where("status IN ?", outstanding).Scan(&stats.OutstandingRent).Error; err != nil {
		return nil, storeErr("sum outstanding rent", err)
	}

	stats.GeneratedAt = database.Now()
	return stats, nil
}
