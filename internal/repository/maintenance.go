package repository

import (
	"context"

	"gorm.io/gorm"

	"landlord/server/internal/models"
)

const resourceMaintenance = "Maintenance request"

func (r *Repository) ListMaintenanceRequests(ctx context.Context, userID uint, page Page) ([]models.MaintenanceRequest, error) {
	requests := []models.MaintenanceRequest{}
	if err := page.apply(inScope(r.db.WithContext(ctx), userID)).Find(&requests).Error; err != nil {
		return nil, storeErr("list maintenance requests", err)
	}
	return requests, nil
}

// MaintenanceHistory returns every request raised against one owned property.
func (r *Repository) MaintenanceHistory(ctx context.Context, userID, propertyID uint) ([]models.MaintenanceRequest, error) {
	requests := []models.MaintenanceRequest{}
	err := inScope(r.db.WithContext(ctx), userID).
		Where("property_id = ?", propertyID).
		Order("id ASC").
		Find(&requests).Error
	if err != nil {
		return nil, storeErr("list maintenance history", err)
	}
	return requests, nil
}

func (r *Repository) CreateMaintenanceRequest(ctx context.Context, userID uint, in *models.MaintenanceRequestCreate) (*models.MaintenanceRequest, error) {
	request := in.Build(userID)
	if err := request.Validate(); err != nil {
		return nil, err
	}
	var created *models.MaintenanceRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getProperty(tx.Clauses(lockShared), userID, in.PropertyID); err != nil {
			return err
		}
		if in.TenantID != nil {
			if _, err := tenantOfProperty(tx.Clauses(lockShared), userID, *in.TenantID, in.PropertyID); err != nil {
				return err
			}
		}
		if err := tx.Create(request).Error; err != nil {
			return storeErr("create maintenance request", err)
		}
		var err error
		created, err = getMaintenanceRequest(tx, userID, request.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *Repository) GetMaintenanceRequest(ctx context.Context, userID, id uint) (*models.MaintenanceRequest, error) {
	return getMaintenanceRequest(r.db.WithContext(ctx), userID, id)
}

func getMaintenanceRequest(tx *gorm.DB, userID, id uint) (*models.MaintenanceRequest, error) {
	var request models.MaintenanceRequest
	if err := inScope(tx, userID).Where("id = ?", id).First(&request).Error; err != nil {
		return nil, lookupErr(resourceMaintenance, err)
	}
	return &request, nil
}

func (r *Repository) UpdateMaintenanceRequest(ctx context.Context, userID, id uint, patch *models.MaintenanceRequestUpdate) (*models.MaintenanceRequest, error) {
	var updated *models.MaintenanceRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request, err := getMaintenanceRequest(tx, userID, id)
		if err != nil {
			return err
		}
		patch.Apply(request)
		if err := request.Validate(); err != nil {
			return err
		}
		if err := tx.Model(request).Select("*").Omit("ID", "PropertyID", "TenantID", "RequesterID", "CreatedAt").Updates(request).Error; err != nil {
			return storeErr("update maintenance request", err)
		}
		updated, err = getMaintenanceRequest(tx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Repository) DeleteMaintenanceRequest(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request, err := getMaintenanceRequest(tx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(request).Error; err != nil {
			return storeErr("delete maintenance request", err)
		}
		return nil
	})
}
