package repository

import (
	"context"

	"gorm.io/gorm"

	"landlord/server/internal/models"
)

const resourceTenant = "Tenant"

func (r *Repository) ListTenants(ctx context.Context, userID uint, page Page) ([]models.Tenant, error) {
	tenants := []models.Tenant{}
	if err := page.apply(inScope(r.db.WithContext(ctx), userID)).Find(&tenants).Error; err != nil {
		return nil, storeErr("list tenants", err)
	}
	return tenants, nil
}

func (r *Repository) CreateTenant(ctx context.Context, userID uint, in *models.TenantCreate) (*models.Tenant, error) {
	tenant := in.Build()
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	var created *models.Tenant
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getProperty(tx.Clauses(lockShared), userID, in.PropertyID); err != nil {
			return err
		}
		if err := tx.Create(tenant).Error; err != nil {
			return storeErr("create tenant", err)
		}
		var err error
		created, err = getTenant(tx, userID, tenant.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *Repository) GetTenant(ctx context.Context, userID, id uint) (*models.Tenant, error) {
	return getTenant(r.db.WithContext(ctx), userID, id)
}

func getTenant(tx *gorm.DB, userID, id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := inScope(tx, userID).Where("id = ?", id).First(&tenant).Error; err != nil {
		return nil, lookupErr(resourceTenant, err)
	}
	return &tenant, nil
}

// tenantOfProperty resolves a tenant reference that must sit on propertyID.
func tenantOfProperty(tx *gorm.DB, userID, tenantID, propertyID uint) (*models.Tenant, error) {
	tenant, err := getTenant(tx, userID, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant.PropertyID != propertyID {
		return nil, notFound(resourceTenant)
	}
	return tenant, nil
}

func (r *Repository) UpdateTenant(ctx context.Context, userID, id uint, patch *models.TenantUpdate) (*models.Tenant, error) {
	var updated *models.Tenant
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenant, err := getTenant(tx, userID, id)
		if err != nil {
			return err
		}
		patch.Apply(tenant)
		if err := tenant.Validate(); err != nil {
			return err
		}
		if err := tx.Model(tenant).Select("*").Omit("ID", "PropertyID", "CreatedAt").Updates(tenant).Error; err != nil {
			return storeErr("update tenant", err)
		}
		updated, err = getTenant(tx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTenant removes the tenant and its rent payments, and detaches its
// maintenance requests, in one transaction.
func (r *Repository) DeleteTenant(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenant, err := getTenant(tx.Clauses(lockExclusive), userID, id)
		if err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ?", tenant.ID).Delete(&models.RentPayment{}).Error; err != nil {
			return storeErr("delete tenant payments", err)
		}
		if err := tx.Model(&models.MaintenanceRequest{}).
			Where("tenant_id = ?", tenant.ID).
			Update("tenant_id", nil).Error; err != nil {
			return storeErr("detach tenant maintenance", err)
		}
		if err := tx.Delete(tenant).Error; err != nil {
			return storeErr("delete tenant", err)
		}
		return nil
	})
}
