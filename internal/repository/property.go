package repository

import (
	"context"

	"gorm.io/gorm"

	"landlord/server/internal/models"
)

const resourceProperty = "Property"

func (r *Repository) ListProperties(ctx context.Context, userID uint, page Page) ([]models.Property, error) {
	properties := []models.Property{}
	err := page.apply(r.db.WithContext(ctx).Where("owner_id = ?", userID)).Find(&properties).Error
	if err != nil {
		return nil, storeErr("list properties", err)
	}
	return properties, nil
}

// AllProperties returns every property owned by userID, unpaginated.
func (r *Repository) AllProperties(ctx context.Context, userID uint) ([]models.Property, error) {
	properties := []models.Property{}
	err := r.db.WithContext(ctx).Where("owner_id = ?", userID).Order("id ASC").Find(&properties).Error
	if err != nil {
		return nil, storeErr("list properties", err)
	}
	return properties, nil
}

func (r *Repository) CreateProperty(ctx context.Context, userID uint, in *models.PropertyCreate) (*models.Property, error) {
	property := in.Build(userID)
	if err := property.Validate(); err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)
	if err := db.Create(property).Error; err != nil {
		return nil, storeErr("create property", err)
	}
	return r.GetProperty(ctx, userID, property.ID)
}

func (r *Repository) GetProperty(ctx context.Context, userID, id uint) (*models.Property, error) {
	return getProperty(r.db.WithContext(ctx), userID, id)
}

func getProperty(tx *gorm.DB, userID, id uint) (*models.Property, error) {
	var property models.Property
	if err := tx.Where("id = ? AND owner_id = ?", id, userID).First(&property).Error; err != nil {
		return nil, lookupErr(resourceProperty, err)
	}
	return &property, nil
}

func (r *Repository) UpdateProperty(ctx context.Context, userID, id uint, patch *models.PropertyUpdate) (*models.Property, error) {
	var updated *models.Property
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		property, err := getProperty(tx, userID, id)
		if err != nil {
			return err
		}
		patch.Apply(property)
		if err := property.Validate(); err != nil {
			return err
		}
		if err := tx.Model(property).Select("*").Omit("ID", "OwnerID", "CreatedAt").Updates(property).Error; err != nil {
			return storeErr("update property", err)
		}
		updated, err = getProperty(tx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProperty removes the property and everything that hangs off it in one transaction.
func (r *Repository) DeleteProperty(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		property, err := getProperty(tx.Clauses(lockExclusive), userID, id)
		if err != nil {
			return err
		}
		for _, dependent := range []interface{}{
			&models.MaintenanceRequest{},
			&models.RentPayment{},
			&models.Tenant{},
		} {
			if err := tx.Where("property_id = ?", property.ID).Delete(dependent).Error; err != nil {
				return storeErr("delete property dependents", err)
			}
		}
		if err := tx.Delete(property).Error; err != nil {
			return storeErr("delete property", err)
		}
		return nil
	})
}

// ComparableProperties returns the owner's other properties of the same type.
func (r *Repository) ComparableProperties(ctx context.Context, userID uint, subject *models.Property) ([]models.Property, error) {
	properties := []models.Property{}
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id <> ? AND LOWER(property_type) = LOWER(?)", userID, subject.ID, subject.PropertyType).
		Order("id ASC").
		Find(&properties).Error
	if err != nil {
		return nil, storeErr("list comparable properties", err)
	}
	return properties, nil
}

// PropertyByID loads a property without an ownership check. Background jobs only.
func (r *Repository) PropertyByID(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	if err := r.db.WithContext(ctx).First(&property, id).Error; err != nil {
		return nil, lookupErr(resourceProperty, err)
	}
	return &property, nil
}

// SetCoordinates stores geocoded coordinates for a property, provided it still
// sits at the location they were resolved from and has none of its own. A
// property that was deleted, moved or given explicit coordinates is NotFound.
func (r *Repository) SetCoordinates(ctx context.Context, id uint, at models.Location, latitude, longitude float64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("id = ? AND address = ? AND city = ? AND state = ? AND zip_code = ?", id, at.Address, at.City, at.State, at.ZipCode).
		Where("latitude IS NULL AND longitude IS NULL").
		Updates(map[string]interface{}{"latitude": latitude, "longitude": longitude})
	if result.Error != nil {
		return storeErr("set coordinates", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound(resourceProperty)
	}
	return nil
}
