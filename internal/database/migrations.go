package database

import "landlord/server/internal/models"

func (d *Database) RunMigrations() error {
	return d.db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Tenant{},
		&models.RentPayment{},
		&models.MaintenanceRequest{},
	)
}
