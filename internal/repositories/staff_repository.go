package repositories

import "bakery/internal/models"

// StaffRepository defines the interface for cashier account access.
type StaffRepository interface {
	Create(staff *models.Staff) error
	GetByUsername(username string) (*models.Staff, error)
	GetByID(id string) (*models.Staff, error)
}
