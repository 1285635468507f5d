package repositories

import (
	"errors"
	"fmt"

	"bakery/internal/models"
	pkgerrors "bakery/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMStaffRepository is a GORM implementation of StaffRepository.
type GORMStaffRepository struct {
	db *gorm.DB
}

// NewGORMStaffRepository creates a new instance of GORMStaffRepository.
func NewGORMStaffRepository(db *gorm.DB) *GORMStaffRepository {
	return &GORMStaffRepository{
		db: db,
	}
}

// Migrate creates or updates the staff table.
func (r *GORMStaffRepository) Migrate() error {
	if err := r.db.AutoMigrate(&models.Staff{}); err != nil {
		return fmt.Errorf("failed to migrate staff: %w", err)
	}
	return nil
}

// Create creates a new staff account in the database.
func (r *GORMStaffRepository) Create(staff *models.Staff) error {
	if staff.ID == "" {
		staff.ID = uuid.New().String()
	}
	if err := r.db.Create(staff).Error; err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}
	return nil
}

// GetByUsername retrieves a staff account by username.
func (r *GORMStaffRepository) GetByUsername(username string) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.First(&staff, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "staff with username %s not found", username)
		}
		return nil, fmt.Errorf("failed to get staff by username %s: %w", username, err)
	}
	return &staff, nil
}

// GetByID retrieves a staff account by ID.
func (r *GORMStaffRepository) GetByID(id string) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.First(&staff, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "staff with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get staff by ID %s: %w", id, err)
	}
	return &staff, nil
}
