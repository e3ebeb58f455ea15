package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fleet_desk/internal/models"
)

type TechnicianRepository struct {
	db *gorm.DB
}

func NewTechnicianRepository(db *gorm.DB) *TechnicianRepository {
	return &TechnicianRepository{db: db}
}

// List returns every technician, newest first. Filtering is left to the
// caller.
func (r *TechnicianRepository) List(ctx context.Context) ([]models.Technician, error) {
	var technicians []models.Technician
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&technicians).Error; err != nil {
		return nil, fmt.Errorf("list technicians: %w", err)
	}
	return technicians, nil
}

func (r *TechnicianRepository) Get(ctx context.Context, id string) (*models.Technician, error) {
	var technician models.Technician
	if err := r.db.WithContext(ctx).First(&technician, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get technician %s: %w", id, translate(err))
	}
	return &technician, nil
}

func (r *TechnicianRepository) Create(ctx context.Context, technician *models.Technician) error {
	if err := r.db.WithContext(ctx).Create(technician).Error; err != nil {
		return fmt.Errorf("create technician: %w", translate(err))
	}
	return nil
}

// Update overwrites the editable fields of an existing technician.
func (r *TechnicianRepository) Update(ctx context.Context, technician *models.Technician) error {
	res := r.db.WithContext(ctx).Model(&models.Technician{}).
		Where("id = ?", technician.ID).
		Updates(map[string]interface{}{
			"technician_type":  technician.TechnicianType,
			"name":             technician.Name,
			"city":             technician.City,
			"mobile_number":    technician.MobileNumber,
			"alternate_number": technician.AlternateNumber,
			"vehicle_type":     technician.VehicleType,
		})
	if res.Error != nil {
		return fmt.Errorf("update technician %s: %w", technician.ID, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update technician %s: %w", technician.ID, ErrNotFound)
	}
	return nil
}

func (r *TechnicianRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Technician{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete technician %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete technician %s: %w", id, ErrNotFound)
	}
	return nil
}
