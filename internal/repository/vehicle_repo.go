package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fleet_desk/internal/models"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// ListByPurpose returns the vehicles flagged for sale or for rent.
func (r *VehicleRepository) ListByPurpose(ctx context.Context, purpose models.Purpose) ([]models.Vehicle, error) {
	q := r.db.WithContext(ctx)
	switch purpose {
	case models.PurposeSell:
		q = q.Where("is_for_sell = ?", true)
	case models.PurposeRent:
		q = q.Where("is_for_rent = ?", true)
	default:
		return nil, fmt.Errorf("unknown vehicle purpose %q", purpose)
	}

	var vehicles []models.Vehicle
	if err := q.Order("number").Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("list %s vehicles: %w", purpose, err)
	}
	return vehicles, nil
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	if err := r.db.WithContext(ctx).Create(vehicle).Error; err != nil {
		return fmt.Errorf("create vehicle %s: %w", vehicle.Number, translate(err))
	}
	return nil
}
