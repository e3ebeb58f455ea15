package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fleet_desk/internal/models"
)

type PackageBookingRepository struct {
	db *gorm.DB
}

func NewPackageBookingRepository(db *gorm.DB) *PackageBookingRepository {
	return &PackageBookingRepository{db: db}
}

func (r *PackageBookingRepository) Get(ctx context.Context, id string) (*models.PackageBooking, error) {
	var booking models.PackageBooking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get package booking %s: %w", id, translate(err))
	}
	return &booking, nil
}

func (r *PackageBookingRepository) List(ctx context.Context) ([]models.PackageBooking, error) {
	var bookings []models.PackageBooking
	if err := r.db.WithContext(ctx).Order("departure_date DESC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list package bookings: %w", err)
	}
	return bookings, nil
}

func (r *PackageBookingRepository) Create(ctx context.Context, booking *models.PackageBooking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return fmt.Errorf("create package booking: %w", translate(err))
	}
	return nil
}
