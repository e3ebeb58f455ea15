package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fleet_desk/internal/models"
)

// UserRepository stores login principals and the driver profiles hanging
// off them.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUserName(ctx context.Context, userName string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("user_name = ?", userName).First(&user).Error; err != nil {
		return nil, fmt.Errorf("find user %q: %w", userName, translate(err))
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user %q: %w", user.UserName, translate(err))
	}
	return nil
}

// CreateDriver inserts the driver's user and profile in one transaction.
func (r *UserRepository) CreateDriver(ctx context.Context, user *models.User, driver *models.Driver) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("create driver user %q: %w", user.UserName, translate(err))
		}
		driver.UserID = user.ID
		if err := tx.Create(driver).Error; err != nil {
			return fmt.Errorf("create driver profile: %w", translate(err))
		}
		user.Driver = driver
		return nil
	})
}

func (r *UserRepository) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	var drivers []models.Driver
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&drivers).Error; err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	return drivers, nil
}
