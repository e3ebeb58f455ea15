package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fleet_desk/internal/events"
	"fleet_desk/internal/metrics"
	"fleet_desk/internal/models"
	"fleet_desk/internal/repository"
	"fleet_desk/internal/storage"
)

type UserStore interface {
	FindByUserName(ctx context.Context, userName string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	CreateDriver(ctx context.Context, user *models.User, driver *models.Driver) error
	ListDrivers(ctx context.Context) ([]models.Driver, error)
}

type TechnicianStore interface {
	List(ctx context.Context) ([]models.Technician, error)
	Get(ctx context.Context, id string) (*models.Technician, error)
	Create(ctx context.Context, technician *models.Technician) error
	Update(ctx context.Context, technician *models.Technician) error
	Delete(ctx context.Context, id string) error
}

type VehicleStore interface {
	ListByPurpose(ctx context.Context, purpose models.Purpose) ([]models.Vehicle, error)
	Create(ctx context.Context, vehicle *models.Vehicle) error
}

type PackageBookingStore interface {
	Get(ctx context.Context, id string) (*models.PackageBooking, error)
	List(ctx context.Context) ([]models.PackageBooking, error)
	Create(ctx context.Context, booking *models.PackageBooking) error
}

// EventPublisher receives a change event after every successful mutation.
type EventPublisher interface {
	Publish(ev events.Event)
}

// Controller carries the dependencies shared by every handler.
type Controller struct {
	Users       UserStore
	Technicians TechnicianStore
	Vehicles    VehicleStore
	Bookings    PackageBookingStore
	Uploads     storage.Uploader
	Events      EventPublisher
	Hub         *events.Hub
	Metrics     *metrics.Metrics
	TokenTTL    time.Duration
}

func (ctl *Controller) publish(topic, action, id string) {
	if ctl.Events == nil {
		return
	}
	ctl.Events.Publish(events.Event{Topic: topic, Action: action, ID: id})
	if ctl.Metrics != nil {
		ctl.Metrics.EventsPublished.WithLabelValues(topic).Inc()
	}
}

// storeError answers with 404/409 for the repository sentinels and 500
// otherwise.
func storeError(c *gin.Context, err error, what string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": what + " already exists"})
	default:
		logrus.WithError(err).WithField("request_id", c.GetString("request_id")).Error("store failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process " + what})
	}
}
