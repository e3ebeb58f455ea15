package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet_desk/internal/events"
	"fleet_desk/internal/models"
)

type vehicleInput struct {
	Number          string   `json:"number" binding:"required"`
	SeatingCapacity int      `json:"seatingCapacity"`
	Model           string   `json:"model" binding:"required"`
	BodyType        string   `json:"bodyType"`
	ChassisBrand    string   `json:"chassisBrand"`
	Location        string   `json:"location"`
	ContactNumber   string   `json:"contactNumber" binding:"required"`
	Photos          []string `json:"photos"`
	IsAC            bool     `json:"isAC"`
	IsForRent       bool     `json:"isForRent"`
	IsForSell       bool     `json:"isForSell"`
	Type            string   `json:"type"`
}

// ListVehiclesByPurpose serves /api/vehicle/purpose/:purpose/ for SELL and
// RENT listings.
func (ctl *Controller) ListVehiclesByPurpose(c *gin.Context) {
	purpose, ok := models.ParsePurpose(c.Param("purpose"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "purpose must be SELL or RENT"})
		return
	}

	vehicles, err := ctl.Vehicles.ListByPurpose(c.Request.Context(), purpose)
	if err != nil {
		storeError(c, err, "vehicles")
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

func (ctl *Controller) CreateVehicle(c *gin.Context) {
	var input vehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle input: " + err.Error()})
		return
	}

	vehicle := models.Vehicle{
		Number:          input.Number,
		SeatingCapacity: input.SeatingCapacity,
		Model:           input.Model,
		BodyType:        input.BodyType,
		ChassisBrand:    input.ChassisBrand,
		Location:        input.Location,
		ContactNumber:   input.ContactNumber,
		Photos:          input.Photos,
		IsAC:            input.IsAC,
		IsForRent:       input.IsForRent,
		IsForSell:       input.IsForSell,
		Type:            input.Type,
	}
	if err := ctl.Vehicles.Create(c.Request.Context(), &vehicle); err != nil {
		storeError(c, err, "vehicle")
		return
	}

	ctl.publish(events.TopicVehicles, "created", vehicle.ID)
	c.JSON(http.StatusCreated, gin.H{"data": vehicle})
}
